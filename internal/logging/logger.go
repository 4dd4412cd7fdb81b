// Package logging provides structured file logging for asa.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	clog "github.com/charmbracelet/log"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/colors"
)

// Logger is the structured logging interface.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	// With returns a logger that adds args to every entry.
	With(args ...any) Logger
	// Shutdown closes the log file, if any.
	Shutdown() error
}

// jsonLogger writes redacted JSON lines through charmbracelet/log.
type jsonLogger struct {
	out  *clog.Logger
	file *os.File
}

// Open returns a logger writing to a new file in the log directory, or a
// no-op logger when logging is disabled.
func Open(cfg Config) (Logger, error) {
	if !cfg.Enabled {
		return noop{}, nil
	}
	dir, err := cfg.logDir()
	if err != nil {
		return nil, fmt.Errorf("log directory: %w", err)
	}
	if err := rotate(dir, cfg.MaxFiles); err != nil {
		fmt.Fprintf(os.Stderr, "log rotation failed: %v\n", err)
	}

	name := fmt.Sprintf("%s%s_PID%d_%s.log", filePrefix,
		time.Now().Format("20060102_150405"), os.Getpid(),
		strings.ReplaceAll(cfg.Command, " ", "_"))
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l := newJSON(f, cfg.Level, cfg.Command)
	l.file = f
	return l, nil
}

// New returns a logger writing JSON lines to w at level and above.
func New(w io.Writer, level clog.Level) Logger {
	return newJSON(w, level, filepath.Base(os.Args[0]))
}

// NewNoop returns a logger that discards everything.
func NewNoop() Logger {
	return noop{}
}

func newJSON(w io.Writer, level clog.Level, command string) *jsonLogger {
	out := clog.NewWithOptions(w, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339Nano,
		Level:           level,
		Formatter:       clog.JSONFormatter,
	})
	return &jsonLogger{out: out.With("pid", os.Getpid(), "command", command)}
}

func (l *jsonLogger) Debug(msg string, args ...any) { l.log(clog.DebugLevel, msg, args) }
func (l *jsonLogger) Info(msg string, args ...any)  { l.log(clog.InfoLevel, msg, args) }
func (l *jsonLogger) Warn(msg string, args ...any)  { l.log(clog.WarnLevel, msg, args) }
func (l *jsonLogger) Error(msg string, args ...any) { l.log(clog.ErrorLevel, msg, args) }

func (l *jsonLogger) log(level clog.Level, msg string, args []any) {
	l.out.Log(level, msg, redactPairs(args)...)
}

func (l *jsonLogger) With(args ...any) Logger {
	return &jsonLogger{out: l.out.With(redactPairs(args)...), file: l.file}
}

func (l *jsonLogger) Shutdown() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

type noop struct{}

func (noop) Debug(string, ...any) {}
func (noop) Info(string, ...any)  {}
func (noop) Warn(string, ...any)  {}
func (noop) Error(string, ...any) {}
func (n noop) With(...any) Logger { return n }
func (noop) Shutdown() error      { return nil }

var (
	globalOnce sync.Once
	globalMu   sync.RWMutex
	global     Logger = noop{}
)

// InitGlobal opens the process logger from the loaded configuration and
// mirrors console output into it. Only the first call has an effect.
func InitGlobal() error {
	var err error
	globalOnce.Do(func() {
		var l Logger
		if l, err = Open(ConfigFromSettings()); err != nil {
			return
		}
		setGlobal(l)
		colors.SetLogger(l)
		if jl, ok := l.(*jsonLogger); ok {
			colors.Debug("Logging to file:", jl.file.Name())
		}
	})
	return err
}

func setGlobal(l Logger) {
	if l == nil {
		l = noop{}
	}
	globalMu.Lock()
	global = l
	globalMu.Unlock()
}

// GetGlobal returns the process logger; a no-op logger before InitGlobal.
func GetGlobal() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return global
}

// Warn logs through the process logger.
func Warn(msg string, args ...any) { GetGlobal().Warn(msg, args...) }

// Error logs through the process logger.
func Error(msg string, args ...any) { GetGlobal().Error(msg, args...) }

// ShutdownGlobal closes the process logger's file.
func ShutdownGlobal() error {
	return GetGlobal().Shutdown()
}
