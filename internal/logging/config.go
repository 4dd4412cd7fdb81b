package logging

import (
	"os"
	"path/filepath"
	"strings"

	clog "github.com/charmbracelet/log"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/config"
)

// Config selects where and what the file logger writes.
type Config struct {
	Enabled  bool
	Level    clog.Level
	MaxFiles int
	// Dir holds the log files. Empty means {state_dir}/logs.
	Dir string
	// Command ends up in the file name and on every entry.
	Command string
}

// ConfigFromSettings reads the logging_* keys. debug forces the debug level,
// quiet the error level.
func ConfigFromSettings() Config {
	cfg := Config{
		Enabled:  config.GetBool("logging_enabled", false),
		Level:    levelOf(config.Get("logging_level", "info")),
		MaxFiles: config.GetInt("logging_max_files", 10),
		Command:  filepath.Base(os.Args[0]),
	}
	switch {
	case config.GetBool("debug", false):
		cfg.Level = clog.DebugLevel
	case config.GetBool("quiet", false):
		cfg.Level = clog.ErrorLevel
	}
	return cfg
}

// levelOf maps a level name to a clog level, defaulting to info.
func levelOf(name string) clog.Level {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "warning" {
		return clog.WarnLevel
	}
	level, err := clog.ParseLevel(name)
	if err != nil {
		return clog.InfoLevel
	}
	return level
}

// logDir creates and returns the directory for log files, falling back to
// the temp dir when the state dir cannot be created.
func (c Config) logDir() (string, error) {
	dir := c.Dir
	if dir == "" {
		if state := config.Get("state_dir", ""); state != "" {
			dir = filepath.Join(state, "logs")
		}
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0o700); err == nil {
			return dir, nil
		}
	}
	dir = filepath.Join(os.TempDir(), "asa", "logs")
	return dir, os.MkdirAll(dir, 0o700)
}
