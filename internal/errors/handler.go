// Package errors routes user-facing failure messages to the console or the
// TUI.
package errors

import (
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/domain"
)

// ErrorHandler receives messages meant for the user.
type ErrorHandler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
}

// ColorOutput prints styled messages.
type ColorOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
	Success(msgs ...string)
}

// CLIHandler prints messages through a ColorOutput and counts errors so a
// command can choose its exit status.
type CLIHandler struct {
	colors ColorOutput

	mu     sync.Mutex
	errors int
}

func NewCLIHandler(colors ColorOutput) *CLIHandler {
	return &CLIHandler{colors: colors}
}

func (h *CLIHandler) Error(msg string) {
	h.mu.Lock()
	h.errors++
	h.mu.Unlock()
	h.colors.Error(msg)
}

func (h *CLIHandler) Warning(msg string) {
	h.colors.Warning(msg)
}

func (h *CLIHandler) Info(msg string) {
	h.colors.Info(msg)
}

func (h *CLIHandler) Success(msg string) {
	h.colors.Success(msg)
}

// Errors returns how many errors were reported.
func (h *CLIHandler) Errors() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.errors
}

// UserMessage renders err for display.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case stderrors.Is(err, domain.ErrSessionMissing):
		return "Not signed in. Run 'asa login' first."
	case stderrors.Is(err, domain.ErrIdentifierUnparseable):
		return fmt.Sprintf("Not a valid id: %v", err)
	case stderrors.Is(err, domain.ErrNetwork):
		return fmt.Sprintf("Could not reach the server: %v", err)
	case stderrors.Is(err, domain.ErrMalformedPayload):
		return fmt.Sprintf("Unexpected response from the server: %v", err)
	case stderrors.Is(err, domain.ErrNotFound):
		return fmt.Sprintf("Not found: %v", err)
	default:
		return err.Error()
	}
}

// Report shows err on h if it is meant for the user. Absorbed errors are
// dropped and unparseable input only warns. It reports whether anything was
// shown.
func Report(h ErrorHandler, err error) bool {
	if h == nil || err == nil || domain.IsAbsorbed(err) {
		return false
	}
	if stderrors.Is(err, domain.ErrIdentifierUnparseable) {
		h.Warning(UserMessage(err))
		return true
	}
	h.Error(UserMessage(err))
	return true
}
