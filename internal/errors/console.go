package errors

import "github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/colors"

// console prints through the colors package: errors and warnings on stderr,
// the rest on stdout.
type console struct{}

func (console) Error(msgs ...string)   { colors.Error(msgs...) }
func (console) Warning(msgs ...string) { colors.Warning(msgs...) }
func (console) Info(msgs ...string)    { colors.Info(msgs...) }
func (console) Success(msgs ...string) { colors.Success(msgs...) }

// NewDefaultCLIHandler returns a CLIHandler printing to the terminal.
func NewDefaultCLIHandler() *CLIHandler {
	return NewCLIHandler(console{})
}
