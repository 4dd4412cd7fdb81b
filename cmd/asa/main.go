package main

import (
	"os"
	_ "time/tzdata"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/cmd"
	apperrors "github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/errors"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/logging"
)

func main() {
	code := run(cmd.Execute, apperrors.NewDefaultCLIHandler())
	_ = appDeps.Close()
	_ = logging.ShutdownGlobal()
	os.Exit(code)
}

// run executes the command tree and returns the process exit code.
func run(execute func() error, h *apperrors.CLIHandler) int {
	if err := execute(); err != nil {
		logging.Error("command failed", "error", err)
		h.Error(apperrors.UserMessage(err))
	}
	if h.Errors() > 0 {
		return 1
	}
	return 0
}
