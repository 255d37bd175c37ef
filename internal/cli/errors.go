package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ZebulonRouseFrantzich/binwrap/internal/launch"
)

// Stages name the step that failed in error messages.
const (
	StageConfig  = "config"
	StageInstall = "install"
	StageRun     = "run"
)

// StageError attaches the failing stage to an error.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(stage string, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Err: err}
}

// exitInterrupted is the shell convention for a process stopped by SIGINT.
const exitInterrupted = 130

// ExitCode maps an error returned by a command to the wrapper's exit status.
// The child's own exit code is mirrored; a child killed by a signal maps to
// 128+signal like a POSIX shell does. A wrapper interrupted before the child
// started exits 130. Everything else is 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *launch.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if sig, ok := launch.TerminatingSignal(err); ok {
		return 128 + int(sig)
	}

	if errors.Is(err, context.Canceled) {
		return exitInterrupted
	}

	return 1
}

// Report writes err to w prefixed with prog. Child exits are not reported;
// the child has already spoken for itself. Neither is an interrupt.
func Report(w io.Writer, prog string, err error) {
	if err == nil {
		return
	}

	var exitErr *launch.ExitError
	var abnormal *launch.AbnormalExitError
	if errors.As(err, &exitErr) || errors.As(err, &abnormal) || errors.Is(err, context.Canceled) {
		return
	}

	fmt.Fprintf(w, "%s: %v\n", prog, err)
}
