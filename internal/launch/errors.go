package launch

import (
	"fmt"
	"os/exec"
)

// BinaryNotFoundError is returned when neither install source produced a
// binary at the resolved path.
type BinaryNotFoundError struct {
	Path string
}

func (e *BinaryNotFoundError) Error() string {
	return fmt.Sprintf("binary not found at %s", e.Path)
}

// ExitError carries a non-zero exit code from the child process.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// AbnormalExitError is returned when the child terminated without an exit
// code, typically because a signal killed it.
type AbnormalExitError struct {
	Err *exec.ExitError
}

func (e *AbnormalExitError) Error() string {
	return fmt.Sprintf("binary terminated abnormally: %v", e.Err)
}

func (e *AbnormalExitError) Unwrap() error {
	return e.Err
}
