//go:build unix

package launch

import (
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// TerminatingSignal returns the signal that killed the child, if any.
func TerminatingSignal(err error) (syscall.Signal, bool) {
	var abnormal *AbnormalExitError
	if !errors.As(err, &abnormal) || abnormal.Err == nil {
		return 0, false
	}
	ws, ok := abnormal.Err.Sys().(syscall.WaitStatus)
	if !ok || !ws.Signaled() {
		return 0, false
	}
	return ws.Signal(), true
}

// Reraise sends the child's terminating signal to the wrapper itself with the
// default disposition restored, so the invoking shell sees the same
// termination. It returns if err carries no signal or the process survives
// delivery; callers then exit with ExitCode.
func Reraise(err error) {
	sig, ok := TerminatingSignal(err)
	if !ok {
		return
	}

	signal.Reset(sig)
	if killErr := syscall.Kill(os.Getpid(), sig); killErr != nil {
		return
	}

	// Delivery is asynchronous for some signals.
	time.Sleep(100 * time.Millisecond)
}
