//go:build !unix

package launch

import "syscall"

// TerminatingSignal reports no signal on platforms without POSIX wait
// statuses.
func TerminatingSignal(err error) (syscall.Signal, bool) {
	return 0, false
}

// Reraise is a no-op on platforms without POSIX signals.
func Reraise(err error) {}
