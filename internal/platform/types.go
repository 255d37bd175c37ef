// Package platform detects the OS, CPU architecture and C library family of
// the running host and turns them into the platform key used to look up the
// matching binary distribution package.
//
// OS and architecture names follow the package registry's conventions
// (win32, x64, ia32) rather than Go's GOOS/GOARCH. The libc segment is only
// present on Linux, where glibc and musl builds are distinct artifacts.
package platform

import (
	"context"
	"strings"
)

// C library families.
const (
	LibcGlibc = "glibc"
	LibcMusl  = "musl"
)

// Info contains platform detection information.
type Info struct {
	OS     string // "linux", "darwin", "win32"
	Arch   string // "x64", "arm64", "ia32" (registry naming)
	Libc   string // "glibc", "musl" or empty when not applicable/undetectable
	GOOS   string // original runtime.GOOS
	GOARCH string // original runtime.GOARCH
}

// Key is the canonical platform identifier, e.g. "linux-x64-glibc".
type Key string

// String returns the key as a plain string.
func (k Key) String() string {
	return string(k)
}

// KeyOf builds the platform key for info. The libc segment is appended only
// when it was detected.
func KeyOf(info *Info) Key {
	parts := []string{info.OS, info.Arch}
	if info.Libc != "" {
		parts = append(parts, info.Libc)
	}
	return Key(strings.Join(parts, "-"))
}

// IsWindows returns true if the platform is Windows.
func (i *Info) IsWindows() bool {
	return i.OS == "win32"
}

// IsLinux returns true if the platform is Linux.
func (i *Info) IsLinux() bool {
	return i.OS == "linux"
}

// IsMusl returns true if the platform is Linux on musl libc.
func (i *Info) IsMusl() bool {
	return i.IsLinux() && i.Libc == LibcMusl
}

// HasPOSIXPermissions reports whether file mode bits are meaningful.
func (i *Info) HasPOSIXPermissions() bool {
	return !i.IsWindows()
}

// Detector is the interface for platform detection.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}
