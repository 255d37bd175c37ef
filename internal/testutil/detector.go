package testutil

import (
	"context"

	"github.com/ZebulonRouseFrantzich/binwrap/internal/platform"
)

// FakeDetector returns fixed platform facts and counts calls.
type FakeDetector struct {
	Info  *platform.Info
	Err   error
	Calls int
}

// NewFakeDetector creates a detector for the given registry-style names.
func NewFakeDetector(osName, arch, libc string) *FakeDetector {
	return &FakeDetector{Info: &platform.Info{OS: osName, Arch: arch, Libc: libc}}
}

// Detect returns a copy of the configured info.
func (d *FakeDetector) Detect(ctx context.Context) (*platform.Info, error) {
	d.Calls++
	if d.Err != nil {
		return nil, d.Err
	}
	info := *d.Info
	return &info, nil
}
