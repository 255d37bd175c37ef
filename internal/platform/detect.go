package platform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// platformInfoFunc matches host.PlatformInformationWithContext.
type platformInfoFunc func(ctx context.Context) (platform, family, version string, err error)

// RealDetector implements Detector using actual platform detection.
type RealDetector struct {
	goos         string
	goarch       string
	root         string
	platformInfo platformInfoFunc
}

// NewDetector creates a new platform detector for the running host.
func NewDetector() Detector {
	return &RealDetector{
		goos:         runtime.GOOS,
		goarch:       runtime.GOARCH,
		root:         "/",
		platformInfo: host.PlatformInformationWithContext,
	}
}

// Detect performs platform detection and returns platform information.
//
// On Linux the C library family is probed in order: the contents of
// /usr/bin/ldd, the presence of a musl dynamic loader, then the
// distribution reported by gopsutil. If all probes are inconclusive Libc
// stays empty and the key carries no libc segment.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	info := &Info{
		OS:     normalizeOS(d.goos),
		Arch:   normalizeArch(d.goarch),
		GOOS:   d.goos,
		GOARCH: d.goarch,
	}

	if !info.IsLinux() {
		return info, nil
	}

	libc, err := d.detectLibc(ctx)
	if err != nil {
		return nil, err
	}
	info.Libc = libc

	return info, nil
}

func (d *RealDetector) detectLibc(ctx context.Context) (string, error) {
	if content, err := os.ReadFile(filepath.Join(d.root, "usr", "bin", "ldd")); err == nil {
		if libc := libcFromLdd(content); libc != "" {
			return libc, nil
		}
	}

	if loaders, _ := filepath.Glob(filepath.Join(d.root, "lib", "ld-musl-*.so.1")); len(loaders) > 0 {
		return LibcMusl, nil
	}

	if d.platformInfo == nil {
		return "", nil
	}

	platform, family, _, err := d.platformInfo(ctx)
	if err != nil {
		// Cancellation is a hard failure; anything else just means unknown
		if ctx.Err() != nil {
			return "", fmt.Errorf("platform detection cancelled: %w", ctx.Err())
		}
		return "", nil
	}

	return libcFromDistro(platform, family), nil
}
