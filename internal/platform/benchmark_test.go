package platform

import (
	"context"
	"testing"
)

func BenchmarkDetect(b *testing.B) {
	detector := NewDetector()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = detector.Detect(ctx)
	}
}

func BenchmarkKeyOf(b *testing.B) {
	info := &Info{OS: "linux", Arch: "x64", Libc: LibcGlibc}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = KeyOf(info)
	}
}

func BenchmarkLibcFromLdd(b *testing.B) {
	content := []byte("#!/bin/bash\n# This file is part of the GNU C Library.\n")
	for i := 0; i < b.N; i++ {
		_ = libcFromLdd(content)
	}
}
