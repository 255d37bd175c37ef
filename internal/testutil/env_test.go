package testutil_test

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZebulonRouseFrantzich/binwrap/internal/testutil"
)

func TestSetupTestEnv(t *testing.T) {
	t.Setenv("BINWRAP_REGISTRY", "https://mirror.example.com")

	dir := testutil.SetupTestEnv(t)

	if got := os.Getenv("BINWRAP_REGISTRY"); got != "" {
		t.Errorf("BINWRAP_REGISTRY = %q, want empty", got)
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("wrapper dir %s does not exist: %v", dir, err)
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("path %s is not absolute", dir)
	}
}

func TestSetupTestEnv_Isolation(t *testing.T) {
	dir1 := testutil.SetupTestEnv(t)

	t.Run("subtest", func(t *testing.T) {
		dir2 := testutil.SetupTestEnv(t)
		if dir1 == dir2 {
			t.Error("expected different temp directories for different test contexts")
		}
	})
}

func TestPackageTarball(t *testing.T) {
	data := testutil.PackageTarball(t, "tool", []byte("binary"))

	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("gzip.NewReader() error = %v", err)
	}
	tr := tar.NewReader(zr)

	var names []string
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		names = append(names, hdr.Name)
	}

	if len(names) != 2 || names[1] != "package/bin/tool" {
		t.Errorf("entries = %v, want package.json then package/bin/tool", names)
	}
}

func TestSpyFetcher(t *testing.T) {
	f := testutil.NewSpyFetcher()
	f.Bodies["https://example.com/a"] = []byte("a")

	if body, err := f.Fetch(context.Background(), "https://example.com/a"); err != nil || string(body) != "a" {
		t.Errorf("Fetch() = %q, %v", body, err)
	}
	if _, err := f.Fetch(context.Background(), "https://example.com/b"); err == nil {
		t.Error("expected error for unknown URL")
	}
	if len(f.Calls) != 2 {
		t.Errorf("Calls = %v, want 2 entries", f.Calls)
	}
}
