package testutil

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"strconv"
	"testing"
)

// File is one regular file in a synthetic tarball.
type File struct {
	Name string
	Body []byte
	Mode int64
}

// Tarball builds an uncompressed tar archive from files, in order.
func Tarball(t *testing.T, files ...File) []byte {
	t.Helper()

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)

	for _, f := range files {
		mode := f.Mode
		if mode == 0 {
			mode = 0644
		}
		hdr := &tar.Header{
			Name:     f.Name,
			Mode:     mode,
			Size:     int64(len(f.Body)),
			Typeflag: tar.TypeReg,
			Format:   tar.FormatUSTAR,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("failed to write header for %s: %v", f.Name, err)
		}
		if _, err := tw.Write(f.Body); err != nil {
			t.Fatalf("failed to write content for %s: %v", f.Name, err)
		}
	}

	if err := tw.Close(); err != nil {
		t.Fatalf("failed to close tar writer: %v", err)
	}
	return buf.Bytes()
}

// Gzip compresses data.
func Gzip(t *testing.T, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		t.Fatalf("failed to gzip: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close gzip writer: %v", err)
	}
	return buf.Bytes()
}

// PackageTarball builds a gzipped registry tarball holding one binary at
// package/bin/<name>, preceded by a package.json like the real thing.
func PackageTarball(t *testing.T, name string, body []byte) []byte {
	t.Helper()

	return Gzip(t, Tarball(t,
		File{Name: "package/package.json", Body: []byte(`{"name":"` + name + `"}`)},
		File{Name: "package/bin/" + name, Body: body, Mode: 0755},
	))
}

// StubScript returns a POSIX shell script that prints its arguments and
// exits with code.
func StubScript(code int) []byte {
	return []byte("#!/bin/sh\necho \"$@\"\nexit " + strconv.Itoa(code) + "\n")
}
