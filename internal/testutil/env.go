// Package testutil provides utilities for testing the wrapper in isolation.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SetupTestEnv isolates a test from the developer's environment and returns
// a fresh wrapper directory.
//
// Every BINWRAP_* override and npm's registry setting are blanked so that
// configuration falls back to the manifest and built-in defaults. Empty
// values are ignored by the config loader. Cleanup is handled by
// t.TempDir and t.Setenv.
func SetupTestEnv(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()

	for _, name := range []string{
		"BINWRAP_REGISTRY",
		"BINWRAP_MAX_REDIRECTS",
		"BINWRAP_LOG_LEVEL",
		"BINWRAP_WRAPPER_DIR",
		"BINWRAP_USER_AGENT",
		"npm_config_registry",
	} {
		t.Setenv(name, "")
	}

	wrapperDir := filepath.Join(tmpDir, "node_modules", "tool")
	if err := os.MkdirAll(wrapperDir, 0o750); err != nil {
		t.Fatalf("failed to create wrapper directory %s: %v", wrapperDir, err)
	}

	return wrapperDir
}
