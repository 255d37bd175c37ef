// Package dist holds the distribution manifest embedded into the wrapper at
// build time: the binary name, the pinned distribution version, the registry
// base URL and the mapping from platform key to binary package.
package dist

import (
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/BurntSushi/toml"
	"golang.org/x/mod/semver"

	"github.com/ZebulonRouseFrantzich/binwrap/internal/platform"
)

// DefaultRegistry is the public npm registry.
const DefaultRegistry = "https://registry.npmjs.org"

// DefaultSignatureSuffix is appended to the tarball URL to locate a detached
// signature.
const DefaultSignatureSuffix = ".asc"

//go:embed dist.toml
var embedded []byte

// ErrUnsupportedPlatform matches every UnsupportedPlatformError.
var ErrUnsupportedPlatform = errors.New("platform not supported")

// UnsupportedPlatformError is returned when no package is published for the
// computed platform key.
type UnsupportedPlatformError struct {
	Key platform.Key
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("platform %q not supported", e.Key)
}

// Is reports whether target is ErrUnsupportedPlatform.
func (e *UnsupportedPlatformError) Is(target error) bool {
	return target == ErrUnsupportedPlatform
}

// Signing configures optional detached-signature verification.
type Signing struct {
	PublicKey       string `toml:"public_key"`
	SignatureSuffix string `toml:"signature_suffix"`
}

// Manifest describes one published version of the wrapped binary.
type Manifest struct {
	Binary    string                  `toml:"binary"`
	Version   string                  `toml:"version"`
	Registry  string                  `toml:"registry"`
	Packages  map[platform.Key]string `toml:"packages"`
	Integrity map[string]string       `toml:"integrity"`
	Signing   Signing                 `toml:"signing"`
}

var (
	defaultOnce     sync.Once
	defaultManifest *Manifest
	defaultErr      error
)

// Default returns the manifest embedded at build time. It is parsed once.
func Default() (*Manifest, error) {
	defaultOnce.Do(func() {
		defaultManifest, defaultErr = Parse(embedded)
	})
	return defaultManifest, defaultErr
}

// Parse decodes and validates a TOML manifest.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if _, err := toml.Decode(string(data), &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}

	if m.Registry == "" {
		m.Registry = DefaultRegistry
	}
	if m.Signing.SignatureSuffix == "" {
		m.Signing.SignatureSuffix = DefaultSignatureSuffix
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that the manifest can drive an install.
func (m *Manifest) Validate() error {
	if m.Binary == "" {
		return fmt.Errorf("manifest: binary is required")
	}
	if !semver.IsValid("v" + m.Version) {
		return fmt.Errorf("manifest: invalid version %q", m.Version)
	}

	u, err := url.Parse(m.Registry)
	if err != nil || u.Host == "" || (u.Scheme != "https" && u.Scheme != "http") {
		return fmt.Errorf("manifest: invalid registry URL %q", m.Registry)
	}

	if len(m.Packages) == 0 {
		return fmt.Errorf("manifest: no packages listed")
	}
	for key, pkg := range m.Packages {
		if pkg == "" {
			return fmt.Errorf("manifest: empty package name for %s", key)
		}
	}

	return nil
}

// PackageFor returns the package published for key.
func (m *Manifest) PackageFor(key platform.Key) (string, error) {
	pkg, ok := m.Packages[key]
	if !ok {
		return "", &UnsupportedPlatformError{Key: key}
	}
	return pkg, nil
}

// IntegrityFor returns the subresource-integrity string for pkg, if any.
func (m *Manifest) IntegrityFor(pkg string) string {
	return m.Integrity[pkg]
}

// BinaryFileName returns the on-disk name of the binary for an OS name in
// registry naming. Windows builds carry an .exe suffix.
func (m *Manifest) BinaryFileName(osName string) string {
	if osName == "win32" || osName == "cygwin" {
		return m.Binary + ".exe"
	}
	return m.Binary
}
