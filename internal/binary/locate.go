package binary

import (
	"os"
	"path/filepath"

	"github.com/ZebulonRouseFrantzich/binwrap/internal/config"
)

// Resolver finds a file inside an installed package.
type Resolver interface {
	// Resolve returns the path of rel (slash-separated) inside package pkg.
	Resolve(pkg, rel string) (string, bool)
}

// NodeModulesResolver resolves packages the way Node's module loader does:
// it checks <dir>/node_modules/<pkg> for StartDir and every ancestor,
// skipping directories that are themselves named node_modules.
type NodeModulesResolver struct {
	StartDir string
}

// Resolve implements Resolver.
func (r NodeModulesResolver) Resolve(pkg, rel string) (string, bool) {
	if r.StartDir == "" {
		return "", false
	}

	dir := filepath.Clean(r.StartDir)
	for {
		if filepath.Base(dir) != "node_modules" {
			candidate := filepath.Join(dir, "node_modules", filepath.FromSlash(pkg), filepath.FromSlash(rel))
			if isRegularFile(candidate) {
				return candidate, true
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Locator answers where the binary is, without side effects.
type Locator struct {
	cfg      config.Config
	resolver Resolver
}

// NewLocator creates a locator. A nil resolver walks node_modules upward
// from the wrapper directory.
func NewLocator(cfg config.Config, resolver Resolver) *Locator {
	if resolver == nil {
		resolver = NodeModulesResolver{StartDir: cfg.WrapperDir}
	}
	return &Locator{cfg: cfg, resolver: resolver}
}

// Installed returns the binary inside the optional platform package, if the
// package manager installed it.
func (l *Locator) Installed() (string, bool) {
	return l.resolver.Resolve(l.cfg.Package, l.cfg.PackagedBinary())
}

// Downloaded reports whether a fallback binary was written earlier.
func (l *Locator) Downloaded() bool {
	return fileExists(l.cfg.FallbackPath)
}

// Resolve picks the binary to run. The installed package always wins over
// the fallback file, even when both exist.
func (l *Locator) Resolve() Location {
	if path, ok := l.Installed(); ok {
		return Location{Path: path, Origin: OriginInstalledPackage}
	}
	return Location{Path: l.cfg.FallbackPath, Origin: OriginFallbackCache}
}

// fileExists checks if a file exists and is not empty
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Size() > 0
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
