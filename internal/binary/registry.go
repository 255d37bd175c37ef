package binary

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/ZebulonRouseFrantzich/binwrap/internal/config"
)

// DownloadInfo contains metadata needed to download a platform package.
type DownloadInfo struct {
	Package      string
	Version      string
	URL          string // tarball URL
	SignatureURL string // detached signature URL (empty when unsigned)
	Integrity    string // SRI string (may be empty)
}

// TarballURL builds the registry tarball URL for pkg at version.
// Pattern: {registry}/{escaped pkg}/-/{basename}-{version}.tgz
//
// The scope separator in "@scope/name" is percent-encoded in the first path
// segment while the file name uses only the unscoped basename.
func TarballURL(registry, pkg, version string) string {
	base := path.Base(pkg)
	return fmt.Sprintf("%s/%s/-/%s-%s.tgz", strings.TrimRight(registry, "/"), url.PathEscape(pkg), base, version)
}

// NewDownloadInfo constructs download URLs for the configured package.
func NewDownloadInfo(cfg config.Config) *DownloadInfo {
	info := &DownloadInfo{
		Package:   cfg.Package,
		Version:   cfg.Version,
		URL:       TarballURL(cfg.Registry, cfg.Package, cfg.Version),
		Integrity: cfg.Integrity,
	}

	if cfg.PublicKey != "" {
		info.SignatureURL = info.URL + cfg.SignatureSuffix
	}

	return info
}
