package binary

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/gzip"

	"github.com/ZebulonRouseFrantzich/binwrap/internal/config"
)

// maxArchiveBytes is the upper bound on a decompressed tarball (1 GiB).
// Prevents decompression bombs from exhausting memory.
const maxArchiveBytes = 1 << 30

// Installer downloads the platform package from the registry when neither
// install source is present.
type Installer struct {
	cfg      config.Config
	fetcher  Fetcher
	locator  *Locator
	resolver Resolver
	logger   *log.Logger
}

// InstallerOption configures an Installer during construction.
type InstallerOption func(*Installer)

// WithFetcher overrides the HTTP fetcher.
func WithFetcher(f Fetcher) InstallerOption {
	return func(i *Installer) {
		i.fetcher = f
	}
}

// WithResolver overrides how the installed platform package is found.
func WithResolver(r Resolver) InstallerOption {
	return func(i *Installer) {
		i.resolver = r
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) InstallerOption {
	return func(i *Installer) {
		if l != nil {
			i.logger = l
		}
	}
}

// InstallResult contains information about a completed install
type InstallResult struct {
	Path         string
	URL          string
	Size         int
	Verified     VerificationMethod
	DownloadTime time.Duration
}

// NewInstaller creates an installer for cfg.
func NewInstaller(cfg config.Config, opts ...InstallerOption) *Installer {
	i := &Installer{
		cfg:    cfg,
		logger: discardLogger(),
	}
	for _, opt := range opts {
		opt(i)
	}

	if i.fetcher == nil {
		i.fetcher = NewHTTPFetcher(
			WithUserAgent(cfg.UserAgent),
			WithMaxRedirects(cfg.MaxRedirects),
			WithFetchLogger(i.logger),
		)
	}
	i.locator = NewLocator(cfg, i.resolver)

	return i
}

// Locator returns the locator the installer decides with.
func (i *Installer) Locator() *Locator {
	return i.locator
}

// MaybeInstall installs the binary unless the platform package or a previous
// download is already present. It is safe to call on every start. The
// boolean reports whether a download happened.
func (i *Installer) MaybeInstall(ctx context.Context) (bool, error) {
	if path, ok := i.locator.Installed(); ok {
		i.logger.Debug("platform package installed", "path", path)
		return false, nil
	}

	if i.locator.Downloaded() {
		i.logger.Debug("fallback binary present", "path", i.cfg.FallbackPath)
		return false, nil
	}

	result, err := i.Install(ctx)
	if err != nil {
		return false, err
	}

	i.logger.Info("installed fallback binary",
		"package", i.cfg.Package,
		"version", i.cfg.Version,
		"path", result.Path,
		"verified", result.Verified,
		"elapsed", result.DownloadTime.Round(time.Millisecond),
	)
	return true, nil
}

// Install downloads, verifies, extracts and writes the fallback binary
// unconditionally.
func (i *Installer) Install(ctx context.Context) (*InstallResult, error) {
	startTime := time.Now()
	info := NewDownloadInfo(i.cfg)

	i.logger.Debug("downloading platform package", "package", info.Package, "url", info.URL)

	tarball, err := i.fetcher.Fetch(ctx, info.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", info.URL, err)
	}

	method, err := i.verify(ctx, info, tarball)
	if err != nil {
		return nil, fmt.Errorf("verify %s: %w", info.Package, err)
	}

	archive, err := gunzip(tarball)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", info.URL, err)
	}

	entry := i.cfg.ArchiveEntry()
	content, found, err := ExtractFile(archive, entry)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", entry, err)
	}
	if !found {
		return nil, fmt.Errorf("extract %s: %w", entry, ErrEntryNotFound)
	}

	if err := writeExecutable(i.cfg.FallbackPath, content); err != nil {
		return nil, fmt.Errorf("write %s: %w", i.cfg.FallbackPath, err)
	}

	return &InstallResult{
		Path:         i.cfg.FallbackPath,
		URL:          info.URL,
		Size:         len(content),
		Verified:     method,
		DownloadTime: time.Since(startTime),
	}, nil
}

// verify runs whichever checks the manifest configured. The signature check
// runs last and determines the reported method when both are configured.
func (i *Installer) verify(ctx context.Context, info *DownloadInfo, tarball []byte) (VerificationMethod, error) {
	method := VerificationNone

	verifier, err := NewVerifier(i.cfg.PublicKey)
	if err != nil {
		return method, err
	}

	if info.Integrity != "" {
		if err := verifier.VerifyIntegrity(tarball, info.Integrity); err != nil {
			return method, err
		}
		method = VerificationIntegrity
	}

	if info.SignatureURL != "" {
		signature, err := i.fetcher.Fetch(ctx, info.SignatureURL)
		if err != nil {
			return method, fmt.Errorf("download signature: %w", err)
		}
		if err := verifier.VerifySignature(tarball, signature); err != nil {
			return method, err
		}
		method = VerificationGPG
	}

	return method, nil
}

// gunzip decompresses a gzip stream fully into memory.
func gunzip(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create gzip reader: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(io.LimitReader(zr, maxArchiveBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read gzip stream: %w", err)
	}
	if len(out) > maxArchiveBytes {
		return nil, fmt.Errorf("decompressed archive exceeds %d bytes", maxArchiveBytes)
	}

	return out, nil
}

// writeExecutable writes content to path with mode 0755. The bytes land in a
// temp file in the same directory first and are renamed into place, so a
// reader never observes a partially written binary.
func writeExecutable(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-download-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	// Track whether we need to clean up the temp file
	cleanupNeeded := true
	defer func() {
		tmp.Close()
		if cleanupNeeded {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(0755); err != nil {
		return fmt.Errorf("set executable: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	cleanupNeeded = false
	return nil
}
