package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/ZebulonRouseFrantzich/binwrap/internal/dist"
	"github.com/ZebulonRouseFrantzich/binwrap/internal/platform"
)

const (
	// EnvPrefix is the prefix for all environment overrides.
	EnvPrefix = "BINWRAP"
	// DefaultMaxRedirects bounds the redirect chain followed by the fetcher.
	DefaultMaxRedirects = 10
	// DefaultLogLevel keeps the wrapper quiet unless something goes wrong.
	DefaultLogLevel = "warn"
)

var (
	//nolint:gochecknoglobals // Test seam for os.Executable().
	osExecutable = os.Executable

	//nolint:gochecknoglobals // Test seam for filepath.EvalSymlinks().
	evalSymlinks = filepath.EvalSymlinks
)

// LoadOptions defines explicit configuration loading inputs. Zero values
// select the production defaults.
type LoadOptions struct {
	// Manifest overrides the embedded distribution manifest.
	Manifest *dist.Manifest
	// Detector overrides host platform detection.
	Detector platform.Detector
	// WrapperDir overrides the directory the wrapper is installed in.
	WrapperDir string
}

// Config is the resolved configuration for one process invocation.
type Config struct {
	BinaryName      string
	Version         string
	Registry        string
	Platform        platform.Info
	Key             platform.Key
	Package         string
	Integrity       string
	PublicKey       string
	SignatureSuffix string
	WrapperDir      string
	FallbackPath    string
	MaxRedirects    int
	UserAgent       string
	LogLevel        string
}

// PackagedBinary is the binary's path relative to the platform package root.
func (c Config) PackagedBinary() string {
	return path.Join("bin", c.BinaryName)
}

// ArchiveEntry is the binary's path inside the registry tarball.
func (c Config) ArchiveEntry() string {
	return path.Join("package", "bin", c.BinaryName)
}

// Load resolves the configuration. An unsupported platform is reported as a
// *dist.UnsupportedPlatformError before any other work is done.
func Load(ctx context.Context, opts LoadOptions) (Config, error) {
	select {
	case <-ctx.Done():
		return Config{}, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	manifest := opts.Manifest
	if manifest == nil {
		m, err := dist.Default()
		if err != nil {
			return Config{}, fmt.Errorf("load manifest: %w", err)
		}
		manifest = m
	}

	detector := opts.Detector
	if detector == nil {
		detector = platform.NewDetector()
	}

	info, err := detector.Detect(ctx)
	if err != nil {
		return Config{}, fmt.Errorf("detect platform: %w", err)
	}

	key := platform.KeyOf(info)
	pkg, err := manifest.PackageFor(key)
	if err != nil {
		return Config{}, err
	}

	v := newViper(manifest)

	registry, err := normalizeRegistry(v.GetString("registry"))
	if err != nil {
		return Config{}, err
	}

	maxRedirects, err := parseMaxRedirects(v.GetString("max_redirects"))
	if err != nil {
		return Config{}, err
	}

	wrapperDir := opts.WrapperDir
	if wrapperDir == "" {
		wrapperDir = v.GetString("wrapper_dir")
	}
	if wrapperDir == "" {
		wrapperDir, err = executableDir()
		if err != nil {
			return Config{}, err
		}
	}

	binaryName := manifest.BinaryFileName(info.OS)

	return Config{
		BinaryName:      binaryName,
		Version:         manifest.Version,
		Registry:        registry,
		Platform:        *info,
		Key:             key,
		Package:         pkg,
		Integrity:       manifest.IntegrityFor(pkg),
		PublicKey:       manifest.Signing.PublicKey,
		SignatureSuffix: manifest.Signing.SignatureSuffix,
		WrapperDir:      wrapperDir,
		FallbackPath:    filepath.Join(wrapperDir, binaryName),
		MaxRedirects:    maxRedirects,
		UserAgent:       v.GetString("user_agent"),
		LogLevel:        strings.ToLower(v.GetString("log_level")),
	}, nil
}

func newViper(manifest *dist.Manifest) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("registry", manifest.Registry)
	v.SetDefault("max_redirects", DefaultMaxRedirects)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("user_agent", "binwrap/"+manifest.Version)
	v.SetDefault("wrapper_dir", "")

	// BINWRAP_REGISTRY wins over npm's own registry setting.
	_ = v.BindEnv("registry", EnvPrefix+"_REGISTRY", "npm_config_registry")

	return v
}

// parseMaxRedirects accepts only a non-negative decimal integer.
func parseMaxRedirects(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid max_redirects %q: not an integer", raw)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid max_redirects %q: must not be negative", raw)
	}
	return n, nil
}

func normalizeRegistry(raw string) (string, error) {
	registry := strings.TrimRight(strings.TrimSpace(raw), "/")

	u, err := url.Parse(registry)
	if err != nil || u.Host == "" || (u.Scheme != "https" && u.Scheme != "http") {
		return "", fmt.Errorf("invalid registry URL %q", raw)
	}
	return registry, nil
}

// executableDir returns the directory of the running wrapper with symlinks
// resolved; package managers usually expose the wrapper through a bin link.
func executableDir() (string, error) {
	exe, err := osExecutable()
	if err != nil {
		return "", fmt.Errorf("resolve executable path: %w", err)
	}

	resolved, err := evalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("resolve executable symlinks: %w", err)
	}

	return filepath.Dir(resolved), nil
}
