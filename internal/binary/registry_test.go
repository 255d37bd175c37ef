package binary

import (
	"testing"

	"github.com/ZebulonRouseFrantzich/binwrap/internal/config"
)

func TestTarballURL(t *testing.T) {
	tests := []struct {
		name     string
		registry string
		pkg      string
		version  string
		want     string
	}{
		{
			name:     "unscoped",
			registry: "https://registry.npmjs.org",
			pkg:      "tool-linux-x64-glibc",
			version:  "1.0.0",
			want:     "https://registry.npmjs.org/tool-linux-x64-glibc/-/tool-linux-x64-glibc-1.0.0.tgz",
		},
		{
			name:     "scoped",
			registry: "https://registry.npmjs.org",
			pkg:      "@acme/tool-darwin-arm64",
			version:  "2.3.4",
			want:     "https://registry.npmjs.org/@acme%2Ftool-darwin-arm64/-/tool-darwin-arm64-2.3.4.tgz",
		},
		{
			name:     "trailing slash and path prefix",
			registry: "https://mirror.example.com/npm/",
			pkg:      "tool-win32-x64",
			version:  "1.0.0-rc.1",
			want:     "https://mirror.example.com/npm/tool-win32-x64/-/tool-win32-x64-1.0.0-rc.1.tgz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TarballURL(tt.registry, tt.pkg, tt.version); got != tt.want {
				t.Errorf("TarballURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewDownloadInfo(t *testing.T) {
	cfg := config.Config{
		Registry:        "https://registry.npmjs.org",
		Package:         "tool-linux-x64-musl",
		Version:         "1.0.0",
		Integrity:       "sha512-abc",
		SignatureSuffix: ".asc",
	}

	info := NewDownloadInfo(cfg)
	if info.URL != "https://registry.npmjs.org/tool-linux-x64-musl/-/tool-linux-x64-musl-1.0.0.tgz" {
		t.Errorf("URL = %q", info.URL)
	}
	if info.SignatureURL != "" {
		t.Errorf("SignatureURL = %q, want empty without a public key", info.SignatureURL)
	}
	if info.Integrity != "sha512-abc" {
		t.Errorf("Integrity = %q", info.Integrity)
	}

	cfg.PublicKey = "-----BEGIN PGP PUBLIC KEY BLOCK-----"
	info = NewDownloadInfo(cfg)
	if info.SignatureURL != info.URL+".asc" {
		t.Errorf("SignatureURL = %q", info.SignatureURL)
	}
}
