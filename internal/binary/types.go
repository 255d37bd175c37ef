package binary

// Origin identifies where a resolved binary comes from.
type Origin int

const (
	// OriginInstalledPackage is the optional platform package installed by
	// the package manager.
	OriginInstalledPackage Origin = iota
	// OriginFallbackCache is the file downloaded beside the wrapper.
	OriginFallbackCache
)

// String returns the string representation of the origin
func (o Origin) String() string {
	switch o {
	case OriginInstalledPackage:
		return "installed-package"
	case OriginFallbackCache:
		return "fallback-cache"
	default:
		return "unknown"
	}
}

// Location is a resolved binary path and where it came from.
type Location struct {
	Path   string
	Origin Origin
}

// ArchiveEntry describes one tar member while walking an archive.
type ArchiveEntry struct {
	Name       string
	Size       int64
	DataOffset int64
}

// VerificationMethod indicates how a tarball was verified
type VerificationMethod int

const (
	// VerificationNone means the manifest configured no verification.
	VerificationNone VerificationMethod = iota
	// VerificationIntegrity means an SRI digest was checked.
	VerificationIntegrity
	// VerificationGPG means an OpenPGP detached signature was checked.
	VerificationGPG
)

// String returns the string representation of the verification method
func (v VerificationMethod) String() string {
	switch v {
	case VerificationNone:
		return "None"
	case VerificationIntegrity:
		return "Integrity"
	case VerificationGPG:
		return "GPG"
	default:
		return "Unknown"
	}
}
