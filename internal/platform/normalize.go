package platform

import (
	"strings"
)

// osMap maps GOOS values to the registry's OS names.
var osMap = map[string]string{
	"windows": "win32",
}

// archMap maps GOARCH values to the registry's CPU names.
var archMap = map[string]string{
	"amd64":    "x64",
	"386":      "ia32",
	"ppc64le":  "ppc64",
	"mips64le": "mips64el",
	"mipsle":   "mipsel",
}

// glibcFamilies are distribution families known to ship glibc.
var glibcFamilies = map[string]bool{
	"debian":   true,
	"ubuntu":   true,
	"rhel":     true,
	"centos":   true,
	"rocky":    true,
	"fedora":   true,
	"suse":     true,
	"opensuse": true,
	"arch":     true,
	"manjaro":  true,
	"gentoo":   true,
	"amazon":   true,
}

// normalizeOS converts a GOOS value to the registry OS name. Unknown values
// pass through so they produce a key that simply misses the registry.
func normalizeOS(goos string) string {
	goos = strings.ToLower(strings.TrimSpace(goos))
	if name, ok := osMap[goos]; ok {
		return name
	}
	return goos
}

// normalizeArch converts a GOARCH value to the registry CPU name.
func normalizeArch(goarch string) string {
	goarch = strings.ToLower(strings.TrimSpace(goarch))
	if name, ok := archMap[goarch]; ok {
		return name
	}
	return goarch
}

// libcFromLdd inspects the contents of the ldd script or binary.
func libcFromLdd(content []byte) string {
	s := string(content)
	switch {
	case strings.Contains(s, "musl"):
		return LibcMusl
	case strings.Contains(s, "GNU C Library"), strings.Contains(s, "GLIBC"):
		return LibcGlibc
	default:
		return ""
	}
}

// libcFromDistro maps gopsutil platform/family strings to a libc family.
func libcFromDistro(platform, family string) string {
	platform = strings.ToLower(strings.TrimSpace(platform))
	family = strings.ToLower(strings.TrimSpace(family))

	if platform == "alpine" || family == "alpine" {
		return LibcMusl
	}
	if glibcFamilies[family] || glibcFamilies[platform] {
		return LibcGlibc
	}
	return ""
}
