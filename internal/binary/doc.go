// Package binary locates, downloads and installs the platform-specific
// binary that the wrapper launches.
//
// # Install sources
//
// The binary can come from two places, checked in this order:
//
//  1. The platform package installed by the package manager as an optional
//     dependency, found by walking node_modules directories upward from the
//     wrapper (Locator.Installed).
//  2. The fallback file written beside the wrapper by a previous download
//     (Locator.Downloaded).
//
// When neither exists the Installer downloads the platform package tarball
// straight from the registry, decompresses it, pulls package/bin/<binary>
// out of the tar stream and writes it to the fallback path with mode 0755.
//
// # Architecture
//
//   - Installer: MaybeInstall/Install orchestration
//   - HTTPFetcher: GET with an explicit, bounded redirect loop
//   - ExtractFile: single-entry reader over raw tar bytes
//   - Locator: side-effect free presence checks
//   - Verifier: optional SRI integrity and OpenPGP signature checks
package binary
