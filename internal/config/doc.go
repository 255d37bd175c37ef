// Package config builds the single, immutable configuration value that every
// other component of the wrapper receives as a parameter.
//
// # Sources
//
// Configuration is assembled from three sources, in increasing precedence:
//
//  1. The distribution manifest embedded at build time (see package dist):
//     binary name, pinned version, registry URL, platform package table.
//  2. Built-in defaults (redirect limit, log level, user agent).
//  3. Environment variables read through viper with the BINWRAP_ prefix:
//     BINWRAP_REGISTRY, BINWRAP_MAX_REDIRECTS, BINWRAP_LOG_LEVEL,
//     BINWRAP_WRAPPER_DIR and BINWRAP_USER_AGENT. The registry also honours
//     npm's own npm_config_registry so mirrors configured for npm apply.
//
// # Failure ordering
//
// Load resolves the platform package before touching anything else. An
// unsupported platform therefore fails before any network request or
// filesystem write is attempted.
package config
