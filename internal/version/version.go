// Package version carries the build version of the lpsleuth binary.
package version

// Version is overridden at build time via
// -ldflags "-X github.com/lpsleuth/lpsleuth/internal/version.Version=...".
var Version = "dev"
