// Package buildinfo exposes build information for the proxystore binaries.
//
// Version, Commit and BuildTime are injected via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/proxystore/internal/infra/buildinfo.Version=v0.3.0"
//
// Values left unset fall back to the module and VCS data embedded by the
// Go toolchain.
package buildinfo
