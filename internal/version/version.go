// Package version holds the build version of kvs.
package version

// Version is overridden at build time with
//
//	-ldflags "-X github.com/heysubinoy/kvs/internal/version.Version=v1.2.3"
var Version = "0.1.0"
