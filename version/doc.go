// Package version provides build version information for the speech API.
//
// Version, git commit, branch, and build time are set at compile time
// via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/speechkit/version.Version=1.0.0"
//
// When no version is stamped, the version from the service config is used
// for the API identity endpoint.
package version
