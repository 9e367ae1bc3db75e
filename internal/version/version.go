// internal/version/version.go
package version

// Version is stamped at build time via -ldflags "-X ...".
var Version = "dev"
