// Package larder holds module-wide metadata.
package larder

// Version is the module version, bumped on release.
const Version = "v0.1.0"
