// Package types defines the entity structs, aggregated view structs, and
// standard error values shared by the larder storage backend, services,
// and frontends.
package types
