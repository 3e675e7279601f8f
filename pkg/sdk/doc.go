// Package resources is the Go client for the gem5 resources API.
//
// The client wraps the HTTP surface: id+version resolution, batch
// resolution, full-text search, filter options, and reverse-dependency
// lookup. All calls take a context and return typed errors; use
// errors.Is with ErrNotFound and ErrInvalidRequest to branch on the
// failure kind.
package resources
