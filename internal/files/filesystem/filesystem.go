// Package filesystem abstracts the flat directory reads the scanner and
// combine mode perform, so both can be tested against an in-memory
// filesystem without touching disk.
package filesystem

import "io/fs"

// FileInfo is an alias for fs.FileInfo from the standard library.
// This provides compatibility with the fs.FS ecosystem while maintaining
// a stable local type for our abstraction layer.
type FileInfo = fs.FileInfo

// Provider is the set of filesystem operations the ingestion pipeline needs.
// Source directories are flat; no recursive traversal is offered.
type Provider interface {
	// ReadFile reads a specific file at the given path.
	ReadFile(path string) ([]byte, error)

	// ReadDir reads the directory entries at the given path, in directory
	// order for the OS implementation.
	ReadDir(path string) ([]FileInfo, error)

	// Stat returns file information for the given path.
	Stat(path string) (FileInfo, error)
}
