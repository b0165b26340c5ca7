// Package files provides file-related functionality organized into sub-packages.
//
//   - filesystem: Filesystem abstraction interfaces and implementations (OS and in-memory)
//   - scanner: Disclosure file discovery and metadata extraction
//
// # Usage
//
//	import (
//	    "github.com/kwhalen-data/payledger/internal/files/filesystem"
//	    "github.com/kwhalen-data/payledger/internal/files/scanner"
//	)
//
//	fileScanner := scanner.NewScanner(checksum.New())
//	result, err := fileScanner.ScanDirectory("./raw_data")
package files
