// Package scanner provides disclosure file discovery and metadata extraction.
//
// The scanner is responsible for:
//   - Enumerating .csv files directly inside the source directory
//   - Extracting per-file metadata (name, size, timestamps, checksums)
//   - Deriving each file's disclosure date from its name
//
// It is filesystem-agnostic through the filesystem.Provider interface,
// enabling both production use with the OS filesystem and testing with
// in-memory filesystems.
package scanner

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kwhalen-data/payledger/internal/checksum"
	"github.com/kwhalen-data/payledger/internal/filedate"
	"github.com/kwhalen-data/payledger/internal/files/filesystem"
	"github.com/kwhalen-data/payledger/pkg/payledger"
)

// Scanner discovers disclosure files in a flat source directory.
// Scanner is safe for concurrent use by multiple goroutines as long as the
// provided calculator and fsProvider are also thread-safe.
type Scanner struct {
	calculator checksum.Calculator
	fsProvider filesystem.Provider
}

// NewScanner creates a new file scanner with the given checksum calculator.
// Uses the OS filesystem by default.
// Panics if calculator is nil.
func NewScanner(calculator checksum.Calculator) *Scanner {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	return &Scanner{
		calculator: calculator,
		fsProvider: filesystem.NewOSFileSystem(),
	}
}

// NewScannerWithFS creates a new file scanner with a custom filesystem
// provider. This is primarily useful for testing with in-memory filesystems.
// Panics if calculator or fsProvider is nil.
func NewScannerWithFS(calculator checksum.Calculator, fsProvider filesystem.Provider) *Scanner {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{
		calculator: calculator,
		fsProvider: fsProvider,
	}
}

// ScanDirectory enumerates the .csv files directly inside sourceDir.
// Subdirectories and files with other extensions are ignored. Files are
// returned in enumeration order; callers must not assume the order is
// chronological.
//
// A missing or unreadable directory is the one fatal condition: the error
// wraps payledger.ErrSourceDirUnreadable. Individual unreadable files are
// passed over with a warning in the result.
func (s *Scanner) ScanDirectory(sourceDir string) (payledger.ScanResult, error) {
	entries, err := s.fsProvider.ReadDir(sourceDir)
	if err != nil {
		return payledger.ScanResult{}, fmt.Errorf("cannot read %s: %v: %w", sourceDir, err, payledger.ErrSourceDirUnreadable)
	}

	var result payledger.ScanResult
	for _, info := range entries {
		if info.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(info.Name()), payledger.SourceExtension) {
			continue
		}

		file, warning := s.processFile(sourceDir, info)
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		if file != nil {
			result.Files = append(result.Files, *file)
		}
	}

	return result, nil
}

// processFile reads one directory entry and builds its metadata.
// Returns (nil, warning) for unreadable files and (file, warning) when the
// file is usable but its name held an invalid date token.
func (s *Scanner) processFile(sourceDir string, info filesystem.FileInfo) (*payledger.SourceFile, string) {
	path := filepath.Join(sourceDir, info.Name())

	content, err := s.fsProvider.ReadFile(path)
	if err != nil {
		return nil, fmt.Sprintf("skipping unreadable file %s: %v", info.Name(), err)
	}

	file := &payledger.SourceFile{
		Path:        filepath.ToSlash(path),
		Name:        info.Name(),
		SizeBytes:   info.Size(),
		ModifiedAt:  info.ModTime(),
		Checksum:    s.calculator.CalculateNormalized(content),
		ChecksumRaw: s.calculator.CalculateRaw(content),
	}

	match, err := filedate.Extract(info.Name())
	switch {
	case err != nil:
		// Date-like token that is not a real date; the file still loads,
		// its record date stays unknown.
		return file, fmt.Sprintf("date extraction: %v", err)
	case match != nil:
		date := match.Date
		file.RecordDate = &date
		file.DateToken = match.Token
	}

	return file, ""
}
