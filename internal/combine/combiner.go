// Package combine implements the secondary output mode: instead of loading
// the database, it folds every dated disclosure file in a directory into one
// JSON document keyed by the file's raw date token.
package combine

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kwhalen-data/payledger/internal/files/filesystem"
	"github.com/kwhalen-data/payledger/internal/rows"
	"github.com/kwhalen-data/payledger/internal/textenc"
	"github.com/kwhalen-data/payledger/pkg/payledger"
)

// labels are the fixed column names of the combined document. Rows shorter
// than the label list produce partial objects; extra cells are dropped.
var labels = []string{
	"Last Name", "First Name", "Agency", "Job Title",
	"Total Compensation", "Bonuses",
}

var titleCaser = cases.Title(language.English)

// Row is one cleaned source row keyed by the fixed labels.
type Row map[string]string

// Document maps a file's date token (e.g. "3.2021") to its cleaned rows.
type Document map[string][]Row

// Combiner builds combined JSON documents from a source directory.
// Thread-Safety: safe for concurrent use as long as the injected dependencies
// are.
type Combiner struct {
	scanner    payledger.FileScanner
	fsProvider filesystem.Provider
	logger     payledger.Logger
}

// NewCombiner creates a Combiner reading from the operating system's file
// system. Panics if any dependency is nil.
func NewCombiner(scanner payledger.FileScanner, logger payledger.Logger) *Combiner {
	return NewCombinerWithFS(scanner, logger, filesystem.NewOSFileSystem())
}

// NewCombinerWithFS creates a Combiner reading through the given file system
// provider. Used by tests.
func NewCombinerWithFS(scanner payledger.FileScanner, logger payledger.Logger, fsProvider filesystem.Provider) *Combiner {
	if scanner == nil {
		panic("scanner cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Combiner{scanner: scanner, fsProvider: fsProvider, logger: logger}
}

// Build scans sourceDir and folds every dated file into one Document.
// Files without a date token in their name are skipped with a warning, as are
// files that cannot be read or parsed; neither aborts the build.
func (c *Combiner) Build(sourceDir string) (Document, error) {
	scan, err := c.scanner.ScanDirectory(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory %q: %w", sourceDir, err)
	}
	for _, warning := range scan.Warnings {
		c.logger.Warn("%s", warning)
	}

	doc := Document{}
	for _, file := range scan.Files {
		if file.DateToken == "" {
			c.logger.Warn("No valid date found in filename %q", file.Name)
			continue
		}

		fileRows, err := c.readRows(file)
		if err != nil {
			c.logger.Warn("Skipping %s: %v", file.Name, err)
			continue
		}
		doc[file.DateToken] = fileRows
		c.logger.Verbose("%s: %d rows under key %q", file.Name, len(fileRows), file.DateToken)
	}
	return doc, nil
}

// Write builds the document for sourceDir and writes it to outPath as
// indented JSON.
func (c *Combiner) Write(sourceDir, outPath string) error {
	doc, err := c.Build(sourceDir)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode combined document: %w", err)
	}

	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %q: %w", outPath, err)
	}
	c.logger.Info("✓ Combined %d file(s) into %s", len(doc), outPath)
	return nil
}

func (c *Combiner) readRows(file payledger.SourceFile) ([]Row, error) {
	raw, err := c.fsProvider.ReadFile(file.Path)
	if err != nil {
		return nil, fmt.Errorf("read failed: %w", err)
	}
	decoded, _, err := textenc.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("encoding detection failed: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	// Unlike ingestion, the combined document keeps header rows; consumers
	// filter on the label values. Only fully blank rows are dropped.
	var out []Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed CSV: %w", err)
		}
		if rows.IsEmpty(record) {
			continue
		}
		out = append(out, cleanRow(record))
	}
	return out, nil
}

// cleanRow trims and title-cases each cell and strips currency formatting
// from dollar amounts, then zips the cells onto the fixed labels.
func cleanRow(record []string) Row {
	row := Row{}
	for i, cell := range record {
		if i >= len(labels) {
			break
		}
		cell = titleCaser.String(strings.TrimSpace(cell))
		if strings.HasPrefix(cell, "$") {
			cell = strings.ReplaceAll(cell[1:], ",", "")
		}
		row[labels[i]] = cell
	}
	return row
}
