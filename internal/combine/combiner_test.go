package combine_test

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kwhalen-data/payledger/internal/checksum"
	"github.com/kwhalen-data/payledger/internal/combine"
	"github.com/kwhalen-data/payledger/internal/files/filesystem"
	"github.com/kwhalen-data/payledger/internal/files/scanner"
)

type captureLogger struct {
	warnings []string
}

func (l *captureLogger) Verbose(format string, args ...interface{}) {}
func (l *captureLogger) Info(format string, args ...interface{})    {}
func (l *captureLogger) Warn(format string, args ...interface{}) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}
func (l *captureLogger) Error(format string, args ...interface{}) {}

func newCombiner(fs *filesystem.MemoryFileSystem) (*combine.Combiner, *captureLogger) {
	logger := &captureLogger{}
	sc := scanner.NewScannerWithFS(checksum.New(), fs)
	return combine.NewCombinerWithFS(sc, logger, fs), logger
}

func TestNewCombiner_PanicsOnNilDependencies(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/data")
	sc := scanner.NewScannerWithFS(checksum.New(), fs)
	logger := &captureLogger{}

	assertPanics := func(name string, fn func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Errorf("expected panic for nil %s", name)
			}
		}()
		fn()
	}

	assertPanics("scanner", func() { combine.NewCombinerWithFS(nil, logger, fs) })
	assertPanics("logger", func() { combine.NewCombinerWithFS(sc, nil, fs) })
	assertPanics("fsProvider", func() { combine.NewCombinerWithFS(sc, logger, nil) })
}

func TestBuild_KeysFilesByDateToken(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/data")
	fs.AddFile("pay 3.2021.csv", []byte(
		"doe,jane,treasury,clerk,\"$50,000.00\",\"$1,200.00\"\n"+
			"smith,john,parks,ranger,\"$42,000.00\",$0.00\n"))
	fs.AddFile("pay 12.2022.csv", []byte(
		"brown,pat,treasury,analyst,\"$61,000.00\",$500.00\n"))

	c, _ := newCombiner(fs)
	doc, err := c.Build("/data")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(doc) != 2 {
		t.Fatalf("expected 2 date keys, got %d: %v", len(doc), doc)
	}
	rows, ok := doc["3.2021"]
	if !ok {
		t.Fatalf("missing key 3.2021, have %v", keys(doc))
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows under 3.2021, got %d", len(rows))
	}

	first := rows[0]
	if first["Last Name"] != "Doe" || first["First Name"] != "Jane" {
		t.Errorf("name cells not title-cased: %v", first)
	}
	if first["Agency"] != "Treasury" || first["Job Title"] != "Clerk" {
		t.Errorf("agency/title cells wrong: %v", first)
	}
	if first["Total Compensation"] != "50000.00" {
		t.Errorf("Total Compensation = %q, want 50000.00", first["Total Compensation"])
	}
	if first["Bonuses"] != "1200.00" {
		t.Errorf("Bonuses = %q, want 1200.00", first["Bonuses"])
	}

	if _, ok := doc["12.2022"]; !ok {
		t.Errorf("missing key 12.2022, have %v", keys(doc))
	}
}

func TestBuild_UndatedFileSkippedWithWarning(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/data")
	fs.AddFile("pay archive.csv", []byte("doe,jane,treasury,clerk,$100.00\n"))

	c, logger := newCombiner(fs)
	doc, err := c.Build("/data")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(doc) != 0 {
		t.Errorf("expected empty document, got %v", doc)
	}

	found := false
	for _, w := range logger.warnings {
		if strings.Contains(w, "No valid date found") && strings.Contains(w, "pay archive.csv") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a no-date warning, got %v", logger.warnings)
	}
}

func TestBuild_ShortRowsProducePartialObjects(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/data")
	fs.AddFile("pay 7.2020.csv", []byte("doe,jane,treasury\n"))

	c, _ := newCombiner(fs)
	doc, err := c.Build("/data")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	rows := doc["7.2020"]
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if len(row) != 3 {
		t.Errorf("expected 3 populated labels, got %v", row)
	}
	if _, ok := row["Job Title"]; ok {
		t.Errorf("short row must not populate Job Title: %v", row)
	}
}

func TestBuild_HeaderRowsAreKept(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/data")
	fs.AddFile("pay 7.2020.csv", []byte(
		"Last Name,First Name,Agency,Job Title,Total Pay\n"+
			"doe,jane,treasury,clerk,$100.00\n"))

	c, _ := newCombiner(fs)
	doc, err := c.Build("/data")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if got := len(doc["7.2020"]); got != 2 {
		t.Errorf("expected 2 rows (header kept), got %d", got)
	}
}

func TestWrite_ProducesIndentedJSON(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/data")
	fs.AddFile("pay 3.2021.csv", []byte("doe,jane,treasury,clerk,\"$50,000.00\"\n"))

	c, _ := newCombiner(fs)
	outPath := filepath.Join(t.TempDir(), "processed.json")
	if err := c.Write("/data", outPath); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	var doc map[string][]map[string]string
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if doc["3.2021"][0]["Total Compensation"] != "50000.00" {
		t.Errorf("unexpected document content: %v", doc)
	}
	if !strings.Contains(string(data), "\n    ") {
		t.Error("output should be indented")
	}
}

func keys(doc combine.Document) []string {
	var out []string
	for k := range doc {
		out = append(out, k)
	}
	return out
}
