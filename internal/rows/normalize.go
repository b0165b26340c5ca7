// Package rows turns raw CSV rows from disclosure files into validated
// payroll records. It is the only place that indexes into raw cell slices;
// everything downstream works with payledger.PayRecord.
package rows

import (
	"fmt"
	"strings"

	"github.com/kwhalen-data/payledger/internal/money"
	"github.com/kwhalen-data/payledger/pkg/payledger"
)

// RowError reports a row that was skipped. Rows are skipped, never files:
// callers log the reason and continue with the next row.
type RowError struct {
	Line   int
	Reason string
	Err    error
}

func (e *RowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: %s: %v", e.Line, e.Reason, e.Err)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Normalizer maps raw rows onto canonical records under one fixed positional
// convention. The convention is an explicit parameter of the whole run; the
// published files switched column orders between periods, and guessing per
// file would silently mix identities.
type Normalizer struct {
	layout payledger.Layout
}

// NewNormalizer creates a Normalizer for the given layout.
// Panics if the layout is not a known convention; layout validity is checked
// at configuration time, so an invalid value here is a programmer error.
func NewNormalizer(layout payledger.Layout) *Normalizer {
	if !layout.IsValid() {
		panic(fmt.Sprintf("unknown layout %q", layout))
	}
	return &Normalizer{layout: layout}
}

// Normalize converts one raw row into a PayRecord.
// line is the 1-based physical line number of the row, used for provenance
// and error reporting.
//
// Failure modes (all *RowError, all row-local):
//   - fewer than payledger.MinRowColumns columns → structurally invalid
//   - no usable pay cells → skipped with a warning
//   - any retained pay cell that fails monetary parsing → row discarded
func (n *Normalizer) Normalize(row []string, line int) (*payledger.PayRecord, error) {
	if len(row) < payledger.MinRowColumns {
		return nil, &RowError{Line: line, Reason: fmt.Sprintf("structurally invalid: %d columns, need at least %d", len(row), payledger.MinRowColumns)}
	}

	rec := &payledger.PayRecord{LineNumber: line}

	switch n.layout {
	case payledger.LayoutLastFirst:
		rec.LastName = fieldOrUnknown(row[0])
		rec.FirstName = fieldOrUnknown(row[1])
		rec.Employer = fieldOrUnknown(row[2])
		rec.Title = fieldOrUnknown(row[3])
	case payledger.LayoutFirstLast:
		rec.FirstName = fieldOrUnknown(row[0])
		rec.LastName = fieldOrUnknown(row[1])
		rec.Title = fieldOrUnknown(row[2])
		rec.Employer = fieldOrUnknown(row[3])
	}

	// Everything from the first pay column onward is the pay-value list,
	// minus empty cells and cells left dangling by a stray trailing comma.
	var payCells []string
	for _, cell := range row[4:] {
		cell = strings.TrimSpace(cell)
		if cell == "" || strings.HasSuffix(cell, ",") {
			continue
		}
		payCells = append(payCells, cell)
	}

	if len(payCells) == 0 {
		return nil, &RowError{Line: line, Reason: fmt.Sprintf("no valid pay data for %s %s", rec.FirstName, rec.LastName)}
	}

	parse := func(cell string) (float64, error) {
		v, err := money.Parse(cell)
		if err != nil {
			return 0, &RowError{Line: line, Reason: "bad pay value", Err: err}
		}
		return v, nil
	}

	switch {
	case len(payCells) == 1:
		// Single value: total pay only.
		total, err := parse(payCells[0])
		if err != nil {
			return nil, err
		}
		rec.TotalPay = total

	case len(payCells) == 2:
		salary, err := parse(payCells[0])
		if err != nil {
			return nil, err
		}
		total, err := parse(payCells[1])
		if err != nil {
			return nil, err
		}
		rec.Salary = &salary
		rec.TotalPay = total

	default:
		// Three or more: salary, bonus, total; anything further is ignored.
		salary, err := parse(payCells[0])
		if err != nil {
			return nil, err
		}
		bonus, err := parse(payCells[1])
		if err != nil {
			return nil, err
		}
		total, err := parse(payCells[2])
		if err != nil {
			return nil, err
		}
		rec.Salary = &salary
		rec.Bonus = &bonus
		rec.TotalPay = total
	}

	return rec, nil
}

// IsEmpty reports whether every cell of the row is blank. Disclosure files
// routinely end with a run of empty lines.
func IsEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func fieldOrUnknown(cell string) string {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return payledger.UnknownField
	}
	return cell
}
