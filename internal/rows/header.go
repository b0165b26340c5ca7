package rows

import "strings"

// headerVocabulary is the fixed word list whose presence marks a header row.
var headerVocabulary = []string{
	"name", "employee", "title", "salary", "pay", "bonus", "employer",
}

// IsHeader decides whether a candidate first row is a column header rather
// than a data row.
//
// This is a heuristic, kept deliberately simple and stable:
//   - positive signal: the concatenated lower-cased row contains at least one
//     vocabulary word;
//   - negative signal: any cell contains a digit.
//
// A row is a header only when the positive signal holds and no cell contains
// a digit. Known failure modes: an agency literally named "Payroll Office"
// in a data row is a false positive candidate (saved only by digits in its
// pay cells), and a header spelled in an unexpected vocabulary is a false
// negative. Downstream behavior depends on matching exactly this rule, so do
// not "improve" it.
func IsHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}

	var joined strings.Builder
	for _, cell := range row {
		for _, r := range cell {
			if r >= '0' && r <= '9' {
				return false
			}
		}
		joined.WriteString(strings.ToLower(cell))
	}

	haystack := joined.String()
	for _, word := range headerVocabulary {
		if strings.Contains(haystack, word) {
			return true
		}
	}
	return false
}
