// Package filedate derives the disclosure date a file represents from its
// name. The portal never used one convention for long: "03-15-2024",
// "03152024", "3.2024" and "03-2024" all appear in the archive, so extraction
// tries a fixed list of patterns in order and the first substring match wins.
// No attempt is made to find a "best" match or to disambiguate names that
// happen to contain several date-like runs.
package filedate

import (
	"fmt"
	"regexp"
	"time"
)

// Match is a successfully extracted disclosure date.
type Match struct {
	// Date is the calendar date. Month-year patterns default the day to the 1st.
	Date time.Time

	// Token is the raw matched substring (e.g. "3.2024"), used by the
	// combine output mode as its document key.
	Token string
}

type pattern struct {
	re     *regexp.Regexp
	layout string
}

// Patterns are tried in order; earlier conventions are more specific.
// mm-dd-yyyy must precede mm-yyyy or the month-year form would claim the
// first two groups of a full date.
var patterns = []pattern{
	{regexp.MustCompile(`\d{1,2}-\d{1,2}-\d{4}`), "1-2-2006"},
	{regexp.MustCompile(`\d{8}`), "01022006"},
	{regexp.MustCompile(`\d{1,2}\.\d{1,2}\.\d{4}`), "1.2.2006"},
	{regexp.MustCompile(`\d{1,2}-\d{4}`), "1-2006"},
	{regexp.MustCompile(`\d{1,2}\.\d{4}`), "1.2006"},
}

// Extract scans name for a date token.
//
// Returns:
//   - (*Match, nil) when a pattern matched and parsed as a valid date
//   - (nil, nil) when no pattern matched at all
//   - (nil, error) when a pattern matched but the digits are not a valid
//     calendar date (e.g. month 13); callers log this as a warning and treat
//     the file's date as unknown, never aborting the run
func Extract(name string) (*Match, error) {
	for _, p := range patterns {
		token := p.re.FindString(name)
		if token == "" {
			continue
		}

		date, err := time.Parse(p.layout, token)
		if err != nil {
			return nil, fmt.Errorf("file %q: token %q is not a valid %s date", name, token, p.layout)
		}

		return &Match{Date: date, Token: token}, nil
	}

	return nil, nil
}
