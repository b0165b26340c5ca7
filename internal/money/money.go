// Package money converts raw pay cells from disclosure files into signed
// numeric amounts.
//
// The published files are inconsistent about formatting: "$68,450.00",
// "68450", "(1,234.56)" for a negative adjustment, sometimes with stray
// whitespace. Parsing goes through shopspring/decimal so "$1,234.56" survives
// the trip exactly before the final conversion to float64.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseError reports a pay cell that could not be converted to a number.
// A ParseError aborts processing of the containing row, never the file.
type ParseError struct {
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not convert %q to a pay amount: %v", e.Token, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse converts a trimmed pay token into a signed amount.
//
// Rules:
//   - A leading currency symbol ($) and thousands separators (,) are stripped.
//   - A value wholly wrapped in parentheses is negative; the parentheses are
//     stripped and the sign inverted.
//   - Anything left that is not numeric yields a *ParseError.
func Parse(token string) (float64, error) {
	s := strings.TrimSpace(token)

	negative := strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")
	if negative {
		s = s[1 : len(s)-1]
		s = strings.TrimSpace(s)
	}

	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if s == "" {
		return 0, &ParseError{Token: token, Err: fmt.Errorf("empty value")}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, &ParseError{Token: token, Err: err}
	}

	if negative {
		d = d.Neg()
	}

	f, _ := d.Float64()
	return f, nil
}
