package rows

import "testing"

func TestIsHeader(t *testing.T) {
	tests := []struct {
		name string
		row  []string
		want bool
	}{
		{
			"classic header",
			[]string{"First Name", "Last Name", "Title", "Employer", "Salary"},
			true,
		},
		{
			"agency header",
			[]string{"Last Name", "First Name", "Agency", "Job Title", "Total Compensation", "Bonuses"},
			true,
		},
		{
			"data row with digits",
			[]string{"Doe", "Jane", "Acme", "Clerk", "$50,000"},
			false,
		},
		{
			"vocabulary word but digit in one cell",
			[]string{"Employee", "Name", "Title", "Employer", "Pay 2024"},
			false,
		},
		{
			"no vocabulary words",
			[]string{"a", "b", "c", "d", "e"},
			false,
		},
		{
			"case insensitive",
			[]string{"EMPLOYEE", "NAME", "JOB TITLE", "EMPLOYER", "TOTAL PAY"},
			true,
		},
		{
			"empty row",
			nil,
			false,
		},
		{
			// Documented false positive: a digit-free data row whose employer
			// contains a vocabulary word is classified as a header.
			"digit-free data row with vocabulary substring",
			[]string{"Doe", "Jane", "Payroll Office", "Clerk", "pending"},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsHeader(tt.row); got != tt.want {
				t.Errorf("IsHeader(%v) = %v, want %v", tt.row, got, tt.want)
			}
		})
	}
}
