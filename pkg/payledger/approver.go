package payledger

import "context"

// Approver handles user interaction for approval workflows. Every ingest run
// starts by clearing the Person, Salary and DataFiles tables, which is
// destructive; the approver gates that reset.
//
// Implementations:
//   - ForcedApprover: Shows countdown and automatically approves
//   - InteractiveApprover: Prompts user to type the database name for confirmation
type Approver interface {
	// RequestApproval prompts for confirmation before truncating the payroll
	// tables in dbName.
	//
	// Returns:
	//   - bool: true if approved, false if denied
	//   - error: Any error that occurred during the approval process
	RequestApproval(ctx context.Context, dbName string) (bool, error)
}
