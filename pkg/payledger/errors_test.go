package payledger_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/kwhalen-data/payledger/pkg/payledger"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, payledger.ExitSuccess},
		{"unknown flag", errors.New("unknown flag --foo"), payledger.ExitUsageError},
		{"unknown shorthand flag", errors.New("unknown shorthand flag: 'x'"), payledger.ExitUsageError},
		{"accepts args", errors.New("accepts 1 arg(s), received 0"), payledger.ExitUsageError},
		{"missing argument", errors.New("missing required argument: <source_dir>"), payledger.ExitUsageError},
		{"required flag", errors.New("required flag \"database\" not set"), payledger.ExitUsageError},
		{"invalid argument", errors.New("invalid argument \"abc\" for \"--port\""), payledger.ExitUsageError},
		{"general error", errors.New("something went wrong"), payledger.ExitGeneralError},
		{"connection failed", payledger.ErrConnectionFailed, payledger.ExitConnectionError},
		{"approval denied", payledger.ErrApprovalDenied, payledger.ExitApprovalDenied},
		{"source dir", payledger.ErrSourceDirUnreadable, payledger.ExitSourceDirError},
		{"invalid config", payledger.ErrInvalidConfig, payledger.ExitConfigError},
		{"unknown layout", payledger.ErrUnknownLayout, payledger.ExitConfigError},
		{"unsupported auth", payledger.ErrUnsupportedAuthMethod, payledger.ExitConfigError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := payledger.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeForError_Wrapped(t *testing.T) {
	err := fmt.Errorf("ingest failed: %w", payledger.ErrSourceDirUnreadable)
	if got := payledger.ExitCodeForError(err); got != payledger.ExitSourceDirError {
		t.Errorf("wrapped source dir error = %d, want %d", got, payledger.ExitSourceDirError)
	}
}

func TestExitCodeForError_PgxConnectionPatterns(t *testing.T) {
	err := errors.New("failed to connect to `host=localhost`: dial error")
	if got := payledger.ExitCodeForError(err); got != payledger.ExitConnectionError {
		t.Errorf("pgx connection pattern = %d, want %d", got, payledger.ExitConnectionError)
	}
}
