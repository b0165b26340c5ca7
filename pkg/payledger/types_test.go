package payledger_test

import (
	"errors"
	"testing"
	"time"

	"github.com/kwhalen-data/payledger/pkg/payledger"
)

func validConfig() payledger.IngestConfig {
	return payledger.IngestConfig{
		SourceDir:        "./raw_data",
		DatabaseName:     "payroll",
		ConnectionString: "postgresql://postgres@localhost:5432/payroll",
		Layout:           payledger.LayoutLastFirst,
	}
}

func TestIngestConfigValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got: %v", err)
	}
}

func TestIngestConfigValidate_MissingFields(t *testing.T) {
	cfg := payledger.IngestConfig{Layout: payledger.LayoutFirstLast}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for empty config")
	}
	if !errors.Is(err, payledger.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got: %v", err)
	}
}

func TestIngestConfigValidate_BadLayout(t *testing.T) {
	cfg := validConfig()
	cfg.Layout = payledger.Layout("first-middle-last")
	err := cfg.Validate()
	if !errors.Is(err, payledger.ErrUnknownLayout) {
		t.Errorf("expected ErrUnknownLayout, got: %v", err)
	}
}

func TestIngestConfigValidate_NegativeTimeout(t *testing.T) {
	cfg := validConfig()
	cfg.Timeout = -1 * time.Second
	if err := cfg.Validate(); !errors.Is(err, payledger.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got: %v", err)
	}
}

func TestLayoutIsValid(t *testing.T) {
	tests := []struct {
		layout payledger.Layout
		want   bool
	}{
		{payledger.LayoutLastFirst, true},
		{payledger.LayoutFirstLast, true},
		{payledger.Layout(""), false},
		{payledger.Layout("First-Last"), false},
	}
	for _, tt := range tests {
		if got := tt.layout.IsValid(); got != tt.want {
			t.Errorf("Layout(%q).IsValid() = %v, want %v", tt.layout, got, tt.want)
		}
	}
}

func TestAuthMethodString(t *testing.T) {
	tests := []struct {
		method payledger.AuthMethod
		want   string
	}{
		{payledger.AuthMethodStandard, "Standard"},
		{payledger.AuthMethodAWSIAM, "AWS IAM"},
		{payledger.AuthMethodGoogleIAM, "Google IAM"},
		{payledger.AuthMethodAzureEntraID, "Azure Entra ID"},
		{payledger.AuthMethod(99), "Unknown(99)"},
	}
	for _, tt := range tests {
		if got := tt.method.String(); got != tt.want {
			t.Errorf("AuthMethod.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestRunSummaryRowsPerSecond(t *testing.T) {
	s := payledger.RunSummary{Rows: 500, Elapsed: 2 * time.Second}
	if got := s.RowsPerSecond(); got != 250 {
		t.Errorf("RowsPerSecond() = %v, want 250", got)
	}

	zero := payledger.RunSummary{Rows: 500}
	if got := zero.RowsPerSecond(); got != 0 {
		t.Errorf("RowsPerSecond() with zero elapsed = %v, want 0", got)
	}
}
