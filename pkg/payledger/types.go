package payledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Layout identifies the positional column convention of a disclosure file's
// identity cells. The published files changed their column order over time,
// so the convention is an explicit, versioned parameter of a run rather than
// something guessed per file.
type Layout string

const (
	// LayoutLastFirst is the older convention: last name, first name,
	// employer (agency), job title, pay columns.
	LayoutLastFirst Layout = "last-first"

	// LayoutFirstLast is the newer convention: first name, last name,
	// job title, employer, pay columns.
	LayoutFirstLast Layout = "first-last"
)

// IsValid returns true if the Layout is a known convention.
func (l Layout) IsValid() bool {
	return l == LayoutLastFirst || l == LayoutFirstLast
}

// AuthMethod represents the type of database authentication to use.
type AuthMethod int

const (
	AuthMethodStandard     AuthMethod = iota // Username/Password
	AuthMethodAWSIAM                         // AWS IAM Database Authentication
	AuthMethodGoogleIAM                      // Google Cloud SQL IAM
	AuthMethodAzureEntraID                   // Azure Active Directory (Entra ID)
)

// String returns a human-readable string representation of the AuthMethod.
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodStandard:
		return "Standard"
	case AuthMethodAWSIAM:
		return "AWS IAM"
	case AuthMethodGoogleIAM:
		return "Google IAM"
	case AuthMethodAzureEntraID:
		return "Azure Entra ID"
	default:
		return fmt.Sprintf("Unknown(%d)", a)
	}
}

// IsValid returns true if the AuthMethod is a valid, defined value.
func (a AuthMethod) IsValid() bool {
	return a >= AuthMethodStandard && a <= AuthMethodAzureEntraID
}

// ConnectionConfig represents parsed connection parameters.
type ConnectionConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string

	// AuthMethod indicates the authentication mechanism to use
	AuthMethod AuthMethod

	// Additional connection parameters
	AppName          string
	ConnectTimeout   time.Duration
	AdditionalParams map[string]string

	// Azure Entra ID authentication parameters (used when AuthMethod is
	// AuthMethodAzureEntraID). If all three are provided, Service Principal
	// authentication is used; otherwise the DefaultAzureCredential chain.
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string

	// AWSRegion is required for AWS IAM authentication.
	AWSRegion string

	// GoogleInstance is the Cloud SQL instance connection name
	// (project:region:instance), required for Google IAM authentication.
	GoogleInstance string
}

// IngestConfig contains all parameters needed for one ingestion run.
type IngestConfig struct {
	// SourceDir is the directory containing the disclosure CSV files.
	SourceDir string

	// DatabaseName is the target database name.
	DatabaseName string

	// ConnectionString is the PostgreSQL connection string for the target.
	ConnectionString string

	// Layout is the positional column convention to apply to every file in
	// the run.
	Layout Layout

	// Force bypasses interactive approval of the table reset.
	Force bool

	// Timeout is the global timeout for the entire run.
	Timeout time.Duration

	// Verbose enables detailed logging.
	Verbose bool

	// AuthMethod indicates the authentication mechanism to use.
	AuthMethod AuthMethod

	// Azure Entra ID authentication parameters.
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string

	// AWSRegion is required for AWS IAM authentication.
	AWSRegion string

	// GoogleInstance is the Cloud SQL instance connection name
	// (project:region:instance), required for Google IAM authentication.
	GoogleInstance string
}

// Validate checks if the IngestConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *IngestConfig) Validate() error {
	var errs []error

	if c.SourceDir == "" {
		errs = append(errs, fmt.Errorf("SourceDir is required: %w", ErrInvalidConfig))
	}

	if c.DatabaseName == "" {
		errs = append(errs, fmt.Errorf("DatabaseName is required: %w", ErrInvalidConfig))
	}

	if c.ConnectionString == "" {
		errs = append(errs, fmt.Errorf("ConnectionString is required: %w", ErrInvalidConfig))
	}

	if !c.Layout.IsValid() {
		errs = append(errs, fmt.Errorf("layout %q: %w", c.Layout, ErrUnknownLayout))
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// SourceFile represents one discovered disclosure file.
// All paths use Unix-style forward slashes for cross-platform consistency.
type SourceFile struct {
	// Path is the absolute or source-relative path used to open the file.
	Path string

	// Name is the bare file name, recorded as provenance on every Salary row.
	Name string

	// SizeBytes is the file size in bytes.
	SizeBytes int64

	// ModifiedAt is the last modification time.
	ModifiedAt time.Time

	// Checksum is the SHA-256 of normalized content (BOM- and
	// line-ending-insensitive), used for duplicate detection within a run.
	Checksum string

	// ChecksumRaw is the SHA-256 of the raw bytes.
	ChecksumRaw string

	// RecordDate is the disclosure date derived from the file name,
	// nil when no date pattern matched or the match was not a valid date.
	RecordDate *time.Time

	// DateToken is the raw matched date substring (e.g. "3.2024"), used by
	// the combine output mode. Empty when no pattern matched.
	DateToken string
}

// ScanResult contains the results of scanning a source directory.
type ScanResult struct {
	Files []SourceFile

	// Warnings describe files that were passed over during scanning
	// (unreadable entries, date tokens that failed to parse). They are
	// logged by the orchestrator; none of them abort the run.
	Warnings []string
}

// FileScanner defines the interface for discovering disclosure files.
// Implementations must be safe for concurrent use by multiple goroutines.
type FileScanner interface {
	// ScanDirectory enumerates the .csv files directly inside sourceDir and
	// returns their metadata. A missing or unreadable directory yields an
	// error wrapping ErrSourceDirUnreadable.
	ScanDirectory(sourceDir string) (ScanResult, error)
}

// PayRecord is a normalized payroll observation produced by the row
// normalizer. Downstream components never index into raw CSV rows; they only
// see this validated form.
type PayRecord struct {
	FirstName string
	LastName  string
	Title     string
	Employer  string

	// Salary and Bonus are only populated when the source row supplied
	// enough pay cells to distinguish them.
	Salary *float64
	Bonus  *float64

	// TotalPay is always populated.
	TotalPay float64

	// LineNumber is the 1-based physical line of the source row, recorded as
	// provenance when known.
	LineNumber int
}

// FileReport is the audit record for one processed file, persisted into the
// DataFiles ledger and echoed into the run summary.
type FileReport struct {
	FileName    string
	Rows        int
	RowsSkipped int
	Checksum    string
	RecordDate  *time.Time
	HasHeader   bool
	Elapsed     time.Duration
}

// RunSummary aggregates one complete ingestion run.
type RunSummary struct {
	RunID        uuid.UUID
	Files        int
	FilesSkipped int
	Rows         int
	RowsSkipped  int
	People       int64
	Salaries     int64
	Elapsed      time.Duration
}

// RowsPerSecond returns the aggregate throughput of the run.
func (s *RunSummary) RowsPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Rows) / s.Elapsed.Seconds()
}
