package db

import (
	"context"
	"testing"
	"time"

	"github.com/kwhalen-data/payledger/pkg/payledger"
)

// TestStandardConnector_RespectsContextTimeout verifies that the connector
// gives up once the context deadline passes instead of burning through the
// full retry schedule.
func TestStandardConnector_RespectsContextTimeout(t *testing.T) {
	config := &payledger.ConnectionConfig{
		Host:     "nonexistent.invalid", // Will fail to connect
		Port:     5432,
		Database: "testdb",
		Username: "testuser",
		Password: "testpass",
	}

	connector := NewStandardConnector(config)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := connector.Connect(ctx)
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("Expected connection error, got nil")
	}

	// Should fail within the timeout window, with tolerance for slow DNS
	// failure on some resolvers.
	if elapsed > 2*time.Second {
		t.Errorf("Expected connection to fail near the 100ms timeout, took %v", elapsed)
	}
}
