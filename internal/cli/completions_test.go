package cli

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestCompleteSSLModes(t *testing.T) {
	cmd := &cobra.Command{}

	t.Run("returns all modes for empty input", func(t *testing.T) {
		completions, directive := completeSSLModes(cmd, nil, "")
		if len(completions) != len(sslModes) {
			t.Errorf("expected %d completions, got %d", len(sslModes), len(completions))
		}
		if directive != cobra.ShellCompDirectiveNoFileComp {
			t.Errorf("expected ShellCompDirectiveNoFileComp, got %v", directive)
		}
	})

	t.Run("filters by prefix", func(t *testing.T) {
		completions, _ := completeSSLModes(cmd, nil, "ver")
		if len(completions) != 2 {
			t.Errorf("expected 2 completions (verify-ca, verify-full), got %d", len(completions))
		}
		for _, c := range completions {
			if c != "verify-ca" && c != "verify-full" {
				t.Errorf("unexpected completion: %s", c)
			}
		}
	})

	t.Run("returns empty for non-matching prefix", func(t *testing.T) {
		completions, _ := completeSSLModes(cmd, nil, "xyz")
		if len(completions) != 0 {
			t.Errorf("expected 0 completions, got %d", len(completions))
		}
	})
}

func TestCompleteLayouts(t *testing.T) {
	cmd := &cobra.Command{}

	t.Run("returns both conventions for empty input", func(t *testing.T) {
		completions, _ := completeLayouts(cmd, nil, "")
		if len(completions) != 2 {
			t.Errorf("expected 2 completions, got %d", len(completions))
		}
	})

	t.Run("filters by prefix", func(t *testing.T) {
		completions, _ := completeLayouts(cmd, nil, "last")
		if len(completions) != 1 || completions[0] != "last-first" {
			t.Errorf("expected ['last-first'], got %v", completions)
		}
	})
}

func TestCompleteAuthMethods(t *testing.T) {
	cmd := &cobra.Command{}

	completions, _ := completeAuthMethods(cmd, nil, "a")
	if len(completions) != 2 {
		t.Errorf("expected 2 completions (aws-iam, azure-entra-id), got %v", completions)
	}
}
