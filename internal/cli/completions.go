package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// sslModes contains valid PostgreSQL SSL modes for shell completion.
var sslModes = []string{"disable", "allow", "prefer", "require", "verify-ca", "verify-full"}

// layouts contains the known positional column conventions.
var layouts = []string{"last-first", "first-last"}

// authMethods contains the supported --auth-method values.
var authMethods = []string{"standard", "aws-iam", "google-iam", "azure-entra-id"}

// completeSSLModes provides shell completion for SSL mode flag values.
func completeSSLModes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return prefixMatches(sslModes, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeLayouts provides shell completion for layout flag values.
func completeLayouts(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return prefixMatches(layouts, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeAuthMethods provides shell completion for auth method flag values.
func completeAuthMethods(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return prefixMatches(authMethods, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func prefixMatches(candidates []string, toComplete string) []string {
	var matches []string
	for _, c := range candidates {
		if strings.HasPrefix(c, toComplete) {
			matches = append(matches, c)
		}
	}
	return matches
}
