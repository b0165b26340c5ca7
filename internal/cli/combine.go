package cli

import (
	"github.com/spf13/cobra"

	"github.com/kwhalen-data/payledger/internal/checksum"
	"github.com/kwhalen-data/payledger/internal/combine"
	"github.com/kwhalen-data/payledger/internal/files/scanner"
	"github.com/kwhalen-data/payledger/internal/logging"
)

var combineCmd = &cobra.Command{
	Use:   "combine <source_dir>",
	Short: "Fold the disclosure files into a single JSON document",
	Long: `Combine is the database-free output mode: it scans the directory for
dated .csv files and writes one JSON document mapping each file's date token
(e.g. "3.2021") to its cleaned rows under the fixed labels Last Name, First
Name, Agency, Job Title, Total Compensation and Bonuses. Cells are
title-cased and dollar amounts lose their $ and thousands separators.

Files without a recognizable date in their name are skipped with a warning.

Examples:
  payledger combine ./raw_data
  payledger combine ./raw_data -o /tmp/processed.json`,
	Args: RequireSourceDir,
	RunE: runCombine,
}

var combineOutput string

func init() {
	rootCmd.AddCommand(combineCmd)

	combineCmd.Flags().StringVarP(&combineOutput, "output", "o", "processed.json",
		"Path of the combined JSON document")
}

func runCombine(cmd *cobra.Command, args []string) error {
	sourceDir := args[0]
	verbose := getVerboseFlag(cmd)

	logger := logging.NewConsoleLogger(verbose)
	combiner := combine.NewCombiner(scanner.NewScanner(checksum.New()), logger)

	return combiner.Write(sourceDir, combineOutput)
}
