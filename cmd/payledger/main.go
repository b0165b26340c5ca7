package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/kwhalen-data/payledger/internal/cli"
	"github.com/kwhalen-data/payledger/pkg/payledger"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(payledger.ExitPanic)
		}
	}()

	if os.Getenv("PAYLEDGER_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(payledger.ExitCodeForError(err))
	}
}
