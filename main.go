package main

import (
	"os"

	"github.com/liftdesk/liftdesk/internal/cmd"
)

func main() {
	// Cobra prints the error itself; just set the exit code.
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
