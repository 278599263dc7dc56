package main

import (
	"os"
)

func main() {
	// Cobra prints the error itself; just set the exit status.
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
