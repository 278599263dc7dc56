package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump the ingested dataset as a table",
	Long:  `Reads the configured CSV exports and prints every record across the full metric column list. Diagnostic only; unit scaling is applied first.`,
	RunE:  runDump,
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ds, err := buildDataset(cfg)
	if err != nil {
		return err
	}

	return ds.Dump(os.Stdout)
}
