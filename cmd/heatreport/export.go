package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jhanlon/heatreport/internal/database"
	"github.com/jhanlon/heatreport/internal/export"
	"github.com/jhanlon/heatreport/internal/report"
	"github.com/jhanlon/heatreport/pkg/models"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the ingested dataset",
	Long:  `Writes the ingested readings to a SQLite database or an XLSX workbook for analysis outside the HTML report.`,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "sqlite", "export format (sqlite or xlsx)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (default readings.db or readings.xlsx)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ds, err := buildDataset(cfg)
	if err != nil {
		return err
	}

	switch exportFormat {
	case "sqlite":
		out := exportOut
		if out == "" {
			out = "readings.db"
		}
		db, err := database.New(out)
		if err != nil {
			return err
		}
		defer db.Close()

		count, err := db.InsertAll(ds)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Exported %s readings to %s\n", humanize.Comma(int64(count)), out)

	case "xlsx":
		out := exportOut
		if out == "" {
			out = "readings.xlsx"
		}
		var stats []*models.Stats
		for _, year := range reportYears(cfg, ds) {
			s, err := report.ComputeYear(ds, year, currentScale())
			if err != nil {
				return fmt.Errorf("computing stats: %w", err)
			}
			stats = append(stats, s)
		}
		if err := export.WriteXLSX(out, ds, stats); err != nil {
			return err
		}
		fmt.Printf("✓ Exported %s readings to %s\n", humanize.Comma(int64(ds.Len())), out)

	default:
		return fmt.Errorf("unknown format: %s (available: sqlite, xlsx)", exportFormat)
	}

	return nil
}
