package main

import (
	"fmt"
	"time"

	"github.com/jhanlon/heatreport/internal/report"
	"github.com/jhanlon/heatreport/pkg/models"
	"github.com/spf13/cobra"
)

var (
	reportOutputDir string
	reportFrom      string
	reportTo        string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the HTML energy report",
	Long:  `Reads the configured CSV exports, computes annual and range statistics and writes charts and tables to index.html in the output directory.`,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportOutputDir, "output-dir", "output", "output directory for index.html")
	reportCmd.Flags().StringVar(&reportFrom, "from", "", "only include data points from this date (YYYY-MM-DD, inclusive)")
	reportCmd.Flags().StringVar(&reportTo, "to", "", "only include data points to this date (YYYY-MM-DD, inclusive)")
	rootCmd.AddCommand(reportCmd)
}

// rangeFlags parses the optional --from/--to bounds
func rangeFlags() (from, to *time.Time, err error) {
	if reportFrom != "" {
		t, err := parseDate(reportFrom)
		if err != nil {
			return nil, nil, fmt.Errorf("parsing --from date: %w", err)
		}
		from = &t
	}
	if reportTo != "" {
		t, err := parseDate(reportTo)
		if err != nil {
			return nil, nil, fmt.Errorf("parsing --to date: %w", err)
		}
		to = &t
	}
	return from, to, nil
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	from, to, err := rangeFlags()
	if err != nil {
		return err
	}

	ds, err := buildDataset(cfg)
	if err != nil {
		return err
	}

	years := reportYears(cfg, ds)
	scale := currentScale()

	charts := report.BuildCharts(ds, from, to, years)

	var annual []*models.Stats
	for _, year := range years {
		s, err := report.ComputeYear(ds, year, scale)
		if err != nil {
			return fmt.Errorf("computing stats: %w", err)
		}
		annual = append(annual, s)
	}

	total, err := report.ComputeRange(ds, from, to, scale)
	if err != nil {
		return fmt.Errorf("computing total stats: %w", err)
	}

	path, err := report.WriteHTML(reportOutputDir, charts, annual, total)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Wrote %s\n", path)
	return nil
}
