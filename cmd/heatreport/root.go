package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jhanlon/heatreport/internal/config"
	"github.com/jhanlon/heatreport/internal/dataset"
	"github.com/jhanlon/heatreport/internal/ingest"
	"github.com/jhanlon/heatreport/internal/report"
	"github.com/spf13/cobra"
)

var (
	cfgFile        string
	debugLog       bool
	scaleConsumed  float64
	scaleGenerated float64
)

var rootCmd = &cobra.Command{
	Use:   "heatreport",
	Short: "Generate energy reports from heat pump CSV exports",
	Long: `Heatreport reads the time-series CSV exports from a heat pump system,
aggregates them into daily, weekly and annual statistics (consumption, heat
generated, coefficient of performance) and renders charts and tables into a
static HTML page.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if debugLog {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "print debugging messages")
	rootCmd.PersistentFlags().Float64Var(&scaleConsumed, "scale-consumed", 1.0, "scale measured energy consumed Wh values")
	rootCmd.PersistentFlags().Float64Var(&scaleGenerated, "scale-generated", 1.0, "scale measured energy generated Wh values")
}

// getConfigPath returns the config file path
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultConfigPath()
}

// loadConfig loads the configuration file
func loadConfig() (*config.Config, error) {
	return config.Load(getConfigPath())
}

// currentScale returns the unit-correction multipliers from the flags
func currentScale() report.Scale {
	return report.Scale{Consumed: scaleConsumed, Generated: scaleGenerated}
}

// buildDataset ingests every configured source and applies the unit
// scaling. All commands that need data go through here.
func buildDataset(cfg *config.Config) (*dataset.Dataset, error) {
	if len(cfg.Sources) == 0 {
		return nil, fmt.Errorf("no sources configured in %s", getConfigPath())
	}

	ds := dataset.New()
	total := 0
	for _, src := range cfg.Sources {
		count, err := ingest.ReadFile(ds, src)
		if err != nil {
			return nil, err
		}
		total += count
	}
	fmt.Printf("Parsed %s rows from %d files\n", humanize.Comma(int64(total)), len(cfg.Sources))

	ds.Scale(scaleConsumed, scaleGenerated)
	return ds, nil
}

// reportYears returns the configured years, falling back to the years
// present in the dataset
func reportYears(cfg *config.Config, ds *dataset.Dataset) []int {
	if len(cfg.Years) > 0 {
		return cfg.Years
	}
	return ds.Years()
}

// parseDate parses a YYYY-MM-DD flag value
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD, got %q", s)
	}
	return t, nil
}
