package main

import (
	"fmt"
	"time"

	"github.com/jhanlon/heatreport/internal/publisher"
	"github.com/jhanlon/heatreport/internal/report"
	"github.com/spf13/cobra"
)

var publishYear int

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish stats to Home Assistant over MQTT",
	Long:  `Computes the per-year statistics and publishes them as retained JSON messages so Home Assistant sensors can pick them up.`,
	RunE:  runPublish,
}

func init() {
	publishCmd.Flags().IntVar(&publishYear, "year", 0, "only publish this year (default: all configured years)")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	fmt.Printf("=== Publish started at %s ===\n", time.Now().Format("2006-01-02 15:04:05 MST"))

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if !cfg.MQTT.Enabled {
		return fmt.Errorf("MQTT is not enabled in config")
	}

	ds, err := buildDataset(cfg)
	if err != nil {
		return err
	}

	years := reportYears(cfg, ds)
	if publishYear != 0 {
		years = []int{publishYear}
	}

	pub, err := publisher.New(cfg.MQTT)
	if err != nil {
		return fmt.Errorf("creating publisher: %w", err)
	}
	defer pub.Close()

	for _, year := range years {
		s, err := report.ComputeYear(ds, year, currentScale())
		if err != nil {
			return fmt.Errorf("computing stats: %w", err)
		}
		if err := pub.PublishStats(s); err != nil {
			return err
		}
		fmt.Printf("✓ Published stats for %d to %s\n", year, pub.Topic(s.Label))
	}

	return nil
}
