package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/spf13/cobra"
)

var (
	snapshotOutputDir string
	snapshotOut       string
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Render the HTML report to a PNG image",
	Long:  `Loads the generated index.html in headless Chrome and writes a full-page screenshot. Run this after 'report'.`,
	RunE:  runSnapshot,
}

func init() {
	snapshotCmd.Flags().StringVar(&snapshotOutputDir, "output-dir", "output", "directory containing index.html")
	snapshotCmd.Flags().StringVar(&snapshotOut, "out", "", "output image file (default <output-dir>/report.png)")
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	reportFile, err := filepath.Abs(filepath.Join(snapshotOutputDir, "index.html"))
	if err != nil {
		return fmt.Errorf("resolving report path: %w", err)
	}
	if _, err := os.Stat(reportFile); err != nil {
		return fmt.Errorf("no report found at %s, run 'heatreport report' first", reportFile)
	}

	out := snapshotOut
	if out == "" {
		out = filepath.Join(snapshotOutputDir, "report.png")
	}

	// Setup browser (headless)
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, 2*time.Minute)
	defer cancel()

	fmt.Printf("Rendering %s...\n", reportFile)

	var buf []byte
	if err := chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+reportFile),
		// Give Chart.js a moment to draw the canvases.
		chromedp.Sleep(2*time.Second),
		chromedp.FullScreenshot(&buf, 90),
	); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}

	if err := os.WriteFile(out, buf, 0644); err != nil {
		return fmt.Errorf("writing screenshot: %w", err)
	}

	fmt.Printf("✓ Wrote %s\n", out)
	return nil
}
