package report

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jhanlon/heatreport/pkg/models"
)

//go:embed templates/index.html
var templateFS embed.FS

// FormatWh renders an energy value in Wh with a fitting SI unit, for
// example 1500000 -> "1.50 MWh" and 500 -> "500.00 Wh". Values below
// one are multiplied up, matching the original report formatter.
func FormatWh(wh float64) string {
	units := []struct {
		factor float64
		unit   string
	}{
		{1e9, "GWh"},
		{1e6, "MWh"},
		{1e3, "kWh"},
		{1, "Wh"},
	}
	for _, u := range units {
		if wh >= u.factor {
			return fmt.Sprintf("%.2f %s", wh/u.factor, u.unit)
		}
	}
	return fmt.Sprintf("%.2f Wh", wh*1000)
}

// chartJSON renders a Chart.js config object for a chart.
func chartJSON(c Chart) (template.JS, error) {
	var cfg map[string]any
	switch chart := c.(type) {
	case *LineChart:
		datasets := make([]map[string]any, 0, len(chart.Series))
		for _, s := range chart.Series {
			datasets = append(datasets, map[string]any{
				"label": s.Name,
				"data":  s.Points,
			})
		}
		cfg = map[string]any{
			"type": "line",
			"data": map[string]any{
				"labels":   chart.Labels,
				"datasets": datasets,
			},
			"options": map[string]any{
				"animation": false,
				"elements":  map[string]any{"point": map[string]any{"radius": 1}},
			},
		}
	case *ScatterChart:
		datasets := make([]map[string]any, 0, len(chart.Series))
		for _, s := range chart.Series {
			datasets = append(datasets, map[string]any{
				"label": s.Name,
				"data":  s.Points,
			})
		}
		cfg = map[string]any{
			"type": "scatter",
			"data": map[string]any{"datasets": datasets},
			"options": map[string]any{
				"animation": false,
			},
		}
	default:
		return "", fmt.Errorf("unsupported chart kind %q", c.Kind())
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encoding chart %q: %w", c.Title(), err)
	}
	return template.JS(data), nil
}

// WriteHTML renders the report page into outputDir and returns the path
// of the written file.
func WriteHTML(outputDir string, charts []Chart, annual []*models.Stats, total *models.Stats) (string, error) {
	tmpl, err := template.New("index.html").Funcs(template.FuncMap{
		"formatWh":  FormatWh,
		"chartJSON": chartJSON,
	}).ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	outputFile := filepath.Join(outputDir, "index.html")
	f, err := os.Create(outputFile)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", outputFile, err)
	}
	defer f.Close()

	data := struct {
		Charts      []Chart
		AnnualStats []*models.Stats
		TotalStats  *models.Stats
	}{charts, annual, total}

	if err := tmpl.Execute(f, data); err != nil {
		return "", fmt.Errorf("rendering template: %w", err)
	}

	slog.Info("wrote report", "path", outputFile)
	return outputFile, nil
}
