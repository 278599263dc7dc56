// Package export writes the dataset and stats to an XLSX workbook.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhanlon/heatreport/internal/dataset"
	"github.com/jhanlon/heatreport/pkg/models"
)

// BuildWorkbook renders a workbook with a summary sheet of per-period
// stats and a readings sheet with every record.
func BuildWorkbook(ds *dataset.Dataset, stats []*models.Stats) (*excelize.File, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	readingsSheet := "readings"
	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(readingsSheet); err != nil {
		return nil, fmt.Errorf("creating readings sheet: %w", err)
	}

	rows := []struct {
		label string
		value func(*models.Stats) any
	}{
		{"Days of data", func(s *models.Stats) any { return s.LengthDays }},
		{"Consumed heating (Wh)", func(s *models.Stats) any { return s.HeatingConsumed }},
		{"Consumed hot water (Wh)", func(s *models.Stats) any { return s.WaterConsumed }},
		{"Consumed total (Wh)", func(s *models.Stats) any { return s.TotalConsumed }},
		{"Generated heating (Wh)", func(s *models.Stats) any { return s.HeatingGenerated }},
		{"Generated hot water (Wh)", func(s *models.Stats) any { return s.WaterGenerated }},
		{"Generated total (Wh)", func(s *models.Stats) any { return s.TotalGenerated }},
		{"SCOP heating", func(s *models.Stats) any { return s.HeatingSCOP }},
		{"SCOP hot water", func(s *models.Stats) any { return s.WaterSCOP }},
		{"SCOP combined", func(s *models.Stats) any { return s.SCOP }},
	}

	for i, s := range stats {
		col, err := excelize.ColumnNumberToName(i + 2)
		if err != nil {
			return nil, fmt.Errorf("naming column: %w", err)
		}
		_ = f.SetCellValue(summarySheet, col+"1", s.Label)
		for j, row := range rows {
			_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", j+2), row.label)
			_ = f.SetCellValue(summarySheet, fmt.Sprintf("%s%d", col, j+2), row.value(s))
		}
	}

	_ = f.SetCellValue(readingsSheet, "A1", "DateTime")
	for i, m := range dataset.Metrics {
		col, err := excelize.ColumnNumberToName(i + 2)
		if err != nil {
			return nil, fmt.Errorf("naming column: %w", err)
		}
		_ = f.SetCellValue(readingsSheet, col+"1", string(m))
	}

	rowNum := 2
	for rec := range ds.All() {
		_ = f.SetCellValue(readingsSheet, fmt.Sprintf("A%d", rowNum), rec.DateTime.Format("2006-01-02 15:04:05"))
		for i, m := range dataset.Metrics {
			if v, ok := rec.Value(m); ok {
				col, err := excelize.ColumnNumberToName(i + 2)
				if err != nil {
					return nil, fmt.Errorf("naming column: %w", err)
				}
				_ = f.SetCellValue(readingsSheet, fmt.Sprintf("%s%d", col, rowNum), v)
			}
		}
		rowNum++
	}

	return f, nil
}

// WriteXLSX builds the workbook and saves it to path.
func WriteXLSX(path string, ds *dataset.Dataset, stats []*models.Stats) error {
	f, err := BuildWorkbook(ds, stats)
	if err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
