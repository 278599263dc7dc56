// Package ingest reads the heat pump CSV exports into a dataset.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jhanlon/heatreport/internal/config"
	"github.com/jhanlon/heatreport/internal/dataset"
)

const (
	dateTimeLayout = "2006-01-02 15:04:05"
	dateLayout     = "2006-01-02"
)

// ReadFile parses one configured source file into the dataset and
// returns the number of data rows processed. Comment lines (leading
// '#') and repeats of the header line are skipped. Empty cells record
// nothing: an absent value is not a zero.
func ReadFile(ds *dataset.Dataset, src config.Source) (int, error) {
	f, err := os.Open(src.Path)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", src.Path, err)
	}
	defer f.Close()

	count, err := readRows(ds, f, src)
	if err != nil {
		return count, fmt.Errorf("%s: %w", src.Path, err)
	}

	slog.Info("read source file", "path", src.Path, "rows", count)
	return count, nil
}

func readRows(ds *dataset.Dataset, r io.Reader, src config.Source) (int, error) {
	columns := src.ExpandedColumns()
	if len(columns) < 2 {
		return 0, fmt.Errorf("source needs a timestamp column and at least one metric column")
	}

	delimiter, err := src.GetDelimiter()
	if err != nil {
		return 0, err
	}

	layout := dateTimeLayout
	if src.DateOnly {
		layout = dateLayout
	}

	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.Comment = '#'
	reader.FieldsPerRecord = -1

	count := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("reading CSV row: %w", err)
		}
		if len(row) == 0 {
			continue
		}

		// The exports repeat the header line mid-file; treat it like a comment.
		if strings.TrimSpace(row[0]) == columns[0] {
			continue
		}

		line, _ := reader.FieldPos(0)

		ts, err := time.Parse(layout, strings.TrimSpace(row[0]))
		if err != nil {
			return count, fmt.Errorf("line %d: parsing timestamp %q: %w", line, row[0], err)
		}

		for i := 1; i < len(columns) && i < len(row); i++ {
			cell := strings.TrimSpace(row[i])
			if cell == "" {
				continue
			}
			value, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return count, fmt.Errorf("line %d: parsing value %q for %s: %w", line, cell, columns[i], err)
			}
			if err := ds.Add(ts, columns[i], value); err != nil {
				return count, fmt.Errorf("line %d: %w", line, err)
			}
		}
		count++
	}

	return count, nil
}
