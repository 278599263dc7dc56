// Package dataset holds the in-memory tabular model built from the
// heat pump CSV exports: one sparse record per timestamp, filled in
// across multiple heterogeneous source files that share a date key.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"sort"
	"text/tabwriter"
	"time"
)

var (
	// ErrUnknownMetric reports a column name outside the tracked set.
	ErrUnknownMetric = errors.New("unknown metric")
	// ErrDuplicateMetric reports a second write to a metric already set
	// for a timestamp, which means two sources overlap.
	ErrDuplicateMetric = errors.New("duplicate metric write")
)

// Dataset maps timestamps to Records, preserving insertion order for
// iteration. It is built once per run during ingestion and read-only
// afterwards, apart from the unit-scaling correction pass.
type Dataset struct {
	records map[time.Time]*Record
	order   []time.Time
}

// New returns an empty dataset.
func New() *Dataset {
	return &Dataset{records: make(map[time.Time]*Record)}
}

// Len returns the number of distinct timestamps.
func (d *Dataset) Len() int {
	return len(d.order)
}

// Add records one value. The metric name may use the exporter's colon
// form; it is normalized and validated here. Writing the same metric
// twice for the same timestamp is an error.
func (d *Dataset) Add(ts time.Time, metric string, value float64) error {
	m, err := ParseMetric(metric)
	if err != nil {
		return err
	}
	rec, ok := d.records[ts]
	if !ok {
		rec = &Record{DateTime: ts}
		d.records[ts] = rec
		d.order = append(d.order, ts)
	}
	return rec.Set(m, value)
}

// All iterates every record in insertion order.
func (d *Dataset) All() iter.Seq[*Record] {
	return func(yield func(*Record) bool) {
		for _, ts := range d.order {
			if !yield(d.records[ts]) {
				return
			}
		}
	}
}

// Range iterates records whose timestamp falls within [from, to]
// inclusive. A nil bound leaves that side unrestricted. A plain filter
// is enough at this dataset size; no date index is kept.
func (d *Dataset) Range(from, to *time.Time) iter.Seq[*Record] {
	return func(yield func(*Record) bool) {
		for _, ts := range d.order {
			if from != nil && ts.Before(*from) {
				continue
			}
			if to != nil && ts.After(*to) {
				continue
			}
			if !yield(d.records[ts]) {
				return
			}
		}
	}
}

// Year iterates records whose timestamp falls in the given calendar year.
func (d *Dataset) Year(year int) iter.Seq[*Record] {
	return func(yield func(*Record) bool) {
		for _, ts := range d.order {
			if ts.Year() != year {
				continue
			}
			if !yield(d.records[ts]) {
				return
			}
		}
	}
}

// Years returns the distinct calendar years present, sorted ascending.
func (d *Dataset) Years() []int {
	seen := make(map[int]bool)
	for _, ts := range d.order {
		seen[ts.Year()] = true
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Total sums a metric over the filtered records, counting an unset
// field as zero. An empty filter totals to zero.
func (d *Dataset) Total(m Metric, records iter.Seq[*Record]) float64 {
	var sum float64
	for rec := range records {
		if v, ok := rec.Value(m); ok {
			sum += v
		}
	}
	return sum
}

// Scale multiplies the consumed and generated energy metrics in place.
// The original exporter mis-scales these channels on some firmware
// versions, so a correction factor is applied before any aggregation.
func (d *Dataset) Scale(consumed, generated float64) {
	mul := func(p *float64, factor float64) *float64 {
		if p == nil {
			return nil
		}
		v := *p * factor
		return &v
	}
	for rec := range d.All() {
		rec.ConsumedHeating = mul(rec.ConsumedHeating, consumed)
		rec.ConsumedHotWater = mul(rec.ConsumedHotWater, consumed)
		rec.GeneratedHeating = mul(rec.GeneratedHeating, generated)
		rec.GeneratedHotWater = mul(rec.GeneratedHotWater, generated)
	}
}

// Dump writes every record as a text table across the fixed metric
// column list, in insertion order. Diagnostic path only.
func (d *Dataset) Dump(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprint(tw, "DateTime")
	for _, m := range Metrics {
		fmt.Fprintf(tw, "\t%s", m)
	}
	fmt.Fprintln(tw)
	for rec := range d.All() {
		fmt.Fprint(tw, rec.DateTime.Format("2006-01-02 15:04:05"))
		for _, m := range Metrics {
			if v, ok := rec.Value(m); ok {
				fmt.Fprintf(tw, "\t%.2f", v)
			} else {
				fmt.Fprint(tw, "\t-")
			}
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
