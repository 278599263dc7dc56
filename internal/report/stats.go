// Package report computes the aggregate statistics and chart series
// for the HTML report.
package report

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"time"

	"github.com/jhanlon/heatreport/internal/dataset"
	"github.com/jhanlon/heatreport/pkg/models"
)

var (
	// ErrNoRecords reports an empty filtered selection.
	ErrNoRecords = errors.New("no records in selection")
	// ErrZeroConsumption reports a combined consumed total of zero,
	// which leaves the combined COP undefined for that selection.
	ErrZeroConsumption = errors.New("zero combined consumed total, COP undefined")
)

// maxPlausibleCOP bounds the per-record coefficient of performance.
// Ratios above this come from erroneous sensor data and are dropped
// from chart series. Aggregate totals keep the raw values.
const maxPlausibleCOP = 6.0

// weeksPerYear is the highest ISO week number. Bucket index 0 is unused.
const weeksPerYear = 53

// Scale holds the unit-correction multipliers applied to the raw
// consumed and generated energy readings.
type Scale struct {
	Consumed  float64
	Generated float64
}

// ComputeYear aggregates stats over one calendar year.
func ComputeYear(ds *dataset.Dataset, year int, scale Scale) (*models.Stats, error) {
	s, err := compute(ds, ds.Year(year), scale)
	if err != nil {
		return nil, fmt.Errorf("year %d: %w", year, err)
	}
	s.Year = year
	s.Label = strconv.Itoa(year)
	return s, nil
}

// ComputeRange aggregates stats over an inclusive date range. Either
// bound may be nil for an unrestricted side.
func ComputeRange(ds *dataset.Dataset, from, to *time.Time, scale Scale) (*models.Stats, error) {
	s, err := compute(ds, ds.Range(from, to), scale)
	if err != nil {
		return nil, err
	}
	s.Label = rangeLabel(from, to)
	return s, nil
}

func compute(ds *dataset.Dataset, records iter.Seq[*dataset.Record], scale Scale) (*models.Stats, error) {
	var first, last time.Time
	n := 0
	for rec := range records {
		if n == 0 || rec.DateTime.Before(first) {
			first = rec.DateTime
		}
		if n == 0 || rec.DateTime.After(last) {
			last = rec.DateTime
		}
		n++
	}
	if n == 0 {
		return nil, ErrNoRecords
	}

	s := &models.Stats{
		LengthDays:       int(last.Sub(first).Hours() / 24),
		ScaleConsumed:    scale.Consumed,
		ScaleGenerated:   scale.Generated,
		HeatingConsumed:  ds.Total(dataset.ConsumedHeating, records),
		WaterConsumed:    ds.Total(dataset.ConsumedHotWater, records),
		HeatingGenerated: ds.Total(dataset.GeneratedHeating, records),
		WaterGenerated:   ds.Total(dataset.GeneratedHotWater, records),
	}
	s.TotalConsumed = s.HeatingConsumed + s.WaterConsumed
	s.TotalGenerated = s.HeatingGenerated + s.WaterGenerated

	// Per-channel SCOP is defined only for a nonzero denominator; an
	// unused channel reads as 0, matching the per-record convention. A
	// zero combined total leaves the whole aggregate undefined and is
	// an explicit error rather than a NaN.
	if s.TotalConsumed == 0 {
		return nil, ErrZeroConsumption
	}
	if s.HeatingConsumed != 0 {
		s.HeatingSCOP = s.HeatingGenerated / s.HeatingConsumed
	}
	if s.WaterConsumed != 0 {
		s.WaterSCOP = s.WaterGenerated / s.WaterConsumed
	}
	s.SCOP = s.TotalGenerated / s.TotalConsumed

	return s, nil
}

func rangeLabel(from, to *time.Time) string {
	switch {
	case from == nil && to == nil:
		return "all data"
	case from == nil:
		return "up to " + to.Format("2006-01-02")
	case to == nil:
		return "from " + from.Format("2006-01-02")
	default:
		return from.Format("2006-01-02") + " to " + to.Format("2006-01-02")
	}
}

// combinedCOP returns the combined per-record coefficient of
// performance and whether all four energy metrics are present. A zero
// consumed total yields zero rather than an error at this level.
func combinedCOP(rec *dataset.Record) (float64, bool) {
	ch, ok1 := rec.Value(dataset.ConsumedHeating)
	cw, ok2 := rec.Value(dataset.ConsumedHotWater)
	gh, ok3 := rec.Value(dataset.GeneratedHeating)
	gw, ok4 := rec.Value(dataset.GeneratedHotWater)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return 0, false
	}
	consumed := ch + cw
	if consumed == 0 {
		return 0, true
	}
	return (gh + gw) / consumed, true
}

// WeeklyCOP sums the combined per-record COP into ISO-week buckets for
// one year, then divides each bucket by 7 to approximate a daily
// average. Boundary weeks hold fewer than seven samples, so this
// understates them; the divisor stays fixed so year-over-year series
// remain comparable.
// Implausible per-record ratios are excluded. Index 0 is unused; index
// 53 is only populated in years that have an ISO week 53.
func WeeklyCOP(ds *dataset.Dataset, year int) [weeksPerYear + 1]float64 {
	var buckets [weeksPerYear + 1]float64
	for rec := range ds.Year(year) {
		cop, ok := combinedCOP(rec)
		if !ok || cop > maxPlausibleCOP {
			continue
		}
		_, week := rec.DateTime.ISOWeek()
		buckets[week] += cop
	}
	for i := range buckets {
		buckets[i] /= 7
	}
	return buckets
}

// WeeklyHeat sums the total generated heat into ISO-week buckets for
// one year, divided by 7 the same way as WeeklyCOP.
func WeeklyHeat(ds *dataset.Dataset, year int) [weeksPerYear + 1]float64 {
	var buckets [weeksPerYear + 1]float64
	for rec := range ds.Year(year) {
		gh, ok1 := rec.Value(dataset.GeneratedHeating)
		gw, ok2 := rec.Value(dataset.GeneratedHotWater)
		if !ok1 || !ok2 {
			continue
		}
		_, week := rec.DateTime.ISOWeek()
		buckets[week] += gh + gw
	}
	for i := range buckets {
		buckets[i] /= 7
	}
	return buckets
}
