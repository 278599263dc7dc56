package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/jhanlon/heatreport/internal/dataset"
)

const chartDateFormat = "02 01 2006"

// Chart is the boundary contract between the aggregation core and the
// HTML renderer.
type Chart interface {
	Title() string
	// Symbol derives an identifier usable as an HTML element id.
	Symbol() string
	// Kind is "line" or "scatter".
	Kind() string
}

// Series is one labeled line-chart series.
type Series struct {
	Name   string
	Points []float64
}

// LineChart holds an ordered label axis shared across its series. Every
// series holds exactly one point per label.
type LineChart struct {
	Name   string
	Labels []string
	Series []*Series
}

// NewLineChart creates a line chart with the given series names.
func NewLineChart(name string, seriesNames ...string) *LineChart {
	c := &LineChart{Name: name}
	for _, sn := range seriesNames {
		c.Series = append(c.Series, &Series{Name: sn})
	}
	return c
}

func (c *LineChart) Title() string  { return c.Name }
func (c *LineChart) Symbol() string { return symbol(c.Name) }
func (c *LineChart) Kind() string   { return "line" }

// AddRow appends one label and one point per series, preserving the
// equal-length invariant.
func (c *LineChart) AddRow(label string, points ...float64) {
	if len(points) != len(c.Series) {
		panic("point count does not match series count")
	}
	c.Labels = append(c.Labels, label)
	for i, s := range c.Series {
		s.Points = append(s.Points, points[i])
	}
}

// Point is one (x, y) pair in a scatter series.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ScatterSeries is one named sequence of (x, y) pairs.
type ScatterSeries struct {
	Name   string
	Points []Point
}

// ScatterChart holds independent (x, y) series with no shared label axis.
type ScatterChart struct {
	Name   string
	Series []*ScatterSeries
}

func (c *ScatterChart) Title() string  { return c.Name }
func (c *ScatterChart) Symbol() string { return symbol(c.Name) }
func (c *ScatterChart) Kind() string   { return "scatter" }

// AddSeries appends an empty series and returns it for population.
func (c *ScatterChart) AddSeries(name string) *ScatterSeries {
	s := &ScatterSeries{Name: name}
	c.Series = append(c.Series, s)
	return s
}

func symbol(name string) string {
	s := strings.ToLower(name)
	for _, r := range []string{" ", "(", ")"} {
		s = strings.ReplaceAll(s, r, "_")
	}
	return s
}

// BuildCharts constructs the full chart set. The date-filtered charts
// honor [from, to]; the weekly charts aggregate per year.
func BuildCharts(ds *dataset.Dataset, from, to *time.Time, years []int) []Chart {
	return []Chart{
		consumedChart(ds, from, to),
		generatedChart(ds, from, to),
		weeklyCOPChart(ds, years),
		copChart(ds, from, to),
		tankTemperatureChart(ds, from, to),
		ambientTemperatureChart(ds, from, to),
		heatVsCOPChart(ds, years),
	}
}

func consumedChart(ds *dataset.Dataset, from, to *time.Time) Chart {
	c := NewLineChart("Energy consumed", "Heating (Wh)", "Hot water (Wh)", "Total (Wh)")
	for rec := range ds.Range(from, to) {
		heating, ok1 := rec.Value(dataset.ConsumedHeating)
		water, ok2 := rec.Value(dataset.ConsumedHotWater)
		if !ok1 || !ok2 {
			continue
		}
		c.AddRow(rec.DateTime.Format(chartDateFormat), heating, water, heating+water)
	}
	return c
}

func generatedChart(ds *dataset.Dataset, from, to *time.Time) Chart {
	c := NewLineChart("Heat energy generated", "Heat generated heating (Wh)", "Heat generated hot water (Wh)")
	for rec := range ds.Range(from, to) {
		heating, ok1 := rec.Value(dataset.GeneratedHeating)
		water, ok2 := rec.Value(dataset.GeneratedHotWater)
		if !ok1 || !ok2 {
			continue
		}
		c.AddRow(rec.DateTime.Format(chartDateFormat), heating, water)
	}
	return c
}

func weeklyCOPChart(ds *dataset.Dataset, years []int) Chart {
	c := &LineChart{Name: "Weekly averaged COP"}
	for week := 1; week <= weeksPerYear; week++ {
		c.Labels = append(c.Labels, strconv.Itoa(week))
	}
	for _, year := range years {
		buckets := WeeklyCOP(ds, year)
		s := &Series{Name: strconv.Itoa(year)}
		s.Points = append(s.Points, buckets[1:]...)
		c.Series = append(c.Series, s)
	}
	return c
}

func copChart(ds *dataset.Dataset, from, to *time.Time) Chart {
	c := NewLineChart("COP", "COP heating", "COP hot water")
	for rec := range ds.Range(from, to) {
		ch, ok1 := rec.Value(dataset.ConsumedHeating)
		cw, ok2 := rec.Value(dataset.ConsumedHotWater)
		gh, ok3 := rec.Value(dataset.GeneratedHeating)
		gw, ok4 := rec.Value(dataset.GeneratedHotWater)
		if !ok1 || !ok2 || !ok3 || !ok4 {
			continue
		}
		copHeating := 0.0
		if ch != 0 {
			copHeating = gh / ch
		}
		copWater := 0.0
		if cw != 0 {
			copWater = gw / cw
		}
		if copHeating > maxPlausibleCOP || copWater > maxPlausibleCOP {
			// Erroneous data point.
			continue
		}
		c.AddRow(rec.DateTime.Format(chartDateFormat), copHeating, copWater)
	}
	return c
}

func tankTemperatureChart(ds *dataset.Dataset, from, to *time.Time) Chart {
	c := NewLineChart("Hot water temperature (C)", "DHW")
	for rec := range ds.Range(from, to) {
		if temp, ok := rec.Value(dataset.TankTemperature); ok {
			c.AddRow(rec.DateTime.Format(chartDateFormat), temp)
		}
	}
	return c
}

func ambientTemperatureChart(ds *dataset.Dataset, from, to *time.Time) Chart {
	c := NewLineChart("Ambient temperature", "Internal", "External")
	for rec := range ds.Range(from, to) {
		outdoor, ok1 := rec.Value(dataset.OutdoorTemperature)
		room, ok2 := rec.Value(dataset.RoomTemperature)
		if !ok1 || !ok2 {
			continue
		}
		c.AddRow(rec.DateTime.Format(chartDateFormat), room, outdoor)
	}
	return c
}

func heatVsCOPChart(ds *dataset.Dataset, years []int) Chart {
	c := &ScatterChart{Name: "Heat output vs COP averaged weekly"}
	for _, year := range years {
		cop := WeeklyCOP(ds, year)
		heat := WeeklyHeat(ds, year)
		s := c.AddSeries(strconv.Itoa(year))
		for week := 1; week <= weeksPerYear; week++ {
			s.Points = append(s.Points, Point{X: heat[week], Y: cop[week]})
		}
	}
	return c
}
