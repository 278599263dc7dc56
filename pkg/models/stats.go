package models

// Stats aggregates energy totals and seasonal coefficients of
// performance over one calendar year or an explicit date range.
// Energy values are in Wh after unit-scale correction.
type Stats struct {
	Year           int     `json:"year,omitempty"` // 0 for a range aggregate
	Label          string  `json:"label"`          // "2023", or the range description
	LengthDays     int     `json:"length_days"`    // Days between the first and last reading
	ScaleConsumed  float64 `json:"scale_consumed"`
	ScaleGenerated float64 `json:"scale_generated"`

	HeatingConsumed  float64 `json:"heating_consumed_wh"`
	WaterConsumed    float64 `json:"water_consumed_wh"`
	HeatingGenerated float64 `json:"heating_generated_wh"`
	WaterGenerated   float64 `json:"water_generated_wh"`
	TotalConsumed    float64 `json:"total_consumed_wh"`
	TotalGenerated   float64 `json:"total_generated_wh"`

	HeatingSCOP float64 `json:"heating_scop"`
	WaterSCOP   float64 `json:"water_scop"`
	SCOP        float64 `json:"scop"`
}
