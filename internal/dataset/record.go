package dataset

import (
	"fmt"
	"time"
)

// Record holds the readings for a single timestamp. Fields are filled
// incrementally as the different source files are read, so every metric
// is optional: a nil pointer means the source files carried no value
// for that instant, which is distinct from an explicit zero.
type Record struct {
	DateTime           time.Time
	ConsumedHeating    *float64
	ConsumedHotWater   *float64
	GeneratedHeating   *float64
	GeneratedHotWater  *float64
	EarnedHeating      *float64
	EarnedHotWater     *float64
	TankTemperature    *float64
	OutdoorTemperature *float64
	HeatingSetpoint    *float64
	RoomSetpoint       *float64
	RoomTemperature    *float64
}

// field maps a metric to its storage slot.
func (r *Record) field(m Metric) (**float64, error) {
	switch m {
	case ConsumedHeating:
		return &r.ConsumedHeating, nil
	case ConsumedHotWater:
		return &r.ConsumedHotWater, nil
	case GeneratedHeating:
		return &r.GeneratedHeating, nil
	case GeneratedHotWater:
		return &r.GeneratedHotWater, nil
	case EarnedHeating:
		return &r.EarnedHeating, nil
	case EarnedHotWater:
		return &r.EarnedHotWater, nil
	case TankTemperature:
		return &r.TankTemperature, nil
	case OutdoorTemperature:
		return &r.OutdoorTemperature, nil
	case HeatingSetpoint:
		return &r.HeatingSetpoint, nil
	case RoomSetpoint:
		return &r.RoomSetpoint, nil
	case RoomTemperature:
		return &r.RoomTemperature, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, m)
	}
}

// Set writes a metric value. A metric may only be written once per
// timestamp; a second write signals overlapping source files.
func (r *Record) Set(m Metric, value float64) error {
	slot, err := r.field(m)
	if err != nil {
		return err
	}
	if *slot != nil {
		return fmt.Errorf("%w: %s at %s", ErrDuplicateMetric, m, r.DateTime.Format("2006-01-02 15:04:05"))
	}
	v := value
	*slot = &v
	return nil
}

// Value returns the metric value and whether it was set.
func (r *Record) Value(m Metric) (float64, bool) {
	slot, err := r.field(m)
	if err != nil || *slot == nil {
		return 0, false
	}
	return **slot, true
}
