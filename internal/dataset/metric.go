package dataset

import (
	"fmt"
	"strings"
)

// Metric identifies one tracked reading. The names match the column
// names used by the heat pump CSV exports, with the exporter's colon
// separator normalized to an underscore.
type Metric string

const (
	ConsumedHeating    Metric = "ConsumedElectricalEnergy_Heating"
	ConsumedHotWater   Metric = "ConsumedElectricalEnergy_DomesticHotWater"
	GeneratedHeating   Metric = "HeatGenerated_Heating"
	GeneratedHotWater  Metric = "HeatGenerated_DomesticHotWater"
	EarnedHeating      Metric = "EarnedEnvironmentEnergy_Heating"
	EarnedHotWater     Metric = "EarnedEnvironmentEnergy_DomesticHotWater"
	TankTemperature    Metric = "DhwTankTemperature"
	OutdoorTemperature Metric = "OutdoorTemperature"
	HeatingSetpoint    Metric = "ManualModeSetpointHeating"
	RoomSetpoint       Metric = "RoomTemperatureSetpoint"
	RoomTemperature    Metric = "CurrentRoomTemperature"
)

// Metrics lists every tracked metric in dump/export column order.
var Metrics = []Metric{
	ConsumedHeating,
	ConsumedHotWater,
	GeneratedHeating,
	GeneratedHotWater,
	EarnedHeating,
	EarnedHotWater,
	TankTemperature,
	OutdoorTemperature,
	HeatingSetpoint,
	RoomSetpoint,
	RoomTemperature,
}

// ParseMetric normalizes an external column name (for example
// "ConsumedElectricalEnergy:Heating") and validates it against the set
// of known metrics.
func ParseMetric(name string) (Metric, error) {
	m := Metric(strings.ReplaceAll(name, ":", "_"))
	for _, known := range Metrics {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMetric, name)
}
