package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhanlon/heatreport/internal/dataset"
	"github.com/jhanlon/heatreport/pkg/models"
)

func testStats() []*models.Stats {
	return []*models.Stats{{
		Year:             2023,
		Label:            "2023",
		LengthDays:       364,
		HeatingConsumed:  1000,
		WaterConsumed:    500,
		HeatingGenerated: 3000,
		WaterGenerated:   1500,
		TotalConsumed:    1500,
		TotalGenerated:   4500,
		HeatingSCOP:      3,
		WaterSCOP:        3,
		SCOP:             3,
	}}
}

func TestBuildWorkbook(t *testing.T) {
	ds := dataset.New()
	when, err := time.Parse("2006-01-02 15:04:05", "2023-06-01 00:00:00")
	require.NoError(t, err)
	require.NoError(t, ds.Add(when, "DhwTankTemperature", 48.5))

	f, err := BuildWorkbook(ds, testStats())
	require.NoError(t, err)

	v, err := f.GetCellValue("summary", "B1")
	require.NoError(t, err)
	assert.Equal(t, "2023", v)

	v, err = f.GetCellValue("summary", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Days of data", v)

	// Row 5 is the combined consumed total.
	v, err = f.GetCellValue("summary", "B5")
	require.NoError(t, err)
	assert.Equal(t, "1500", v)

	v, err = f.GetCellValue("readings", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2023-06-01 00:00:00", v)

	// DhwTankTemperature is the seventh metric column (H with the
	// datetime column first).
	v, err = f.GetCellValue("readings", "H2")
	require.NoError(t, err)
	assert.Equal(t, "48.5", v)

	// Unset metrics leave their cell empty.
	v, err = f.GetCellValue("readings", "B2")
	require.NoError(t, err)
	assert.Equal(t, "", v)
}

func TestWriteXLSX(t *testing.T) {
	ds := dataset.New()
	when, err := time.Parse("2006-01-02 15:04:05", "2023-06-01 00:00:00")
	require.NoError(t, err)
	require.NoError(t, ds.Add(when, "OutdoorTemperature", 5.5))

	path := filepath.Join(t.TempDir(), "readings.xlsx")
	require.NoError(t, WriteXLSX(path, ds, testStats()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("summary", "A3")
	require.NoError(t, err)
	assert.Equal(t, "Consumed heating (Wh)", v)
}
