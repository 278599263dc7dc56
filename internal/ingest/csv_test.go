package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhanlon/heatreport/internal/config"
	"github.com/jhanlon/heatreport/internal/dataset"
)

func writeFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestReadFileSemicolonExport(t *testing.T) {
	path := writeFile(t, `# exported by myVAILLANT
DateTime;ConsumedElectricalEnergy:Heating;ConsumedElectricalEnergy:DomesticHotWater
2023-01-01 00:00:00;1000;500
2023-01-02 00:00:00;2000;
`)
	src := config.Source{
		Path:    path,
		Columns: []string{"DateTime", "ConsumedElectricalEnergy:Heating", "ConsumedElectricalEnergy:DomesticHotWater"},
	}

	ds := dataset.New()
	count, err := ReadFile(ds, src)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 2, ds.Len())

	assert.Equal(t, 3000.0, ds.Total(dataset.ConsumedHeating, ds.All()))
	// The empty cell on the second row is absent, not zero.
	assert.Equal(t, 500.0, ds.Total(dataset.ConsumedHotWater, ds.All()))
	for rec := range ds.Year(2023) {
		if rec.DateTime.Day() == 2 {
			_, ok := rec.Value(dataset.ConsumedHotWater)
			assert.False(t, ok)
		}
	}
}

func TestReadFileSkipsRepeatedHeaderLine(t *testing.T) {
	path := writeFile(t, `DateTime;OutdoorTemperature
2023-01-01 00:00:00;5.5
DateTime;OutdoorTemperature
2023-01-02 00:00:00;6.5
`)
	src := config.Source{Path: path, Columns: []string{"DateTime", "OutdoorTemperature"}}

	ds := dataset.New()
	count, err := ReadFile(ds, src)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 12.0, ds.Total(dataset.OutdoorTemperature, ds.All()))
}

func TestReadFileRepeatedColumnBlocks(t *testing.T) {
	// Historical exports tile the metric block; values land positionally
	// in whichever block is populated.
	path := writeFile(t, `2023-01-01 00:00:00;;;1000;3000
2023-01-02 00:00:00;2000;4000;;
`)
	src := config.Source{
		Path:    path,
		Columns: []string{"DateTime", "ConsumedElectricalEnergy:Heating", "HeatGenerated:Heating"},
		Repeat:  2,
	}

	ds := dataset.New()
	count, err := ReadFile(ds, src)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 3000.0, ds.Total(dataset.ConsumedHeating, ds.All()))
	assert.Equal(t, 7000.0, ds.Total(dataset.GeneratedHeating, ds.All()))
}

func TestReadFileDateOnlyVariant(t *testing.T) {
	path := writeFile(t, "2023-01-01,1000\n2023-01-02,2000\n")
	src := config.Source{
		Path:      path,
		Delimiter: ",",
		DateOnly:  true,
		Columns:   []string{"Date", "ConsumedElectricalEnergy:Heating"},
	}

	ds := dataset.New()
	count, err := ReadFile(ds, src)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 3000.0, ds.Total(dataset.ConsumedHeating, ds.All()))
}

func TestReadFileMalformedTimestamp(t *testing.T) {
	path := writeFile(t, "01/02/2023 10:00;5.5\n")
	src := config.Source{Path: path, Columns: []string{"DateTime", "OutdoorTemperature"}}

	_, err := ReadFile(dataset.New(), src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing timestamp")
}

func TestReadFileMalformedValue(t *testing.T) {
	path := writeFile(t, "2023-01-01 00:00:00;not-a-number\n")
	src := config.Source{Path: path, Columns: []string{"DateTime", "OutdoorTemperature"}}

	_, err := ReadFile(dataset.New(), src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing value")
}

func TestReadFileMissingFile(t *testing.T) {
	src := config.Source{
		Path:    filepath.Join(t.TempDir(), "nope.csv"),
		Columns: []string{"DateTime", "OutdoorTemperature"},
	}
	_, err := ReadFile(dataset.New(), src)
	assert.Error(t, err)
}

func TestReadFileOverlappingSourcesFail(t *testing.T) {
	path := writeFile(t, `2023-01-01 00:00:00;5.5
2023-01-01 00:00:00;6.5
`)
	src := config.Source{Path: path, Columns: []string{"DateTime", "OutdoorTemperature"}}

	_, err := ReadFile(dataset.New(), src)
	assert.ErrorIs(t, err, dataset.ErrDuplicateMetric)
}

func TestReadFileUnknownColumn(t *testing.T) {
	path := writeFile(t, "2023-01-01 00:00:00;1\n")
	src := config.Source{Path: path, Columns: []string{"DateTime", "NoSuchMetric"}}

	_, err := ReadFile(dataset.New(), src)
	assert.ErrorIs(t, err, dataset.ErrUnknownMetric)
}

func TestReadFileNeedsColumns(t *testing.T) {
	path := writeFile(t, "2023-01-01 00:00:00;1\n")
	src := config.Source{Path: path, Columns: []string{"DateTime"}}

	_, err := ReadFile(dataset.New(), src)
	assert.Error(t, err)
}
