package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhanlon/heatreport/internal/dataset"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "readings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestInsertAndGetReading(t *testing.T) {
	db := openTestDB(t)

	when, err := time.Parse("2006-01-02 15:04:05", "2023-06-01 00:00:00")
	require.NoError(t, err)

	ds := dataset.New()
	require.NoError(t, ds.Add(when, "ConsumedElectricalEnergy_Heating", 1234.5))
	require.NoError(t, ds.Add(when, "DhwTankTemperature", 48.5))

	count, err := db.InsertAll(ds)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	rec, err := db.GetReading(when)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, when, rec.DateTime)

	v, ok := rec.Value(dataset.ConsumedHeating)
	require.True(t, ok)
	assert.Equal(t, 1234.5, v)
	v, ok = rec.Value(dataset.TankTemperature)
	require.True(t, ok)
	assert.Equal(t, 48.5, v)

	// Metrics absent in the dataset stay NULL and read back as unset.
	_, ok = rec.Value(dataset.OutdoorTemperature)
	assert.False(t, ok)
}

func TestGetReadingMissing(t *testing.T) {
	db := openTestDB(t)

	rec, err := db.GetReading(time.Now())
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestCountReadings(t *testing.T) {
	db := openTestDB(t)

	ds := dataset.New()
	base, err := time.Parse("2006-01-02", "2023-06-01")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.NoError(t, ds.Add(base.AddDate(0, 0, i), "OutdoorTemperature", float64(i)))
	}

	_, err = db.InsertAll(ds)
	require.NoError(t, err)

	count, err := db.CountReadings()
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	// Re-exporting replaces rather than duplicates.
	_, err = db.InsertAll(ds)
	require.NoError(t, err)
	count, err = db.CountReadings()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
