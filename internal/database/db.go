package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jhanlon/heatreport/internal/dataset"
	_ "modernc.org/sqlite"
)

// DB wraps the database connection
type DB struct {
	conn *sql.DB
}

// New creates a new database connection and initializes the schema
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// initSchema creates the readings table, one nullable column per metric
func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS readings (
		datetime TEXT PRIMARY KEY,
		consumed_heating REAL,
		consumed_hot_water REAL,
		generated_heating REAL,
		generated_hot_water REAL,
		earned_heating REAL,
		earned_hot_water REAL,
		tank_temperature REAL,
		outdoor_temperature REAL,
		heating_setpoint REAL,
		room_setpoint REAL,
		room_temperature REAL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_readings_datetime ON readings(datetime);
	`

	_, err := db.conn.Exec(schema)
	return err
}

// InsertReading inserts one record, replacing any previous export of
// the same timestamp
func (db *DB) InsertReading(rec *dataset.Record) error {
	query := `
	INSERT OR REPLACE INTO readings (
		datetime,
		consumed_heating, consumed_hot_water,
		generated_heating, generated_hot_water,
		earned_heating, earned_hot_water,
		tank_temperature, outdoor_temperature,
		heating_setpoint, room_setpoint, room_temperature,
		created_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	createdAt := time.Now().UTC().Format(time.RFC3339)

	_, err := db.conn.Exec(query,
		rec.DateTime.Format("2006-01-02 15:04:05"),
		nullable(rec.ConsumedHeating), nullable(rec.ConsumedHotWater),
		nullable(rec.GeneratedHeating), nullable(rec.GeneratedHotWater),
		nullable(rec.EarnedHeating), nullable(rec.EarnedHotWater),
		nullable(rec.TankTemperature), nullable(rec.OutdoorTemperature),
		nullable(rec.HeatingSetpoint), nullable(rec.RoomSetpoint), nullable(rec.RoomTemperature),
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("inserting reading: %w", err)
	}

	return nil
}

// InsertAll exports every record of the dataset and returns the count
func (db *DB) InsertAll(ds *dataset.Dataset) (int, error) {
	count := 0
	for rec := range ds.All() {
		if err := db.InsertReading(rec); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// CountReadings returns the number of stored readings
func (db *DB) CountReadings() (int, error) {
	var count int
	err := db.conn.QueryRow(`SELECT COUNT(*) FROM readings`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting readings: %w", err)
	}
	return count, nil
}

// GetReading retrieves the record stored for a timestamp, or nil
func (db *DB) GetReading(ts time.Time) (*dataset.Record, error) {
	query := `
	SELECT datetime,
		consumed_heating, consumed_hot_water,
		generated_heating, generated_hot_water,
		earned_heating, earned_hot_water,
		tank_temperature, outdoor_temperature,
		heating_setpoint, room_setpoint, room_temperature
	FROM readings
	WHERE datetime = ?
	`

	row := db.conn.QueryRow(query, ts.Format("2006-01-02 15:04:05"))

	var dateStr string
	var cols [11]sql.NullFloat64
	err := row.Scan(&dateStr,
		&cols[0], &cols[1], &cols[2], &cols[3], &cols[4], &cols[5],
		&cols[6], &cols[7], &cols[8], &cols[9], &cols[10])
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying reading: %w", err)
	}

	rec := &dataset.Record{}
	rec.DateTime, err = time.Parse("2006-01-02 15:04:05", dateStr)
	if err != nil {
		return nil, fmt.Errorf("parsing datetime: %w", err)
	}

	slots := []**float64{
		&rec.ConsumedHeating, &rec.ConsumedHotWater,
		&rec.GeneratedHeating, &rec.GeneratedHotWater,
		&rec.EarnedHeating, &rec.EarnedHotWater,
		&rec.TankTemperature, &rec.OutdoorTemperature,
		&rec.HeatingSetpoint, &rec.RoomSetpoint, &rec.RoomTemperature,
	}
	for i, col := range cols {
		if col.Valid {
			v := col.Float64
			*slots[i] = &v
		}
	}

	return rec, nil
}

func nullable(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}
