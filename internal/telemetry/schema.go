package telemetry

import (
	"database/sql"

	"github.com/santhosh1815/hmi/internal/errors"
)

// initSchema initializes the database schema for recorded samples
func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS samples (
            timestamp INTEGER PRIMARY KEY,
            voltage REAL,
            current REAL,
            power REAL,
            temperature REAL,
            frequency REAL,
            efficiency REAL,
            status TEXT
        )
    `)
	if err != nil {
		return errors.New().Wrap(ErrStorageInit, err)
	}

	return nil
}

func insertSampleSQL() string {
	return `
        INSERT INTO samples (
            timestamp, voltage, current, power,
            temperature, frequency, efficiency, status
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(timestamp) DO UPDATE SET
            voltage = excluded.voltage,
            current = excluded.current,
            power = excluded.power,
            temperature = excluded.temperature,
            frequency = excluded.frequency,
            efficiency = excluded.efficiency,
            status = excluded.status
    `
}
