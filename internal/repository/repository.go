package repository

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/septivank/hydro-telemetry-service/internal/db"
)

// Repository handles database operations
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// InsertReading inserts a sensor reading
func (r *Repository) InsertReading(ctx context.Context, reading *db.SensorReading) error {
	if reading.ID == uuid.Nil {
		reading.ID = uuid.New()
	}

	query := `
		INSERT INTO sensor_readings (
			id, device_id, ph, ec, water_temp, air_temp, humidity, light_level, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		reading.ID,
		reading.DeviceID,
		reading.PH,
		reading.EC,
		reading.WaterTemp,
		reading.AirTemp,
		reading.Humidity,
		reading.LightLevel,
		reading.Timestamp,
	)
	if err != nil {
		return storeErr("insert reading", err)
	}

	return nil
}

// ListReadings gets the most recent readings, optionally for one device
func (r *Repository) ListReadings(ctx context.Context, deviceID string, limit int) ([]db.SensorReading, error) {
	query := `
		SELECT id, device_id, ph, ec, water_temp, air_temp, humidity, light_level, created_at
		FROM sensor_readings
		WHERE ($1::text = '' OR device_id = $1)
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, deviceID, limit)
	if err != nil {
		return nil, storeErr("query readings", err)
	}
	defer rows.Close()

	var readings []db.SensorReading
	for rows.Next() {
		reading, err := scanReading(rows)
		if err != nil {
			return nil, storeErr("scan reading", err)
		}
		readings = append(readings, reading)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate readings", err)
	}

	return readings, nil
}

// scanReading maps nullable measurement columns to NaN so they count as missing
func scanReading(rows pgx.Rows) (db.SensorReading, error) {
	var (
		reading                              db.SensorReading
		ph, ec, waterTemp, airTemp, humidity *float64
		lightLevel                           *int64
	)
	err := rows.Scan(
		&reading.ID,
		&reading.DeviceID,
		&ph,
		&ec,
		&waterTemp,
		&airTemp,
		&humidity,
		&lightLevel,
		&reading.Timestamp,
	)
	if err != nil {
		return reading, err
	}

	reading.PH = orNaN(ph)
	reading.EC = orNaN(ec)
	reading.WaterTemp = orNaN(waterTemp)
	reading.AirTemp = orNaN(airTemp)
	reading.Humidity = orNaN(humidity)
	if lightLevel != nil {
		reading.LightLevel = *lightLevel
	}
	return reading, nil
}

// InsertAlert inserts an alert
func (r *Repository) InsertAlert(ctx context.Context, alert *db.Alert) error {
	if alert.ID == uuid.Nil {
		alert.ID = uuid.New()
	}

	query := `
		INSERT INTO alerts (
			id, device_id, parameter, condition, value, threshold,
			message, severity, created_at, resolved
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		alert.ID,
		alert.DeviceID,
		alert.Parameter,
		alert.Condition,
		alert.Value,
		alert.Threshold,
		alert.Message,
		string(alert.Severity),
		alert.Timestamp,
		alert.Resolved,
	)
	if err != nil {
		return storeErr("insert alert", err)
	}

	return nil
}

// ListActiveAlerts gets unresolved alerts, optionally for one device
func (r *Repository) ListActiveAlerts(ctx context.Context, deviceID string) ([]db.Alert, error) {
	query := `
		SELECT id, device_id, parameter, condition, value, threshold,
			message, severity, created_at, resolved, resolved_at
		FROM alerts
		WHERE resolved = FALSE AND ($1::text = '' OR device_id = $1)
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, deviceID)
	if err != nil {
		return nil, storeErr("query alerts", err)
	}
	defer rows.Close()

	var alerts []db.Alert
	for rows.Next() {
		var (
			alert    db.Alert
			severity string
		)
		if err := rows.Scan(
			&alert.ID,
			&alert.DeviceID,
			&alert.Parameter,
			&alert.Condition,
			&alert.Value,
			&alert.Threshold,
			&alert.Message,
			&severity,
			&alert.Timestamp,
			&alert.Resolved,
			&alert.ResolvedAt,
		); err != nil {
			return nil, storeErr("scan alert", err)
		}
		alert.Severity = db.Severity(severity)
		alerts = append(alerts, alert)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate alerts", err)
	}

	return alerts, nil
}

// ResolveAlert marks an alert as resolved
func (r *Repository) ResolveAlert(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `
		UPDATE alerts
		SET resolved = TRUE, resolved_at = COALESCE(resolved_at, $2)
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, at)
	if err != nil {
		return storeErr("resolve alert", err)
	}
	if tag.RowsAffected() == 0 {
		return storeErr("resolve alert", ErrAlertNotFound)
	}

	return nil
}

// InsertActuatorState appends a desired actuator state
func (r *Repository) InsertActuatorState(ctx context.Context, state *db.ActuatorState) error {
	if state.ID == uuid.Nil {
		state.ID = uuid.New()
	}

	query := `
		INSERT INTO actuator_states (id, device_id, actuator, state, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		state.ID,
		state.DeviceID,
		string(state.Actuator),
		state.State,
		state.Timestamp,
	)
	if err != nil {
		return storeErr("insert actuator state", err)
	}

	return nil
}

func orNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}
