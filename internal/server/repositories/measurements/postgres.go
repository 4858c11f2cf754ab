package measurements

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/plantkeeper/internal/dbx"
	"github.com/dmitrijs2005/plantkeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, m *models.Measurement) (*models.Measurement, error) {
	query :=
		`INSERT INTO measurements (pot_id, timestamp, soil_moisture, temperature, light_level, humidity, battery_level)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		m.PotID, m.Timestamp, m.SoilMoisture, m.Temperature, m.LightLevel, m.Humidity, m.BatteryLevel).Scan(&m.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}

func (r *PostgresRepository) ListByPot(ctx context.Context, potID int64) ([]models.Measurement, error) {
	query :=
		`SELECT id, pot_id, timestamp, soil_moisture, temperature, light_level, humidity, battery_level
		 FROM measurements
		 WHERE pot_id = $1
		 ORDER BY timestamp DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, potID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Measurement{}
	for rows.Next() {
		var m models.Measurement
		if err := rows.Scan(&m.ID, &m.PotID, &m.Timestamp, &m.SoilMoisture, &m.Temperature,
			&m.LightLevel, &m.Humidity, &m.BatteryLevel); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
