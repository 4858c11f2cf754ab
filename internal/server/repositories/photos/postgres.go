package photos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/plantkeeper/internal/common"
	"github.com/dmitrijs2005/plantkeeper/internal/dbx"
	"github.com/dmitrijs2005/plantkeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, plantID int64, storageKey string) (*models.Photo, error) {
	query :=
		`INSERT INTO plant_photos (plant_id, storage_key, status)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at
		 `

	p := &models.Photo{PlantID: plantID, StorageKey: storageKey, Status: models.PhotoPending}
	err := r.db.QueryRowContext(ctx, query, plantID, storageKey, string(models.PhotoPending)).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) ListByPlant(ctx context.Context, plantID int64) ([]models.Photo, error) {
	query :=
		`SELECT id, plant_id, storage_key, status, created_at FROM plant_photos
		 WHERE plant_id = $1
		 ORDER BY created_at DESC, id DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, plantID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Photo{}
	for rows.Next() {
		var (
			p      models.Photo
			status string
		)
		if err := rows.Scan(&p.ID, &p.PlantID, &p.StorageKey, &status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		p.Status = models.PhotoStatus(status)
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) MarkCompleted(ctx context.Context, id, plantID int64) (*models.Photo, error) {
	query :=
		`UPDATE plant_photos SET status = $1
		 WHERE id = $2 AND plant_id = $3
		 RETURNING id, plant_id, storage_key, status, created_at
		 `

	var (
		p      models.Photo
		status string
	)
	err := r.db.QueryRowContext(ctx, query, string(models.PhotoCompleted), id, plantID).
		Scan(&p.ID, &p.PlantID, &p.StorageKey, &status, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	p.Status = models.PhotoStatus(status)
	return &p, nil
}
