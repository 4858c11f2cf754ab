package pots

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/plantkeeper/internal/common"
	"github.com/dmitrijs2005/plantkeeper/internal/dbx"
	"github.com/dmitrijs2005/plantkeeper/internal/server/models"
)

const selectView = `SELECT p.id, p.owner_id, p.created_at, a.plant_id, pl.name
		 FROM pots p
		 LEFT JOIN plant_pot_assignments a ON a.pot_id = p.id
		 LEFT JOIN plants pl ON pl.id = a.plant_id
		 `

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, ownerID int64) (*models.Pot, error) {
	query :=
		`INSERT INTO pots (owner_id)
		 VALUES ($1)
		 RETURNING id, created_at
		 `

	p := &models.Pot{OwnerID: ownerID}
	if err := r.db.QueryRowContext(ctx, query, ownerID).Scan(&p.ID, &p.CreatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Pot, error) {
	query :=
		`SELECT id, owner_id, created_at FROM pots
		 WHERE id = $1
		 `

	p := &models.Pot{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.OwnerID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) GetView(ctx context.Context, id, ownerID int64) (*models.PotView, error) {
	query := selectView + `WHERE p.id = $1 AND p.owner_id = $2`

	v, err := scanView(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return v, nil
}

func (r *PostgresRepository) ListViewsByOwner(ctx context.Context, ownerID int64) ([]models.PotView, error) {
	query := selectView + `WHERE p.owner_id = $1 ORDER BY p.id`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.PotView{}
	for rows.Next() {
		v, err := scanView(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanView(s scanner) (*models.PotView, error) {
	var (
		v         models.PotView
		plantID   sql.NullInt64
		plantName sql.NullString
	)
	if err := s.Scan(&v.ID, &v.OwnerID, &v.CreatedAt, &plantID, &plantName); err != nil {
		return nil, err
	}
	if plantID.Valid {
		v.PlantID = &plantID.Int64
	}
	if plantName.Valid {
		v.PlantName = &plantName.String
	}
	return &v, nil
}
