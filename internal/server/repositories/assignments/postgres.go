package assignments

import (
	"context"
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

func (r *PostgresRepository) ExistsForPot(ctx context.Context, potID int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM plant_pot_assignments WHERE pot_id = $1)`, potID)
}

func (r *PostgresRepository) ExistsForPlant(ctx context.Context, plantID int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM plant_pot_assignments WHERE plant_id = $1)`, plantID)
}

func (r *PostgresRepository) exists(ctx context.Context, query string, id int64) (bool, error) {
	var found bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&found); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return found, nil
}

func (r *PostgresRepository) Create(ctx context.Context, plantID, potID int64) (*models.Assignment, error) {
	query :=
		`INSERT INTO plant_pot_assignments (plant_id, pot_id)
		 VALUES ($1, $2)
		 RETURNING created_at
		 `

	a := &models.Assignment{PlantID: plantID, PotID: potID}
	if err := r.db.QueryRowContext(ctx, query, plantID, potID).Scan(&a.CreatedAt); err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", common.ErrorAlreadyExists, dbx.ConstraintName(err))
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) DeleteOwned(ctx context.Context, plantID, potID, ownerID int64) (int64, error) {
	query :=
		`DELETE FROM plant_pot_assignments a
		 USING pots p
		 WHERE a.pot_id = p.id
		   AND a.plant_id = $1
		   AND a.pot_id = $2
		   AND p.owner_id = $3
		 `

	res, err := r.db.ExecContext(ctx, query, plantID, potID, ownerID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
