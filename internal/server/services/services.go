// Package services contains server-side business logic: authentication,
// plant/pot ownership, links between them, sensor readings and photos.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/plantkeeper/internal/common"
	"github.com/dmitrijs2005/plantkeeper/internal/dbx"
	"github.com/dmitrijs2005/plantkeeper/internal/server/models"
	"github.com/dmitrijs2005/plantkeeper/internal/server/repositories/repomanager"
)

// withTx is a seam for tests that need to observe or serialize transactions.
var withTx = dbx.WithTx

// internal wraps an unexpected failure so it matches common.ErrorInternal
// while keeping the cause for logs.
func internal(err error) error {
	return fmt.Errorf("%w: %w", common.ErrorInternal, err)
}

// passThrough returns err unchanged when it already belongs to the public
// error taxonomy and wraps it as internal otherwise.
func passThrough(err error, known ...error) error {
	for _, k := range known {
		if errors.Is(err, k) {
			return k
		}
	}
	return internal(err)
}

// ownedPlant loads a plant of userID. Absent and foreign plants both give
// common.ErrorNotFound.
func ownedPlant(ctx context.Context, rm repomanager.RepositoryManager, db dbx.DBTX, userID, plantID int64) (*models.Plant, error) {
	p, err := rm.Plants(db).GetByID(ctx, plantID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != userID {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func ownedPot(ctx context.Context, rm repomanager.RepositoryManager, db dbx.DBTX, userID, potID int64) (*models.Pot, error) {
	p, err := rm.Pots(db).GetByID(ctx, potID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != userID {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func requireID(field string, id int64) error {
	if id <= 0 {
		return common.NewValidationError(field, "must be a positive integer")
	}
	return nil
}
