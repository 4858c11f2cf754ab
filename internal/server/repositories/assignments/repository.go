// Package assignments stores plant to pot links. The table carries a
// unique constraint on each side, so a plant or a pot takes part in at
// most one link.
package assignments

import (
	"context"

	"github.com/dmitrijs2005/plantkeeper/internal/server/models"
)

type Repository interface {
	ExistsForPot(ctx context.Context, potID int64) (bool, error)
	ExistsForPlant(ctx context.Context, plantID int64) (bool, error)
	// Create inserts a link. Either side already linked yields
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, plantID, potID int64) (*models.Assignment, error)
	// DeleteOwned removes the link when the pot belongs to ownerID and
	// reports how many rows went away.
	DeleteOwned(ctx context.Context, plantID, potID, ownerID int64) (int64, error)
}
