// Package pots stores pots and reads them together with their linked plant.
package pots

import (
	"context"

	"github.com/dmitrijs2005/plantkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, ownerID int64) (*models.Pot, error)
	GetByID(ctx context.Context, id int64) (*models.Pot, error)
	// GetView returns the caller's pot or common.ErrorNotFound.
	GetView(ctx context.Context, id, ownerID int64) (*models.PotView, error)
	ListViewsByOwner(ctx context.Context, ownerID int64) ([]models.PotView, error)
}
