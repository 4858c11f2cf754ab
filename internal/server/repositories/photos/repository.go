// Package photos stores metadata of plant photos kept in object storage.
package photos

import (
	"context"

	"github.com/dmitrijs2005/plantkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, plantID int64, storageKey string) (*models.Photo, error)
	ListByPlant(ctx context.Context, plantID int64) ([]models.Photo, error)
	// MarkCompleted flips a photo of plantID to completed, or returns
	// common.ErrorNotFound.
	MarkCompleted(ctx context.Context, id, plantID int64) (*models.Photo, error)
}
