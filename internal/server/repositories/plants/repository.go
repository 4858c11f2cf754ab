// Package plants stores plants. Every plant has a fixed owner.
package plants

import (
	"context"

	"github.com/dmitrijs2005/plantkeeper/internal/server/models"
)

// Repository methods taking an ownerID only touch rows of that owner and
// report common.ErrorNotFound otherwise.
type Repository interface {
	Create(ctx context.Context, ownerID int64, name string) (*models.Plant, error)
	GetByID(ctx context.Context, id int64) (*models.Plant, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Plant, error)
	Rename(ctx context.Context, id, ownerID int64, name string) (*models.Plant, error)
	Delete(ctx context.Context, id, ownerID int64) error
}
