// Package measurements stores sensor readings reported for pots.
package measurements

import (
	"context"

	"github.com/dmitrijs2005/plantkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, m *models.Measurement) (*models.Measurement, error)
	// ListByPot returns readings newest first.
	ListByPot(ctx context.Context, potID int64) ([]models.Measurement, error)
}
