package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/plantkeeper/internal/common"
	"github.com/dmitrijs2005/plantkeeper/internal/server/models"
	"github.com/dmitrijs2005/plantkeeper/internal/server/repositories/repomanager"
)

// MeasurementService records and lists sensor readings of the caller's pots.
type MeasurementService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewMeasurementService(db *sql.DB, m repomanager.RepositoryManager) *MeasurementService {
	return &MeasurementService{db: db, repomanager: m}
}

func (s *MeasurementService) Record(ctx context.Context, userID, potID int64, m models.Measurement) (*models.Measurement, error) {
	if m.Timestamp.IsZero() {
		return nil, common.NewValidationError("timestamp", "is required")
	}
	if _, err := ownedPot(ctx, s.repomanager, s.db, userID, potID); err != nil {
		return nil, passThrough(err, common.ErrorNotFound)
	}

	m.PotID = potID
	saved, err := s.repomanager.Measurements(s.db).Create(ctx, &m)
	if err != nil {
		return nil, internal(err)
	}
	return saved, nil
}

// List returns the pot's readings, newest first.
func (s *MeasurementService) List(ctx context.Context, userID, potID int64) ([]models.Measurement, error) {
	if _, err := ownedPot(ctx, s.repomanager, s.db, userID, potID); err != nil {
		return nil, passThrough(err, common.ErrorNotFound)
	}

	list, err := s.repomanager.Measurements(s.db).ListByPot(ctx, potID)
	if err != nil {
		return nil, internal(err)
	}
	return list, nil
}
