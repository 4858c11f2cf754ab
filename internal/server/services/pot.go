package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/plantkeeper/internal/common"
	"github.com/dmitrijs2005/plantkeeper/internal/server/models"
	"github.com/dmitrijs2005/plantkeeper/internal/server/repositories/repomanager"
)

// PotService manages the caller's pots.
type PotService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewPotService(db *sql.DB, m repomanager.RepositoryManager) *PotService {
	return &PotService{db: db, repomanager: m}
}

func (s *PotService) Create(ctx context.Context, userID int64) (*models.PotView, error) {
	p, err := s.repomanager.Pots(s.db).Create(ctx, userID)
	if err != nil {
		return nil, internal(err)
	}
	return &models.PotView{Pot: *p}, nil
}

func (s *PotService) List(ctx context.Context, userID int64) ([]models.PotView, error) {
	list, err := s.repomanager.Pots(s.db).ListViewsByOwner(ctx, userID)
	if err != nil {
		return nil, internal(err)
	}
	return list, nil
}

func (s *PotService) Get(ctx context.Context, userID, potID int64) (*models.PotView, error) {
	v, err := s.repomanager.Pots(s.db).GetView(ctx, potID, userID)
	if err != nil {
		return nil, passThrough(err, common.ErrorNotFound)
	}
	return v, nil
}
