package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/plantkeeper/internal/common"
	"github.com/dmitrijs2005/plantkeeper/internal/server/models"
	"github.com/dmitrijs2005/plantkeeper/internal/server/repositories/repomanager"
)

// PlantService manages the caller's plants.
type PlantService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewPlantService(db *sql.DB, m repomanager.RepositoryManager) *PlantService {
	return &PlantService{db: db, repomanager: m}
}

func (s *PlantService) Create(ctx context.Context, userID int64, name string) (*models.Plant, error) {
	name, err := plantName(name)
	if err != nil {
		return nil, err
	}

	p, err := s.repomanager.Plants(s.db).Create(ctx, userID, name)
	if err != nil {
		return nil, internal(err)
	}
	return p, nil
}

func (s *PlantService) List(ctx context.Context, userID int64) ([]models.Plant, error) {
	list, err := s.repomanager.Plants(s.db).ListByOwner(ctx, userID)
	if err != nil {
		return nil, internal(err)
	}
	return list, nil
}

func (s *PlantService) Get(ctx context.Context, userID, plantID int64) (*models.Plant, error) {
	p, err := ownedPlant(ctx, s.repomanager, s.db, userID, plantID)
	if err != nil {
		return nil, passThrough(err, common.ErrorNotFound)
	}
	return p, nil
}

func (s *PlantService) Rename(ctx context.Context, userID, plantID int64, name string) (*models.Plant, error) {
	name, err := plantName(name)
	if err != nil {
		return nil, err
	}

	p, err := s.repomanager.Plants(s.db).Rename(ctx, plantID, userID, name)
	if err != nil {
		return nil, passThrough(err, common.ErrorNotFound)
	}
	return p, nil
}

// Delete removes the plant. Its link and photos go with it.
func (s *PlantService) Delete(ctx context.Context, userID, plantID int64) error {
	if err := s.repomanager.Plants(s.db).Delete(ctx, plantID, userID); err != nil {
		return passThrough(err, common.ErrorNotFound)
	}
	return nil
}

func plantName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", common.NewValidationError("name", "must not be empty")
	}
	return name, nil
}
