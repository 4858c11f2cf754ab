package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/plantkeeper/internal/common"
	"github.com/dmitrijs2005/plantkeeper/internal/server/models"
	"github.com/dmitrijs2005/plantkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/plantkeeper/internal/server/storage"
)

// Presigner issues upload and download URLs for object keys.
type Presigner interface {
	PresignPut(ctx context.Context, key string) (string, error)
	PresignGet(ctx context.Context, key string) (string, error)
}

// newPhotoKey is a seam for deterministic keys in tests.
var newPhotoKey = storage.NewPhotoKey

// PhotoURL pairs a photo with a download URL. URL is empty until the
// upload has been completed.
type PhotoURL struct {
	models.Photo
	URL string
}

// PhotoService tracks plant photos stored in object storage. Clients upload
// the bytes straight to the bucket with a presigned URL.
type PhotoService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	presigner   Presigner
}

func NewPhotoService(db *sql.DB, m repomanager.RepositoryManager, p Presigner) *PhotoService {
	return &PhotoService{db: db, repomanager: m, presigner: p}
}

// RequestUpload records a pending photo for the plant and returns it with
// a presigned PUT URL.
func (s *PhotoService) RequestUpload(ctx context.Context, userID, plantID int64) (*PhotoURL, error) {
	if _, err := ownedPlant(ctx, s.repomanager, s.db, userID, plantID); err != nil {
		return nil, passThrough(err, common.ErrorNotFound)
	}

	key := newPhotoKey(plantID)
	url, err := s.presigner.PresignPut(ctx, key)
	if err != nil {
		return nil, internal(err)
	}

	photo, err := s.repomanager.Photos(s.db).Create(ctx, plantID, key)
	if err != nil {
		return nil, internal(err)
	}
	return &PhotoURL{Photo: *photo, URL: url}, nil
}

// Complete marks an uploaded photo as available.
func (s *PhotoService) Complete(ctx context.Context, userID, plantID, photoID int64) (*models.Photo, error) {
	if _, err := ownedPlant(ctx, s.repomanager, s.db, userID, plantID); err != nil {
		return nil, passThrough(err, common.ErrorNotFound)
	}

	p, err := s.repomanager.Photos(s.db).MarkCompleted(ctx, photoID, plantID)
	if err != nil {
		return nil, passThrough(err, common.ErrorNotFound)
	}
	return p, nil
}

// List returns the plant's photos; completed ones carry a presigned GET URL.
func (s *PhotoService) List(ctx context.Context, userID, plantID int64) ([]PhotoURL, error) {
	if _, err := ownedPlant(ctx, s.repomanager, s.db, userID, plantID); err != nil {
		return nil, passThrough(err, common.ErrorNotFound)
	}

	list, err := s.repomanager.Photos(s.db).ListByPlant(ctx, plantID)
	if err != nil {
		return nil, internal(err)
	}

	result := make([]PhotoURL, 0, len(list))
	for _, p := range list {
		item := PhotoURL{Photo: p}
		if p.Status == models.PhotoCompleted {
			url, err := s.presigner.PresignGet(ctx, p.StorageKey)
			if err != nil {
				return nil, internal(err)
			}
			item.URL = url
		}
		result = append(result, item)
	}
	return result, nil
}
