package models

import "time"

type PhotoStatus string

const (
	PhotoPending   PhotoStatus = "pending"
	PhotoCompleted PhotoStatus = "completed"
)

// Photo is an image of a plant kept in object storage under StorageKey.
type Photo struct {
	ID         int64
	PlantID    int64
	StorageKey string
	Status     PhotoStatus
	CreatedAt  time.Time
}
