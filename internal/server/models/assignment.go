package models

import "time"

// Assignment links one plant to one pot.
type Assignment struct {
	PlantID   int64
	PotID     int64
	CreatedAt time.Time
}
