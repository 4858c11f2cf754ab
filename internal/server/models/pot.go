package models

import "time"

type Pot struct {
	ID        int64
	OwnerID   int64
	CreatedAt time.Time
}

// PotView is a pot together with the name of its linked plant, if any.
type PotView struct {
	Pot
	PlantID   *int64
	PlantName *string
}
