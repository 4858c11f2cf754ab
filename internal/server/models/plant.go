package models

import "time"

type Plant struct {
	ID        int64
	Name      string
	OwnerID   int64
	CreatedAt time.Time
}
