// Package users is the credential store: one row per registered email.
package users

import (
	"context"

	"github.com/dmitrijs2005/plantkeeper/internal/server/models"
)

type Repository interface {
	// Create inserts a user. A taken email yields common.ErrorAlreadyExists.
	Create(ctx context.Context, email, passwordHash string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
