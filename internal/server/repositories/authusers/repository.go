package authusers

import (
	"context"

	"github.com/tuanis-rp/roleplay-api/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.AuthUser) (*models.AuthUser, error)
	GetByUsername(ctx context.Context, username string) (*models.AuthUser, error)
	GetByEmail(ctx context.Context, email string) (*models.AuthUser, error)
}
