package usuarios

import (
	"context"

	"github.com/tuanis-rp/roleplay-api/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, usuario *models.Usuario) (*models.Usuario, error)
	GetByCedula(ctx context.Context, cedula string) (*models.Usuario, error)
	GetAll(ctx context.Context) ([]*models.Usuario, error)
	Update(ctx context.Context, cedula string, usuario *models.Usuario) (*models.Usuario, error)
	Delete(ctx context.Context, cedula string) error
}
