package repomanager

import (
	"context"
	"database/sql"

	"github.com/tuanis-rp/roleplay-api/internal/dbx"
	"github.com/tuanis-rp/roleplay-api/internal/server/repositories/authusers"
	"github.com/tuanis-rp/roleplay-api/internal/server/repositories/usuarios"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Usuarios(db dbx.DBTX) usuarios.Repository
	AuthUsers(db dbx.DBTX) authusers.Repository
}
