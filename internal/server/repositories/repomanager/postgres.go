// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/tuanis-rp/roleplay-api/internal/dbx"
	"github.com/tuanis-rp/roleplay-api/internal/server/migrations"
	"github.com/tuanis-rp/roleplay-api/internal/server/repositories/authusers"
	"github.com/tuanis-rp/roleplay-api/internal/server/repositories/usuarios"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// Usuarios returns a usuarios.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Usuarios(db dbx.DBTX) usuarios.Repository {
	return usuarios.NewPostgresRepository(db)
}

// AuthUsers returns an authusers.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) AuthUsers(db dbx.DBTX) authusers.Repository {
	return authusers.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetDialect("pgx")
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
