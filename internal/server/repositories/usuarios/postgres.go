// Package usuarios provides persistence for roleplay character records,
// keyed by their cedula (unique natural key).
package usuarios

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tuanis-rp/roleplay-api/internal/common"
	"github.com/tuanis-rp/roleplay-api/internal/dbx"
	"github.com/tuanis-rp/roleplay-api/internal/server/models"
)

const pgUniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, usuario *models.Usuario) (*models.Usuario, error) {

	query :=
		`INSERT INTO usuarios (nombre, apellido, nacionalidad, estatura, fecha_nacimiento, edad, cedula)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		usuario.Nombre, usuario.Apellido, usuario.Nacionalidad, usuario.Estatura,
		usuario.FechaNacimiento, usuario.Edad, usuario.Cedula).Scan(&usuario.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return usuario, nil
}

func (r *PostgresRepository) GetByCedula(ctx context.Context, cedula string) (*models.Usuario, error) {
	query :=
		`SELECT id, nombre, apellido, nacionalidad, estatura, fecha_nacimiento, edad, cedula
		 FROM usuarios
		 WHERE cedula = $1
		 `

	usuario := &models.Usuario{}
	err := r.db.QueryRowContext(ctx, query, cedula).Scan(
		&usuario.ID, &usuario.Nombre, &usuario.Apellido, &usuario.Nacionalidad,
		&usuario.Estatura, &usuario.FechaNacimiento, &usuario.Edad, &usuario.Cedula)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return usuario, nil
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]*models.Usuario, error) {
	query :=
		`SELECT id, nombre, apellido, nacionalidad, estatura, fecha_nacimiento, edad, cedula
		 FROM usuarios
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Usuario{}
	for rows.Next() {
		usuario := &models.Usuario{}
		if err := rows.Scan(
			&usuario.ID, &usuario.Nombre, &usuario.Apellido, &usuario.Nacionalidad,
			&usuario.Estatura, &usuario.FechaNacimiento, &usuario.Edad, &usuario.Cedula); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, usuario)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// Update replaces every field of the record identified by cedula. The cedula
// itself may change; callers are responsible for invalidating both keys.
func (r *PostgresRepository) Update(ctx context.Context, cedula string, usuario *models.Usuario) (*models.Usuario, error) {
	query :=
		`UPDATE usuarios
		 SET nombre = $1, apellido = $2, nacionalidad = $3, estatura = $4,
		     fecha_nacimiento = $5, edad = $6, cedula = $7
		 WHERE cedula = $8
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		usuario.Nombre, usuario.Apellido, usuario.Nacionalidad, usuario.Estatura,
		usuario.FechaNacimiento, usuario.Edad, usuario.Cedula, cedula).Scan(&usuario.ID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		if isUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return usuario, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, cedula string) error {
	query := `DELETE FROM usuarios WHERE cedula = $1`

	res, err := r.db.ExecContext(ctx, query, cedula)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
