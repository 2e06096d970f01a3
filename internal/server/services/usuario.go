// Package services contains server-side business logic. This file implements
// UsuarioService, the read-through cache manager and write path for roleplay
// character records.
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tuanis-rp/roleplay-api/internal/common"
	"github.com/tuanis-rp/roleplay-api/internal/server/cache"
	"github.com/tuanis-rp/roleplay-api/internal/server/config"
	"github.com/tuanis-rp/roleplay-api/internal/server/models"
	"github.com/tuanis-rp/roleplay-api/internal/server/repositories/repomanager"
)

// UsuarioService provides entity operations with read-through caching:
//   - GetByCedula / List: cache probe first, store on miss, populate with TTL
//   - Create / Update / Delete: mutate the store, then schedule invalidation
//     of the affected keys without blocking or failing the caller
//
// A read that repopulates the cache after a concurrent write's invalidation
// has fired may re-cache pre-write data; that staleness is bounded by the
// TTL and accepted.
type UsuarioService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cache       cache.Cache
	invalidator *cache.Invalidator
	cacheTTL    time.Duration
}

// NewUsuarioService constructs a UsuarioService using repositories, the
// shared cache handle and server config.
func NewUsuarioService(db *sql.DB, m repomanager.RepositoryManager, c cache.Cache, inv *cache.Invalidator, cfg *config.Config) *UsuarioService {
	return &UsuarioService{
		db:          db,
		repomanager: m,
		cache:       c,
		invalidator: inv,
		cacheTTL:    cfg.CacheTTL,
	}
}

// GetByCedula returns a single record, serving from cache when possible.
// A cache transport failure is surfaced as ErrorUnavailable rather than
// silently treated as a miss.
func (s *UsuarioService) GetByCedula(ctx context.Context, cedula string) (*models.Usuario, error) {
	key := cache.UsuarioKey(cedula)

	cached, err := s.cache.Get(ctx, key)
	if err == nil {
		usuario := &models.Usuario{}
		if jsonErr := json.Unmarshal([]byte(cached), usuario); jsonErr == nil {
			return usuario, nil
		}
		// undecodable entry: fall through to the store, entry ages out via TTL
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	repo := s.repomanager.Usuarios(s.db)
	usuario, err := repo.GetByCedula(ctx, cedula)
	if err != nil {
		return nil, err
	}

	if err := s.populate(ctx, key, usuario); err != nil {
		return nil, err
	}

	return usuario, nil
}

// List returns all records, keyed in cache as a single collection entry.
func (s *UsuarioService) List(ctx context.Context) ([]*models.Usuario, error) {
	cached, err := s.cache.Get(ctx, cache.UsuariosAllKey)
	if err == nil {
		usuarios := []*models.Usuario{}
		if jsonErr := json.Unmarshal([]byte(cached), &usuarios); jsonErr == nil {
			return usuarios, nil
		}
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	repo := s.repomanager.Usuarios(s.db)
	usuarios, err := repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.populate(ctx, cache.UsuariosAllKey, usuarios); err != nil {
		return nil, err
	}

	return usuarios, nil
}

// Create inserts a new record. Duplicate cedulas yield ErrorAlreadyExists.
// The collection listing is invalidated asynchronously after the commit.
func (s *UsuarioService) Create(ctx context.Context, usuario *models.Usuario) (*models.Usuario, error) {
	repo := s.repomanager.Usuarios(s.db)
	created, err := repo.Create(ctx, usuario)
	if err != nil {
		return nil, err
	}

	s.invalidator.Submit(cache.UsuariosAllKey)

	return created, nil
}

// Update replaces every field of the record identified by cedula, then
// invalidates the entity key and the collection listing. A cedula change
// invalidates both the old and the new entity keys.
func (s *UsuarioService) Update(ctx context.Context, cedula string, usuario *models.Usuario) (*models.Usuario, error) {
	repo := s.repomanager.Usuarios(s.db)
	updated, err := repo.Update(ctx, cedula, usuario)
	if err != nil {
		return nil, err
	}

	keys := []string{cache.UsuarioKey(cedula), cache.UsuariosAllKey}
	if updated.Cedula != cedula {
		keys = append(keys, cache.UsuarioKey(updated.Cedula))
	}
	s.invalidator.Submit(keys...)

	return updated, nil
}

// Delete removes the record identified by cedula, then invalidates the
// entity key and the collection listing.
func (s *UsuarioService) Delete(ctx context.Context, cedula string) error {
	repo := s.repomanager.Usuarios(s.db)
	if err := repo.Delete(ctx, cedula); err != nil {
		return err
	}

	s.invalidator.Submit(cache.UsuarioKey(cedula), cache.UsuariosAllKey)

	return nil
}

func (s *UsuarioService) populate(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	return s.cache.Set(ctx, key, string(data), s.cacheTTL)
}
