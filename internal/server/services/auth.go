// This file implements AuthService: registration, login, and the session
// registry that makes signed tokens revocable server-side.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tuanis-rp/roleplay-api/internal/common"
	"github.com/tuanis-rp/roleplay-api/internal/dbx"
	"github.com/tuanis-rp/roleplay-api/internal/server/auth"
	"github.com/tuanis-rp/roleplay-api/internal/server/cache"
	"github.com/tuanis-rp/roleplay-api/internal/server/config"
	"github.com/tuanis-rp/roleplay-api/internal/server/models"
	"github.com/tuanis-rp/roleplay-api/internal/server/repositories/repomanager"
)

// AuthService provides authentication operations:
//   - Register: create credential records
//   - Login: verify credentials, mint a token, register the session
//   - Validate: signature + expiry + session-registry equality
//   - Logout: revoke the session
//
// A signature alone cannot support logout: a stateless token stays valid
// until its embedded expiry regardless of server-side intent. The cache-held
// session entry is therefore the source of truth for whether a token is
// currently live, which also bounds each user to one active session. The
// cost is that cache unavailability degrades authentication to failure,
// never fail-open.
type AuthService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	cache         cache.Cache
	jwtSecret     []byte
	tokenValidity time.Duration
}

// NewAuthService constructs an AuthService using repositories, the shared
// cache handle and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, c cache.Cache, cfg *config.Config) *AuthService {
	return &AuthService{
		db:            db,
		repomanager:   m,
		cache:         c,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.AccessTokenValidityDuration,
	}
}

// Register creates a credential record with a bcrypt-hashed password.
// Colliding usernames or emails yield ErrorAlreadyExists. The existence
// checks and the insert run in one transaction; the unique indexes are the
// backstop against a concurrent registration committing in between.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.AuthUser, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.AuthUser{
		Username:       username,
		Email:          email,
		HashedPassword: string(hash),
		IsActive:       true,
	}

	var created *models.AuthUser
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.AuthUsers(tx)

		if _, err := repo.GetByUsername(ctx, username); err == nil {
			return common.ErrorAlreadyExists
		} else if !errors.Is(err, common.ErrorNotFound) {
			return err
		}
		if _, err := repo.GetByEmail(ctx, email); err == nil {
			return common.ErrorAlreadyExists
		} else if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		var createErr error
		created, createErr = repo.Create(ctx, user)
		return createErr
	}); err != nil {
		return nil, err
	}

	return created, nil
}

// Login verifies the password and, on success, mints a signed token and
// registers it under session:<username> with a TTL equal to the token
// lifetime. A fresh login overwrites the previous entry, revoking any older
// still-signed token for the same user.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	repo := s.repomanager.AuthUsers(s.db)
	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.Username, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return "", common.ErrorInternal
	}

	if err := s.cache.Set(ctx, cache.SessionKey(user.Username), token, s.tokenValidity); err != nil {
		return "", fmt.Errorf("session register: %w", err)
	}

	return token, nil
}

// Validate checks, in order: signature and embedded expiry, then presence
// and exact equality of the session-registry entry. Only when all pass does
// it return the principal's username. A registry mismatch covers the case
// where a newer login replaced the session; a registry miss covers logout
// and TTL expiry. Cache transport failure surfaces as ErrorUnavailable.
func (s *AuthService) Validate(ctx context.Context, token string) (string, error) {
	username, err := auth.GetUsernameFromToken(token, s.jwtSecret)
	if err != nil {
		return "", common.ErrInvalidToken
	}

	registered, err := s.cache.Get(ctx, cache.SessionKey(username))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrInvalidToken
		}
		return "", err
	}
	if registered != token {
		return "", common.ErrInvalidToken
	}

	return username, nil
}

// Profile returns the credential record for a validated principal.
func (s *AuthService) Profile(ctx context.Context, username string) (*models.AuthUser, error) {
	repo := s.repomanager.AuthUsers(s.db)
	return repo.GetByUsername(ctx, username)
}

// Logout deletes the session-registry entry, immediately revoking the
// token regardless of its remaining signature validity. Revoking an absent
// session is a silent success.
func (s *AuthService) Logout(ctx context.Context, username string) error {
	return s.cache.Delete(ctx, cache.SessionKey(username))
}
