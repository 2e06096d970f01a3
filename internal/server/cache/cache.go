// Package cache provides the key-value cache layer shared by the entity
// read-through cache and the session-token registry. A single backend
// instance serves both key families:
//
//	usuario:<cedula>  serialized entity
//	usuarios:all      serialized entity listing
//	session:<user>    currently valid signed token for that user
//
// The backend serializes per-key operations; compound get-then-set sequences
// are deliberately not made atomic, so cached reads may be stale for at most
// one TTL window after a concurrent write.
package cache

import (
	"context"
	"time"
)

const (
	usuarioKeyPrefix = "usuario:"
	sessionKeyPrefix = "session:"

	// UsuariosAllKey holds the serialized listing of all usuarios.
	UsuariosAllKey = "usuarios:all"

	// UsuarioKeyPattern matches every single-entity key.
	UsuarioKeyPattern = usuarioKeyPrefix + "*"
)

// Cache is the minimal contract both the Redis client and the in-memory
// test double satisfy. Get returns common.ErrorNotFound on a miss; any
// transport failure is wrapped in common.ErrorUnavailable so callers can
// tell "absent" from "unreachable".
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Keys(ctx context.Context, pattern string) ([]string, error)
}

// UsuarioKey returns the cache key for a single entity.
func UsuarioKey(cedula string) string {
	return usuarioKeyPrefix + cedula
}

// SessionKey returns the session-registry key for a username.
func SessionKey(username string) string {
	return sessionKeyPrefix + username
}
