// Package session issues and resolves opaque bearer tokens.
package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrInvalid is returned for unknown, expired, or revoked tokens.
var ErrInvalid = errors.New("invalid or expired session")

// Store keeps the mapping from token to player id.
type Store interface {
	Create(ctx context.Context, playerID int64) (string, error)
	Lookup(ctx context.Context, token string) (int64, error)
	Revoke(ctx context.Context, token string) error
}

func newToken() string {
	return uuid.NewString()
}

// Rotate revokes token and issues a fresh one for the same player.
func Rotate(ctx context.Context, s Store, token string) (string, int64, error) {
	playerID, err := s.Lookup(ctx, token)
	if err != nil {
		return "", 0, err
	}
	if err := s.Revoke(ctx, token); err != nil {
		return "", 0, err
	}
	next, err := s.Create(ctx, playerID)
	if err != nil {
		return "", 0, err
	}
	return next, playerID, nil
}
