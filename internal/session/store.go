// Package session owns the auth token lifecycle for the current client
// instance. Tokens live in a durable client-local repository so a restart
// keeps the user signed in.
package session

import (
	"context"

	"github.com/rs/zerolog"
)

// Fixed storage keys. The presence of the access token key is the sole
// authentication signal consulted by the access gate.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
)

// TokenRepository is the persistence collaborator behind the store.
type TokenRepository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Store exposes the session token lifecycle. It performs no local token
// validation; expiry is discovered when a downstream request fails.
type Store struct {
	repo   TokenRepository
	logger zerolog.Logger
}

// NewStore creates a session store over the given repository.
func NewStore(repo TokenRepository, logger zerolog.Logger) *Store {
	return &Store{
		repo:   repo,
		logger: logger.With().Str("component", "session").Logger(),
	}
}

// SetToken stores the access token.
func (s *Store) SetToken(ctx context.Context, token string) error {
	return s.repo.Set(ctx, KeyAccessToken, token)
}

// Token returns the stored access token, or false if none is stored.
func (s *Store) Token(ctx context.Context) (string, bool, error) {
	return s.repo.Get(ctx, KeyAccessToken)
}

// SetRefreshToken stores the refresh token.
func (s *Store) SetRefreshToken(ctx context.Context, token string) error {
	return s.repo.Set(ctx, KeyRefreshToken, token)
}

// RefreshToken returns the stored refresh token, or false if none is stored.
func (s *Store) RefreshToken(ctx context.Context) (string, bool, error) {
	return s.repo.Get(ctx, KeyRefreshToken)
}

// Clear removes both tokens (logout).
func (s *Store) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, KeyAccessToken); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, KeyRefreshToken); err != nil {
		return err
	}
	s.logger.Info().Msg("session cleared")
	return nil
}

// IsAuthenticated reports whether an access token is present.
func (s *Store) IsAuthenticated(ctx context.Context) (bool, error) {
	_, ok, err := s.repo.Get(ctx, KeyAccessToken)
	if err != nil {
		return false, err
	}
	return ok, nil
}
