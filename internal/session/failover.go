package session

import (
	"context"

	"github.com/rs/zerolog"
)

// FailoverRepository reads and writes through a primary repository and
// falls back to a secondary one when the primary is unavailable. Writes
// go to both so the fallback stays warm.
type FailoverRepository struct {
	primary  TokenRepository
	fallback TokenRepository
	logger   zerolog.Logger
}

// NewFailoverRepository creates a failover token repository.
func NewFailoverRepository(primary, fallback TokenRepository, logger zerolog.Logger) *FailoverRepository {
	return &FailoverRepository{
		primary:  primary,
		fallback: fallback,
		logger:   logger.With().Str("component", "session_failover").Logger(),
	}
}

func (f *FailoverRepository) Get(ctx context.Context, key string) (string, bool, error) {
	val, ok, err := f.primary.Get(ctx, key)
	if err == nil {
		return val, ok, nil
	}
	f.logger.Warn().Err(err).Str("key", key).Msg("primary get failed, using fallback")
	return f.fallback.Get(ctx, key)
}

func (f *FailoverRepository) Set(ctx context.Context, key, value string) error {
	primaryErr := f.primary.Set(ctx, key, value)
	if primaryErr != nil {
		f.logger.Warn().Err(primaryErr).Str("key", key).Msg("primary set failed")
	}
	if err := f.fallback.Set(ctx, key, value); err != nil {
		if primaryErr != nil {
			return err
		}
		f.logger.Warn().Err(err).Str("key", key).Msg("fallback set failed")
	}
	return nil
}

func (f *FailoverRepository) Delete(ctx context.Context, key string) error {
	primaryErr := f.primary.Delete(ctx, key)
	if primaryErr != nil {
		f.logger.Warn().Err(primaryErr).Str("key", key).Msg("primary delete failed")
	}
	if err := f.fallback.Delete(ctx, key); err != nil {
		if primaryErr != nil {
			return err
		}
		f.logger.Warn().Err(err).Str("key", key).Msg("fallback delete failed")
	}
	return nil
}
