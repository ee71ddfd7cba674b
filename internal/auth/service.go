// Package auth orchestrates login, registration and token refresh against
// the auth service and keeps the session store in sync.
package auth

import (
	"context"
	"net/http"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"lacquer/internal/authapi"
	"lacquer/internal/domain"
	"lacquer/internal/metrics"
	"lacquer/internal/session"
)

// Service drives the authentication lifecycle.
type Service struct {
	client   *authapi.Client
	sessions *session.Store
	limiter  *rate.Limiter
	logger   zerolog.Logger

	mu       sync.Mutex
	inFlight bool
}

// NewService creates an auth service. perMinute/burst bound credential
// submissions; the in-flight guard additionally rejects a second
// login/register while one is suspended on the network.
func NewService(client *authapi.Client, sessions *session.Store, perMinute, burst int, logger zerolog.Logger) *Service {
	if perMinute <= 0 {
		perMinute = 10
	}
	if burst <= 0 {
		burst = 3
	}
	return &Service{
		client:   client,
		sessions: sessions,
		limiter:  rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), burst),
		logger:   logger.With().Str("component", "auth").Logger(),
	}
}

func (s *Service) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return domain.ErrRequestInFlight
	}
	s.inFlight = true
	return nil
}

func (s *Service) end() {
	s.mu.Lock()
	s.inFlight = false
	s.mu.Unlock()
}

// Login authenticates and persists the returned token pair.
func (s *Service) Login(ctx context.Context, email, password string) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	if !s.limiter.Allow() {
		metrics.IncAuthRequest("login", "throttled")
		return domain.ErrTooManyAttempts
	}

	tokens, err := s.client.Login(ctx, email, password)
	if err != nil {
		metrics.IncAuthRequest("login", "error")
		s.logger.Warn().Err(err).Str("email", email).Msg("login failed")
		return err
	}

	if err := s.storeTokens(ctx, tokens); err != nil {
		return err
	}
	metrics.IncAuthRequest("login", "ok")
	s.logger.Info().Str("email", email).Msg("logged in")
	return nil
}

// Register creates an account. It does not log the new user in; the
// auth service issues tokens only through login.
func (s *Service) Register(ctx context.Context, req authapi.RegisterRequest) (*domain.User, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	user, err := s.client.Register(ctx, req)
	if err != nil {
		metrics.IncAuthRequest("register", "error")
		return nil, err
	}
	metrics.IncAuthRequest("register", "ok")
	s.logger.Info().Str("username", user.Username).Msg("registered")
	return user, nil
}

// Refresh mints a new token pair from the stored refresh token. Fails
// locally with ErrNoRefreshToken when none is stored; the caller must
// force a re-login in that case.
func (s *Service) Refresh(ctx context.Context) error {
	refresh, ok, err := s.sessions.RefreshToken(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNoRefreshToken
	}

	tokens, err := s.client.Refresh(ctx, refresh)
	if err != nil {
		metrics.IncAuthRequest("refresh", "error")
		return err
	}
	if err := s.storeTokens(ctx, tokens); err != nil {
		return err
	}
	metrics.IncAuthRequest("refresh", "ok")
	return nil
}

// CurrentUser fetches the profile of the signed-in user.
func (s *Service) CurrentUser(ctx context.Context) (*domain.User, error) {
	token, ok, err := s.sessions.Token(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &domain.AuthError{StatusCode: http.StatusUnauthorized, Detail: "not authenticated"}
	}
	return s.client.Me(ctx, token)
}

// Logout clears the stored session.
func (s *Service) Logout(ctx context.Context) error {
	return s.sessions.Clear(ctx)
}

func (s *Service) storeTokens(ctx context.Context, tokens *authapi.TokenResponse) error {
	if err := s.sessions.SetToken(ctx, tokens.AccessToken); err != nil {
		return err
	}
	return s.sessions.SetRefreshToken(ctx, tokens.RefreshToken)
}
