package nav

import (
	"context"

	"github.com/rs/zerolog"

	"lacquer/internal/domain"
	"lacquer/internal/metrics"
)

// Decision is the outcome of an access check.
type Decision int

const (
	Allow Decision = iota
	RedirectToLogin
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "redirect_to_login"
}

// SessionChecker reports authentication status.
type SessionChecker interface {
	IsAuthenticated(ctx context.Context) (bool, error)
}

// Gate decides whether a view may be entered. It is evaluated fresh on
// every navigation; nothing is cached.
type Gate struct {
	sessions SessionChecker
	logger   zerolog.Logger
}

// NewGate creates an access gate over the session store.
func NewGate(sessions SessionChecker, logger zerolog.Logger) *Gate {
	return &Gate{
		sessions: sessions,
		logger:   logger.With().Str("component", "gate").Logger(),
	}
}

// Authorize allows public views unconditionally and protected views only
// for authenticated sessions. A storage failure counts as unauthenticated.
func (g *Gate) Authorize(ctx context.Context, view domain.View) Decision {
	if view.Public() {
		return Allow
	}
	if g.Authenticated(ctx) {
		return Allow
	}
	metrics.IncNavigationDenied()
	g.logger.Debug().Str("view", string(view)).Msg("navigation denied")
	return RedirectToLogin
}

// Authenticated reports whether the current session holds a token.
func (g *Gate) Authenticated(ctx context.Context) bool {
	ok, err := g.sessions.IsAuthenticated(ctx)
	if err != nil {
		g.logger.Warn().Err(err).Msg("session check failed, treating as unauthenticated")
		return false
	}
	return ok
}
