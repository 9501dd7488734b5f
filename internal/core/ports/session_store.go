package ports

import (
	"context"

	"github.com/Ga-Alves/open-flag/internal/core/domain"
)

// SessionStore persists the token/email pair for each browser session.
// The pair is written and cleared as a unit; readers never observe a
// session with only one half present.
type SessionStore interface {
	Save(ctx context.Context, sess domain.Session) error
	// Get returns the session for id, or domain.ErrUnauthenticated when no
	// such session exists (never created, expired, or evicted).
	Get(ctx context.Context, id string) (domain.Session, error)
	Delete(ctx context.Context, id string) error
}
