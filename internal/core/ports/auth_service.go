package ports

import (
	"context"

	"github.com/Ga-Alves/open-flag/internal/core/domain"
)

// AuthService manages the gateway side of authentication: it trades
// credentials for an upstream bearer token, keeps the token/email pair in
// the session store, and hands the browser a signed session token.
type AuthService interface {
	// Login returns the signed gateway session token on success.
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, input RegisterInput) error
	// Logout clears the stored session. It never calls the flags server.
	Logout(ctx context.Context, sessionID string) error
	// Profile fetches the account behind sess. Any failure is reported as
	// domain.ErrUnauthenticated and the session is cleared: an expired
	// token and a network hiccup look identical from here, and both
	// degrade to logged-out.
	Profile(ctx context.Context, sess domain.Session) (*UserProfile, error)
}
