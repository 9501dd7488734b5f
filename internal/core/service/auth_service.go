package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Ga-Alves/open-flag/internal/core/domain"
	"github.com/Ga-Alves/open-flag/internal/core/ports"
)

// AuthService implements login, registration, logout and profile lookup.
// Credentials are verified by the remote flags server; the gateway only
// keeps the resulting token/email pair in the session store and gives the
// browser a signed HS256 token carrying the session id.
type AuthService struct {
	api       ports.FlagAPI
	store     ports.SessionStore
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(api ports.FlagAPI, store ports.SessionStore, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{api: api, store: store, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.api.Login(ctx, ports.Credentials{Email: email, Password: password})
	if err != nil {
		// A 401 from the login endpoint means the credentials were bad,
		// not that an existing session went stale.
		if errors.Is(err, domain.ErrSessionExpired) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	sess := domain.Session{
		ID:    uuid.NewString(),
		Token: token,
		Email: email,
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return "", err
	}

	signed, err := s.signSessionToken(sess)
	if err != nil {
		return "", err
	}

	s.log.Info().Str("email", email).Msg("session started")
	return signed, nil
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) error {
	return s.api.Register(ctx, input)
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.log.Info().Str("session_id", sessionID).Msg("session ended")
	return nil
}

// Profile treats every failure as "not logged in". An invalid token and a
// network hiccup are indistinguishable from this side, so both clear the
// session and degrade to logout.
func (s *AuthService) Profile(ctx context.Context, sess domain.Session) (*ports.UserProfile, error) {
	profile, err := s.api.Me(ctx, sess)
	if err != nil {
		if delErr := s.store.Delete(ctx, sess.ID); delErr != nil {
			s.log.Warn().Err(delErr).Str("session_id", sess.ID).Msg("failed to clear session after profile failure")
		}
		s.log.Debug().Err(err).Msg("profile fetch failed, treating as logged out")
		return nil, domain.ErrUnauthenticated
	}
	return profile, nil
}

func (s *AuthService) signSessionToken(sess domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid":   sess.ID,
		"email": sess.Email,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
