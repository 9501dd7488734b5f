package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Ga-Alves/open-flag/internal/core/analytics"
	"github.com/Ga-Alves/open-flag/internal/core/domain"
	"github.com/Ga-Alves/open-flag/internal/core/ports"
)

const routerSecret = "router-secret"

type memorySessionStore struct {
	sessions map[string]domain.Session
}

func (s *memorySessionStore) Save(_ context.Context, sess domain.Session) error {
	s.sessions[sess.ID] = sess
	return nil
}

func (s *memorySessionStore) Get(_ context.Context, id string) (domain.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return domain.Session{}, domain.ErrUnauthenticated
	}
	return sess, nil
}

func (s *memorySessionStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

// fixedFlagService answers every operation from a static list; the err
// field, when set, fails everything.
type fixedFlagService struct {
	flags []domain.FeatureFlag
	err   error
}

func (s *fixedFlagService) List(context.Context, domain.Session) ([]domain.FeatureFlag, error) {
	return s.flags, s.err
}

func (s *fixedFlagService) Create(context.Context, domain.Session, ports.CreateFlagInput) ([]domain.FeatureFlag, error) {
	return s.flags, s.err
}

func (s *fixedFlagService) Update(context.Context, domain.Session, string, ports.UpdateFlagInput) ([]domain.FeatureFlag, error) {
	return s.flags, s.err
}

func (s *fixedFlagService) Delete(context.Context, domain.Session, string) ([]domain.FeatureFlag, error) {
	return s.flags, s.err
}

func (s *fixedFlagService) Toggle(context.Context, domain.Session, string) (*ports.ToggleOutcome, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &ports.ToggleOutcome{Flags: s.flags}, nil
}

func (s *fixedFlagService) Check(context.Context, domain.Session, string) (*domain.FlagCheck, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.FlagCheck{}, nil
}

func (s *fixedFlagService) Usage(context.Context, domain.Session, string, string) (*analytics.Chart, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &analytics.Chart{}, nil
}

type noopAuthService struct{}

func (noopAuthService) Login(context.Context, string, string) (string, error) { return "t", nil }
func (noopAuthService) Register(context.Context, ports.RegisterInput) error   { return nil }
func (noopAuthService) Logout(context.Context, string) error                  { return nil }
func (noopAuthService) Profile(context.Context, domain.Session) (*ports.UserProfile, error) {
	return &ports.UserProfile{}, nil
}

type noopPinger struct{}

func (noopPinger) Ping(context.Context) error { return nil }

func newTestRouter(t *testing.T, flagService ports.FlagService, store *memorySessionStore) http.Handler {
	t.Helper()
	return NewRouter(Deps{
		FlagService:  flagService,
		AuthService:  noopAuthService{},
		SessionStore: store,
		Upstream:     noopPinger{},
		Redis:        redis.NewClient(&redis.Options{Addr: "localhost:6379"}),
		JWTSecret:    routerSecret,
		Logger:       zerolog.Nop(),
		Metrics:      prometheus.NewRegistry(),
	})
}

func sessionToken(t *testing.T, sid string) string {
	t.Helper()
	claims := jwt.MapClaims{"sid": sid, "exp": time.Now().Add(time.Hour).Unix()}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(routerSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestRouter_ProtectedRouteWithoutSession(t *testing.T) {
	store := &memorySessionStore{sessions: map[string]domain.Session{}}
	router := newTestRouter(t, &fixedFlagService{}, store)

	req := httptest.NewRequest(http.MethodGet, "/flags", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["redirect"] != "/login" {
		t.Fatalf("expected login redirect, got %q", body["redirect"])
	}
}

func TestRouter_ProtectedRouteWithSession(t *testing.T) {
	store := &memorySessionStore{sessions: map[string]domain.Session{
		"sid-1": {ID: "sid-1", Token: "tok", Email: "a@b.c"},
	}}
	svc := &fixedFlagService{flags: []domain.FeatureFlag{{Name: "A", Value: true}}}
	router := newTestRouter(t, svc, store)

	req := httptest.NewRequest(http.MethodGet, "/flags", nil)
	req.Header.Set("Authorization", "Bearer "+sessionToken(t, "sid-1"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_PublicOnlyRouteWithSession(t *testing.T) {
	store := &memorySessionStore{sessions: map[string]domain.Session{
		"sid-1": {ID: "sid-1", Token: "tok"},
	}}
	router := newTestRouter(t, &fixedFlagService{}, store)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.Header.Set("Authorization", "Bearer "+sessionToken(t, "sid-1"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["redirect"] != "/" {
		t.Fatalf("expected home redirect, got %q", body["redirect"])
	}
}

func TestRouter_UpstreamSessionExpirySurfacesAs401(t *testing.T) {
	// The session resolves locally, but the flags server rejected the
	// stored token mid-request.
	store := &memorySessionStore{sessions: map[string]domain.Session{
		"sid-1": {ID: "sid-1", Token: "stale", Email: "a@b.c"},
	}}
	svc := &fixedFlagService{err: domain.ErrSessionExpired}
	router := newTestRouter(t, svc, store)

	req := httptest.NewRequest(http.MethodPut, "/flags/A/toggle", nil)
	req.Header.Set("Authorization", "Bearer "+sessionToken(t, "sid-1"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["redirect"] != "/login" {
		t.Fatalf("expected login redirect, got %q", body["redirect"])
	}
}

func TestRouter_Liveness(t *testing.T) {
	store := &memorySessionStore{sessions: map[string]domain.Session{}}
	router := newTestRouter(t, &fixedFlagService{}, store)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
