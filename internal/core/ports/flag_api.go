package ports

import (
	"context"

	"github.com/Ga-Alves/open-flag/internal/core/domain"
)

// CreateFlagInput carries the caller-supplied fields for a new flag.
// The initial value is not part of the input: flags are always created
// disabled, whatever the caller might think it wants.
type CreateFlagInput struct {
	Name        string
	Description string
}

// UpdateFlagInput is a partial update; nil fields are left untouched.
type UpdateFlagInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Value       *bool   `json:"value,omitempty"`
}

// ToggleResult is the flags server's answer to a toggle request.
type ToggleResult struct {
	Message  string `json:"message"`
	NewValue bool   `json:"new_value"`
}

// Credentials is a login request against the flags server.
type Credentials struct {
	Email    string
	Password string
}

// RegisterInput creates a new account on the flags server.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// UserProfile is the authenticated account as reported by the flags server.
type UserProfile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// FlagAPI is the typed client for the remote flags server. Every call goes
// through a single request chokepoint that injects the session's bearer
// token and enforces the 401 eviction policy: a rejected token clears the
// stored session and the call fails with domain.ErrSessionExpired, never a
// partial success. Other non-2xx responses surface as *domain.UpstreamError
// and transport failures wrap domain.ErrUpstreamUnreachable; nothing is
// retried.
type FlagAPI interface {
	ListFlags(ctx context.Context, sess domain.Session) ([]domain.FeatureFlag, error)
	CreateFlag(ctx context.Context, sess domain.Session, input CreateFlagInput) error
	UpdateFlag(ctx context.Context, sess domain.Session, name string, input UpdateFlagInput) error
	DeleteFlag(ctx context.Context, sess domain.Session, name string) error
	ToggleFlag(ctx context.Context, sess domain.Session, name string) (*ToggleResult, error)
	CheckFlag(ctx context.Context, sess domain.Session, name string) (*domain.FlagCheck, error)

	Login(ctx context.Context, creds Credentials) (string, error)
	Register(ctx context.Context, input RegisterInput) error
	Me(ctx context.Context, sess domain.Session) (*UserProfile, error)
}
