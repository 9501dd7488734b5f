package ports

import (
	"context"

	"github.com/Ga-Alves/open-flag/internal/core/analytics"
	"github.com/Ga-Alves/open-flag/internal/core/domain"
)

// ToggleOutcome pairs the server's toggle response with the reloaded list.
type ToggleOutcome struct {
	Message  string               `json:"message"`
	NewValue bool                 `json:"new_value"`
	Flags    []domain.FeatureFlag `json:"flags"`
}

// FlagService is the view-model behind the flag list. Mutations carry no
// payload of their own: each one is followed unconditionally by a full list
// reload, and the refreshed list is the result. The service never trusts a
// locally patched copy to stay consistent with the server.
type FlagService interface {
	List(ctx context.Context, sess domain.Session) ([]domain.FeatureFlag, error)
	Create(ctx context.Context, sess domain.Session, input CreateFlagInput) ([]domain.FeatureFlag, error)
	Update(ctx context.Context, sess domain.Session, name string, input UpdateFlagInput) ([]domain.FeatureFlag, error)
	Delete(ctx context.Context, sess domain.Session, name string) ([]domain.FeatureFlag, error)
	Toggle(ctx context.Context, sess domain.Session, name string) (*ToggleOutcome, error)
	Check(ctx context.Context, sess domain.Session, name string) (*domain.FlagCheck, error)
	// Usage builds the analytics chart for one flag. An empty selectedDay
	// yields the daily series; a DD/MM/YYYY day yields the hourly one.
	Usage(ctx context.Context, sess domain.Session, name, selectedDay string) (*analytics.Chart, error)
}
