package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Ga-Alves/open-flag/internal/core/analytics"
	"github.com/Ga-Alves/open-flag/internal/core/domain"
	"github.com/Ga-Alves/open-flag/internal/core/ports"
)

// FlagService implements the flag list view-model. Every mutation is
// followed by an unconditional full reload from the flags server; the
// reloaded list is what callers render. Nothing is flipped or patched
// locally, so a concurrent external mutation is picked up on the very next
// action.
type FlagService struct {
	api ports.FlagAPI
	loc *time.Location
	log zerolog.Logger
}

// NewFlagService builds a FlagService aggregating usage in loc.
// A nil loc falls back to the process-local timezone.
func NewFlagService(api ports.FlagAPI, loc *time.Location, log zerolog.Logger) *FlagService {
	if loc == nil {
		loc = time.Local
	}
	return &FlagService{api: api, loc: loc, log: log}
}

func (s *FlagService) List(ctx context.Context, sess domain.Session) ([]domain.FeatureFlag, error) {
	return s.api.ListFlags(ctx, sess)
}

func (s *FlagService) Create(ctx context.Context, sess domain.Session, input ports.CreateFlagInput) ([]domain.FeatureFlag, error) {
	if err := s.api.CreateFlag(ctx, sess, input); err != nil {
		return nil, err
	}
	s.log.Info().Str("flag", input.Name).Msg("flag created")
	return s.api.ListFlags(ctx, sess)
}

func (s *FlagService) Update(ctx context.Context, sess domain.Session, name string, input ports.UpdateFlagInput) ([]domain.FeatureFlag, error) {
	if err := s.api.UpdateFlag(ctx, sess, name, input); err != nil {
		return nil, err
	}
	s.log.Info().Str("flag", name).Msg("flag updated")
	return s.api.ListFlags(ctx, sess)
}

func (s *FlagService) Delete(ctx context.Context, sess domain.Session, name string) ([]domain.FeatureFlag, error) {
	if err := s.api.DeleteFlag(ctx, sess, name); err != nil {
		return nil, err
	}
	s.log.Info().Str("flag", name).Msg("flag deleted")
	return s.api.ListFlags(ctx, sess)
}

// Toggle asks the server to flip the flag in place. The pre-toggle value is
// never read or assumed here: the server owns the authoritative state, and
// a client-computed negation would race with it.
func (s *FlagService) Toggle(ctx context.Context, sess domain.Session, name string) (*ports.ToggleOutcome, error) {
	result, err := s.api.ToggleFlag(ctx, sess, name)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("flag", name).Bool("new_value", result.NewValue).Msg("flag toggled")

	flags, err := s.api.ListFlags(ctx, sess)
	if err != nil {
		return nil, err
	}
	return &ports.ToggleOutcome{
		Message:  result.Message,
		NewValue: result.NewValue,
		Flags:    flags,
	}, nil
}

func (s *FlagService) Check(ctx context.Context, sess domain.Session, name string) (*domain.FlagCheck, error) {
	return s.api.CheckFlag(ctx, sess, name)
}

// Usage builds the analytics chart for one flag from a fresh list load.
// The timestamps always travel embedded in the list payload, so the lookup
// is a reload plus a scan by name.
func (s *FlagService) Usage(ctx context.Context, sess domain.Session, name, selectedDay string) (*analytics.Chart, error) {
	flags, err := s.api.ListFlags(ctx, sess)
	if err != nil {
		return nil, err
	}
	for _, flag := range flags {
		if flag.Name == name {
			chart := analytics.BuildChart(flag.UsageTimestamps, selectedDay, s.loc)
			return &chart, nil
		}
	}
	return nil, domain.ErrFlagNotFound
}
