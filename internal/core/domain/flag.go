package domain

import (
	"errors"
	"fmt"
)

var ErrFlagNotFound = errors.New("flag not found")
var ErrFlagExists = errors.New("flag already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUnauthenticated = errors.New("not authenticated")
var ErrSessionExpired = errors.New("session expired")
var ErrAlreadyAuthenticated = errors.New("already authenticated")

// ErrUpstreamUnreachable marks transport-level failures talking to the
// remote flags server: no response was received at all.
var ErrUpstreamUnreachable = errors.New("flags server unreachable")

// UpstreamError carries a non-2xx response from the remote flags server.
// The gateway forwards Status and Detail to the caller unchanged so form
// views can render the server's message inline.
type UpstreamError struct {
	Status int
	Detail string
}

func (e *UpstreamError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("flags server returned %d", e.Status)
	}
	return fmt.Sprintf("flags server returned %d: %s", e.Status, e.Detail)
}

// FeatureFlag is the client-side copy of a flag owned by the remote flags
// server. Name is the canonical identifier: unique, and immutable as far as
// routing is concerned (renaming is a delete+recreate from this side).
// The copy is discarded and replaced wholesale on every list load; nothing
// here is ever patched locally.
type FeatureFlag struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Value           bool    `json:"value"`
	UsageTimestamps []int64 `json:"usage_timestamps"`
}

// FlagCheck is the answer to a single-flag status check. The remote server
// records a usage timestamp for the flag as a side effect of answering.
type FlagCheck struct {
	Name  string `json:"name"`
	Value bool   `json:"value"`
}
