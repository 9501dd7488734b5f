// Package upstream implements the typed HTTP client for the remote flags
// server. Every outbound call funnels through a single chokepoint that sets
// the JSON content type, injects the session's bearer token, and enforces
// the 401 eviction policy.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Ga-Alves/open-flag/internal/api/metrics"
	"github.com/Ga-Alves/open-flag/internal/core/domain"
	"github.com/Ga-Alves/open-flag/internal/core/ports"
)

// SessionEvictor removes a stored session whose token the flags server has
// rejected. Satisfied by ports.SessionStore.
type SessionEvictor interface {
	Delete(ctx context.Context, id string) error
}

// Client talks to the remote flags server. No retries, no backoff, and no
// client-imposed timeout: a hung request lives until the inbound request
// context or the network layer cuts it off.
type Client struct {
	baseURL string
	http    *http.Client
	evictor SessionEvictor
	log     zerolog.Logger
}

// NewClient builds a Client for the server at baseURL. The evictor is
// invoked whenever any call comes back 401, including calls not triggered
// by direct user action.
func NewClient(baseURL string, evictor SessionEvictor, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		evictor: evictor,
		log:     log,
	}
}

// errorBody is the flags server's error envelope.
type errorBody struct {
	Detail string `json:"detail"`
}

// do issues one request. A non-nil body is JSON-encoded. Headers default to
// Content-Type: application/json plus the bearer token when the session has
// one; entries in extra override the defaults. The caller owns the returned
// response body.
func (c *Client) do(ctx context.Context, sess domain.Session, op, method, path string, body any, extra http.Header) (*http.Response, error) {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", op, err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", op, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if sess.Authenticated() {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}
	for key, values := range extra {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(op, "transport_error").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnreachable, err)
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(op, strconv.Itoa(resp.StatusCode)).Inc()
	metrics.UpstreamRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	if resp.StatusCode == http.StatusUnauthorized {
		c.evictSession(ctx, sess)
		closeBody(resp)
		return nil, fmt.Errorf("%s %s: %w", method, path, domain.ErrSessionExpired)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := readErrorDetail(resp)
		closeBody(resp)
		return nil, &domain.UpstreamError{Status: resp.StatusCode, Detail: detail}
	}

	return resp, nil
}

// doJSON runs do and decodes the response body into out when out is non-nil.
func (c *Client) doJSON(ctx context.Context, sess domain.Session, op, method, path string, body, out any) error {
	resp, err := c.do(ctx, sess, op, method, path, body, nil)
	if err != nil {
		return err
	}
	defer closeBody(resp)

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}

func (c *Client) evictSession(ctx context.Context, sess domain.Session) {
	if sess.ID == "" {
		return
	}
	metrics.SessionEvictionsTotal.Inc()
	if err := c.evictor.Delete(ctx, sess.ID); err != nil {
		c.log.Error().Err(err).Str("session_id", sess.ID).Msg("failed to evict session after 401")
		return
	}
	c.log.Info().Str("session_id", sess.ID).Msg("session evicted after 401")
}

func readErrorDetail(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return resp.Status
	}
	var body errorBody
	if err := json.Unmarshal(data, &body); err == nil && body.Detail != "" {
		return body.Detail
	}
	return resp.Status
}

func closeBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// --- Flag operations ---

func (c *Client) ListFlags(ctx context.Context, sess domain.Session) ([]domain.FeatureFlag, error) {
	var flags []domain.FeatureFlag
	if err := c.doJSON(ctx, sess, "list_flags", http.MethodGet, "/flags", nil, &flags); err != nil {
		return nil, err
	}
	return flags, nil
}

// CreateFlag creates a disabled flag. The initial value is forced to false
// here regardless of anything the caller supplied: new flags never start
// enabled.
func (c *Client) CreateFlag(ctx context.Context, sess domain.Session, input ports.CreateFlagInput) error {
	body := map[string]any{
		"name":        input.Name,
		"description": input.Description,
		"value":       false,
	}
	return c.doJSON(ctx, sess, "create_flag", http.MethodPost, "/flags", body, nil)
}

func (c *Client) UpdateFlag(ctx context.Context, sess domain.Session, name string, input ports.UpdateFlagInput) error {
	return c.doJSON(ctx, sess, "update_flag", http.MethodPut, "/flags/"+url.PathEscape(name), input, nil)
}

func (c *Client) DeleteFlag(ctx context.Context, sess domain.Session, name string) error {
	return c.doJSON(ctx, sess, "delete_flag", http.MethodDelete, "/flags/"+url.PathEscape(name), nil, nil)
}

func (c *Client) ToggleFlag(ctx context.Context, sess domain.Session, name string) (*ports.ToggleResult, error) {
	var result ports.ToggleResult
	if err := c.doJSON(ctx, sess, "toggle_flag", http.MethodPut, "/flags/"+url.PathEscape(name)+"/toggle", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CheckFlag reads one flag's current value. The server logs a usage
// timestamp for the flag as a side effect.
func (c *Client) CheckFlag(ctx context.Context, sess domain.Session, name string) (*domain.FlagCheck, error) {
	var check domain.FlagCheck
	if err := c.doJSON(ctx, sess, "check_flag", http.MethodGet, "/flags/"+url.PathEscape(name), nil, &check); err != nil {
		return nil, err
	}
	return &check, nil
}

// --- Auth operations ---

type loginResponse struct {
	Token string `json:"token"`
}

func (c *Client) Login(ctx context.Context, creds ports.Credentials) (string, error) {
	body := map[string]string{"email": creds.Email, "password": creds.Password}
	var resp loginResponse
	if err := c.doJSON(ctx, domain.Session{}, "login", http.MethodPost, "/login", body, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (c *Client) Register(ctx context.Context, input ports.RegisterInput) error {
	body := map[string]string{
		"name":     input.Name,
		"email":    input.Email,
		"password": input.Password,
	}
	return c.doJSON(ctx, domain.Session{}, "register", http.MethodPost, "/users", body, nil)
}

func (c *Client) Me(ctx context.Context, sess domain.Session) (*ports.UserProfile, error) {
	var profile ports.UserProfile
	if err := c.doJSON(ctx, sess, "me", http.MethodGet, "/me", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Ping reports whether the flags server answers HTTP at all. Any response,
// whatever the status, counts as reachable; only transport failures do not.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/flags", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstreamUnreachable, err)
	}
	closeBody(resp)
	return nil
}
