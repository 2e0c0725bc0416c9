// Package cms implements the session gateway against the Payload CMS users
// API over HTTP.
package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"memberportal/internal/domain"
	"memberportal/internal/gateway"
	"memberportal/internal/metrics"
)

type Client struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

// NewClient builds a gateway client for the backend rooted at baseURL.
// Every call gets its own deadline of timeout; the underlying http.Client
// carries none so the per-call context stays in charge.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		timeout: timeout,
	}
}

// Wire shapes of the Payload users API. Errors and payload fields arrive in
// the same body, so each response struct carries both.

type apiError struct {
	Message string `json:"message"`
}

type userDoc struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Roles     []string `json:"roles"`
}

func (d *userDoc) toDomain() domain.User {
	return domain.User{
		ID:        d.ID,
		Email:     d.Email,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Roles:     d.Roles,
	}
}

type meResponse struct {
	User *userDoc `json:"user"`
}

type loginResponse struct {
	User   *userDoc   `json:"user"`
	Token  string     `json:"token"`
	Exp    int64      `json:"exp"`
	Errors []apiError `json:"errors"`
}

type createResponse struct {
	Errors []apiError `json:"errors"`
}

type logoutResponse struct {
	Errors []apiError `json:"errors"`
}

type listResponse struct {
	Docs   []userDoc  `json:"docs"`
	Errors []apiError `json:"errors"`
}

func (c *Client) CurrentUser(ctx context.Context, cookieHeader string) (*domain.User, error) {
	var out meResponse
	if err := c.do(ctx, "current_user", http.MethodGet, "/api/users/me", cookieHeader, nil, &out); err != nil {
		return nil, err
	}
	// The backend answers user:null for missing or expired sessions. That is
	// the normal anonymous case, not a failure.
	if out.User == nil {
		return nil, nil
	}
	u := out.User.toDomain()
	return &u, nil
}

func (c *Client) CreateAccount(ctx context.Context, input gateway.CreateAccountInput) error {
	payload := map[string]string{
		"email":     input.Email,
		"password":  input.Password,
		"firstName": input.FirstName,
		"lastName":  input.LastName,
	}
	var out createResponse
	if err := c.do(ctx, "create_account", http.MethodPost, "/api/users", "", payload, &out); err != nil {
		return err
	}
	if err := rejection(out.Errors); err != nil {
		return err
	}
	return nil
}

func (c *Client) StartSession(ctx context.Context, email, password string) (*domain.AuthSession, error) {
	payload := map[string]string{"email": email, "password": password}
	var out loginResponse
	if err := c.do(ctx, "start_session", http.MethodPost, "/api/users/login", "", payload, &out); err != nil {
		return nil, err
	}
	// Success and rejection both come back as JSON bodies; only the shape
	// tells them apart.
	if err := rejection(out.Errors); err != nil {
		return nil, err
	}
	if out.Token == "" || out.User == nil {
		return nil, fmt.Errorf("start session: backend returned neither a session nor errors")
	}

	expires := time.Unix(out.Exp, 0)
	if out.Exp == 0 {
		exp, ok := tokenExpiry(out.Token)
		if !ok {
			return nil, fmt.Errorf("start session: no expiry on session token")
		}
		expires = exp
	}

	return &domain.AuthSession{
		Token:   out.Token,
		Expires: expires,
		User:    out.User.toDomain(),
	}, nil
}

func (c *Client) EndSession(ctx context.Context, cookieHeader string) error {
	var out logoutResponse
	if err := c.do(ctx, "end_session", http.MethodPost, "/api/users/logout", cookieHeader, nil, &out); err != nil {
		return err
	}
	if err := rejection(out.Errors); err != nil {
		return err
	}
	return nil
}

func (c *Client) ListUsers(ctx context.Context, cookieHeader string) ([]domain.User, error) {
	var out listResponse
	if err := c.do(ctx, "list_users", http.MethodGet, "/api/users", cookieHeader, nil, &out); err != nil {
		return nil, err
	}
	if len(out.Errors) > 0 {
		return nil, fmt.Errorf("list users: backend refused: %s", out.Errors[0].Message)
	}
	users := make([]domain.User, 0, len(out.Docs))
	for i := range out.Docs {
		users = append(users, out.Docs[i].toDomain())
	}
	return users, nil
}

// Ping reports whether the backend answers HTTP at all. Any response counts,
// an unauthenticated 401 included; only transport failure is unhealthy.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/users/me", nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("ping backend: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// do runs one backend call: request build, per-call deadline, metrics, JSON
// decode into out. Credential-bearing calls pass an empty cookieHeader so no
// inbound session leaks into them.
func (c *Client) do(ctx context.Context, operation, method, path, cookieHeader string, payload, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", operation, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if cookieHeader != "" {
		req.Header.Set("Cookie", cookieHeader)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		observe(operation, "transport_error", time.Since(start))
		return fmt.Errorf("%s: %w", operation, err)
	}
	defer func() { _ = resp.Body.Close() }()
	observe(operation, strconv.Itoa(resp.StatusCode), time.Since(start))

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", operation, err)
	}
	_, _ = io.Copy(io.Discard, resp.Body) // drain so the connection can be reused by the pool
	return nil
}

func observe(operation, status string, d time.Duration) {
	metrics.BackendRequestsTotal.WithLabelValues(operation, status).Inc()
	metrics.BackendRequestDuration.WithLabelValues(operation, status).Observe(d.Seconds())
}

// rejection turns a backend errors array into the structured failure the
// rest of the system can show to the user.
func rejection(errs []apiError) error {
	if len(errs) == 0 {
		return nil
	}
	return &domain.RejectionError{Message: errs[0].Message}
}

// tokenExpiry reads the exp claim without verifying the signature. The token
// is only inspected to date the cookie; the backend remains the sole
// authority on its validity.
func tokenExpiry(raw string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
