package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hexanode/accounts/internal/dto"
)

// APIError carries the server's error body alongside the HTTP status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client talks to the accounts API. Protected calls go through the auth
// transport, which injects the access token and refreshes it on 401.
type Client struct {
	baseURL string
	store   Store
	http    *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. A shallow copy is
// wrapped with the refreshing auth transport, so the caller's client is
// left as-is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		copied := *hc
		c.http = &copied
	}
}

func New(baseURL string, store Store, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http.Transport = newAuthTransport(c.http.Transport, store, c.baseURL+"/api/auth/refresh")
	return c
}

// Session returns the stored session, or nil when signed out.
func (c *Client) Session() *Session {
	session, err := c.store.Load()
	if err != nil {
		return nil
	}
	return session
}

// IsAuthenticated reports whether a session is stored. It does not check
// expiry; the transport renews stale tokens on use.
func (c *Client) IsAuthenticated() bool {
	return c.Session().Authenticated()
}

// CurrentUser returns the cached user snapshot from the session, without
// a server round-trip, or nil when signed out.
func (c *Client) CurrentUser() *dto.UserResponse {
	session := c.Session()
	if !session.Authenticated() {
		return nil
	}
	user := session.User
	return &user
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errBody struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		if errBody.Message == "" {
			errBody.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: errBody.Message}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// Login authenticates and stores the returned session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var res dto.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", dto.LoginRequest{
		Email:    email,
		Password: password,
	}, &res)
	if err != nil {
		return nil, err
	}

	session := &Session{
		AccessToken:  res.Token,
		RefreshToken: res.RefreshToken,
		User:         res.User,
	}
	if err := c.store.Save(session); err != nil {
		return nil, err
	}
	return session, nil
}

// Register creates an account and stores the session it opens.
func (c *Client) Register(ctx context.Context, req *dto.RegisterRequest) (*Session, error) {
	var res dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &res); err != nil {
		return nil, err
	}

	session := &Session{
		AccessToken:  res.Token,
		RefreshToken: res.RefreshToken,
		User:         res.User,
	}
	if err := c.store.Save(session); err != nil {
		return nil, err
	}
	return session, nil
}

// Logout revokes the session server-side, then clears the local store.
// The local session is cleared even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	if clearErr := c.store.Clear(); clearErr != nil && err == nil {
		err = clearErr
	}
	return err
}

// Me fetches the signed-in user's profile from the server.
func (c *Client) Me(ctx context.Context) (*dto.UserResponse, error) {
	session := c.Session()
	if !session.Authenticated() {
		return nil, ErrSessionExpired
	}

	var res dto.UserResponse
	path := fmt.Sprintf("/api/users/%d", session.User.ID)
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// UpdateProfile modifies the signed-in user's profile fields.
func (c *Client) UpdateProfile(ctx context.Context, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	session := c.Session()
	if !session.Authenticated() {
		return nil, ErrSessionExpired
	}

	var res dto.UserResponse
	path := fmt.Sprintf("/api/users/%d", session.User.ID)
	if err := c.do(ctx, http.MethodPut, path, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// UpdateSettings applies preference changes for the signed-in user.
func (c *Client) UpdateSettings(ctx context.Context, req *dto.SettingsRequest) (*dto.SettingsResponse, error) {
	session := c.Session()
	if !session.Authenticated() {
		return nil, ErrSessionExpired
	}

	var res dto.SettingsResponse
	path := fmt.Sprintf("/api/users/%d/settings", session.User.ID)
	if err := c.do(ctx, http.MethodPut, path, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// UpdatePassword changes the signed-in user's password.
func (c *Client) UpdatePassword(ctx context.Context, req *dto.UpdatePasswordRequest) error {
	session := c.Session()
	if !session.Authenticated() {
		return ErrSessionExpired
	}

	path := fmt.Sprintf("/api/users/%d/password", session.User.ID)
	return c.do(ctx, http.MethodPut, path, req, nil)
}

// Connections lists the signed-in user's login history, newest first.
func (c *Client) Connections(ctx context.Context, page, limit int) ([]dto.ConnectionResponse, error) {
	session := c.Session()
	if !session.Authenticated() {
		return nil, ErrSessionExpired
	}

	var res struct {
		Data []dto.ConnectionResponse `json:"data"`
	}
	path := fmt.Sprintf("/api/users/%d/connections?page=%d&limit=%d", session.User.ID, page, limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return res.Data, nil
}
