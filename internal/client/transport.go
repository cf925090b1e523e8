package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"golang.org/x/sync/singleflight"
)

// ErrSessionExpired marks a session that can no longer be used: client
// methods return it when no signed-in session is stored. The transport
// clears the store when the server rejects the refresh token, then hands
// the caller the original 401 response rather than this error.
var ErrSessionExpired = errors.New("session expired, sign in again")

// publicPaths never carry a token and are never retried after a 401:
// a 401 from these endpoints means bad credentials, not an expired token.
var publicPaths = []string{
	"/api/auth/login",
	"/api/auth/register",
	"/api/auth/refresh",
}

func isPublicPath(path string) bool {
	for _, p := range publicPaths {
		if strings.HasSuffix(path, p) {
			return true
		}
	}
	return false
}

// authTransport injects the access token into outgoing requests and, on a
// 401, refreshes it and retries the request exactly once. Concurrent 401s
// collapse into a single refresh call.
type authTransport struct {
	base       http.RoundTripper
	store      Store
	refreshURL string
	group      singleflight.Group
}

func newAuthTransport(base http.RoundTripper, store Store, refreshURL string) *authTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &authTransport{
		base:       base,
		store:      store,
		refreshURL: refreshURL,
	}
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if isPublicPath(req.URL.Path) {
		return t.base.RoundTrip(req)
	}

	session, err := t.store.Load()
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return t.base.RoundTrip(req)
		}
		return nil, err
	}

	// Clone before mutating headers; retry needs a rewindable body.
	var bodyCopy []byte
	if req.Body != nil {
		bodyCopy, err = io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		req.Body = io.NopCloser(bytes.NewReader(bodyCopy))
	}

	first := req.Clone(req.Context())
	if bodyCopy != nil {
		first.Body = io.NopCloser(bytes.NewReader(bodyCopy))
	}
	first.Header.Set("Authorization", "Bearer "+session.AccessToken)

	resp, err := t.base.RoundTrip(first)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	// Keep the first response around: when the refresh token is also
	// dead the caller gets this 401 back, not a synthetic error.
	firstBody, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()

	token, err := t.refresh(req.Context(), session.AccessToken, session.RefreshToken)
	if err != nil {
		if errors.Is(err, ErrSessionExpired) && readErr == nil {
			resp.Body = io.NopCloser(bytes.NewReader(firstBody))
			return resp, nil
		}
		return nil, err
	}

	retry := req.Clone(req.Context())
	if bodyCopy != nil {
		retry.Body = io.NopCloser(bytes.NewReader(bodyCopy))
	}
	retry.Header.Set("Authorization", "Bearer "+token)

	return t.base.RoundTrip(retry)
}

// refresh exchanges the refresh token for a new access token. The
// singleflight group guarantees one refresh per token no matter how many
// requests hit a 401 at once; the others reuse its result.
func (t *authTransport) refresh(ctx context.Context, staleAccess, refreshToken string) (string, error) {
	v, err, _ := t.group.Do(refreshToken, func() (interface{}, error) {
		// Another caller may have refreshed between our 401 and now.
		if current, err := t.store.Load(); err == nil && current.AccessToken != staleAccess {
			return current.AccessToken, nil
		}

		payload, err := json.Marshal(map[string]string{"refreshToken": refreshToken})
		if err != nil {
			return "", err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.refreshURL, bytes.NewReader(payload))
		if err != nil {
			return "", err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := t.base.RoundTrip(req)
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			// Refresh token rejected: the session is dead.
			_ = t.store.Clear()
			return "", ErrSessionExpired
		}

		var body struct {
			Token string `json:"token"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return "", err
		}

		session, err := t.store.Load()
		if err != nil {
			if errors.Is(err, ErrNoSession) {
				return body.Token, nil
			}
			return "", err
		}
		session.AccessToken = body.Token
		if err := t.store.Save(session); err != nil {
			return "", err
		}

		return body.Token, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
