// Package client is the portal's API client. It owns the client-side auth
// state: a cached identity refreshed by asking the server, never trusted for
// anything beyond deciding what to render. Every protected call is still
// checked server-side.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"sync"
)

var (
	ErrInvalidCredentials = errors.New("client: invalid credentials")
	ErrNotAuthenticated   = errors.New("client: not authenticated")
)

// Client talks to the portal over HTTP, carrying the session cookie in its
// jar. The cached identity is eventually consistent with server truth: it is
// updated from every login/logout/whoami round trip and cleared optimistically
// on logout before the server confirms.
type Client struct {
	baseURL string
	http    *http.Client

	mu         sync.RWMutex
	identityID string // "" = anonymous as far as we know
}

func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Jar: jar},
	}, nil
}

// CurrentIdentity returns the locally cached identity. UI gating only; the
// server re-checks on every protected call.
func (c *Client) CurrentIdentity() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.identityID, c.identityID != ""
}

func (c *Client) setIdentity(id string) {
	c.mu.Lock()
	c.identityID = id
	c.mu.Unlock()
}

// Login authenticates and updates the cached identity from the response.
func (c *Client) Login(ctx context.Context, id, password string) error {
	body, err := json.Marshal(map[string]string{
		"id":       id,
		"password": password,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var out struct {
			IdentityID string `json:"identity_id"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return err
		}
		c.setIdentity(out.IdentityID)
		return nil
	case http.StatusUnauthorized:
		c.setIdentity("")
		return ErrInvalidCredentials
	default:
		return fmt.Errorf("client: login failed with status %d", resp.StatusCode)
	}
}

// Logout clears the cache immediately, then tells the server and confirms
// with a who-am-I round trip.
func (c *Client) Logout(ctx context.Context) error {
	c.setIdentity("")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/logout", nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("client: logout failed with status %d", resp.StatusCode)
	}

	_, _, err = c.WhoAmI(ctx)
	return err
}

// WhoAmI asks the server for the session's identity and refreshes the cache.
func (c *Client) WhoAmI(ctx context.Context) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/me", nil)
	if err != nil {
		return "", false, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("client: whoami failed with status %d", resp.StatusCode)
	}

	var out struct {
		IdentityID *string `json:"identity_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", false, err
	}

	if out.IdentityID == nil || *out.IdentityID == "" {
		c.setIdentity("")
		return "", false, nil
	}
	c.setIdentity(*out.IdentityID)
	return *out.IdentityID, true, nil
}

// EnterProtected refreshes the cache before a protected view renders and
// reports whether navigation should proceed or redirect to login.
func (c *Client) EnterProtected(ctx context.Context) (bool, error) {
	_, ok, err := c.WhoAmI(ctx)
	if err != nil {
		return false, err
	}
	return ok, nil
}

// Items runs the protected query. A 401 means the server disagrees with our
// cache, so the cache is corrected on the spot.
func (c *Client) Items(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/items", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var out struct {
			Items []string `json:"items"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, err
		}
		return out.Items, nil
	case http.StatusUnauthorized:
		c.setIdentity("")
		return nil, ErrNotAuthenticated
	default:
		return nil, fmt.Errorf("client: items failed with status %d", resp.StatusCode)
	}
}
