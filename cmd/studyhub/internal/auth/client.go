// Copyright (C) 2025 StudyHub (support@studyhub.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

const (
	defaultBaseURL  = "https://identitytoolkit.googleapis.com"
	defaultTokenURL = "https://securetoken.googleapis.com"
	requestTimeout  = 20 * time.Second

	// refreshSlack refreshes tokens slightly before they expire so an
	// API call never races the expiry.
	refreshSlack = 30 * time.Second
)

// Config wires the identity client.
type Config struct {
	// APIKey is the identity project's web API key.
	APIKey string
	// BaseURL overrides the Identity Toolkit endpoint (tests, emulators).
	BaseURL string
	// TokenURL overrides the secure-token endpoint.
	TokenURL string
	// DataDir is where the session and cooldown files live.
	DataDir string
}

// Client manages accounts and the local session. It implements the API
// client's TokenSource contract via IDToken.
type Client struct {
	cfg      Config
	httpc    *http.Client
	log      *slog.Logger
	cooldown *CooldownStore

	mu      sync.Mutex
	session *Session
}

// NewClient loads any persisted session and returns a ready client.
func NewClient(cfg Config, log *slog.Logger) (*Client, error) {
	if log == nil {
		log = slog.Default()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = defaultTokenURL
	}

	cooldown, err := NewCooldownStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	session, err := loadSession(cfg.DataDir)
	if err != nil {
		// A corrupt session file should not brick the CLI.
		log.Warn("discarding unreadable session", "error", err)
		session = nil
	}
	return &Client{
		cfg:      cfg,
		httpc:    &http.Client{Timeout: requestTimeout},
		log:      log,
		cooldown: cooldown,
		session:  session,
	}, nil
}

// CurrentSession returns the signed-in session, or an AuthError when
// nobody is signed in.
func (c *Client) CurrentSession() (*Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil, &AuthError{
			Type:        AuthErrNoSession,
			Message:     "Not signed in.",
			Remediation: "Run 'studyhub login' first.",
		}
	}
	return c.session, nil
}

// SignUp creates an account, sets the display name, and sends the
// verification email. No session is persisted; the user must verify and
// then sign in.
func (c *Client) SignUp(ctx context.Context, email, password, displayName string) error {
	var created struct {
		LocalID string `json:"localId"`
		IDToken string `json:"idToken"`
	}
	err := c.postIdentity(ctx, "accounts:signUp", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}, &created)
	if err != nil {
		return err
	}

	if displayName != "" {
		err = c.postIdentity(ctx, "accounts:update", map[string]any{
			"idToken":     created.IDToken,
			"displayName": displayName,
		}, nil)
		if err != nil {
			// The account exists; a failed profile update is not fatal.
			c.log.Warn("setting display name failed", "error", err)
		}
	}

	if err := c.sendVerification(ctx, created.IDToken); err != nil {
		return err
	}
	c.log.Info("account created", "uid", created.LocalID)
	return nil
}

// SignIn authenticates and persists the session. Accounts that have not
// verified their email are rejected and left signed out.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var signedIn struct {
		LocalID      string `json:"localId"`
		Email        string `json:"email"`
		DisplayName  string `json:"displayName"`
		IDToken      string `json:"idToken"`
		RefreshToken string `json:"refreshToken"`
		ExpiresIn    string `json:"expiresIn"`
	}
	err := c.postIdentity(ctx, "accounts:signInWithPassword", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}, &signedIn)
	if err != nil {
		return nil, err
	}

	verified, err := c.emailVerified(ctx, signedIn.IDToken)
	if err != nil {
		return nil, err
	}
	if !verified {
		return nil, &AuthError{
			Type:        AuthErrUnverifiedEmail,
			Message:     "Please verify your email before logging in. Check your inbox for the verification link.",
			Remediation: "Run 'studyhub resend-verification' if the email never arrived.",
		}
	}

	session := newSession(
		signedIn.LocalID,
		signedIn.Email,
		signedIn.DisplayName,
		signedIn.IDToken,
		signedIn.RefreshToken,
		time.Now().Add(parseExpiresIn(signedIn.ExpiresIn)),
	)
	if err := saveSession(c.cfg.DataDir, session); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.session = session
	c.mu.Unlock()
	c.log.Info("signed in", "uid", session.UID)
	return session, nil
}

// SignOut drops the in-memory session and removes the persisted one.
func (c *Client) SignOut() error {
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()
	return clearSession(c.cfg.DataDir)
}

// SendPasswordReset emails a password reset link.
func (c *Client) SendPasswordReset(ctx context.Context, email string) error {
	return c.postIdentity(ctx, "accounts:sendOobCode", map[string]any{
		"requestType": "PASSWORD_RESET",
		"email":       email,
	}, nil)
}

// ResendVerificationEmail re-sends the verification link for an account
// that cannot sign in yet. The cooldown is checked before any network
// traffic and persists across restarts.
func (c *Client) ResendVerificationEmail(ctx context.Context, email, password string) error {
	if remaining := c.cooldown.Remaining(); remaining > 0 {
		return cooldownError(remaining)
	}

	// Password sign-in works for unverified accounts; only the StudyHub
	// API rejects their tokens.
	var signedIn struct {
		IDToken string `json:"idToken"`
	}
	err := c.postIdentity(ctx, "accounts:signInWithPassword", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}, &signedIn)
	if err != nil {
		return err
	}
	return c.sendVerification(ctx, signedIn.IDToken)
}

// IDToken returns a valid bearer token for the signed-in user, refreshing
// it near expiry. Implements the API client's TokenSource.
func (c *Client) IDToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return "", &AuthError{
			Type:        AuthErrNoSession,
			Message:     "Not signed in.",
			Remediation: "Run 'studyhub login' first.",
		}
	}
	if time.Until(c.session.ExpiresAt) > refreshSlack {
		return c.session.IDToken, nil
	}
	if err := c.refreshLocked(ctx); err != nil {
		return "", err
	}
	return c.session.IDToken, nil
}

// refreshLocked exchanges the refresh token for a new ID token. Caller
// holds c.mu.
func (c *Client) refreshLocked(ctx context.Context) error {
	buf, err := c.session.refreshToken()
	if err != nil {
		return err
	}
	defer buf.Destroy()

	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {buf.String()},
	}
	endpoint := fmt.Sprintf("%s/v1/token?key=%s", c.cfg.TokenURL, url.QueryEscape(c.cfg.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint,
		bytes.NewBufferString(form.Encode()))
	if err != nil {
		return fmt.Errorf("building refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("refreshing token: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		return decodeProviderError(resp.StatusCode, raw)
	}

	var refreshed struct {
		IDToken      string `json:"id_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    string `json:"expires_in"`
		UserID       string `json:"user_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&refreshed); err != nil {
		return fmt.Errorf("decoding refresh response: %w", err)
	}

	c.session = newSession(
		c.session.UID,
		c.session.Email,
		c.session.Name,
		refreshed.IDToken,
		refreshed.RefreshToken,
		time.Now().Add(parseExpiresIn(refreshed.ExpiresIn)),
	)
	if err := saveSession(c.cfg.DataDir, c.session); err != nil {
		return err
	}
	c.log.Debug("token refreshed", "uid", c.session.UID)
	return nil
}

func (c *Client) sendVerification(ctx context.Context, idToken string) error {
	err := c.postIdentity(ctx, "accounts:sendOobCode", map[string]any{
		"requestType": "VERIFY_EMAIL",
		"idToken":     idToken,
	}, nil)
	if err != nil {
		return err
	}
	return c.cooldown.Mark()
}

func (c *Client) emailVerified(ctx context.Context, idToken string) (bool, error) {
	var lookup struct {
		Users []struct {
			EmailVerified bool `json:"emailVerified"`
		} `json:"users"`
	}
	err := c.postIdentity(ctx, "accounts:lookup", map[string]any{"idToken": idToken}, &lookup)
	if err != nil {
		return false, err
	}
	return len(lookup.Users) == 1 && lookup.Users[0].EmailVerified, nil
}

// postIdentity performs one Identity Toolkit call.
func (c *Client) postIdentity(ctx context.Context, action string, body, out any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding %s request: %w", action, err)
	}
	endpoint := fmt.Sprintf("%s/v1/%s?key=%s", c.cfg.BaseURL, action, url.QueryEscape(c.cfg.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("building %s request: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		return decodeProviderError(resp.StatusCode, raw)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding %s response: %w", action, err)
		}
	}
	return nil
}

// decodeProviderError maps the provider's {"error":{"message":CODE}}
// envelope to an AuthError.
func decodeProviderError(status int, body []byte) error {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return providerCodeToError(envelope.Error.Message)
	}
	return fmt.Errorf("identity provider returned status %d", status)
}

// parseExpiresIn converts the provider's expiresIn seconds-as-string into
// a duration, falling back to an hour.
func parseExpiresIn(s string) time.Duration {
	secs, err := strconv.Atoi(s)
	if err != nil || secs <= 0 {
		return time.Hour
	}
	return time.Duration(secs) * time.Second
}
