// Copyright (C) 2025 StudyHub (support@studyhub.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// fakeIdentity is a minimal Identity Toolkit stand-in.
type fakeIdentity struct {
	verified     bool
	oobRequests  int
	refreshCalls int
}

func (f *fakeIdentity) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "accounts:signInWithPassword"):
			var body struct{ Email, Password string }
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body.Password != "correct-horse" {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":{"message":"INVALID_LOGIN_CREDENTIALS"}}`))
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"localId":      "uid-1",
				"email":        body.Email,
				"displayName":  "Test User",
				"idToken":      "id-token-1",
				"refreshToken": "refresh-token-1",
				"expiresIn":    "3600",
			})
		case strings.HasSuffix(r.URL.Path, "accounts:signUp"):
			_ = json.NewEncoder(w).Encode(map[string]any{
				"localId": "uid-new",
				"idToken": "id-token-new",
			})
		case strings.HasSuffix(r.URL.Path, "accounts:lookup"):
			_ = json.NewEncoder(w).Encode(map[string]any{
				"users": []map[string]any{{"emailVerified": f.verified}},
			})
		case strings.HasSuffix(r.URL.Path, "accounts:sendOobCode"):
			f.oobRequests++
			_ = json.NewEncoder(w).Encode(map[string]any{})
		case strings.HasSuffix(r.URL.Path, "accounts:update"):
			_ = json.NewEncoder(w).Encode(map[string]any{})
		case strings.HasSuffix(r.URL.Path, "/v1/token"):
			f.refreshCalls++
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id_token":      "id-token-2",
				"refresh_token": "refresh-token-2",
				"expires_in":    "3600",
				"user_id":       "uid-1",
			})
		default:
			http.NotFound(w, r)
		}
	})
}

func newTestAuth(t *testing.T, f *fakeIdentity) *Client {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	client, err := NewClient(Config{
		APIKey:   "test-key",
		BaseURL:  srv.URL,
		TokenURL: srv.URL,
		DataDir:  t.TempDir(),
	}, nil)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}

// ============================================================
// Sign in
// ============================================================

func TestSignInVerifiedAccount(t *testing.T) {
	client := newTestAuth(t, &fakeIdentity{verified: true})

	session, err := client.SignIn(context.Background(), "u@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if session.UID != "uid-1" || session.Email != "u@example.com" {
		t.Errorf("session = %+v, want uid-1/u@example.com", session)
	}

	token, err := client.IDToken(context.Background())
	if err != nil {
		t.Fatalf("IDToken failed: %v", err)
	}
	if token != "id-token-1" {
		t.Errorf("IDToken = %q, want id-token-1", token)
	}
}

func TestSignInRejectsUnverifiedEmail(t *testing.T) {
	client := newTestAuth(t, &fakeIdentity{verified: false})

	_, err := client.SignIn(context.Background(), "u@example.com", "correct-horse")
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *AuthError, got %v", err)
	}
	if authErr.Type != AuthErrUnverifiedEmail {
		t.Errorf("Type = %v, want unverified_email", authErr.Type)
	}
	want := "Please verify your email before logging in. Check your inbox for the verification link."
	if authErr.Message != want {
		t.Errorf("Message = %q, want %q", authErr.Message, want)
	}

	// The rejected sign-in must not leave a usable session behind.
	if _, err := client.CurrentSession(); err == nil {
		t.Error("CurrentSession succeeded after rejected sign-in")
	}
}

func TestSignInBadPassword(t *testing.T) {
	client := newTestAuth(t, &fakeIdentity{verified: true})

	_, err := client.SignIn(context.Background(), "u@example.com", "wrong")
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *AuthError, got %v", err)
	}
	if authErr.Type != AuthErrInvalidCredentials {
		t.Errorf("Type = %v, want invalid_credentials", authErr.Type)
	}
}

// ============================================================
// Session lifecycle
// ============================================================

func TestSessionPersistsAcrossClients(t *testing.T) {
	f := &fakeIdentity{verified: true}
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	dir := t.TempDir()
	cfg := Config{APIKey: "k", BaseURL: srv.URL, TokenURL: srv.URL, DataDir: dir}

	first, err := NewClient(cfg, nil)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if _, err := first.SignIn(context.Background(), "u@example.com", "correct-horse"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}

	second, err := NewClient(cfg, nil)
	if err != nil {
		t.Fatalf("NewClient (reload) failed: %v", err)
	}
	session, err := second.CurrentSession()
	if err != nil {
		t.Fatalf("CurrentSession after reload failed: %v", err)
	}
	if session.UID != "uid-1" {
		t.Errorf("reloaded UID = %q, want uid-1", session.UID)
	}
}

func TestSignOutClearsSession(t *testing.T) {
	client := newTestAuth(t, &fakeIdentity{verified: true})
	if _, err := client.SignIn(context.Background(), "u@example.com", "correct-horse"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if err := client.SignOut(); err != nil {
		t.Fatalf("SignOut failed: %v", err)
	}
	if _, err := client.IDToken(context.Background()); err == nil {
		t.Error("IDToken succeeded after sign-out")
	}
	// Signing out twice is fine.
	if err := client.SignOut(); err != nil {
		t.Errorf("second SignOut failed: %v", err)
	}
}

func TestIDTokenRefreshesNearExpiry(t *testing.T) {
	f := &fakeIdentity{verified: true}
	client := newTestAuth(t, f)
	if _, err := client.SignIn(context.Background(), "u@example.com", "correct-horse"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}

	// Force the cached token to look expired.
	client.mu.Lock()
	client.session.ExpiresAt = time.Now().Add(5 * time.Second)
	client.mu.Unlock()

	token, err := client.IDToken(context.Background())
	if err != nil {
		t.Fatalf("IDToken failed: %v", err)
	}
	if token != "id-token-2" {
		t.Errorf("IDToken = %q, want refreshed id-token-2", token)
	}
	if f.refreshCalls != 1 {
		t.Errorf("refreshCalls = %d, want 1", f.refreshCalls)
	}
}

// ============================================================
// Verification emails
// ============================================================

func TestSignUpSendsVerification(t *testing.T) {
	f := &fakeIdentity{}
	client := newTestAuth(t, f)

	if err := client.SignUp(context.Background(), "new@example.com", "correct-horse", "New User"); err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}
	if f.oobRequests != 1 {
		t.Errorf("oobRequests = %d, want 1", f.oobRequests)
	}
}

func TestResendVerificationHonorsCooldown(t *testing.T) {
	f := &fakeIdentity{}
	client := newTestAuth(t, f)

	if err := client.ResendVerificationEmail(context.Background(), "u@example.com", "correct-horse"); err != nil {
		t.Fatalf("first resend failed: %v", err)
	}
	if f.oobRequests != 1 {
		t.Fatalf("oobRequests = %d, want 1", f.oobRequests)
	}

	err := client.ResendVerificationEmail(context.Background(), "u@example.com", "correct-horse")
	var authErr *AuthError
	if !errors.As(err, &authErr) || authErr.Type != AuthErrCooldown {
		t.Fatalf("expected cooldown error, got %v", err)
	}
	if !strings.Contains(authErr.Message, "before requesting another verification email") {
		t.Errorf("Message = %q", authErr.Message)
	}
	if f.oobRequests != 1 {
		t.Errorf("cooldown violation still reached the provider (%d requests)", f.oobRequests)
	}

	// Backdate the marker past the cooldown and try again.
	client.cooldown.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	if err := client.ResendVerificationEmail(context.Background(), "u@example.com", "correct-horse"); err != nil {
		t.Fatalf("resend after cooldown failed: %v", err)
	}
	if f.oobRequests != 2 {
		t.Errorf("oobRequests = %d, want 2", f.oobRequests)
	}
}
