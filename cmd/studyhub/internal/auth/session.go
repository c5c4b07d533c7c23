// Copyright (C) 2025 StudyHub (support@studyhub.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/awnumar/memguard"
)

const sessionFile = "session.json"

// Session is the signed-in user on this machine. The refresh token is
// held in a sealed enclave while in memory and only opened for the
// token-refresh call.
type Session struct {
	UID       string
	Email     string
	Name      string
	IDToken   string
	ExpiresAt time.Time

	refresh *memguard.Enclave
}

// persistedSession is the on-disk shape.
type persistedSession struct {
	UID          string    `json:"uid"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	IDToken      string    `json:"idToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	RefreshToken string    `json:"refreshToken"`
}

func newSession(uid, email, name, idToken, refreshToken string, expiresAt time.Time) *Session {
	return &Session{
		UID:       uid,
		Email:     email,
		Name:      name,
		IDToken:   idToken,
		ExpiresAt: expiresAt,
		refresh:   memguard.NewEnclave([]byte(refreshToken)),
	}
}

// refreshToken opens the enclave and returns the token. The returned
// buffer must be destroyed by the caller.
func (s *Session) refreshToken() (*memguard.LockedBuffer, error) {
	if s.refresh == nil {
		return nil, &AuthError{Type: AuthErrNoSession, Message: "No refresh token in session."}
	}
	buf, err := s.refresh.Open()
	if err != nil {
		return nil, fmt.Errorf("opening refresh token enclave: %w", err)
	}
	return buf, nil
}

func sessionPath(dir string) string { return filepath.Join(dir, sessionFile) }

// loadSession reads the persisted session. A missing file returns
// (nil, nil).
func loadSession(dir string) (*Session, error) {
	raw, err := os.ReadFile(sessionPath(dir))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}
	var p persistedSession
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parsing session: %w", err)
	}
	return newSession(p.UID, p.Email, p.Name, p.IDToken, p.RefreshToken, p.ExpiresAt), nil
}

// saveSession writes the session, owner-readable only.
func saveSession(dir string, s *Session) error {
	buf, err := s.refreshToken()
	if err != nil {
		return err
	}
	defer buf.Destroy()

	p := persistedSession{
		UID:          s.UID,
		Email:        s.Email,
		Name:         s.Name,
		IDToken:      s.IDToken,
		ExpiresAt:    s.ExpiresAt,
		RefreshToken: buf.String(),
	}
	raw, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	if err := os.WriteFile(sessionPath(dir), raw, 0o600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

// clearSession removes the persisted session. Already gone is fine.
func clearSession(dir string) error {
	err := os.Remove(sessionPath(dir))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}
