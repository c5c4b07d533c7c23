// Copyright (C) 2025 StudyHub (support@studyhub.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package auth

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// VerificationCooldown is the minimum gap between verification emails.
const VerificationCooldown = 60 * time.Second

const cooldownFile = "verification_sent"

// CooldownStore persists the last verification-email timestamp so the
// cooldown survives process restarts.
type CooldownStore struct {
	path string

	// now is the clock, swappable in tests. Nil means time.Now.
	now func() time.Time
}

// NewCooldownStore roots the store in dir, creating dir if needed.
func NewCooldownStore(dir string) (*CooldownStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return &CooldownStore{path: filepath.Join(dir, cooldownFile)}, nil
}

func (s *CooldownStore) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

// Remaining returns how long until another verification email may be
// sent. Zero means the cooldown has passed. A missing or corrupt
// timestamp file counts as no cooldown.
func (s *CooldownStore) Remaining() time.Duration {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return 0
	}
	last, err := time.Parse(time.RFC3339, strings.TrimSpace(string(raw)))
	if err != nil {
		return 0
	}
	remaining := VerificationCooldown - s.clock().Sub(last)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Mark records that a verification email was just sent.
func (s *CooldownStore) Mark() error {
	stamp := s.clock().UTC().Format(time.RFC3339)
	if err := os.WriteFile(s.path, []byte(stamp+"\n"), 0o600); err != nil {
		return fmt.Errorf("recording verification timestamp: %w", err)
	}
	return nil
}

// cooldownError builds the user-facing violation error, rounding the
// remaining time up so "wait 0 seconds" can never appear.
func cooldownError(remaining time.Duration) *AuthError {
	secs := int(remaining.Round(time.Second).Seconds())
	if secs < 1 {
		secs = 1
	}
	return &AuthError{
		Type:    AuthErrCooldown,
		Message: fmt.Sprintf("Please wait %d seconds before requesting another verification email.", secs),
	}
}
