// Copyright (C) 2025 StudyHub (support@studyhub.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultTimeout = 30 * time.Second

	// Request pacing. The shared dashboard fans out one fetch per share
	// record; the limiter keeps a large dashboard from hammering the
	// service all at once.
	defaultRateLimit = rate.Limit(20)
	defaultRateBurst = 40
)

// TokenSource supplies a valid bearer token for API requests. The auth
// package's Session implements this, refreshing expired tokens on demand.
type TokenSource interface {
	IDToken(ctx context.Context) (string, error)
}

// Client is an authenticated HTTP client for the StudyHub REST API.
//
// # Description
//
// All resource operations (subjects.go, notes.go, tags.go, shares.go) go
// through Client.do, which attaches the bearer token, paces requests
// through a shared limiter, and translates non-2xx responses into
// *APIError values.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenSource
	limiter *rate.Limiter
	log     *slog.Logger
}

// NewClient builds a Client for the API rooted at baseURL (for example
// "http://localhost:8000/api"). baseURL must not end with a slash.
func NewClient(baseURL string, tokens TokenSource, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: defaultTimeout},
		tokens:  tokens,
		limiter: rate.NewLimiter(defaultRateLimit, defaultRateBurst),
		log:     log,
	}
}

// do performs one API request. body (when non-nil) is JSON-encoded; out
// (when non-nil) receives the decoded response body.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	token, err := c.tokens.IDToken(ctx)
	if err != nil {
		return fmt.Errorf("acquiring token: %w", err)
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.log.Debug("api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return newAPIError(resp.StatusCode, raw)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding %s %s response: %w", method, path, err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
