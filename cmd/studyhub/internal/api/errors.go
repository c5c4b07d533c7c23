// Copyright (C) 2025 StudyHub (support@studyhub.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIErrorType classifies service rejections for error handling.
type APIErrorType int

const (
	// APIErrUnknown covers statuses with no dedicated handling.
	APIErrUnknown APIErrorType = iota
	// APIErrUnauthorized means the bearer token was missing or rejected.
	APIErrUnauthorized
	// APIErrForbidden means the caller lacks access to the item.
	APIErrForbidden
	// APIErrNotFound means the resource does not exist (or was deleted).
	APIErrNotFound
	// APIErrValidation means the service rejected the request body.
	APIErrValidation
	// APIErrServer covers 5xx responses.
	APIErrServer
)

func (t APIErrorType) String() string {
	switch t {
	case APIErrUnauthorized:
		return "unauthorized"
	case APIErrForbidden:
		return "forbidden"
	case APIErrNotFound:
		return "not_found"
	case APIErrValidation:
		return "validation"
	case APIErrServer:
		return "server"
	default:
		return "unknown"
	}
}

// APIError is a rejection from the StudyHub service. Message carries the
// service's "detail" field when one was present in the response body.
type APIError struct {
	Type    APIErrorType
	Status  int
	Message string
}

// Compile-time check.
var _ error = (*APIError)(nil)

func (e *APIError) Error() string { return e.Message }

// IsNotFound reports whether err is a service 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Type == APIErrNotFound
}

func classifyStatus(status int) APIErrorType {
	switch {
	case status == http.StatusUnauthorized:
		return APIErrUnauthorized
	case status == http.StatusForbidden:
		return APIErrForbidden
	case status == http.StatusNotFound:
		return APIErrNotFound
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return APIErrValidation
	case status >= 500:
		return APIErrServer
	default:
		return APIErrUnknown
	}
}

// newAPIError builds the error for a non-2xx response. The service reports
// failures as {"detail": "..."}; anything else falls back to a generic
// message carrying the status code.
func newAPIError(status int, body []byte) *APIError {
	msg := fmt.Sprintf("API request failed: %d", status)
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		msg = payload.Detail
	}
	return &APIError{
		Type:    classifyStatus(status),
		Status:  status,
		Message: msg,
	}
}
