// Copyright (C) 2025 StudyHub (support@studyhub.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package api provides typed gateways to the StudyHub REST service.
//
// # Problem Statement
//
// The StudyHub backend exposes subjects, notes, tags, and shares over a
// plain JSON REST surface. Every command and view in the client needs
// authenticated access to those resources, consistent error reporting, and
// bounded request pacing when views fan out many item fetches at once.
//
// # Solution
//
// A single Client carries the base URL, the bearer-token source, a rate
// limiter, and a logger. Each resource gets a small file of typed
// operations (subjects.go, notes.go, tags.go, shares.go) that all funnel
// through one do() helper:
//
//	command/view --> Client.do() --> StudyHub REST API
//	                   |  Authorization: Bearer <idToken>
//	                   |  non-2xx  -> *APIError{Status, Message}
//	                   |  net/json -> wrapped transport error
//
// Service rejections become *APIError values whose Message is the
// response's "detail" field when the service provides one. Transport
// failures stay ordinary wrapped errors so callers can tell the two apart
// with errors.As.
package api
