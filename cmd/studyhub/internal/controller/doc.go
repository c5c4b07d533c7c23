// Copyright (C) 2025 StudyHub (support@studyhub.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package controller holds the library view's state machine.
//
// # Problem Statement
//
// The library view juggles three concurrent fetches (subjects, recent
// notes, the share dashboard), user-driven filter and page changes, and
// local patches after deletes and share edits. With mutable fields and
// ad hoc handlers, a slow response can land after a newer one and clobber
// fresher state.
//
// # Solution
//
// State is an immutable snapshot advanced only by Reduce(state, event).
// Every load is numbered by a monotonic generation counter; load events
// carry their generation and Reduce discards any event whose generation is
// not the current one, so superseded responses can never overwrite newer
// data:
//
//	Load #1 ----------------(slow)----------x  discarded
//	      Load #2 --(fast)--> Ready(gen=2)
//
// Filter and page-size changes reset the page to 1; deletes, revokes, and
// new shares patch the snapshot in place without a refetch.
package controller
