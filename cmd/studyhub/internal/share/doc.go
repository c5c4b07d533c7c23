// Copyright (C) 2025 StudyHub (support@studyhub.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package share resolves permissions and reconciles the two share feeds
// into a dashboard view.
//
// # Problem Statement
//
// The service exposes sharing as two overlapping feeds: records naming the
// current user as a recipient ("with me") and records the user created
// ("by me"). Self-shares appear in both. Records reference items by ID
// only, so every with-me row needs a follow-up fetch that can individually
// fail, and notes inside subjects the user already owns would show up
// twice.
//
// # Solution
//
// Reconciler fetches both feeds plus the user's own subjects concurrently,
// drops with-me records that collide with by-me keys or were created by
// the user, hydrates the remainder with a bounded fan-out (failures skip
// the row, they never fail the reconcile), and suppresses notes whose
// subject the user owns. The result is a Dashboard whose WithMe and ByMe
// sets are disjoint by construction.
//
// Resolve is the single permission-resolution rule for the whole client:
// owners hold every capability, otherwise the first share record wins with
// view forced on, and no record means no access.
package share
