// Copyright (C) 2025 StudyHub (support@studyhub.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package content filters, sorts, and paginates item lists for the
// library views.
//
// Everything here is a pure function over slices: callers hand in field
// accessors so the same engine serves subjects, notes, and shared items
// without each view reimplementing search or pagination. Search is a
// case-insensitive substring match, tag filtering is an exact match
// against an item's tag list, sorts are stable, and pagination is
// 1-indexed with out-of-range pages yielding an empty slice.
package content
