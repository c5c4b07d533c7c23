// Copyright (C) 2025 StudyHub (support@studyhub.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package content

import "slices"

// DefaultPerPage is the page size used when none is configured.
const DefaultPerPage = 9

// PerPageChoices are the page sizes the views offer.
var PerPageChoices = []int{6, 9, 12, 24}

// ClampPerPage returns perPage if it is an offered page size, otherwise
// DefaultPerPage.
func ClampPerPage(perPage int) int {
	if slices.Contains(PerPageChoices, perPage) {
		return perPage
	}
	return DefaultPerPage
}

// PageCount returns ceil(n / perPage). Zero items is zero pages.
func PageCount(n, perPage int) int {
	if perPage <= 0 || n <= 0 {
		return 0
	}
	return (n + perPage - 1) / perPage
}

// Paginate returns the 1-indexed page of items. Pages past the end (or
// page < 1, or a non-positive perPage) come back empty rather than
// panicking, since a filter change can strand the current page out of
// range until the view resets it.
func Paginate[E any](items []E, page, perPage int) []E {
	if page < 1 || perPage <= 0 {
		return nil
	}
	start := (page - 1) * perPage
	if start >= len(items) {
		return nil
	}
	end := min(start+perPage, len(items))
	return items[start:end]
}
