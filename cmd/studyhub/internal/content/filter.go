// Copyright (C) 2025 StudyHub (support@studyhub.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package content

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortOrder selects how a list is ordered.
type SortOrder string

const (
	SortAlphabetical SortOrder = "alphabetical"
	SortNewest       SortOrder = "newest"
	SortOldest       SortOrder = "oldest"
)

// ParseSortOrder maps user input to a SortOrder, defaulting to newest.
func ParseSortOrder(s string) SortOrder {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case SortAlphabetical:
		return SortAlphabetical
	case SortOldest:
		return SortOldest
	default:
		return SortNewest
	}
}

// Search keeps items where any field returned by fields contains query,
// case-insensitively. An empty query keeps everything.
func Search[E any](items []E, query string, fields func(E) []string) []E {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items
	}
	var out []E
	for _, item := range items {
		for _, f := range fields(item) {
			if strings.Contains(strings.ToLower(f), query) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// FilterByTag keeps items whose tag list contains tag exactly. An empty
// tag keeps everything.
func FilterByTag[E any](items []E, tag string, tags func(E) []string) []E {
	if tag == "" {
		return items
	}
	var out []E
	for _, item := range items {
		if slices.Contains(tags(item), tag) {
			out = append(out, item)
		}
	}
	return out
}

// Sort orders items in place, stably. Alphabetical uses locale-aware
// case-insensitive collation on titles; newest/oldest order on the
// timestamp accessor, with equal (including zero) timestamps keeping
// their relative positions.
func Sort[E any](items []E, order SortOrder, title func(E) string, at func(E) time.Time) {
	switch order {
	case SortAlphabetical:
		// collate.Collator is not safe for concurrent use; build one
		// per call.
		coll := collate.New(language.English, collate.IgnoreCase)
		slices.SortStableFunc(items, func(a, b E) int {
			return coll.CompareString(title(a), title(b))
		})
	case SortOldest:
		slices.SortStableFunc(items, func(a, b E) int {
			return at(a).Compare(at(b))
		})
	default: // SortNewest
		slices.SortStableFunc(items, func(a, b E) int {
			return at(b).Compare(at(a))
		})
	}
}
