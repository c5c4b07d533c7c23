// Copyright (C) 2025 StudyHub (support@studyhub.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package api

import (
	"context"
	"net/url"
)

// Tags are plain strings attached to notes; the service derives the tag
// list from the caller's notes rather than storing tags as documents.

// ListTags returns the sorted set of tags across the caller's notes.
func (c *Client) ListTags(ctx context.Context) ([]string, error) {
	var tags []string
	if err := c.get(ctx, "/tags", &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// NotesByTag returns the caller's notes carrying the given tag.
func (c *Client) NotesByTag(ctx context.Context, tag string) ([]Note, error) {
	var notes []Note
	if err := c.get(ctx, "/tags/"+url.PathEscape(tag)+"/notes", &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// AddTag attaches a tag to a note. Adding a tag the note already carries
// is a no-op on the service side.
func (c *Client) AddTag(ctx context.Context, noteID, tag string) error {
	return c.post(ctx, "/tags/"+url.PathEscape(noteID)+"/"+url.PathEscape(tag), nil, nil)
}

// RemoveTag detaches a tag from a note.
func (c *Client) RemoveTag(ctx context.Context, noteID, tag string) error {
	return c.delete(ctx, "/tags/"+url.PathEscape(noteID)+"/"+url.PathEscape(tag))
}
