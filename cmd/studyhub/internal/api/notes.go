// Copyright (C) 2025 StudyHub (support@studyhub.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package api

import (
	"context"
	"fmt"
	"net/url"
)

// RecentNotes returns the caller's most recently created notes, newest
// first. limit <= 0 falls back to the service default of 10.
func (c *Client) RecentNotes(ctx context.Context, limit int) ([]Note, error) {
	path := "/notes"
	if limit > 0 {
		path = fmt.Sprintf("/notes?limit=%d", limit)
	}
	var notes []Note
	if err := c.get(ctx, path, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// GetNote fetches a single note. Access is granted to the owner, to users
// named by a share record, and to anyone for publicly shared notes.
func (c *Client) GetNote(ctx context.Context, id string) (*Note, error) {
	var note Note
	if err := c.get(ctx, "/notes/"+url.PathEscape(id), &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// CreateNote creates a note and returns it as stored.
func (c *Client) CreateNote(ctx context.Context, in NoteCreate) (*Note, error) {
	var note Note
	if err := c.post(ctx, "/notes", in, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// UpdateNote replaces a note's content, media list, and tags.
func (c *Client) UpdateNote(ctx context.Context, id string, in NoteCreate) (*Note, error) {
	var note Note
	if err := c.put(ctx, "/notes/"+url.PathEscape(id), in, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// DeleteNote removes a note.
func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.delete(ctx, "/notes/"+url.PathEscape(id))
}
