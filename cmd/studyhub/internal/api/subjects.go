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

// ListSubjects returns every subject the current user owns.
func (c *Client) ListSubjects(ctx context.Context) ([]Subject, error) {
	var subjects []Subject
	if err := c.get(ctx, "/subjects", &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

// GetSubject fetches a single subject. Shared subjects resolve too as long
// as a share record grants the caller access.
func (c *Client) GetSubject(ctx context.Context, id string) (*Subject, error) {
	var subject Subject
	if err := c.get(ctx, "/subjects/"+url.PathEscape(id), &subject); err != nil {
		return nil, err
	}
	return &subject, nil
}

// CreateSubject creates a subject and returns it as stored.
func (c *Client) CreateSubject(ctx context.Context, in SubjectCreate) (*Subject, error) {
	var subject Subject
	if err := c.post(ctx, "/subjects", in, &subject); err != nil {
		return nil, err
	}
	return &subject, nil
}

// UpdateSubject replaces a subject's title and description.
func (c *Client) UpdateSubject(ctx context.Context, id string, in SubjectCreate) (*Subject, error) {
	var subject Subject
	if err := c.put(ctx, "/subjects/"+url.PathEscape(id), in, &subject); err != nil {
		return nil, err
	}
	return &subject, nil
}

// DeleteSubject removes a subject. The service cascades to its notes.
func (c *Client) DeleteSubject(ctx context.Context, id string) error {
	return c.delete(ctx, "/subjects/"+url.PathEscape(id))
}

// ListSubjectNotes returns the notes inside one subject.
func (c *Client) ListSubjectNotes(ctx context.Context, subjectID string) ([]Note, error) {
	var notes []Note
	if err := c.get(ctx, "/subjects/"+url.PathEscape(subjectID)+"/notes", &notes); err != nil {
		return nil, err
	}
	return notes, nil
}
