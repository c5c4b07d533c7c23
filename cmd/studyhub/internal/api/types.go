// Copyright (C) 2025 StudyHub (support@studyhub.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package api

import "time"

// Item type discriminators used by the share endpoints.
const (
	ItemTypeSubject = "subject"
	ItemTypeNote    = "note"
)

// Share visibility levels.
const (
	ShareTypePrivate  = "private"
	ShareTypeSpecific = "specific"
	ShareTypePublic   = "public"
)

// User is the authenticated account as the service reports it.
type User struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Subject is a top-level folder grouping notes.
type Subject struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	CreatedBy   string `json:"createdBy"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// CreatedTime parses the subject's creation timestamp. The zero time is
// returned when the service sent something unparseable.
func (s Subject) CreatedTime() time.Time { return ParseTimestamp(s.CreatedAt) }

// SubjectCreate is the request body for creating or updating a subject.
type SubjectCreate struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
}

// MediaItem is an attachment on a note. Type is one of image, video, file,
// or link; URL points at the storage object or external resource.
type MediaItem struct {
	Type      string `json:"type"`
	URL       string `json:"url"`
	Title     string `json:"title,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Note is a rich-text note inside a subject.
type Note struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Content    string      `json:"content"`
	SubjectID  string      `json:"subjectId"`
	MediaItems []MediaItem `json:"mediaItems"`
	Tags       []string    `json:"tags"`
	CreatedBy  string      `json:"createdBy"`
	CreatedAt  string      `json:"createdAt"`
	UpdatedAt  string      `json:"updatedAt,omitempty"`
	IsShared   bool        `json:"isShared,omitempty"`
	ShareType  string      `json:"shareType,omitempty"`
	SharedWith []string    `json:"sharedWith,omitempty"`
}

// CreatedTime parses the note's creation timestamp. The zero time is
// returned when the service sent something unparseable.
func (n Note) CreatedTime() time.Time { return ParseTimestamp(n.CreatedAt) }

// NoteCreate is the request body for creating or updating a note.
type NoteCreate struct {
	Title      string      `json:"title" validate:"required"`
	Content    string      `json:"content"`
	SubjectID  string      `json:"subjectId" validate:"required"`
	MediaItems []MediaItem `json:"mediaItems"`
	Tags       []string    `json:"tags"`
}

// Permissions is the capability set attached to a share. On the wire it is
// the share's permissions object; resolved against a viewer it answers what
// that viewer may do with the item.
type Permissions struct {
	View     bool `json:"view"`
	Edit     bool `json:"edit"`
	Comment  bool `json:"comment"`
	Download bool `json:"download"`
	Share    bool `json:"share"`
}

// OwnerPermissions returns the full capability set an item owner holds.
func OwnerPermissions() Permissions {
	return Permissions{View: true, Edit: true, Comment: true, Download: true, Share: true}
}

// ShareRecord is a stored grant of access to a subject or note. ItemTitle
// and CreatedAt are optional denormalized fields; older records omit both.
type ShareRecord struct {
	ID          string      `json:"id"`
	ItemID      string      `json:"itemId"`
	ItemType    string      `json:"itemType"`
	ItemTitle   string      `json:"itemTitle,omitempty"`
	ShareType   string      `json:"shareType"`
	SharedWith  []string    `json:"sharedWith"`
	Message     string      `json:"message,omitempty"`
	Permissions Permissions `json:"permissions"`
	SharedBy    string      `json:"sharedBy"`
	SharedAt    string      `json:"sharedAt"`
	CreatedAt   string      `json:"createdAt,omitempty"`
	UpdatedAt   string      `json:"updatedAt,omitempty"`
}

// Key returns the item identity of the record, "<itemType>-<itemId>". Two
// records over the same item collide on Key regardless of recipients.
func (r ShareRecord) Key() string { return r.ItemType + "-" + r.ItemID }

// ShareCreate is the full request body for POST /shares. SharedBy and
// SharedAt are filled by the client, matching the service contract.
type ShareCreate struct {
	ItemID      string      `json:"itemId" validate:"required"`
	ItemType    string      `json:"itemType" validate:"required,oneof=subject note"`
	ItemTitle   string      `json:"itemTitle,omitempty"`
	ShareType   string      `json:"shareType" validate:"required,oneof=private specific public"`
	SharedWith  []string    `json:"sharedWith" validate:"dive,email"`
	SharedBy    string      `json:"sharedBy" validate:"required"`
	SharedAt    string      `json:"sharedAt" validate:"required"`
	Message     string      `json:"message,omitempty"`
	Permissions Permissions `json:"permissions"`
}

// timestampFormats covers what the service emits: RFC 3339 with or without
// sub-second precision, and date-only strings from older records.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
}

// ParseTimestamp parses a service timestamp, returning the zero time for
// anything unparseable. Callers decide their own fallback.
func ParseTimestamp(s string) time.Time {
	for _, layout := range timestampFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
