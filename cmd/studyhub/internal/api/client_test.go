// Copyright (C) 2025 StudyHub (support@studyhub.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type staticTokens string

func (s staticTokens) IDToken(_ context.Context) (string, error) {
	return string(s), nil
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api", staticTokens("test-token"), nil), srv
}

// ============================================================
// Request mechanics
// ============================================================

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte("[]"))
	}))

	if _, err := client.ListSubjects(context.Background()); err != nil {
		t.Fatalf("ListSubjects failed: %v", err)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer test-token")
	}
}

func TestClientEscapesPathSegments(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte("[]"))
	}))

	if _, err := client.NotesByTag(context.Background(), "exam prep"); err != nil {
		t.Fatalf("NotesByTag failed: %v", err)
	}
	if !strings.Contains(gotPath, "/tags/exam%20prep/notes") {
		t.Errorf("path = %q, want escaped tag segment", gotPath)
	}
}

// ============================================================
// Error translation
// ============================================================

func TestErrorUsesDetailField(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"detail": "Not authorized to access this subject"}`))
	}))

	_, err := client.GetSubject(context.Background(), "s1")
	if err == nil {
		t.Fatal("expected error for 403 response")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Message != "Not authorized to access this subject" {
		t.Errorf("Message = %q, want the detail field", apiErr.Message)
	}
	if apiErr.Type != APIErrForbidden {
		t.Errorf("Type = %v, want forbidden", apiErr.Type)
	}
	if apiErr.Status != http.StatusForbidden {
		t.Errorf("Status = %d, want 403", apiErr.Status)
	}
}

func TestErrorFallsBackToStatusMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("upstream blew up"))
	}))

	_, err := client.GetNote(context.Background(), "n1")
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Message != "API request failed: 500" {
		t.Errorf("Message = %q, want fallback message", apiErr.Message)
	}
	if apiErr.Type != APIErrServer {
		t.Errorf("Type = %v, want server", apiErr.Type)
	}
}

func TestTransportErrorIsNotAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on
	client := NewClient(srv.URL+"/api", staticTokens("tok"), nil)

	_, err := client.ListSubjects(context.Background())
	if err == nil {
		t.Fatal("expected transport error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Errorf("transport failure surfaced as *APIError: %v", err)
	}
}

func TestIsNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail": "Note not found"}`))
	}))

	_, err := client.GetNote(context.Background(), "missing")
	if !IsNotFound(err) {
		t.Errorf("IsNotFound = false for 404 error %v", err)
	}
	if IsNotFound(nil) {
		t.Error("IsNotFound(nil) = true")
	}
}

// ============================================================
// Round trips
// ============================================================

func TestCreateShareRoundTrip(t *testing.T) {
	var gotBody ShareCreate
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/shares" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(ShareRecord{
			ID:          "share-1",
			ItemID:      gotBody.ItemID,
			ItemType:    gotBody.ItemType,
			ShareType:   gotBody.ShareType,
			SharedWith:  gotBody.SharedWith,
			Permissions: gotBody.Permissions,
			SharedBy:    gotBody.SharedBy,
			SharedAt:    gotBody.SharedAt,
		})
	}))

	in := ShareCreate{
		ItemID:     "note-9",
		ItemType:   ItemTypeNote,
		ShareType:  ShareTypeSpecific,
		SharedWith: []string{"friend@example.com"},
		SharedBy:   "uid-1",
		SharedAt:   time.Now().UTC().Format(time.RFC3339),
		Permissions: Permissions{
			View:     true,
			Download: true,
		},
	}
	record, err := client.CreateShare(context.Background(), in)
	if err != nil {
		t.Fatalf("CreateShare failed: %v", err)
	}
	if record.ID != "share-1" {
		t.Errorf("record.ID = %q, want share-1", record.ID)
	}
	if gotBody.ItemID != "note-9" || gotBody.ItemType != ItemTypeNote {
		t.Errorf("request body item = %s/%s, want note/note-9", gotBody.ItemType, gotBody.ItemID)
	}
	if !gotBody.Permissions.View {
		t.Error("view permission must survive the round trip")
	}
}

func TestListSubjectNotesPath(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/subjects/subj-1/notes" {
			t.Errorf("path = %q, want /api/subjects/subj-1/notes", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode([]Note{{ID: "n1", SubjectID: "subj-1"}})
	}))

	notes, err := client.ListSubjectNotes(context.Background(), "subj-1")
	if err != nil {
		t.Fatalf("ListSubjectNotes failed: %v", err)
	}
	if len(notes) != 1 || notes[0].ID != "n1" {
		t.Errorf("notes = %+v, want one note n1", notes)
	}
}

// ============================================================
// Types
// ============================================================

func TestShareRecordKey(t *testing.T) {
	r := ShareRecord{ItemID: "abc", ItemType: ItemTypeSubject}
	if got := r.Key(); got != "subject-abc" {
		t.Errorf("Key() = %q, want subject-abc", got)
	}
}

func TestParseTimestampFallsBackToZero(t *testing.T) {
	if got := ParseTimestamp("not a date"); !got.IsZero() {
		t.Errorf("ParseTimestamp garbage = %v, want zero time", got)
	}
	got := ParseTimestamp("2025-03-14T09:26:53Z")
	if got.IsZero() || got.Year() != 2025 {
		t.Errorf("ParseTimestamp RFC3339 = %v", got)
	}
}
