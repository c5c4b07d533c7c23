// Copyright (C) 2025 StudyHub (support@studyhub.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"google.golang.org/api/googleapi"
)

// ============================================================
// URL parsing
// ============================================================

func TestObjectFromDownloadStyleURL(t *testing.T) {
	raw := "https://firebasestorage.googleapis.com/v0/b/media/o/notes%2Fn1%2Fabc-file.pdf?alt=media&token=x"
	object, err := objectFromURL(raw, "media")
	if err != nil {
		t.Fatalf("objectFromURL failed: %v", err)
	}
	if object != "notes/n1/abc-file.pdf" {
		t.Errorf("object = %q, want notes/n1/abc-file.pdf", object)
	}
}

func TestObjectFromPlainURL(t *testing.T) {
	raw := "https://storage.googleapis.com/media/notes/n1/abc-file.pdf"
	object, err := objectFromURL(raw, "media")
	if err != nil {
		t.Fatalf("objectFromURL failed: %v", err)
	}
	if object != "notes/n1/abc-file.pdf" {
		t.Errorf("object = %q, want notes/n1/abc-file.pdf", object)
	}
}

func TestObjectFromGarbageURL(t *testing.T) {
	for _, raw := range []string{
		"",
		"not a url at all",
		"https://storage.googleapis.com/otherbucket/file.pdf",
	} {
		if _, err := objectFromURL(raw, "media"); err == nil {
			t.Errorf("objectFromURL(%q) succeeded, want error", raw)
		}
	}
}

func TestObjectNameShape(t *testing.T) {
	name := ObjectName("note-1", "/tmp/somewhere/My Notes.pdf")
	if !strings.HasPrefix(name, "notes/note-1/") {
		t.Errorf("name = %q, want notes/note-1/ prefix", name)
	}
	if !strings.HasSuffix(name, "-My Notes.pdf") {
		t.Errorf("name = %q, want filename suffix without directories", name)
	}
	if name == ObjectName("note-1", "My Notes.pdf") {
		t.Error("two uploads of the same file must not collide")
	}
}

// ============================================================
// Error mapping
// ============================================================

func TestMapErrorCodes(t *testing.T) {
	c := &Client{bucketName: "media", log: slog.New(slog.NewTextHandler(io.Discard, nil))}

	cases := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"forbidden", &googleapi.Error{Code: 403}, "unauthorized"},
		{"unauthorized", &googleapi.Error{Code: 401}, "unauthorized"},
		{"quota", &googleapi.Error{Code: 429}, "quota-exceeded"},
		{"flaky backend", &googleapi.Error{Code: 503}, "retry-limit-exceeded"},
		{"cancel", context.Canceled, "canceled"},
		{"other", errors.New("weird"), "unknown"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var serr *StorageError
			if !errors.As(c.mapError("upload", "obj", tc.err), &serr) {
				t.Fatal("mapError did not return a *StorageError")
			}
			if serr.Code != tc.wantCode {
				t.Errorf("Code = %q, want %q", serr.Code, tc.wantCode)
			}
		})
	}
}

func TestUnauthorizedMessage(t *testing.T) {
	c := &Client{bucketName: "media", log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	err := c.mapError("upload", "obj", &googleapi.Error{Code: 403})
	if err.Error() != "You don't have permission to upload this file" {
		t.Errorf("message = %q", err.Error())
	}
}

// ============================================================
// Integration (needs real credentials and a scratch bucket)
// ============================================================

// TestUploadDeleteRoundTrip exercises a real bucket. Set
// STUDYHUB_TEST_BUCKET (and optionally GOOGLE_APPLICATION_CREDENTIALS)
// to run it.
func TestUploadDeleteRoundTrip(t *testing.T) {
	bucket := os.Getenv("STUDYHUB_TEST_BUCKET")
	if bucket == "" {
		t.Skip("STUDYHUB_TEST_BUCKET not set; skipping integration test")
	}

	ctx := context.Background()
	client, err := NewClient(ctx, Config{Bucket: bucket}, nil)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	payload := bytes.Repeat([]byte("studyhub"), 64*1024)
	var last float64
	object := ObjectName("itest", "roundtrip.bin")
	mediaURL, err := client.Upload(ctx, bytes.NewReader(payload), int64(len(payload)), object,
		func(p float64) { last = p })
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if last != 100 {
		t.Errorf("final progress = %v, want 100", last)
	}
	if !strings.Contains(mediaURL, object) {
		t.Errorf("URL %q does not reference object %q", mediaURL, object)
	}

	if err := client.DeleteByURL(ctx, mediaURL); err != nil {
		t.Fatalf("DeleteByURL failed: %v", err)
	}
}
