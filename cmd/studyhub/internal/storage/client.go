// Copyright (C) 2025 StudyHub (support@studyhub.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const uploadChunk = 256 * 1024

// StorageError is an upload or delete failure in user-facing terms.
type StorageError struct {
	Code    string // unauthorized, canceled, quota-exceeded, retry-limit-exceeded, unknown
	Message string
}

var _ error = (*StorageError)(nil)

func (e *StorageError) Error() string { return e.Message }

// ProgressFunc receives upload progress as a 0-100 percentage.
type ProgressFunc func(percent float64)

// Config wires the media storage client.
type Config struct {
	// Bucket is the media bucket name.
	Bucket string
	// CredentialsFile is an optional service-account key path. Empty
	// falls back to application default credentials.
	CredentialsFile string
}

// Client uploads and deletes media objects.
type Client struct {
	bucket     *gcs.BucketHandle
	bucketName string
	log        *slog.Logger
}

// NewClient connects to GCS.
func NewClient(ctx context.Context, cfg Config, log *slog.Logger) (*Client, error) {
	if log == nil {
		log = slog.Default()
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is not configured")
	}
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	gc, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}
	return &Client{
		bucket:     gc.Bucket(cfg.Bucket),
		bucketName: cfg.Bucket,
		log:        log,
	}, nil
}

// ObjectName builds the storage path for a note attachment. The UUID
// prefix keeps repeated uploads of the same filename from colliding.
func ObjectName(noteID, filename string) string {
	return "notes/" + noteID + "/" + uuid.NewString() + "-" + path.Base(filename)
}

// Upload streams r to the bucket and returns the object's public URL.
//
// # Description
//
// size is the total byte count, used to derive percentages; onProgress
// (when non-nil) is invoked as chunks land, ending at exactly 100 on
// success. With an unknown size (size <= 0) only the final 100 is
// reported.
func (c *Client) Upload(ctx context.Context, r io.Reader, size int64, object string, onProgress ProgressFunc) (string, error) {
	w := c.bucket.Object(object).NewWriter(ctx)
	w.ChunkSize = uploadChunk

	var done int64
	buf := make([]byte, uploadChunk)
	for {
		n, readErr := r.Read(buf)
		if n > 0 {
			if _, err := w.Write(buf[:n]); err != nil {
				_ = w.Close()
				return "", c.mapError("upload", object, err)
			}
			done += int64(n)
			if onProgress != nil && size > 0 {
				onProgress(float64(done) / float64(size) * 100)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			_ = w.Close()
			return "", fmt.Errorf("reading upload source: %w", readErr)
		}
	}
	if err := w.Close(); err != nil {
		return "", c.mapError("upload", object, err)
	}
	if onProgress != nil {
		onProgress(100)
	}

	c.log.Info("uploaded media object", "object", object, "bytes", done)
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.bucketName, object), nil
}

// DeleteByURL removes the object a stored media URL points at.
func (c *Client) DeleteByURL(ctx context.Context, rawURL string) error {
	object, err := objectFromURL(rawURL, c.bucketName)
	if err != nil {
		return err
	}
	if err := c.bucket.Object(object).Delete(ctx); err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			// Already gone; the note side should still be cleaned up.
			c.log.Warn("media object already deleted", "object", object)
			return nil
		}
		return c.mapError("delete", object, err)
	}
	c.log.Info("deleted media object", "object", object)
	return nil
}

// objectFromURL extracts the object path from either URL form the app has
// historically stored: the download form with an /o/ segment holding a
// URL-encoded path, or a plain https://storage.googleapis.com/bucket/path
// URL.
func objectFromURL(rawURL, bucket string) (string, error) {
	if _, after, found := strings.Cut(rawURL, "/o/"); found {
		encoded, _, _ := strings.Cut(after, "?")
		object, err := url.PathUnescape(encoded)
		if err != nil || object == "" {
			return "", &StorageError{Code: "unknown", Message: "Invalid file URL."}
		}
		return object, nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", &StorageError{Code: "unknown", Message: "Invalid file URL."}
	}
	object := strings.TrimPrefix(strings.TrimPrefix(u.Path, "/"), bucket+"/")
	if object == "" || object == strings.TrimPrefix(u.Path, "/") {
		return "", &StorageError{Code: "unknown", Message: "Invalid file URL."}
	}
	return object, nil
}

// mapError translates provider failures into user-facing StorageErrors.
func (c *Client) mapError(op, object string, err error) error {
	c.log.Error("storage operation failed", "op", op, "object", object, "error", err)

	if errors.Is(err, context.Canceled) {
		return &StorageError{Code: "canceled", Message: "Upload was cancelled."}
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &StorageError{Code: "unauthorized", Message: "You don't have permission to upload this file"}
		case http.StatusTooManyRequests:
			return &StorageError{Code: "quota-exceeded", Message: "Storage quota exceeded. Try removing unused files."}
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return &StorageError{Code: "retry-limit-exceeded", Message: "Upload failed due to network issues. Please try again."}
		}
	}
	return &StorageError{Code: "unknown", Message: fmt.Sprintf("File %s failed. Please try again.", op)}
}
