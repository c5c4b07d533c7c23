// Copyright (C) 2025 StudyHub (support@studyhub.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package logging provides structured logging for StudyHub commands.
//
// Built on log/slog with multi-destination output:
//
//   - Default: human-readable text on stderr (Unix CLI convention)
//   - Optional: JSON file logging under a log directory, one file per
//     service per day
//
// # Basic Usage
//
//	logger := logging.Default()
//	logger.Info("uploading media", "note_id", noteID)
//
// # File Logging
//
//	logger, closeFn := logging.New(logging.Config{
//	    Level:   logging.LevelInfo,
//	    LogDir:  "~/.studyhub/logs",
//	    Service: "cli",
//	})
//	defer closeFn()
//
// This package does NOT redact sensitive data. Never log tokens or
// passwords; log their presence instead ("token_present", token != "").
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// ============================================================
// Levels
// ============================================================

// Level is the minimum severity a logger emits.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// ParseLevel maps a config string to a Level, defaulting to Info.
func ParseLevel(s string) Level {
	switch s {
	case "debug", "DEBUG":
		return LevelDebug
	case "warn", "WARN":
		return LevelWarn
	case "error", "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) toSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ============================================================
// Configuration
// ============================================================

// Config configures logger construction. The zero value yields Info+
// text logging on stderr.
type Config struct {
	// Level is the minimum level emitted.
	Level Level

	// LogDir enables file logging when set. Files are named
	// "{Service}_{YYYY-MM-DD}.log" and always JSON. Supports a leading
	// ~ for the home directory.
	LogDir string

	// Service is attached to every entry as the "service" attribute and
	// names the log file.
	Service string

	// JSON switches stderr output to JSON.
	JSON bool

	// Quiet disables stderr output entirely.
	Quiet bool
}

// ============================================================
// Construction
// ============================================================

// New builds a logger per config. The returned close function syncs and
// closes the log file when file logging is active; it is never nil.
func New(config Config) (*slog.Logger, func() error) {
	opts := &slog.HandlerOptions{Level: config.Level.toSlogLevel()}

	var handlers []slog.Handler
	if !config.Quiet {
		if config.JSON {
			handlers = append(handlers, slog.NewJSONHandler(os.Stderr, opts))
		} else {
			handlers = append(handlers, slog.NewTextHandler(os.Stderr, opts))
		}
	}

	closeFn := func() error { return nil }
	if config.LogDir != "" {
		if file, err := openLogFile(config); err == nil {
			handlers = append(handlers, slog.NewJSONHandler(file, opts))
			closeFn = func() error {
				if err := file.Sync(); err != nil {
					_ = file.Close()
					return fmt.Errorf("sync log file: %w", err)
				}
				return file.Close()
			}
		}
	}

	var handler slog.Handler
	switch len(handlers) {
	case 0:
		handler = slog.NewTextHandler(os.Stderr, opts)
	case 1:
		handler = handlers[0]
	default:
		handler = &multiHandler{handlers: handlers}
	}
	if config.Service != "" {
		handler = handler.WithAttrs([]slog.Attr{slog.String("service", config.Service)})
	}
	return slog.New(handler), closeFn
}

// Default returns an Info-level stderr logger for the CLI.
func Default() *slog.Logger {
	logger, _ := New(Config{Level: LevelInfo, Service: "studyhub"})
	return logger
}

func openLogFile(config Config) (*os.File, error) {
	dir := expandPath(config.LogDir)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, err
	}
	service := config.Service
	if service == "" {
		service = "studyhub"
	}
	filename := fmt.Sprintf("%s_%s.log", service, time.Now().Format("2006-01-02"))
	return os.OpenFile(filepath.Join(dir, filename), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
}

// ============================================================
// Multi-handler
// ============================================================

// multiHandler fans out records to several handlers, enabling text on
// stderr alongside JSON in the file.
type multiHandler struct {
	handlers []slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, r.Level) {
			if err := handler.Handle(ctx, r); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}

// expandPath expands a leading ~ to the user's home directory.
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
