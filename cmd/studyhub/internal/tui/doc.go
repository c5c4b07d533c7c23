// Copyright (C) 2025 StudyHub (support@studyhub.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package tui provides terminal user interface components for browsing
// the library interactively.
//
// # Description
//
// This package implements the `studyhub browse` screen using bubbletea.
// It renders the subject, note, and share-dashboard lists served by the
// controller package and maps key presses onto controller events, so
// filtering, sorting, and pagination behave exactly like their flag
// equivalents on the non-interactive commands. It also hosts the huh
// share form used by `studyhub share`.
//
// # Thread Safety
//
// TUI components are designed for single-threaded use within the
// bubbletea event loop. Do not access TUI state from multiple
// goroutines. The controller itself is safe to share; loads triggered
// by the TUI run inside tea commands.
package tui
