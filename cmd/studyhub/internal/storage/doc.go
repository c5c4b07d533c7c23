// Copyright (C) 2025 StudyHub (support@studyhub.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package storage uploads note media to Google Cloud Storage.
//
// Uploads stream through a progress callback reporting 0-100 percent so
// commands and the TUI can render a bar. Objects live under
// notes/{noteID}/{uuid}-{filename}; the returned URL is what gets stored
// on the note's media item, and DeleteByURL maps such a URL (plain GCS or
// the /o/-style download form) back to the object for removal. Provider
// failures are translated into user-facing StorageError values.
package storage
