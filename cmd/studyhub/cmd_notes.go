// Copyright (C) 2025 StudyHub (support@studyhub.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/studyhub-app/studyhub/cmd/studyhub/internal/api"
	"github.com/studyhub-app/studyhub/cmd/studyhub/internal/content"
	"github.com/studyhub-app/studyhub/cmd/studyhub/internal/storage"
)

// runNotesList prints either a subject's notes or the filtered
// recent-notes page.
func runNotesList(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()

	if noteSubjectID != "" {
		authc, _ := requireSession()
		notes, err := newAPIClient(authc).ListSubjectNotes(ctx, noteSubjectID)
		if err != nil {
			fail(err)
		}
		notes = content.Search(notes, listSearch, func(n api.Note) []string {
			return []string{n.Title, n.Content}
		})
		notes = content.FilterByTag(notes, listTag, func(n api.Note) []string { return n.Tags })
		content.Sort(notes, content.ParseSortOrder(listSort),
			func(n api.Note) string { return n.Title },
			api.Note.CreatedTime)
		printNotes(notes)
		return
	}

	ctrl, _ := newController()
	if err := ctrl.Load(ctx); err != nil {
		fail(err)
	}
	page := ctrl.VisibleNotes()
	if jsonOutput {
		printJSON(page)
		return
	}
	printNotes(page.Items)
	pageFooter(page.Number, page.TotalPages, page.TotalItems)
}

func printNotes(notes []api.Note) {
	if jsonOutput {
		printJSON(notes)
		return
	}
	if len(notes) == 0 {
		fmt.Println("No notes match.")
		return
	}
	for _, n := range notes {
		fmt.Printf("%s  %s", n.ID, n.Title)
		if len(n.Tags) > 0 {
			fmt.Printf("  #%s", strings.Join(n.Tags, " #"))
		}
		fmt.Println()
	}
}

func runNotesShow(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()

	authc, _ := requireSession()
	note, err := newAPIClient(authc).GetNote(ctx, args[0])
	if err != nil {
		fail(err)
	}
	if jsonOutput {
		printJSON(note)
		return
	}
	fmt.Printf("%s\n", note.Title)
	if len(note.Tags) > 0 {
		fmt.Printf("tags: #%s\n", strings.Join(note.Tags, " #"))
	}
	fmt.Printf("\n%s\n", note.Content)
	if len(note.MediaItems) > 0 {
		fmt.Println("\nattachments:")
		for _, m := range note.MediaItems {
			fmt.Printf("  [%s] %s  %s\n", m.Type, m.Title, m.URL)
		}
	}
}

func runNotesCreate(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()

	authc, _ := requireSession()
	note, err := newAPIClient(authc).CreateNote(ctx, api.NoteCreate{
		Title:     args[0],
		Content:   noteContent,
		SubjectID: noteSubjectID,
		Tags:      noteTags,
	})
	if err != nil {
		fail(err)
	}
	fmt.Printf("Created note %s (%s).\n", note.Title, note.ID)
}

// runNotesUpdate sends a full replacement body, keeping whatever the
// caller didn't override.
func runNotesUpdate(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()

	authc, _ := requireSession()
	apic := newAPIClient(authc)

	current, err := apic.GetNote(ctx, args[0])
	if err != nil {
		fail(err)
	}

	body := api.NoteCreate{
		Title:      args[1],
		Content:    current.Content,
		SubjectID:  current.SubjectID,
		MediaItems: current.MediaItems,
		Tags:       current.Tags,
	}
	if cmd.Flags().Changed("content") {
		body.Content = noteContent
	}
	if cmd.Flags().Changed("tag") {
		body.Tags = noteTags
	}

	note, err := apic.UpdateNote(ctx, args[0], body)
	if err != nil {
		fail(err)
	}
	fmt.Printf("Updated note %s.\n", note.ID)
}

// runNotesDelete removes the note and best-effort deletes its uploaded
// attachments from the bucket.
func runNotesDelete(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()

	authc, _ := requireSession()
	apic := newAPIClient(authc)

	note, err := apic.GetNote(ctx, args[0])
	if err != nil {
		fail(err)
	}
	if err := apic.DeleteNote(ctx, args[0]); err != nil {
		fail(err)
	}

	var uploaded []api.MediaItem
	for _, m := range note.MediaItems {
		if m.Type != "link" {
			uploaded = append(uploaded, m)
		}
	}
	if len(uploaded) > 0 {
		store := newStorageClient(ctx)
		for _, m := range uploaded {
			if err := store.DeleteByURL(ctx, m.URL); err != nil {
				appLog.Warn("leaving orphaned media object", "url", m.URL, "error", err)
			}
		}
	}
	fmt.Printf("Deleted note %s.\n", args[0])
}

// runNotesAttach uploads a local file and appends it to the note's media.
func runNotesAttach(cmd *cobra.Command, args []string) {
	noteID, filePath := args[0], args[1]

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	authc, _ := requireSession()
	apic := newAPIClient(authc)

	note, err := apic.GetNote(ctx, noteID)
	if err != nil {
		fail(err)
	}

	f, err := os.Open(filePath)
	if err != nil {
		fail(err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		fail(err)
	}

	store := newStorageClient(ctx)
	object := storage.ObjectName(noteID, filePath)
	url, err := store.Upload(ctx, f, info.Size(), object, func(percent float64) {
		fmt.Printf("\ruploading... %3.0f%%", percent)
	})
	fmt.Println()
	if err != nil {
		fail(err)
	}

	title := attachTitle
	if title == "" {
		title = filepath.Base(filePath)
	}
	body := api.NoteCreate{
		Title:     note.Title,
		Content:   note.Content,
		SubjectID: note.SubjectID,
		MediaItems: append(note.MediaItems, api.MediaItem{
			Type:      attachType,
			URL:       url,
			Title:     title,
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		}),
		Tags: note.Tags,
	}
	if _, err := apic.UpdateNote(ctx, noteID, body); err != nil {
		// The object is up but unreferenced; remove it again.
		if cleanupErr := store.DeleteByURL(ctx, url); cleanupErr != nil {
			appLog.Warn("leaving orphaned media object", "url", url, "error", cleanupErr)
		}
		fail(err)
	}
	fmt.Printf("Attached %s to note %s.\n", title, noteID)
}
