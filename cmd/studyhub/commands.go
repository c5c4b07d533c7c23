// Copyright (C) 2025 StudyHub (support@studyhub.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/studyhub-app/studyhub/cmd/studyhub/config"
)

// --- Global Command Variables ---
var (
	displayName string // signup --name
	jsonOutput  bool   // machine-readable output for list commands

	listSearch  string // case-insensitive title/content filter
	listTag     string // exact tag filter
	listSort    string // alphabetical, newest, oldest
	listPage    int
	listPerPage int

	subjectDescription string
	noteSubjectID      string
	noteContent        string
	noteTags           []string
	attachTitle        string
	attachType         string

	rootCmd = &cobra.Command{
		Use:   "studyhub",
		Short: "A cli to organize study notes, subjects, and shares",
		Long: `StudyHub keeps your study material in subjects full of rich-text
				notes, with tags, media attachments, and fine-grained sharing.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := config.Load(); err != nil {
				log.Fatalf("Error loading config: %v", err)
			}
			initLogger()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			closeLogger()
		},
	}

	// --- Accounts ---
	signupCmd = &cobra.Command{
		Use:   "signup [email]",
		Short: "Create an account and send the verification email",
		Args:  cobra.ExactArgs(1),
		Run:   runSignup, // Defined in cmd_auth.go
	}
	loginCmd = &cobra.Command{
		Use:   "login [email]",
		Short: "Sign in with a verified account",
		Args:  cobra.ExactArgs(1),
		Run:   runLogin, // Defined in cmd_auth.go
	}
	logoutCmd = &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the local session",
		Run:   runLogout, // Defined in cmd_auth.go
	}
	whoamiCmd = &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Run:   runWhoami, // Defined in cmd_auth.go
	}
	resetPasswordCmd = &cobra.Command{
		Use:   "reset-password [email]",
		Short: "Send a password reset email",
		Args:  cobra.ExactArgs(1),
		Run:   runResetPassword, // Defined in cmd_auth.go
	}
	resendVerificationCmd = &cobra.Command{
		Use:   "resend-verification [email]",
		Short: "Send the verification email again (rate limited)",
		Args:  cobra.ExactArgs(1),
		Run:   runResendVerification, // Defined in cmd_auth.go
	}

	// --- Subjects ---
	subjectsCmd = &cobra.Command{
		Use:   "subjects",
		Short: "Manage your subjects",
	}
	subjectsListCmd = &cobra.Command{
		Use:   "list",
		Short: "List subjects with filtering, sorting, and paging",
		Run:   runSubjectsList, // Defined in cmd_subjects.go
	}
	subjectsCreateCmd = &cobra.Command{
		Use:   "create [title]",
		Short: "Create a subject",
		Args:  cobra.ExactArgs(1),
		Run:   runSubjectsCreate, // Defined in cmd_subjects.go
	}
	subjectsUpdateCmd = &cobra.Command{
		Use:   "update [subject_id] [title]",
		Short: "Rename a subject or change its description",
		Args:  cobra.ExactArgs(2),
		Run:   runSubjectsUpdate, // Defined in cmd_subjects.go
	}
	subjectsDeleteCmd = &cobra.Command{
		Use:   "delete [subject_id]",
		Short: "Delete a subject and everything in it",
		Args:  cobra.ExactArgs(1),
		Run:   runSubjectsDelete, // Defined in cmd_subjects.go
	}

	// --- Notes ---
	notesCmd = &cobra.Command{
		Use:   "notes",
		Short: "Manage your notes",
	}
	notesListCmd = &cobra.Command{
		Use:   "list",
		Short: "List recent notes, or a subject's notes with --subject",
		Run:   runNotesList, // Defined in cmd_notes.go
	}
	notesShowCmd = &cobra.Command{
		Use:   "show [note_id]",
		Short: "Print one note with its content, tags, and attachments",
		Args:  cobra.ExactArgs(1),
		Run:   runNotesShow, // Defined in cmd_notes.go
	}
	notesCreateCmd = &cobra.Command{
		Use:   "create [title]",
		Short: "Create a note inside a subject",
		Args:  cobra.ExactArgs(1),
		Run:   runNotesCreate, // Defined in cmd_notes.go
	}
	notesUpdateCmd = &cobra.Command{
		Use:   "update [note_id] [title]",
		Short: "Update a note's title, content, or tags",
		Args:  cobra.ExactArgs(2),
		Run:   runNotesUpdate, // Defined in cmd_notes.go
	}
	notesDeleteCmd = &cobra.Command{
		Use:   "delete [note_id]",
		Short: "Delete a note and its uploaded attachments",
		Args:  cobra.ExactArgs(1),
		Run:   runNotesDelete, // Defined in cmd_notes.go
	}
	notesAttachCmd = &cobra.Command{
		Use:   "attach [note_id] [file]",
		Short: "Upload a file and attach it to a note",
		Args:  cobra.ExactArgs(2),
		Run:   runNotesAttach, // Defined in cmd_notes.go
	}

	// --- Tags ---
	tagsCmd = &cobra.Command{
		Use:   "tags",
		Short: "Work with note tags",
	}
	tagsListCmd = &cobra.Command{
		Use:   "list",
		Short: "List every tag you use",
		Run:   runTagsList, // Defined in cmd_tags.go
	}
	tagsNotesCmd = &cobra.Command{
		Use:   "notes [tag]",
		Short: "List the notes carrying a tag",
		Args:  cobra.ExactArgs(1),
		Run:   runTagsNotes, // Defined in cmd_tags.go
	}
	tagsAddCmd = &cobra.Command{
		Use:   "add [note_id] [tag]",
		Short: "Add a tag to a note",
		Args:  cobra.ExactArgs(2),
		Run:   runTagsAdd, // Defined in cmd_tags.go
	}
	tagsRemoveCmd = &cobra.Command{
		Use:   "remove [note_id] [tag]",
		Short: "Remove a tag from a note",
		Args:  cobra.ExactArgs(2),
		Run:   runTagsRemove, // Defined in cmd_tags.go
	}

	// --- Sharing ---
	shareCmd = &cobra.Command{
		Use:   "share [subject|note] [item_id]",
		Short: "Share a subject or note (interactive)",
		Args:  cobra.ExactArgs(2),
		Run:   runShare, // Defined in cmd_shares.go
	}
	sharesCmd = &cobra.Command{
		Use:   "shares",
		Short: "Inspect and revoke your outgoing shares",
	}
	sharesListCmd = &cobra.Command{
		Use:   "list",
		Short: "List the shares you created",
		Run:   runSharesList, // Defined in cmd_shares.go
	}
	sharesRevokeCmd = &cobra.Command{
		Use:   "revoke [share_id]",
		Short: "Revoke a share you created",
		Args:  cobra.ExactArgs(1),
		Run:   runSharesRevoke, // Defined in cmd_shares.go
	}
	sharedCmd = &cobra.Command{
		Use:   "shared",
		Short: "Show the items other people shared with you",
		Run:   runShared, // Defined in cmd_shares.go
	}

	// --- Interactive ---
	browseCmd = &cobra.Command{
		Use:   "browse",
		Short: "Browse subjects, notes, and shares interactively",
		Run:   runBrowse, // Defined in cmd_browse.go
	}
)

// init runs when the Go program starts
func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"Output as JSON for scripting")

	// Accounts
	rootCmd.AddCommand(signupCmd)
	signupCmd.Flags().StringVar(&displayName, "name", "", "Display name shown to collaborators")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(resetPasswordCmd)
	rootCmd.AddCommand(resendVerificationCmd)

	// Subjects
	rootCmd.AddCommand(subjectsCmd)
	subjectsCmd.AddCommand(subjectsListCmd)
	addListFlags(subjectsListCmd)
	subjectsCmd.AddCommand(subjectsCreateCmd)
	subjectsCreateCmd.Flags().StringVar(&subjectDescription, "description", "", "Subject description")
	subjectsCmd.AddCommand(subjectsUpdateCmd)
	subjectsUpdateCmd.Flags().StringVar(&subjectDescription, "description", "", "Subject description")
	subjectsCmd.AddCommand(subjectsDeleteCmd)

	// Notes
	rootCmd.AddCommand(notesCmd)
	notesCmd.AddCommand(notesListCmd)
	addListFlags(notesListCmd)
	notesListCmd.Flags().StringVar(&noteSubjectID, "subject", "", "List a subject's notes instead of recent notes")
	notesCmd.AddCommand(notesShowCmd)
	notesCmd.AddCommand(notesCreateCmd)
	notesCreateCmd.Flags().StringVar(&noteSubjectID, "subject", "", "Subject the note belongs to (required)")
	notesCreateCmd.Flags().StringVar(&noteContent, "content", "", "Note body")
	notesCreateCmd.Flags().StringSliceVar(&noteTags, "tag", nil, "Tag to attach (repeatable)")
	_ = notesCreateCmd.MarkFlagRequired("subject")
	notesCmd.AddCommand(notesUpdateCmd)
	notesUpdateCmd.Flags().StringVar(&noteContent, "content", "", "New note body (empty keeps the old one)")
	notesUpdateCmd.Flags().StringSliceVar(&noteTags, "tag", nil, "Replacement tag set (repeatable)")
	notesCmd.AddCommand(notesDeleteCmd)
	notesCmd.AddCommand(notesAttachCmd)
	notesAttachCmd.Flags().StringVar(&attachTitle, "title", "", "Attachment title (defaults to the filename)")
	notesAttachCmd.Flags().StringVar(&attachType, "type", "file", "Attachment type: image, video, or file")

	// Tags
	rootCmd.AddCommand(tagsCmd)
	tagsCmd.AddCommand(tagsListCmd)
	tagsCmd.AddCommand(tagsNotesCmd)
	tagsCmd.AddCommand(tagsAddCmd)
	tagsCmd.AddCommand(tagsRemoveCmd)

	// Sharing
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(sharesCmd)
	sharesCmd.AddCommand(sharesListCmd)
	sharesCmd.AddCommand(sharesRevokeCmd)
	rootCmd.AddCommand(sharedCmd)

	// Interactive browser
	rootCmd.AddCommand(browseCmd)
}

// addListFlags attaches the shared filter/sort/page flag set.
func addListFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&listSearch, "search", "", "Case-insensitive title/content filter")
	cmd.Flags().StringVar(&listTag, "tag", "", "Only items carrying this exact tag")
	cmd.Flags().StringVar(&listSort, "sort", "newest", "Sort order: alphabetical, newest, or oldest")
	cmd.Flags().IntVar(&listPage, "page", 1, "Page number (1-indexed)")
	cmd.Flags().IntVar(&listPerPage, "per-page", 9, "Items per page: 6, 9, 12, or 24")
}
