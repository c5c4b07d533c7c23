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
	"strings"

	"github.com/spf13/cobra"

	"github.com/studyhub-app/studyhub/cmd/studyhub/internal/api"
	"github.com/studyhub-app/studyhub/cmd/studyhub/internal/share"
	"github.com/studyhub-app/studyhub/cmd/studyhub/internal/tui"
)

// runShare walks the interactive form and posts the share.
func runShare(cmd *cobra.Command, args []string) {
	itemType, itemID := args[0], args[1]
	if itemType != api.ItemTypeSubject && itemType != api.ItemTypeNote {
		fail(fmt.Errorf("item type must be %q or %q", api.ItemTypeSubject, api.ItemTypeNote))
	}

	ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()

	authc, session := requireSession()
	apic := newAPIClient(authc)

	// Fetch the item first so the form header shows its title and so a
	// bad ID fails before any prompts.
	var itemTitle string
	switch itemType {
	case api.ItemTypeSubject:
		subject, err := apic.GetSubject(ctx, itemID)
		if err != nil {
			fail(err)
		}
		itemTitle = subject.Title
	case api.ItemTypeNote:
		note, err := apic.GetNote(ctx, itemID)
		if err != nil {
			fail(err)
		}
		itemTitle = note.Title
	}

	result, err := tui.RunShareForm(itemType, itemID, itemTitle, session.UID)
	if err != nil {
		fail(err)
	}

	record, err := apic.CreateShare(ctx, result.Create)
	if err != nil {
		fail(err)
	}
	switch record.ShareType {
	case api.ShareTypeSpecific:
		fmt.Printf("Shared %q with %s.\n", itemTitle, strings.Join(record.SharedWith, ", "))
	case api.ShareTypePublic:
		fmt.Printf("Anyone with the link can now open %q.\n", itemTitle)
	default:
		fmt.Printf("Access to %q is now private.\n", itemTitle)
	}
}

// runSharesList prints the reconciled by-me set.
func runSharesList(cmd *cobra.Command, args []string) {
	dash := loadDashboard()
	if jsonOutput {
		printJSON(dash.ByMe)
		return
	}
	if len(dash.ByMe) == 0 {
		fmt.Println("You haven't shared anything yet.")
		return
	}
	for _, sum := range dash.ByMe {
		fmt.Printf("%s  %s  %s  %d recipient(s)  %s\n",
			sum.Record.ID, sum.Record.ItemType, sum.Title,
			len(sum.Record.SharedWith), sum.CreatedAt.Format("2006-01-02"))
	}
}

func runSharesRevoke(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()

	authc, _ := requireSession()
	if err := newAPIClient(authc).DeleteShare(ctx, args[0]); err != nil {
		fail(err)
	}
	fmt.Printf("Revoked share %s.\n", args[0])
}

// runShared prints the reconciled with-me set.
func runShared(cmd *cobra.Command, args []string) {
	dash := loadDashboard()
	if jsonOutput {
		printJSON(dash.WithMe)
		return
	}
	if len(dash.WithMe) == 0 {
		fmt.Println("Nothing has been shared with you yet.")
		return
	}
	for _, item := range dash.WithMe {
		fmt.Printf("%s  %s  %s  from %s  [%s]\n",
			item.ItemID(), item.Kind, item.Title(), item.Record.SharedBy, capsLabel(item.Caps))
	}
}

func loadDashboard() *share.Dashboard {
	ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()

	authc, session := requireSession()
	rec := &share.Reconciler{API: newAPIClient(authc), Log: appLog}
	dash, err := rec.Reconcile(ctx, session.UID)
	if err != nil {
		fail(err)
	}
	return dash
}

func capsLabel(caps api.Permissions) string {
	var parts []string
	for _, grant := range []struct {
		on    bool
		label string
	}{
		{caps.View, "view"},
		{caps.Edit, "edit"},
		{caps.Comment, "comment"},
		{caps.Download, "download"},
		{caps.Share, "share"},
	} {
		if grant.on {
			parts = append(parts, grant.label)
		}
	}
	if len(parts) == 0 {
		return "no access"
	}
	return strings.Join(parts, "+")
}
