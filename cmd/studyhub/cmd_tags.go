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

	"github.com/spf13/cobra"
)

func runTagsList(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()

	authc, _ := requireSession()
	tags, err := newAPIClient(authc).ListTags(ctx)
	if err != nil {
		fail(err)
	}
	if jsonOutput {
		printJSON(tags)
		return
	}
	if len(tags) == 0 {
		fmt.Println("No tags yet.")
		return
	}
	for _, tag := range tags {
		fmt.Println(tag)
	}
}

func runTagsNotes(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()

	authc, _ := requireSession()
	notes, err := newAPIClient(authc).NotesByTag(ctx, args[0])
	if err != nil {
		fail(err)
	}
	printNotes(notes)
}

func runTagsAdd(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()

	authc, _ := requireSession()
	if err := newAPIClient(authc).AddTag(ctx, args[0], args[1]); err != nil {
		fail(err)
	}
	fmt.Printf("Tagged note %s with #%s.\n", args[0], args[1])
}

func runTagsRemove(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()

	authc, _ := requireSession()
	if err := newAPIClient(authc).RemoveTag(ctx, args[0], args[1]); err != nil {
		fail(err)
	}
	fmt.Printf("Removed #%s from note %s.\n", args[1], args[0])
}
