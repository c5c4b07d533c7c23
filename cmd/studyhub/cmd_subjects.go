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
	"time"

	"github.com/spf13/cobra"

	"github.com/studyhub-app/studyhub/cmd/studyhub/internal/api"
)

const apiTimeout = 60 * time.Second

// runSubjectsList loads the library and prints the filtered subject page.
func runSubjectsList(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()

	ctrl, _ := newController()
	if err := ctrl.Load(ctx); err != nil {
		fail(err)
	}

	page := ctrl.VisibleSubjects()
	if jsonOutput {
		printJSON(page)
		return
	}
	if len(page.Items) == 0 {
		fmt.Println("No subjects match.")
		return
	}
	for _, sub := range page.Items {
		fmt.Printf("%s  %s", sub.ID, sub.Title)
		if sub.Description != "" {
			fmt.Printf("  - %s", sub.Description)
		}
		fmt.Println()
	}
	pageFooter(page.Number, page.TotalPages, page.TotalItems)
}

func runSubjectsCreate(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()

	authc, _ := requireSession()
	subject, err := newAPIClient(authc).CreateSubject(ctx, api.SubjectCreate{
		Title:       args[0],
		Description: subjectDescription,
	})
	if err != nil {
		fail(err)
	}
	fmt.Printf("Created subject %s (%s).\n", subject.Title, subject.ID)
}

func runSubjectsUpdate(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()

	authc, _ := requireSession()
	apic := newAPIClient(authc)

	description := subjectDescription
	if !cmd.Flags().Changed("description") {
		current, err := apic.GetSubject(ctx, args[0])
		if err != nil {
			fail(err)
		}
		description = current.Description
	}

	subject, err := apic.UpdateSubject(ctx, args[0], api.SubjectCreate{
		Title:       args[1],
		Description: description,
	})
	if err != nil {
		fail(err)
	}
	fmt.Printf("Updated subject %s.\n", subject.ID)
}

func runSubjectsDelete(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()

	authc, _ := requireSession()
	if err := newAPIClient(authc).DeleteSubject(ctx, args[0]); err != nil {
		fail(err)
	}
	fmt.Printf("Deleted subject %s.\n", args[0])
}
