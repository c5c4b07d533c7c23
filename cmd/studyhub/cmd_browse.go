// Copyright (C) 2025 StudyHub (support@studyhub.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/studyhub-app/studyhub/cmd/studyhub/internal/tui"
)

// runBrowse starts the interactive library browser.
func runBrowse(cmd *cobra.Command, args []string) {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		fail(fmt.Errorf("browse needs an interactive terminal; use 'studyhub subjects list' for scripting"))
	}

	ctrl, _ := newController()
	program := tea.NewProgram(tui.NewBrowseModel(ctrl), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fail(err)
	}
}
