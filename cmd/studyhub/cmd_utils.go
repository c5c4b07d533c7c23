// Copyright (C) 2025 StudyHub (support@studyhub.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/studyhub-app/studyhub/cmd/studyhub/config"
	"github.com/studyhub-app/studyhub/cmd/studyhub/internal/api"
	"github.com/studyhub-app/studyhub/cmd/studyhub/internal/auth"
	"github.com/studyhub-app/studyhub/cmd/studyhub/internal/content"
	"github.com/studyhub-app/studyhub/cmd/studyhub/internal/controller"
	"github.com/studyhub-app/studyhub/cmd/studyhub/internal/storage"
	"github.com/studyhub-app/studyhub/pkg/logging"
)

var (
	appLog       *slog.Logger
	appLogCloser func() error
)

// initLogger builds the process logger from the loaded config. Runs in
// the root command's PersistentPreRun, so every subcommand can rely on
// appLog being set.
func initLogger() {
	appLog, appLogCloser = logging.New(logging.Config{
		Level:   logging.ParseLevel(config.Global.Logging.Level),
		LogDir:  config.Global.Logging.Dir,
		Service: "cli",
		Quiet:   true, // command output goes to stdout; the file gets the log
	})
}

func closeLogger() {
	if appLogCloser != nil {
		_ = appLogCloser()
	}
}

// fail prints a user-facing error and exits.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// newAuthClient wires the identity client from config.
func newAuthClient() *auth.Client {
	dataDir, err := config.DataDir()
	if err != nil {
		fail(err)
	}
	client, err := auth.NewClient(auth.Config{
		APIKey:   config.Global.Identity.APIKey,
		BaseURL:  config.Global.Identity.BaseURL,
		TokenURL: config.Global.Identity.TokenURL,
		DataDir:  dataDir,
	}, appLog)
	if err != nil {
		fail(err)
	}
	return client
}

// requireSession returns the auth client and its signed-in session, or
// exits with a login hint.
func requireSession() (*auth.Client, *auth.Session) {
	client := newAuthClient()
	session, err := client.CurrentSession()
	if err != nil {
		fail(err)
	}
	return client, session
}

// newAPIClient builds the backend client on top of the session's tokens.
func newAPIClient(tokens api.TokenSource) *api.Client {
	return api.NewClient(config.Global.API.BaseURL, tokens, appLog)
}

// newController builds a loaded-on-demand library controller for the
// signed-in user, applying the shared list flags.
func newController() (*controller.Controller, *api.Client) {
	authc, session := requireSession()
	apic := newAPIClient(authc)
	ctrl := controller.New(apic, session.UID, appLog)

	ctrl.Dispatch(controller.QueryChanged{Query: controller.Query{
		Search: listSearch,
		Tag:    listTag,
		Sort:   content.ParseSortOrder(listSort),
	}})
	ctrl.Dispatch(controller.PerPageChanged{PerPage: pickPerPage()})
	ctrl.Dispatch(controller.PageChanged{Page: listPage})
	return ctrl, apic
}

// pickPerPage prefers the flag, then the configured default.
func pickPerPage() int {
	if listPerPage != content.DefaultPerPage {
		return listPerPage
	}
	if config.Global.UI.PerPage != 0 {
		return config.Global.UI.PerPage
	}
	return content.DefaultPerPage
}

// newStorageClient wires the media bucket client, if configured.
func newStorageClient(ctx context.Context) *storage.Client {
	client, err := storage.NewClient(ctx, storage.Config{
		Bucket:          config.Global.Storage.Bucket,
		CredentialsFile: config.Global.Storage.CredentialsFile,
	}, appLog)
	if err != nil {
		fail(err)
	}
	return client
}

// promptPassword reads a password without echoing it.
func promptPassword(title string) string {
	var password string
	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(title).
			EchoMode(huh.EchoModePassword).
			Value(&password),
	)).Run()
	if err != nil {
		fail(err)
	}
	return password
}

// printJSON renders v as indented JSON on stdout.
func printJSON(v any) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		fail(fmt.Errorf("encoding output: %w", err))
	}
}

// pageFooter prints the "page X of Y" line list commands share.
func pageFooter(number, totalPages, totalItems int) {
	if totalPages < 1 {
		totalPages = 1
	}
	fmt.Printf("\npage %d of %d (%d items)\n", number, totalPages, totalItems)
}
