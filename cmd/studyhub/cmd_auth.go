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
)

const authTimeout = 30 * time.Second

// runSignup creates the account and triggers the verification email.
func runSignup(cmd *cobra.Command, args []string) {
	email := args[0]
	password := promptPassword("Choose a password")
	if promptPassword("Repeat the password") != password {
		fail(fmt.Errorf("passwords do not match"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	defer cancel()

	client := newAuthClient()
	if err := client.SignUp(ctx, email, password, displayName); err != nil {
		fail(err)
	}
	fmt.Printf("Account created for %s.\n", email)
	fmt.Println("We sent you a verification email; verify before logging in.")
}

// runLogin signs in. Unverified accounts are rejected with the
// verification hint rather than a session.
func runLogin(cmd *cobra.Command, args []string) {
	email := args[0]
	password := promptPassword("Password")

	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	defer cancel()

	client := newAuthClient()
	session, err := client.SignIn(ctx, email, password)
	if err != nil {
		fail(err)
	}
	name := session.Name
	if name == "" {
		name = session.Email
	}
	fmt.Printf("Signed in as %s.\n", name)
}

func runLogout(cmd *cobra.Command, args []string) {
	if err := newAuthClient().SignOut(); err != nil {
		fail(err)
	}
	fmt.Println("Signed out.")
}

func runWhoami(cmd *cobra.Command, args []string) {
	_, session := requireSession()
	if jsonOutput {
		printJSON(map[string]string{
			"uid":   session.UID,
			"email": session.Email,
			"name":  session.Name,
		})
		return
	}
	fmt.Printf("%s (%s)\n", session.Email, session.UID)
}

func runResetPassword(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	defer cancel()

	if err := newAuthClient().SendPasswordReset(ctx, args[0]); err != nil {
		fail(err)
	}
	fmt.Printf("Password reset email sent to %s.\n", args[0])
}

// runResendVerification re-sends the verification email, honoring the
// persisted cooldown between sends.
func runResendVerification(cmd *cobra.Command, args []string) {
	email := args[0]
	password := promptPassword("Password")

	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	defer cancel()

	if err := newAuthClient().ResendVerificationEmail(ctx, email, password); err != nil {
		fail(err)
	}
	fmt.Printf("Verification email sent to %s.\n", email)
}
