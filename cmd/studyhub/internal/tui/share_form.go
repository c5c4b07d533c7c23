// Copyright (C) 2025 StudyHub (support@studyhub.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package tui

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/studyhub-app/studyhub/cmd/studyhub/internal/api"
)

// ShareFormResult is what the form produces for POST /shares.
type ShareFormResult struct {
	Create api.ShareCreate
}

// RunShareForm collects sharing details interactively.
//
// # Description
//
// Prompts for the share type, recipients, permission grants, and an
// optional message, then assembles the request body. View access is
// always granted; the form does not offer a way to withhold it.
//
// # Inputs
//
//   - itemType: api.ItemTypeSubject or api.ItemTypeNote.
//   - itemID: the item being shared.
//   - itemTitle: shown in the form header, denormalized onto the record.
//   - currentUID: recorded as the sharer.
//
// # Outputs
//
//   - *ShareFormResult: the assembled request, nil when aborted.
//   - error: form failure or user abort.
func RunShareForm(itemType, itemID, itemTitle, currentUID string) (*ShareFormResult, error) {
	shareType := api.ShareTypeSpecific
	recipients := ""
	message := ""
	edit, comment, download, reshare := false, true, true, false

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(fmt.Sprintf("Share %q", itemTitle)).
				Description("Who should be able to open this "+itemType+"?").
				Options(
					huh.NewOption("Specific people", api.ShareTypeSpecific),
					huh.NewOption("Anyone with the link", api.ShareTypePublic),
					huh.NewOption("Only me (revoke access)", api.ShareTypePrivate),
				).
				Value(&shareType),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Recipients").
				Description("Email addresses, one per line.").
				Value(&recipients).
				Validate(validateRecipients),
		).WithHideFunc(func() bool { return shareType != api.ShareTypeSpecific }),
		huh.NewGroup(
			huh.NewConfirm().Title("Allow editing?").Value(&edit),
			huh.NewConfirm().Title("Allow comments?").Value(&comment),
			huh.NewConfirm().Title("Allow downloads?").Value(&download),
			huh.NewConfirm().Title("Allow re-sharing?").Value(&reshare),
			huh.NewText().
				Title("Message (optional)").
				Lines(2).
				Value(&message),
		).WithHideFunc(func() bool { return shareType == api.ShareTypePrivate }),
	)

	if err := form.Run(); err != nil {
		return nil, err
	}

	return &ShareFormResult{Create: api.ShareCreate{
		ItemID:     itemID,
		ItemType:   itemType,
		ItemTitle:  itemTitle,
		ShareType:  shareType,
		SharedWith: splitRecipients(recipients),
		SharedBy:   currentUID,
		SharedAt:   time.Now().UTC().Format(time.RFC3339),
		Message:    strings.TrimSpace(message),
		Permissions: api.Permissions{
			View:     true,
			Edit:     edit,
			Comment:  comment,
			Download: download,
			Share:    reshare,
		},
	}}, nil
}

func splitRecipients(raw string) []string {
	var out []string
	for _, line := range strings.FieldsFunc(raw, func(r rune) bool { return r == '\n' || r == ',' }) {
		if addr := strings.TrimSpace(line); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

func validateRecipients(raw string) error {
	addrs := splitRecipients(raw)
	if len(addrs) == 0 {
		return fmt.Errorf("enter at least one email address")
	}
	for _, addr := range addrs {
		if _, err := mail.ParseAddress(addr); err != nil {
			return fmt.Errorf("%q is not a valid email address", addr)
		}
	}
	return nil
}
