// Copyright (C) 2025 StudyHub (support@studyhub.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package share

import "github.com/studyhub-app/studyhub/cmd/studyhub/internal/api"

// Resolve answers what viewerUID may do with an item.
//
// # Description
//
// Owners hold every capability unconditionally. For anyone else the first
// share record decides: the service orders ItemShares newest configuration
// first, so index 0 is the active grant. View is forced on for any granted
// record since a share that cannot be viewed is meaningless. With no
// records at all the viewer has no access, view included.
//
// # Inputs
//
//   - itemOwner: the item's createdBy UID.
//   - viewerUID: the authenticated user's UID.
//   - records: share records for the item, newest first. May be nil.
//
// # Outputs
//
//   - api.Permissions: the resolved capability set.
func Resolve(itemOwner, viewerUID string, records []api.ShareRecord) api.Permissions {
	if itemOwner != "" && itemOwner == viewerUID {
		return api.OwnerPermissions()
	}
	if len(records) == 0 {
		return api.Permissions{}
	}
	caps := records[0].Permissions
	caps.View = true
	return caps
}
