// Copyright (C) 2025 StudyHub (support@studyhub.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package api

import (
	"context"
	"net/url"
)

// SharedWithMe returns share records naming the current user as a
// recipient, including public shares. The feed may contain the caller's
// own shares; the reconciler filters those out.
func (c *Client) SharedWithMe(ctx context.Context) ([]ShareRecord, error) {
	var records []ShareRecord
	if err := c.get(ctx, "/shares/with-me", &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SharedByMe returns share records the current user created.
func (c *Client) SharedByMe(ctx context.Context) ([]ShareRecord, error) {
	var records []ShareRecord
	if err := c.get(ctx, "/shares/by-me", &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ItemShares returns the share records for one item, newest configuration
// first. itemType is "subject" or "note".
func (c *Client) ItemShares(ctx context.Context, itemType, itemID string) ([]ShareRecord, error) {
	var records []ShareRecord
	path := "/shares/" + url.PathEscape(itemType) + "/" + url.PathEscape(itemID)
	if err := c.get(ctx, path, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CreateShare stores a new share configuration for an item.
func (c *Client) CreateShare(ctx context.Context, in ShareCreate) (*ShareRecord, error) {
	var record ShareRecord
	if err := c.post(ctx, "/shares", in, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// DeleteShare revokes a share by record ID.
func (c *Client) DeleteShare(ctx context.Context, shareID string) error {
	return c.delete(ctx, "/shares/"+url.PathEscape(shareID))
}
