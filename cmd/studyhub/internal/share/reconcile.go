// Copyright (C) 2025 StudyHub (support@studyhub.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package share

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/studyhub-app/studyhub/cmd/studyhub/internal/api"
)

// hydrateLimit bounds the per-record item fetches run at once.
const hydrateLimit = 8

// unnamedItem is the display title for by-me records whose item title was
// never denormalized onto the share.
const unnamedItem = "Unnamed Item"

// Gateway is the slice of the API client the reconciler needs.
type Gateway interface {
	SharedWithMe(ctx context.Context) ([]api.ShareRecord, error)
	SharedByMe(ctx context.Context) ([]api.ShareRecord, error)
	ListSubjects(ctx context.Context) ([]api.Subject, error)
	GetSubject(ctx context.Context, id string) (*api.Subject, error)
	GetNote(ctx context.Context, id string) (*api.Note, error)
}

// SharedItem is one hydrated row of the "shared with me" set. Kind selects
// which of Subject or Note is populated.
type SharedItem struct {
	Kind    string // api.ItemTypeSubject or api.ItemTypeNote
	Subject *api.Subject
	Note    *api.Note
	Record  api.ShareRecord
	Caps    api.Permissions
}

// Title returns the hydrated item's display title.
func (i SharedItem) Title() string {
	switch i.Kind {
	case api.ItemTypeSubject:
		if i.Subject != nil {
			return i.Subject.Title
		}
	case api.ItemTypeNote:
		if i.Note != nil {
			return i.Note.Title
		}
	}
	return unnamedItem
}

// ItemID returns the shared item's ID.
func (i SharedItem) ItemID() string { return i.Record.ItemID }

// ShareSummary is one row of the "shared by me" set.
type ShareSummary struct {
	Record    api.ShareRecord
	Title     string
	CreatedAt time.Time
}

// Dashboard is the reconciled sharing view. WithMe and ByMe never contain
// the same item.
type Dashboard struct {
	WithMe []SharedItem
	ByMe   []ShareSummary
}

// Reconciler builds Dashboard values from the share feeds.
type Reconciler struct {
	API Gateway
	Log *slog.Logger

	// Now is the clock used for date fallbacks. Nil means time.Now.
	Now func() time.Time
}

// Reconcile fetches both feeds and the user's subjects, then merges them.
//
// # Description
//
// Feed and subject fetches run concurrently and any of them failing fails
// the reconcile. Hydration of individual with-me rows is best effort: a
// record whose item cannot be fetched (deleted, revoked, transient error)
// is dropped with a warning instead of failing the whole dashboard.
//
// # Inputs
//
//   - ctx: cancels in-flight fetches.
//   - currentUID: the authenticated user, used to drop self-shares and
//     owned-subject notes.
//
// # Outputs
//
//   - *Dashboard: disjoint WithMe/ByMe sets, feed order preserved.
//   - error: non-nil only when a feed or the subject list failed.
func (r *Reconciler) Reconcile(ctx context.Context, currentUID string) (*Dashboard, error) {
	log := r.Log
	if log == nil {
		log = slog.Default()
	}

	var withMe, byMe []api.ShareRecord
	var ownSubjects []api.Subject

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if withMe, err = r.API.SharedWithMe(gctx); err != nil {
			return fmt.Errorf("fetching shared-with-me: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if byMe, err = r.API.SharedByMe(gctx); err != nil {
			return fmt.Errorf("fetching shared-by-me: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if ownSubjects, err = r.API.ListSubjects(gctx); err != nil {
			return fmt.Errorf("fetching own subjects: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byMeKeys := make(map[string]struct{}, len(byMe))
	for _, rec := range byMe {
		byMeKeys[rec.Key()] = struct{}{}
	}
	ownedSubjectIDs := make(map[string]struct{}, len(ownSubjects))
	for _, s := range ownSubjects {
		ownedSubjectIDs[s.ID] = struct{}{}
	}

	// Self-shares surface in both feeds; the by-me side wins.
	incoming := withMe[:0:0]
	for _, rec := range withMe {
		if _, dup := byMeKeys[rec.Key()]; dup {
			continue
		}
		if rec.SharedBy == currentUID {
			continue
		}
		incoming = append(incoming, rec)
	}

	hydrated := r.hydrate(ctx, log, currentUID, incoming)

	dash := &Dashboard{}
	for _, item := range hydrated {
		if item == nil {
			continue
		}
		// Notes in subjects the user owns are already reachable through
		// the subject view.
		if item.Kind == api.ItemTypeNote && item.Note != nil {
			if _, owned := ownedSubjectIDs[item.Note.SubjectID]; owned {
				continue
			}
		}
		dash.WithMe = append(dash.WithMe, *item)
	}

	for _, rec := range byMe {
		dash.ByMe = append(dash.ByMe, r.summarize(rec))
	}
	return dash, nil
}

// hydrate fetches the item behind each record with a bounded fan-out.
// Results keep input order; failed rows come back nil.
func (r *Reconciler) hydrate(ctx context.Context, log *slog.Logger, currentUID string, records []api.ShareRecord) []*SharedItem {
	items := make([]*SharedItem, len(records))
	g := &errgroup.Group{}
	g.SetLimit(hydrateLimit)
	for i, rec := range records {
		i, rec := i, rec
		g.Go(func() error {
			item, err := r.hydrateOne(ctx, currentUID, rec)
			if err != nil {
				log.Warn("skipping shared item",
					"itemType", rec.ItemType,
					"itemId", rec.ItemID,
					"error", err)
				return nil
			}
			items[i] = item
			return nil
		})
	}
	_ = g.Wait() // workers never return errors
	return items
}

func (r *Reconciler) hydrateOne(ctx context.Context, currentUID string, rec api.ShareRecord) (*SharedItem, error) {
	item := &SharedItem{Kind: rec.ItemType, Record: rec}
	switch rec.ItemType {
	case api.ItemTypeSubject:
		subject, err := r.API.GetSubject(ctx, rec.ItemID)
		if err != nil {
			return nil, err
		}
		item.Subject = subject
		item.Caps = Resolve(subject.CreatedBy, currentUID, []api.ShareRecord{rec})
	case api.ItemTypeNote:
		note, err := r.API.GetNote(ctx, rec.ItemID)
		if err != nil {
			return nil, err
		}
		item.Note = note
		item.Caps = Resolve(note.CreatedBy, currentUID, []api.ShareRecord{rec})
	default:
		return nil, fmt.Errorf("unknown item type %q", rec.ItemType)
	}
	return item, nil
}

func (r *Reconciler) summarize(rec api.ShareRecord) ShareSummary {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	return Summarize(rec, now)
}

// Summarize maps a by-me record to its display row. Titles fall back to
// "Unnamed Item"; the display time walks createdAt, sharedAt, now, and an
// unparseable date also lands on now.
func Summarize(rec api.ShareRecord, now func() time.Time) ShareSummary {
	title := rec.ItemTitle
	if title == "" {
		title = unnamedItem
	}

	created := time.Time{}
	for _, raw := range []string{rec.CreatedAt, rec.SharedAt} {
		if raw == "" {
			continue
		}
		if t := api.ParseTimestamp(raw); !t.IsZero() {
			created = t
			break
		}
	}
	if created.IsZero() {
		created = now()
	}

	return ShareSummary{Record: rec, Title: title, CreatedAt: created}
}
