// Copyright (C) 2025 StudyHub (support@studyhub.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package controller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/studyhub-app/studyhub/cmd/studyhub/internal/api"
	"github.com/studyhub-app/studyhub/cmd/studyhub/internal/content"
	"github.com/studyhub-app/studyhub/cmd/studyhub/internal/share"
)

// recentNotesLimit is how many notes a load pulls for the notes view and
// for deriving subject tag sets.
const recentNotesLimit = 100

// Gateway is the slice of the API client the controller needs.
type Gateway interface {
	share.Gateway
	RecentNotes(ctx context.Context, limit int) ([]api.Note, error)
}

// Controller owns the library view state and runs loads against the API.
// Safe for concurrent use; bubbletea commands and CLI handlers can share
// one instance.
type Controller struct {
	mu    sync.Mutex
	state State

	gen atomic.Uint64
	gw  Gateway
	rec *share.Reconciler
	uid string
	log *slog.Logger
}

// New builds a Controller for the given authenticated user.
func New(gw Gateway, uid string, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		state: NewState(),
		gw:    gw,
		rec:   &share.Reconciler{API: gw, Log: log},
		uid:   uid,
		log:   log,
	}
}

// State returns the current state snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Dispatch applies one event and returns the resulting state.
func (c *Controller) Dispatch(ev Event) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Reduce(c.state, ev)
	return c.state
}

// Load fetches subjects, recent notes, and the share dashboard
// concurrently and dispatches the outcome. Each call gets a fresh
// generation; if a newer Load starts while this one is in flight, this
// one's result is discarded by the reducer.
func (c *Controller) Load(ctx context.Context) error {
	gen := c.gen.Add(1)
	c.Dispatch(LoadStarted{Gen: gen})

	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		subjects, err := c.gw.ListSubjects(gctx)
		if err != nil {
			return fmt.Errorf("loading subjects: %w", err)
		}
		snap.Subjects = subjects
		return nil
	})
	g.Go(func() error {
		notes, err := c.gw.RecentNotes(gctx, recentNotesLimit)
		if err != nil {
			return fmt.Errorf("loading notes: %w", err)
		}
		snap.Notes = notes
		return nil
	})
	g.Go(func() error {
		dash, err := c.rec.Reconcile(gctx, c.uid)
		if err != nil {
			return fmt.Errorf("loading shares: %w", err)
		}
		snap.Dashboard = dash
		return nil
	})

	if err := g.Wait(); err != nil {
		c.log.Error("library load failed", "generation", gen, "error", err)
		c.Dispatch(LoadFailed{Gen: gen, Err: err})
		return err
	}
	c.Dispatch(LoadSucceeded{Gen: gen, Data: snap})
	return nil
}

// Page is one rendered page of items plus its pagination facts.
type Page[E any] struct {
	Items      []E
	Number     int
	TotalPages int
	TotalItems int
}

// VisibleSubjects applies the active query to the subject list. A
// subject's tag set is the union of tags across its loaded notes.
func (c *Controller) VisibleSubjects() Page[api.Subject] {
	s := c.State()

	tagsBySubject := make(map[string][]string)
	if s.Query.Tag != "" {
		for _, n := range s.Data.Notes {
			tagsBySubject[n.SubjectID] = append(tagsBySubject[n.SubjectID], n.Tags...)
		}
	}

	subjects := content.Search(s.Data.Subjects, s.Query.Search, func(sub api.Subject) []string {
		return []string{sub.Title, sub.Description}
	})
	subjects = content.FilterByTag(subjects, s.Query.Tag, func(sub api.Subject) []string {
		return tagsBySubject[sub.ID]
	})
	subjects = clone(subjects)
	content.Sort(subjects, s.Query.Sort,
		func(sub api.Subject) string { return sub.Title },
		api.Subject.CreatedTime)

	return paged(subjects, s.Page, s.PerPage)
}

// VisibleNotes applies the active query to the recent-notes list.
func (c *Controller) VisibleNotes() Page[api.Note] {
	s := c.State()

	notes := content.Search(s.Data.Notes, s.Query.Search, func(n api.Note) []string {
		return []string{n.Title, n.Content}
	})
	notes = content.FilterByTag(notes, s.Query.Tag, func(n api.Note) []string {
		return n.Tags
	})
	notes = clone(notes)
	content.Sort(notes, s.Query.Sort,
		func(n api.Note) string { return n.Title },
		api.Note.CreatedTime)

	return paged(notes, s.Page, s.PerPage)
}

func paged[E any](items []E, page, perPage int) Page[E] {
	return Page[E]{
		Items:      content.Paginate(items, page, perPage),
		Number:     page,
		TotalPages: content.PageCount(len(items), perPage),
		TotalItems: len(items),
	}
}

// clone copies before sorting so snapshot slices stay unmutated.
func clone[E any](items []E) []E {
	out := make([]E, len(items))
	copy(out, items)
	return out
}
