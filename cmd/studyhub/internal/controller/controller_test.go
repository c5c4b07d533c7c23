// Copyright (C) 2025 StudyHub (support@studyhub.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhub-app/studyhub/cmd/studyhub/internal/api"
	"github.com/studyhub-app/studyhub/cmd/studyhub/internal/content"
	"github.com/studyhub-app/studyhub/cmd/studyhub/internal/share"
)

type stubGateway struct {
	subjects []api.Subject
	notes    []api.Note
	err      error
}

func (s *stubGateway) ListSubjects(context.Context) ([]api.Subject, error) {
	return s.subjects, s.err
}
func (s *stubGateway) RecentNotes(context.Context, int) ([]api.Note, error) {
	return s.notes, nil
}
func (s *stubGateway) SharedWithMe(context.Context) ([]api.ShareRecord, error) { return nil, nil }
func (s *stubGateway) SharedByMe(context.Context) ([]api.ShareRecord, error)   { return nil, nil }
func (s *stubGateway) GetSubject(context.Context, string) (*api.Subject, error) {
	return nil, errors.New("not found")
}
func (s *stubGateway) GetNote(context.Context, string) (*api.Note, error) {
	return nil, errors.New("not found")
}

// ============================================================
// Reducer: generation guard
// ============================================================

func TestStaleResponseIsDiscarded(t *testing.T) {
	s := NewState()
	s = Reduce(s, LoadStarted{Gen: 1})
	s = Reduce(s, LoadStarted{Gen: 2})

	// Load 2 finishes first.
	fresh := Snapshot{Subjects: []api.Subject{{ID: "fresh"}}}
	s = Reduce(s, LoadSucceeded{Gen: 2, Data: fresh})
	require.Equal(t, PhaseReady, s.Phase)

	// Load 1 limps in afterwards and must not clobber anything.
	stale := Snapshot{Subjects: []api.Subject{{ID: "stale"}}}
	s = Reduce(s, LoadSucceeded{Gen: 1, Data: stale})
	require.Len(t, s.Data.Subjects, 1)
	assert.Equal(t, "fresh", s.Data.Subjects[0].ID)

	// A stale failure is equally ignored.
	s = Reduce(s, LoadFailed{Gen: 1, Err: errors.New("too late")})
	assert.Equal(t, PhaseReady, s.Phase)
	assert.NoError(t, s.Err)
}

func TestStaleLoadStartIsIgnored(t *testing.T) {
	s := NewState()
	s = Reduce(s, LoadStarted{Gen: 5})
	s = Reduce(s, LoadStarted{Gen: 3})
	assert.Equal(t, uint64(5), s.Generation)
}

func TestLoadFailureSetsError(t *testing.T) {
	s := NewState()
	s = Reduce(s, LoadStarted{Gen: 1})
	boom := errors.New("boom")
	s = Reduce(s, LoadFailed{Gen: 1, Err: boom})
	assert.Equal(t, PhaseFailed, s.Phase)
	assert.ErrorIs(t, s.Err, boom)

	// A later successful load clears it.
	s = Reduce(s, LoadStarted{Gen: 2})
	assert.NoError(t, s.Err)
	s = Reduce(s, LoadSucceeded{Gen: 2})
	assert.Equal(t, PhaseReady, s.Phase)
}

// ============================================================
// Reducer: filters and paging
// ============================================================

func TestQueryChangeResetsPage(t *testing.T) {
	s := NewState()
	s = Reduce(s, PageChanged{Page: 4})
	require.Equal(t, 4, s.Page)

	s = Reduce(s, QueryChanged{Query: Query{Search: "chem", Sort: content.SortNewest}})
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, "chem", s.Query.Search)

	s = Reduce(s, PageChanged{Page: 3})
	s = Reduce(s, PerPageChanged{PerPage: 12})
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, 12, s.PerPage)
}

func TestPerPageClampsToOfferedSizes(t *testing.T) {
	s := Reduce(NewState(), PerPageChanged{PerPage: 7})
	assert.Equal(t, content.DefaultPerPage, s.PerPage)
}

func TestPageNeverBelowOne(t *testing.T) {
	s := Reduce(NewState(), PageChanged{Page: -2})
	assert.Equal(t, 1, s.Page)
}

// ============================================================
// Reducer: local patches
// ============================================================

func TestSubjectDeleteAlsoDropsItsNotes(t *testing.T) {
	s := NewState()
	s.Data = Snapshot{
		Subjects: []api.Subject{{ID: "s1"}, {ID: "s2"}},
		Notes: []api.Note{
			{ID: "n1", SubjectID: "s1"},
			{ID: "n2", SubjectID: "s2"},
		},
	}
	s = Reduce(s, SubjectDeleted{ID: "s1"})
	require.Len(t, s.Data.Subjects, 1)
	assert.Equal(t, "s2", s.Data.Subjects[0].ID)
	require.Len(t, s.Data.Notes, 1)
	assert.Equal(t, "n2", s.Data.Notes[0].ID)
}

func TestShareRevokePatchesDashboard(t *testing.T) {
	s := NewState()
	s.Data.Dashboard = &share.Dashboard{
		ByMe: []share.ShareSummary{
			{Record: api.ShareRecord{ID: "sh1"}},
			{Record: api.ShareRecord{ID: "sh2"}},
		},
	}
	s = Reduce(s, ShareRevoked{ShareID: "sh1"})
	require.Len(t, s.Data.Dashboard.ByMe, 1)
	assert.Equal(t, "sh2", s.Data.Dashboard.ByMe[0].Record.ID)

	// Revoking with no dashboard loaded is a no-op, not a panic.
	empty := Reduce(NewState(), ShareRevoked{ShareID: "sh1"})
	assert.Nil(t, empty.Data.Dashboard)
}

func TestShareCreatedAppendsToByMe(t *testing.T) {
	s := Reduce(NewState(), ShareCreated{Record: api.ShareRecord{
		ID:        "sh9",
		ItemTitle: "Physics",
		SharedAt:  "2025-06-01T12:00:00Z",
	}})
	require.NotNil(t, s.Data.Dashboard)
	require.Len(t, s.Data.Dashboard.ByMe, 1)
	assert.Equal(t, "Physics", s.Data.Dashboard.ByMe[0].Title)
}

// ============================================================
// Controller: loads and visible slices
// ============================================================

func TestLoadPopulatesState(t *testing.T) {
	gw := &stubGateway{
		subjects: []api.Subject{
			{ID: "s1", Title: "Zoology", CreatedAt: "2025-01-01T00:00:00Z"},
			{ID: "s2", Title: "algebra", CreatedAt: "2025-02-01T00:00:00Z"},
		},
		notes: []api.Note{
			{ID: "n1", Title: "Cells", SubjectID: "s1", Tags: []string{"exam"}},
		},
	}
	c := New(gw, "me", nil)
	require.NoError(t, c.Load(context.Background()))

	s := c.State()
	assert.Equal(t, PhaseReady, s.Phase)
	assert.Len(t, s.Data.Subjects, 2)
	require.NotNil(t, s.Data.Dashboard)
}

func TestLoadFailureDispatchesFailed(t *testing.T) {
	gw := &stubGateway{err: errors.New("api down")}
	c := New(gw, "me", nil)
	require.Error(t, c.Load(context.Background()))
	assert.Equal(t, PhaseFailed, c.State().Phase)
}

func TestVisibleSubjectsPipeline(t *testing.T) {
	gw := &stubGateway{
		subjects: []api.Subject{
			{ID: "s1", Title: "Zoology", CreatedAt: "2025-01-01T00:00:00Z"},
			{ID: "s2", Title: "algebra", CreatedAt: "2025-02-01T00:00:00Z"},
			{ID: "s3", Title: "Botany", CreatedAt: "2025-03-01T00:00:00Z"},
		},
		notes: []api.Note{
			{ID: "n1", SubjectID: "s3", Tags: []string{"exam"}},
		},
	}
	c := New(gw, "me", nil)
	require.NoError(t, c.Load(context.Background()))

	// Default sort: newest first.
	page := c.VisibleSubjects()
	require.Len(t, page.Items, 3)
	assert.Equal(t, "s3", page.Items[0].ID)
	assert.Equal(t, 1, page.TotalPages)

	// Alphabetical ignores case.
	c.Dispatch(QueryChanged{Query: Query{Sort: content.SortAlphabetical}})
	page = c.VisibleSubjects()
	assert.Equal(t, "algebra", page.Items[0].Title)
	assert.Equal(t, "Botany", page.Items[1].Title)

	// Tag filter walks the subject's notes.
	c.Dispatch(QueryChanged{Query: Query{Tag: "exam", Sort: content.SortNewest}})
	page = c.VisibleSubjects()
	require.Len(t, page.Items, 1)
	assert.Equal(t, "s3", page.Items[0].ID)

	// Search on title.
	c.Dispatch(QueryChanged{Query: Query{Search: "zoo", Sort: content.SortNewest}})
	page = c.VisibleSubjects()
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Zoology", page.Items[0].Title)
}

func TestVisibleNotesOutOfRangePageIsEmpty(t *testing.T) {
	gw := &stubGateway{
		notes: []api.Note{{ID: "n1", Title: "only one"}},
	}
	c := New(gw, "me", nil)
	require.NoError(t, c.Load(context.Background()))

	c.Dispatch(PageChanged{Page: 99})
	page := c.VisibleNotes()
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 1, page.TotalItems)
}
