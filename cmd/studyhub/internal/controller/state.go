// Copyright (C) 2025 StudyHub (support@studyhub.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package controller

import (
	"slices"
	"time"

	"github.com/studyhub-app/studyhub/cmd/studyhub/internal/api"
	"github.com/studyhub-app/studyhub/cmd/studyhub/internal/content"
	"github.com/studyhub-app/studyhub/cmd/studyhub/internal/share"
)

// Phase is the load lifecycle of the view.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Query is the active filter configuration.
type Query struct {
	Search string
	Tag    string
	Sort   content.SortOrder
}

// Snapshot is the loaded data behind the view.
type Snapshot struct {
	Subjects  []api.Subject
	Notes     []api.Note
	Dashboard *share.Dashboard
}

// State is the whole view state. Values are treated as immutable; Reduce
// returns a new State rather than mutating.
type State struct {
	Phase      Phase
	Generation uint64
	Data       Snapshot
	Query      Query
	Page       int
	PerPage    int
	Err        error
}

// NewState returns the initial idle state.
func NewState() State {
	return State{
		Phase:   PhaseIdle,
		Query:   Query{Sort: content.SortNewest},
		Page:    1,
		PerPage: content.DefaultPerPage,
	}
}

// Event advances the state machine through Reduce.
type Event interface{ isEvent() }

// LoadStarted marks the beginning of load number Gen.
type LoadStarted struct{ Gen uint64 }

// LoadSucceeded delivers the data for load number Gen.
type LoadSucceeded struct {
	Gen  uint64
	Data Snapshot
}

// LoadFailed delivers the failure of load number Gen.
type LoadFailed struct {
	Gen uint64
	Err error
}

// QueryChanged replaces the filter configuration.
type QueryChanged struct{ Query Query }

// PageChanged moves to a different page.
type PageChanged struct{ Page int }

// PerPageChanged switches the page size.
type PerPageChanged struct{ PerPage int }

// SubjectDeleted removes a subject (and its notes) locally.
type SubjectDeleted struct{ ID string }

// NoteDeleted removes a note locally.
type NoteDeleted struct{ ID string }

// ShareRevoked removes a share record from the dashboard locally.
type ShareRevoked struct{ ShareID string }

// ShareCreated adds a freshly created share to the by-me set locally.
type ShareCreated struct{ Record api.ShareRecord }

func (LoadStarted) isEvent()    {}
func (LoadSucceeded) isEvent()  {}
func (LoadFailed) isEvent()     {}
func (QueryChanged) isEvent()   {}
func (PageChanged) isEvent()    {}
func (PerPageChanged) isEvent() {}
func (SubjectDeleted) isEvent() {}
func (NoteDeleted) isEvent()    {}
func (ShareRevoked) isEvent()   {}
func (ShareCreated) isEvent()   {}

// Reduce advances s by one event and returns the new state. Load events
// whose generation does not match the state's current generation are
// stale and leave the state untouched.
func Reduce(s State, ev Event) State {
	switch ev := ev.(type) {
	case LoadStarted:
		if ev.Gen <= s.Generation {
			return s
		}
		s.Generation = ev.Gen
		s.Phase = PhaseLoading
		s.Err = nil

	case LoadSucceeded:
		if ev.Gen != s.Generation {
			return s
		}
		s.Phase = PhaseReady
		s.Data = ev.Data
		s.Err = nil

	case LoadFailed:
		if ev.Gen != s.Generation {
			return s
		}
		s.Phase = PhaseFailed
		s.Err = ev.Err

	case QueryChanged:
		s.Query = ev.Query
		s.Page = 1

	case PageChanged:
		s.Page = max(ev.Page, 1)

	case PerPageChanged:
		s.PerPage = content.ClampPerPage(ev.PerPage)
		s.Page = 1

	case SubjectDeleted:
		s.Data.Subjects = slices.DeleteFunc(slices.Clone(s.Data.Subjects),
			func(sub api.Subject) bool { return sub.ID == ev.ID })
		s.Data.Notes = slices.DeleteFunc(slices.Clone(s.Data.Notes),
			func(n api.Note) bool { return n.SubjectID == ev.ID })

	case NoteDeleted:
		s.Data.Notes = slices.DeleteFunc(slices.Clone(s.Data.Notes),
			func(n api.Note) bool { return n.ID == ev.ID })

	case ShareRevoked:
		if s.Data.Dashboard == nil {
			return s
		}
		dash := &share.Dashboard{
			WithMe: slices.DeleteFunc(slices.Clone(s.Data.Dashboard.WithMe),
				func(item share.SharedItem) bool { return item.Record.ID == ev.ShareID }),
			ByMe: slices.DeleteFunc(slices.Clone(s.Data.Dashboard.ByMe),
				func(sum share.ShareSummary) bool { return sum.Record.ID == ev.ShareID }),
		}
		s.Data.Dashboard = dash

	case ShareCreated:
		dash := &share.Dashboard{}
		if s.Data.Dashboard != nil {
			dash.WithMe = s.Data.Dashboard.WithMe
			dash.ByMe = slices.Clone(s.Data.Dashboard.ByMe)
		}
		dash.ByMe = append(dash.ByMe, share.Summarize(ev.Record, time.Now))
		s.Data.Dashboard = dash
	}
	return s
}
