// Copyright (C) 2025 StudyHub (support@studyhub.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studyhub-app/studyhub/cmd/studyhub/internal/api"
	"github.com/studyhub-app/studyhub/cmd/studyhub/internal/content"
	"github.com/studyhub-app/studyhub/cmd/studyhub/internal/controller"
	"github.com/studyhub-app/studyhub/cmd/studyhub/internal/share"
)

// =============================================================================
// Tabs
// =============================================================================

// Tab selects which list the browse screen renders.
type Tab int

const (
	// TabSubjects lists the user's subjects.
	TabSubjects Tab = iota

	// TabNotes lists recent notes.
	TabNotes

	// TabSharedWithMe lists items others shared with the user.
	TabSharedWithMe

	// TabSharedByMe lists the user's outgoing shares.
	TabSharedByMe
)

var tabLabels = [...]string{"Subjects", "Notes", "Shared with me", "Shared by me"}

func (t Tab) String() string {
	if int(t) < len(tabLabels) {
		return tabLabels[t]
	}
	return "Subjects"
}

// =============================================================================
// Messages
// =============================================================================

// loadedMsg reports a finished controller load. The controller already
// holds the result (or discarded it as stale); err is surfaced for the
// status line only.
type loadedMsg struct{ err error }

// =============================================================================
// Model
// =============================================================================

// BrowseModel is the bubbletea model for the interactive library view.
//
// # Description
//
// Wraps a controller and translates key presses into controller events.
// The model never filters or sorts itself; every list it renders comes
// back from the controller so the interactive view and the flag-driven
// commands can never disagree.
type BrowseModel struct {
	ctrl *controller.Controller

	active    Tab
	search    textinput.Model
	searching bool

	width  int
	height int

	loadErr  error
	quitting bool
}

// NewBrowseModel creates a browse model over an existing controller.
func NewBrowseModel(ctrl *controller.Controller) BrowseModel {
	ti := textinput.New()
	ti.Placeholder = "search title or content"
	ti.CharLimit = 120
	return BrowseModel{
		ctrl:   ctrl,
		active: TabSubjects,
		search: ti,
	}
}

// Init implements tea.Model.
func (m BrowseModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), textinput.Blink)
}

func (m BrowseModel) loadCmd() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		return loadedMsg{err: ctrl.Load(context.Background())}
	}
}

// Update implements tea.Model.
func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loadedMsg:
		m.loadErr = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchInput(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m BrowseModel) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		q := m.ctrl.State().Query
		q.Search = strings.TrimSpace(m.search.Value())
		m.ctrl.Dispatch(controller.QueryChanged{Query: q})
		return m, nil

	case "esc":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m BrowseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "tab":
		m.active = (m.active + 1) % Tab(len(tabLabels))
		return m, nil

	case "shift+tab":
		m.active = (m.active + Tab(len(tabLabels)) - 1) % Tab(len(tabLabels))
		return m, nil

	case "/":
		m.searching = true
		m.search.SetValue(m.ctrl.State().Query.Search)
		return m, m.search.Focus()

	case "x":
		q := m.ctrl.State().Query
		q.Search = ""
		q.Tag = ""
		m.search.SetValue("")
		m.ctrl.Dispatch(controller.QueryChanged{Query: q})
		return m, nil

	case "s":
		q := m.ctrl.State().Query
		q.Sort = nextSort(q.Sort)
		m.ctrl.Dispatch(controller.QueryChanged{Query: q})
		return m, nil

	case "p":
		s := m.ctrl.State()
		m.ctrl.Dispatch(controller.PerPageChanged{PerPage: nextPerPage(s.PerPage)})
		return m, nil

	case "left", "h":
		s := m.ctrl.State()
		m.ctrl.Dispatch(controller.PageChanged{Page: s.Page - 1})
		return m, nil

	case "right", "l":
		s := m.ctrl.State()
		m.ctrl.Dispatch(controller.PageChanged{Page: s.Page + 1})
		return m, nil

	case "r":
		return m, m.loadCmd()
	}
	return m, nil
}

func nextSort(order content.SortOrder) content.SortOrder {
	switch order {
	case content.SortNewest:
		return content.SortOldest
	case content.SortOldest:
		return content.SortAlphabetical
	default:
		return content.SortNewest
	}
}

func nextPerPage(current int) int {
	for i, choice := range content.PerPageChoices {
		if choice == current {
			return content.PerPageChoices[(i+1)%len(content.PerPageChoices)]
		}
	}
	return content.DefaultPerPage
}

// =============================================================================
// View
// =============================================================================

// View implements tea.Model.
func (m BrowseModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("StudyHub"))
	b.WriteString("  ")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	state := m.ctrl.State()
	switch {
	case m.searching:
		b.WriteString("Search: " + m.search.View() + "\n")
	case state.Phase == controller.PhaseLoading, state.Phase == controller.PhaseIdle:
		b.WriteString(emptyStyle.Render("Loading your library..."))
		b.WriteString("\n")
	case state.Phase == controller.PhaseFailed:
		b.WriteString(errorStyle.Render("Load failed: " + errText(state.Err)))
		b.WriteString("\n")
	default:
		b.WriteString(m.renderBody(state))
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter(state))
	return b.String()
}

func errText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}

func (m BrowseModel) renderTabs() string {
	parts := make([]string, len(tabLabels))
	for i, label := range tabLabels {
		if Tab(i) == m.active {
			parts[i] = activeTabStyle.Render(label)
		} else {
			parts[i] = tabStyle.Render(label)
		}
	}
	return strings.Join(parts, "")
}

func (m BrowseModel) renderBody(state controller.State) string {
	switch m.active {
	case TabNotes:
		return m.renderNotes()
	case TabSharedWithMe:
		return renderWithMe(state.Data.Dashboard)
	case TabSharedByMe:
		return renderByMe(state.Data.Dashboard)
	default:
		return m.renderSubjects()
	}
}

func (m BrowseModel) renderSubjects() string {
	page := m.ctrl.VisibleSubjects()
	if len(page.Items) == 0 {
		return emptyStyle.Render("No subjects match.") + "\n"
	}
	var b strings.Builder
	for _, sub := range page.Items {
		b.WriteString(itemTitleStyle.Render(sub.Title))
		if sub.Description != "" {
			b.WriteString(itemMetaStyle.Render("  " + sub.Description))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m BrowseModel) renderNotes() string {
	page := m.ctrl.VisibleNotes()
	if len(page.Items) == 0 {
		return emptyStyle.Render("No notes match.") + "\n"
	}
	var b strings.Builder
	for _, n := range page.Items {
		b.WriteString(itemTitleStyle.Render(n.Title))
		if len(n.Tags) > 0 {
			b.WriteString("  " + tagStyle.Render("#"+strings.Join(n.Tags, " #")))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderWithMe(dash *share.Dashboard) string {
	if dash == nil || len(dash.WithMe) == 0 {
		return emptyStyle.Render("Nothing has been shared with you yet.") + "\n"
	}
	var b strings.Builder
	for _, item := range dash.WithMe {
		b.WriteString(itemTitleStyle.Render(item.Title()))
		b.WriteString(itemMetaStyle.Render("  " + item.Kind + " from " + item.Record.SharedBy))
		b.WriteString("  " + capsStyle.Render(capsText(item.Caps)))
		b.WriteString("\n")
	}
	return b.String()
}

func renderByMe(dash *share.Dashboard) string {
	if dash == nil || len(dash.ByMe) == 0 {
		return emptyStyle.Render("You haven't shared anything yet.") + "\n"
	}
	var b strings.Builder
	for _, sum := range dash.ByMe {
		b.WriteString(itemTitleStyle.Render(sum.Title))
		b.WriteString(itemMetaStyle.Render(fmt.Sprintf("  %s with %d recipient(s), %s",
			sum.Record.ItemType, len(sum.Record.SharedWith), sum.CreatedAt.Format("2006-01-02"))))
		b.WriteString("\n")
	}
	return b.String()
}

func capsText(caps api.Permissions) string {
	var parts []string
	if caps.View {
		parts = append(parts, "view")
	}
	if caps.Edit {
		parts = append(parts, "edit")
	}
	if caps.Comment {
		parts = append(parts, "comment")
	}
	if caps.Download {
		parts = append(parts, "download")
	}
	if caps.Share {
		parts = append(parts, "share")
	}
	if len(parts) == 0 {
		return "no access"
	}
	return strings.Join(parts, "+")
}

func (m BrowseModel) renderFooter(state controller.State) string {
	var page controller.Page[api.Subject]
	var notePage controller.Page[api.Note]
	var pos string
	switch m.active {
	case TabNotes:
		notePage = m.ctrl.VisibleNotes()
		pos = fmt.Sprintf("page %d/%d (%d notes)", notePage.Number, max(notePage.TotalPages, 1), notePage.TotalItems)
	case TabSubjects:
		page = m.ctrl.VisibleSubjects()
		pos = fmt.Sprintf("page %d/%d (%d subjects)", page.Number, max(page.TotalPages, 1), page.TotalItems)
	default:
		pos = ""
	}

	bits := []string{
		"tab: switch", "/: search", "s: sort " + string(state.Query.Sort),
		fmt.Sprintf("p: %d per page", state.PerPage), "←/→: page", "r: reload", "q: quit",
	}
	line := footerStyle.Render(strings.Join(bits, "  "))
	if pos != "" {
		line = footerStyle.Render(pos) + "\n" + line
	}
	if m.loadErr != nil && state.Phase != controller.PhaseFailed {
		line = errorStyle.Render("refresh failed: "+m.loadErr.Error()) + "\n" + line
	}
	return line
}
