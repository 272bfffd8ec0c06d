package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/todos/internal/domain"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, Keys.ForceQuit) {
		return m, m.quit()
	}

	if m.ShowHelp {
		if key.Matches(msg, Keys.Escape, Keys.Help, Keys.Quit) {
			m.ShowHelp = false
		}
		return m, nil
	}

	switch m.Focus {
	case FocusForm:
		return m.handleFormKey(msg)
	case FocusSearch:
		return m.handleSearchKey(msg)
	}

	if m.List.IsEditing() {
		return m.handleEditKey(msg)
	}
	return m.handleListKey(msg)
}

// handleFormKey handles keys while the new-todo field has focus
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.SwitchPane), msg.Type == tea.KeyDown:
		m.focusList()
		return m, nil

	case key.Matches(msg, Keys.Escape):
		if m.Snap.Notice.Active() {
			m.TodoSvc.ClearError()
			return m, m.sync()
		}
		return m, nil
	}

	var cmd tea.Cmd
	var submitted, changed bool
	m.Form, cmd, submitted, changed = m.Form.Update(msg)

	if submitted {
		return m, CreateTodoCmd(m.ctx, m.TodoSvc, m.Form.Value())
	}
	if changed && m.Snap.Notice.Active() {
		// Typing dismisses the current error
		m.TodoSvc.ClearError()
		return m, tea.Batch(cmd, m.sync())
	}
	return m, cmd
}

// handleListKey handles keys while the list has focus
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, m.quit()

	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
		return m, nil

	case key.Matches(msg, Keys.SwitchPane):
		return m, m.focusForm()

	case key.Matches(msg, Keys.Up):
		if m.List.Cursor() == 0 {
			return m, m.focusForm()
		}
		m.List.MoveUp()
		return m, nil

	case key.Matches(msg, Keys.Down):
		m.List.MoveDown()
		return m, nil

	case key.Matches(msg, Keys.Home):
		m.List.MoveTop()
		return m, nil

	case key.Matches(msg, Keys.End):
		m.List.MoveBottom()
		return m, nil

	case key.Matches(msg, Keys.Toggle):
		if e, ok := m.selectedIdle(); ok {
			return m, ToggleTodoCmd(m.ctx, m.TodoSvc, e.ID())
		}
		return m, nil

	case key.Matches(msg, Keys.Edit):
		if _, ok := m.selectedIdle(); !ok {
			return m, nil
		}
		cmd, _ := m.List.StartEdit()
		return m, cmd

	case key.Matches(msg, Keys.Delete):
		if e, ok := m.selectedIdle(); ok {
			return m, DeleteTodoCmd(m.ctx, m.TodoSvc, e.ID(), false)
		}
		return m, nil

	case key.Matches(msg, Keys.ToggleAll):
		if m.canToggleAll() {
			return m, ToggleAllCmd(m.ctx, m.TodoSvc)
		}
		return m, nil

	case key.Matches(msg, Keys.ClearCompleted):
		if m.Snap.HasCompleted() {
			return m, ClearCompletedCmd(m.ctx, m.TodoSvc)
		}
		return m, nil

	case key.Matches(msg, Keys.NextFilter):
		m.setFilter(m.Filter.Next())
		return m, nil

	case key.Matches(msg, Keys.FilterAll):
		m.setFilter(domain.FilterAll)
		return m, nil

	case key.Matches(msg, Keys.FilterActive):
		m.setFilter(domain.FilterActive)
		return m, nil

	case key.Matches(msg, Keys.FilterDone):
		m.setFilter(domain.FilterCompleted)
		return m, nil

	case key.Matches(msg, Keys.Search):
		m.Focus = FocusSearch
		return m, m.Search.Open()

	case key.Matches(msg, Keys.Reload):
		if !m.Snap.Loading {
			return m, LoadTodosCmd(m.ctx, m.TodoSvc)
		}
		return m, nil

	case key.Matches(msg, Keys.Escape):
		if m.Snap.Notice.Active() {
			m.TodoSvc.ClearError()
			return m, m.sync()
		}
		if m.Search.Query() != "" {
			m.Search.Clear()
			m.refreshList()
		}
		return m, nil
	}

	return m, nil
}

// selectedIdle returns the selected row unless it is the placeholder or
// has a request in flight
func (m Model) selectedIdle() (domain.Entry, bool) {
	e, ok := m.List.Selected()
	if !ok || e.IsPending() || m.Snap.IsProcessing(e.ID()) {
		return domain.Entry{}, false
	}
	return e, true
}

// handleEditKey handles keys while a todo title is being edited
func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.List.EditBusy() {
		return m, nil
	}

	switch {
	case key.Matches(msg, Keys.Submit):
		id := m.List.EditID()
		title := strings.TrimSpace(m.List.EditValue())

		if title == "" {
			// An emptied title deletes the todo
			m.List.SetEditBusy(true)
			return m, DeleteTodoCmd(m.ctx, m.TodoSvc, id, true)
		}
		if item, ok := m.Snap.Find(id); ok && item.Title == title {
			m.List.CancelEdit()
			return m, nil
		}
		m.List.SetEditBusy(true)
		return m, RenameTodoCmd(m.ctx, m.TodoSvc, id, title)

	case key.Matches(msg, Keys.Escape):
		m.List.CancelEdit()
		return m, nil
	}

	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	return m, cmd
}

// handleSearchKey handles keys while the search bar has focus
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Submit):
		m.focusList()
		return m, nil

	case key.Matches(msg, Keys.Escape):
		m.Search.Clear()
		m.focusList()
		m.refreshList()
		return m, nil
	}

	var cmd tea.Cmd
	var changed bool
	m.Search, cmd, changed = m.Search.Update(msg)
	if changed {
		m.refreshList()
		m.List.MoveTop()
	}
	return m, cmd
}
