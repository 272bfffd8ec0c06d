package components

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/todos/internal/domain"
	"github.com/mmcdole/todos/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// TodoList renders the visible todos with a cursor and an inline edit field
type TodoList struct {
	entries    []domain.Entry
	processing []int // sorted
	cursor     int
	offset     int
	width      int
	height     int
	focused    bool
	query      string // highlighted search query

	spinnerFrame int

	// Edit mode
	editing  bool
	editID   int
	editBusy bool // rename/delete request in flight
	edit     textinput.Model
}

// NewTodoList creates an empty list
func NewTodoList() TodoList {
	ti := textinput.New()
	ti.Placeholder = "Empty todo will be deleted"
	ti.CharLimit = 200
	ti.Prompt = ""
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return TodoList{edit: ti, height: 10}
}

// SetEntries replaces the rows, keeping the cursor on the same id when
// possible. Editing stops if the edited item is no longer visible.
func (l *TodoList) SetEntries(entries []domain.Entry, processing []int) {
	var selectedID int
	hadSelection := false
	if e, ok := l.Selected(); ok {
		selectedID, hadSelection = e.ID(), true
	}

	l.entries = entries
	l.processing = processing

	if hadSelection {
		for i, e := range entries {
			if e.ID() == selectedID {
				l.cursor = i
				break
			}
		}
	}
	l.clampCursor()

	if l.editing && l.indexOf(l.editID) < 0 {
		l.stopEditing()
	}
}

// SetSize sets the dimensions of the list
func (l *TodoList) SetSize(width, height int) {
	l.width = width
	l.height = max(height, 1)
	l.edit.Width = max(width-8, 10)
	l.clampCursor()
}

func (l *TodoList) SetFocused(focused bool) { l.focused = focused }

func (l *TodoList) SetSpinnerFrame(frame int) { l.spinnerFrame = frame }

// SetHighlight sets the search query whose matches are emphasized
func (l *TodoList) SetHighlight(query string) { l.query = query }

func (l TodoList) Len() int { return len(l.entries) }

// Selected returns the entry under the cursor
func (l TodoList) Selected() (domain.Entry, bool) {
	if l.cursor < 0 || l.cursor >= len(l.entries) {
		return domain.Entry{}, false
	}
	return l.entries[l.cursor], true
}

// Cursor returns the cursor position
func (l TodoList) Cursor() int { return l.cursor }

func (l *TodoList) MoveUp() {
	if l.cursor > 0 {
		l.cursor--
	}
	l.clampCursor()
}

func (l *TodoList) MoveDown() {
	if l.cursor < len(l.entries)-1 {
		l.cursor++
	}
	l.clampCursor()
}

func (l *TodoList) MoveTop() {
	l.cursor = 0
	l.clampCursor()
}

func (l *TodoList) MoveBottom() {
	l.cursor = len(l.entries) - 1
	l.clampCursor()
}

func (l *TodoList) clampCursor() {
	if l.cursor >= len(l.entries) {
		l.cursor = len(l.entries) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.height {
		l.offset = l.cursor - l.height + 1
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

func (l TodoList) indexOf(id int) int {
	for i, e := range l.entries {
		if !e.IsPending() && e.ID() == id {
			return i
		}
	}
	return -1
}

// === Edit mode ===

// StartEdit opens the edit field on the selected item. The placeholder of
// a pending creation cannot be edited.
func (l *TodoList) StartEdit() (tea.Cmd, bool) {
	e, ok := l.Selected()
	if !ok || e.IsPending() {
		return nil, false
	}
	l.editing = true
	l.editID = e.ID()
	l.editBusy = false
	l.edit.SetValue(e.Title())
	l.edit.CursorEnd()
	return l.edit.Focus(), true
}

// CancelEdit leaves edit mode, discarding the typed title
func (l *TodoList) CancelEdit() {
	l.stopEditing()
}

// FinishEdit is called with the outcome of the submitted edit. Edit mode
// stays open after a failure so the title can be corrected.
func (l *TodoList) FinishEdit(success bool) {
	if success {
		l.stopEditing()
		return
	}
	l.editBusy = false
}

// SetEditBusy marks the submitted edit as in flight
func (l *TodoList) SetEditBusy(busy bool) { l.editBusy = busy }

func (l *TodoList) stopEditing() {
	l.editing = false
	l.editID = 0
	l.editBusy = false
	l.edit.Blur()
	l.edit.SetValue("")
}

func (l TodoList) IsEditing() bool { return l.editing }

func (l TodoList) EditBusy() bool { return l.editBusy }

func (l TodoList) EditID() int { return l.editID }

func (l TodoList) EditValue() string { return l.edit.Value() }

// Update forwards input to the edit field
func (l TodoList) Update(msg tea.Msg) (TodoList, tea.Cmd) {
	if !l.editing || l.editBusy {
		return l, nil
	}
	var cmd tea.Cmd
	l.edit, cmd = l.edit.Update(msg)
	return l, cmd
}

// === Rendering ===

func (l TodoList) isProcessing(id int) bool {
	_, ok := slices.BinarySearch(l.processing, id)
	return ok
}

// View renders the visible window of rows
func (l TodoList) View() string {
	if len(l.entries) == 0 {
		return styles.DimStyle.Render("  Nothing to show")
	}

	end := min(l.offset+l.height, len(l.entries))
	rows := make([]string, 0, end-l.offset)
	for i := l.offset; i < end; i++ {
		rows = append(rows, l.renderRow(l.entries[i], i == l.cursor && l.focused))
	}
	return strings.Join(rows, "\n")
}

func (l TodoList) renderRow(e domain.Entry, selected bool) string {
	cursor := " "
	if selected {
		cursor = styles.CursorChar
	}

	status := styles.ActiveChar
	statusColor := styles.DimGray
	if e.Completed() {
		status = styles.CompletedChar
		statusColor = styles.Green
	}
	if e.IsPending() || l.isProcessing(e.ID()) {
		status = styles.Spinner(l.spinnerFrame)
		statusColor = styles.Crimson
	}

	if l.editing && e.ID() == l.editID && !e.IsPending() {
		mark := lipgloss.NewStyle().Foreground(statusColor).Render(status)
		return " " + styles.AccentStyle.Render(cursor) + " " + mark + " " + l.edit.View()
	}

	prefix := []styles.RowPart{
		{Text: cursor + " "},
		{Text: status, Foreground: &statusColor},
		{Text: " "},
	}

	titleWidth := max(l.width-6, 4)
	title := styles.Truncate(e.Title(), titleWidth)

	var parts []styles.RowPart
	switch {
	case e.IsPending():
		dim := styles.DimGray
		parts = []styles.RowPart{{Text: title, Foreground: &dim}}
	default:
		parts = highlightParts(title, l.query, e.Completed())
	}

	return styles.RenderListRow(append(prefix, parts...), selected, l.width)
}

// highlightParts splits title into runs, emphasizing the characters that
// fuzzy-match query
func highlightParts(title, query string, completed bool) []styles.RowPart {
	var base *lipgloss.Color
	if completed {
		dim := styles.DimGray
		base = &dim
	}

	if query == "" {
		return []styles.RowPart{{Text: title, Foreground: base, Strikethrough: completed}}
	}

	matches := fuzzy.Find(strings.ToLower(query), []string{strings.ToLower(title)})
	if len(matches) == 0 {
		return []styles.RowPart{{Text: title, Foreground: base, Strikethrough: completed}}
	}

	matched := make(map[int]bool, len(matches[0].MatchedIndexes))
	for _, idx := range matches[0].MatchedIndexes {
		matched[idx] = true
	}

	accent := styles.Crimson
	var parts []styles.RowPart
	var run strings.Builder
	runMatched := false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		part := styles.RowPart{Text: run.String(), Foreground: base, Strikethrough: completed}
		if runMatched {
			part.Foreground = &accent
			part.Bold = true
		}
		parts = append(parts, part)
		run.Reset()
	}

	for i, r := range title {
		if matched[i] != runMatched {
			flush()
			runMatched = matched[i]
		}
		run.WriteRune(r)
	}
	flush()

	return parts
}
