package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/todos/internal/tui/styles"
)

// TodoForm is the new-todo input field
type TodoForm struct {
	input    textinput.Model
	disabled bool
}

// NewTodoForm creates a new focused form
func NewTodoForm() TodoForm {
	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = 200
	ti.Prompt = ""
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle
	ti.Focus()

	return TodoForm{input: ti}
}

// Focus gives the field keyboard focus
func (f *TodoForm) Focus() tea.Cmd {
	return f.input.Focus()
}

// Blur removes keyboard focus
func (f *TodoForm) Blur() {
	f.input.Blur()
}

func (f TodoForm) Focused() bool {
	return f.input.Focused()
}

// SetDisabled blocks input while a creation is in flight
func (f *TodoForm) SetDisabled(disabled bool) {
	f.disabled = disabled
}

func (f TodoForm) Disabled() bool {
	return f.disabled
}

func (f TodoForm) Value() string {
	return f.input.Value()
}

// Reset clears the field
func (f *TodoForm) Reset() {
	f.input.SetValue("")
}

// SetWidth sets the visible width of the field
func (f *TodoForm) SetWidth(width int) {
	f.input.Width = width
}

// Update handles input events, returns (form, cmd, submitted, changed)
func (f TodoForm) Update(msg tea.Msg) (TodoForm, tea.Cmd, bool, bool) {
	if f.disabled || !f.input.Focused() {
		return f, nil, false, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		return f, nil, true, false
	}

	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd, false, f.input.Value() != before
}

// View renders the field, dimmed while disabled
func (f TodoForm) View() string {
	if f.disabled {
		value := f.input.Value()
		if value == "" {
			value = f.input.Placeholder
		}
		return styles.DimStyle.Render(value)
	}
	return f.input.View()
}
