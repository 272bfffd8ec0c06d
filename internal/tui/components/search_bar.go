package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/todos/internal/tui/styles"
)

// SearchBar narrows the list to titles matching a fuzzy query
type SearchBar struct {
	active bool
	input  textinput.Model
}

// NewSearchBar creates a hidden search bar
func NewSearchBar() SearchBar {
	ti := textinput.New()
	ti.Placeholder = "search titles..."
	ti.CharLimit = 100
	ti.Prompt = ""
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return SearchBar{input: ti}
}

// Open shows the bar and focuses it, keeping any previous query
func (s *SearchBar) Open() tea.Cmd {
	s.active = true
	return s.input.Focus()
}

// Close hides the bar. The query stays applied unless cleared.
func (s *SearchBar) Close() {
	s.active = false
	s.input.Blur()
}

// Clear drops the query and hides the bar
func (s *SearchBar) Clear() {
	s.input.SetValue("")
	s.Close()
}

func (s SearchBar) Active() bool { return s.active }

func (s SearchBar) Query() string { return s.input.Value() }

// SetWidth sets the visible width of the field
func (s *SearchBar) SetWidth(width int) {
	s.input.Width = width
}

// Update handles input events, returns (bar, cmd, changed)
func (s SearchBar) Update(msg tea.Msg) (SearchBar, tea.Cmd, bool) {
	if !s.active {
		return s, nil, false
	}
	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd, s.input.Value() != before
}

// View renders the bar while open or while a query is applied
func (s SearchBar) View() string {
	if !s.active && s.input.Value() == "" {
		return ""
	}
	prompt := styles.SearchPromptStyle.Render("/ ")
	if !s.active {
		return prompt + styles.AccentStyle.Render(s.input.Value())
	}
	return prompt + s.input.View()
}
