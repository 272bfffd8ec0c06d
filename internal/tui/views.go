package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/todos/internal/domain"
	"github.com/mmcdole/todos/internal/service"
	"github.com/mmcdole/todos/internal/tui/components"
	"github.com/mmcdole/todos/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.ShowHelp {
		return m.renderHelp()
	}

	sections := []string{
		styles.TitleStyle.Render("todos"),
		m.renderHeader(),
		m.renderSeparator(),
	}

	if m.Snap.Loading {
		sections = append(sections, styles.SpinnerStyle.Render(styles.Spinner(m.SpinnerFrame))+styles.DimStyle.Render(" Loading todos..."))
	} else {
		if bar := m.Search.View(); bar != "" {
			sections = append(sections, bar)
		}
		sections = append(sections, m.List.View())
	}

	if !m.Snap.Loading && len(m.Snap.Items) > 0 {
		sections = append(sections,
			m.renderSeparator(),
			components.RenderFooter(components.FooterState{
				ItemsLeft:    m.Snap.ItemsLeft(),
				Filter:       m.Filter,
				HasCompleted: m.Snap.HasCompleted(),
			}, m.Width),
		)
	}

	if note := components.RenderNotification(m.Snap.Notice.Kind, m.Width); note != "" {
		sections = append(sections, note)
	}

	sections = append(sections, m.renderShortHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the toggle-all control and the new-todo field
func (m Model) renderHeader() string {
	toggle := " "
	if m.canToggleAll() {
		if m.Snap.AllCompleted() {
			toggle = styles.ToggleAllOnStyle.Render(styles.ToggleAllChar)
		} else {
			toggle = styles.ToggleAllOffStyle.Render(styles.ToggleAllChar)
		}
	}

	prompt := styles.DimStyle.Render("+ ")
	if m.Focus == FocusForm {
		prompt = styles.InputPromptStyle.Render("+ ")
	}

	return toggle + " " + prompt + m.Form.View()
}

func (m Model) renderSeparator() string {
	return styles.SeparatorStyle.Render(strings.Repeat("─", max(m.Width, 1)))
}

// renderShortHelp renders the key hints for the focused area
func (m Model) renderShortHelp() string {
	var bindings []key.Binding
	switch {
	case m.Focus == FocusForm:
		bindings = []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
			Keys.SwitchPane,
			Keys.Escape,
			Keys.ForceQuit,
		}
	case m.Focus == FocusSearch:
		bindings = []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "keep")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		}
	case m.List.IsEditing():
		bindings = []key.Binding{
			Keys.Submit,
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	default:
		bindings = listHelp()
	}
	return renderBindings(bindings, m.Width)
}

func renderBindings(bindings []key.Binding, width int) string {
	sep := styles.HelpDescStyle.Render(" • ")
	var b strings.Builder
	used := 0
	for i, binding := range bindings {
		h := binding.Help()
		entry := styles.HelpKeyStyle.Render(h.Key) + " " + styles.HelpDescStyle.Render(h.Desc)
		entryWidth := lipgloss.Width(entry)
		if i > 0 {
			entryWidth += lipgloss.Width(sep)
		}
		if width > 0 && used+entryWidth > width {
			break
		}
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(entry)
		used += entryWidth
	}
	return b.String()
}

// renderHelp renders the full help screen
func (m Model) renderHelp() string {
	columns := make([]string, 0, len(fullHelp()))
	for _, group := range fullHelp() {
		lines := make([]string, 0, len(group))
		for _, binding := range group {
			h := binding.Help()
			lines = append(lines, styles.HelpKeyStyle.Render(styles.Pad(h.Key, 8))+styles.HelpDescStyle.Render(h.Desc))
		}
		columns = append(columns, lipgloss.NewStyle().MarginRight(4).Render(strings.Join(lines, "\n")))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("todos")+styles.DimStyle.Render("  keyboard shortcuts"),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, columns...),
		"",
		styles.DimStyle.Render("Editing: enter saves, esc cancels, an empty title deletes the todo."),
		styles.DimStyle.Render("Press ? or esc to close."),
	)
}

// RenderPlain renders items as plain lines for non-interactive output
func RenderPlain(items []domain.Item, f domain.Filter, width int) string {
	var b strings.Builder
	visible := service.ApplyFilter(items, f)
	for _, item := range visible {
		mark := styles.ActiveMark
		if item.Completed {
			mark = styles.CompletedMark
		}
		title := item.Title
		if width > 0 {
			title = styles.Truncate(title, width-2)
		}
		b.WriteString(mark + " " + title + "\n")
	}
	if len(visible) == 0 {
		b.WriteString(styles.DimStyle.Render("Nothing to show") + "\n")
	}

	left := domain.Snapshot{Items: items}.ItemsLeft()
	b.WriteString(styles.DimStyle.Render(fmt.Sprintf("%d items left", left)) + "\n")
	return b.String()
}
