package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/todos/internal/domain"
	"github.com/mmcdole/todos/internal/tui/styles"
)

// FooterState is what the footer needs to render
type FooterState struct {
	ItemsLeft    int
	Filter       domain.Filter
	HasCompleted bool
}

// RenderFooter renders the counter, the filter links and the clear button
// on one line
func RenderFooter(state FooterState, width int) string {
	counter := styles.SubtitleStyle.Render(fmt.Sprintf("%d items left", state.ItemsLeft))

	links := make([]string, 0, len(domain.Filters))
	for i, f := range domain.Filters {
		label := fmt.Sprintf("%d %s", i+1, f)
		if f == state.Filter {
			links = append(links, styles.FilterSelectedStyle.Render(label))
		} else {
			links = append(links, styles.FilterLinkStyle.Render(label))
		}
	}
	nav := lipgloss.JoinHorizontal(lipgloss.Bottom, links...)

	clearBtn := styles.ClearDisabledStyle.Render("Clear completed")
	if state.HasCompleted {
		clearBtn = styles.ClearEnabledStyle.Render("Clear completed")
	}

	used := lipgloss.Width(counter) + lipgloss.Width(nav) + lipgloss.Width(clearBtn)
	gap := max((width-used)/2, 2)

	return lipgloss.JoinHorizontal(lipgloss.Bottom,
		counter,
		strings.Repeat(" ", gap),
		nav,
		strings.Repeat(" ", gap),
		clearBtn,
	)
}

// RenderNotification renders the active error with its close hint. Returns
// an empty string when no error is active.
func RenderNotification(kind domain.ErrorKind, width int) string {
	if kind == domain.ErrorNone {
		return ""
	}
	text := styles.Truncate(kind.String(), max(width-16, 10))
	hint := styles.DimStyle.Render("  esc ✕")
	return styles.NotificationStyle.Render(styles.ErrorStyle.Render(text) + hint)
}
