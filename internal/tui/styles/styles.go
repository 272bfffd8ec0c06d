package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	Crimson    = lipgloss.Color("#B83F45")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(Crimson).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Crimson)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)
)

// Status characters (unstyled)
const (
	ActiveChar    = "○"
	CompletedChar = "✓"
	CursorChar    = "›"
	ToggleAllChar = "❯"
)

// Pre-rendered status indicators
var (
	ActiveMark    = DimStyle.Render(ActiveChar)
	CompletedMark = SuccessStyle.Render(CompletedChar)
)

// Header styles
var (
	InputPromptStyle = lipgloss.NewStyle().
				Foreground(Crimson).
				Bold(true)

	ToggleAllOnStyle = lipgloss.NewStyle().
				Foreground(White).
				Bold(true)

	ToggleAllOffStyle = lipgloss.NewStyle().
				Foreground(DimGray)

	SeparatorStyle = lipgloss.NewStyle().
			Foreground(SlateLight)
)

// Footer styles
var (
	FilterLinkStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)

	FilterSelectedStyle = lipgloss.NewStyle().
				Foreground(White).
				Border(lipgloss.NormalBorder(), false, false, true, false).
				BorderForeground(Crimson).
				Padding(0, 1)

	ClearEnabledStyle = lipgloss.NewStyle().
				Foreground(LightGray)

	ClearDisabledStyle = lipgloss.NewStyle().
				Foreground(SlateLight)
)

// Notification style
var (
	NotificationStyle = lipgloss.NewStyle().
				Foreground(Red).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Red).
				Padding(0, 1)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(Crimson)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Spinner
var (
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(Crimson)

	SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
)

// Search styles
var (
	SearchPromptStyle = lipgloss.NewStyle().
				Foreground(Crimson).
				Bold(true)
)

// Spinner returns the spinner frame for the given tick
func Spinner(frame int) string {
	return SpinnerFrames[frame%len(SpinnerFrames)]
}

// Truncate truncates a string to the given width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 3 {
		return string(runes[:min(width, len(runes))])
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

// Pad pads a string with spaces to the given width
func Pad(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// RowPart represents a part of a row with optional styling
type RowPart struct {
	Text          string
	Foreground    *lipgloss.Color
	Bold          bool
	Strikethrough bool
}

// RenderListRow renders a complete list row with uniform background when selected.
// Each part is styled explicitly so ANSI resets do not break the background.
func RenderListRow(parts []RowPart, selected bool, width int) string {
	bg := SlateLight

	var b strings.Builder
	visibleLen := 0

	for _, part := range parts {
		style := lipgloss.NewStyle().Bold(part.Bold).Strikethrough(part.Strikethrough)
		switch {
		case part.Foreground != nil:
			style = style.Foreground(*part.Foreground)
		case selected:
			style = style.Foreground(White)
		default:
			style = style.Foreground(LightGray)
		}
		if selected {
			style = style.Background(bg)
		}
		b.WriteString(style.Render(part.Text))
		visibleLen += lipgloss.Width(part.Text)
	}

	// Fill to width (minus one column of margin on each side)
	if pad := width - visibleLen - 2; pad > 0 {
		padStyle := lipgloss.NewStyle()
		if selected {
			padStyle = padStyle.Background(bg)
		}
		b.WriteString(padStyle.Render(strings.Repeat(" ", pad)))
	}

	marginStyle := lipgloss.NewStyle()
	if selected {
		marginStyle = marginStyle.Background(bg)
	}
	margin := marginStyle.Render(" ")

	return margin + b.String() + margin
}
