package tui

// Vertical chrome around the list: title, header, two separators, search
// bar, footer (two lines with the filter underline), notification box
// (three lines) and the help line.
const (
	ChromeHeight = 11
	MinListRows  = 3
	MinWidth     = 20
)

// updateLayout recalculates component sizes after a resize
func (m *Model) updateLayout() {
	width := max(m.Width, MinWidth)
	m.List.SetSize(width, max(m.Height-ChromeHeight, MinListRows))
	m.Form.SetWidth(width - 6)
	m.Search.SetWidth(width - 4)
}
