// Package style provides shared UI styling primitives including brand colors,
// icons and the text styles used by CLI reports.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Circle  = "○"
)

// labelWidth aligns report values in one column.
const labelWidth = 14

// Styles is the set of report styles bound to one lipgloss renderer.
type Styles struct {
	Title lipgloss.Style
	Label lipgloss.Style
	Value lipgloss.Style
	Muted lipgloss.Style
	Good  lipgloss.Style
	Bad   lipgloss.Style
}

// NewStyles creates the report styles for r.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title: r.NewStyle().Bold(true).Foreground(Iris),
		Label: r.NewStyle().Width(labelWidth).Foreground(Slate),
		Value: r.NewStyle(),
		Muted: r.NewStyle().Foreground(Slate),
		Good:  r.NewStyle().Foreground(Green),
		Bad:   r.NewStyle().Foreground(Red),
	}
}

// Row renders one aligned "label value" report line.
func (s Styles) Row(label, value string) string {
	return s.Label.Render(label) + s.Value.Render(value)
}

// Status renders a loaded/not-loaded marker.
func (s Styles) Status(ok bool, text string) string {
	if ok {
		return s.Good.Render(Dot + " " + text)
	}
	return s.Muted.Render(Circle + " " + text)
}
