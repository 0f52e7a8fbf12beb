package theme

import "github.com/charmbracelet/lipgloss"

// Styles groups the report styles bound to one output renderer.
// Binding to the writer's renderer drops colors when output is not a terminal.
type Styles struct {
	Breakdown lipgloss.Style
	Compact   lipgloss.Style
	Error     lipgloss.Style
	Label     lipgloss.Style
	Normal    lipgloss.Style
	Rule      lipgloss.Style
	Title     lipgloss.Style
	Total     lipgloss.Style
	Zero      lipgloss.Style
}

// NewStyles creates the report styles for a renderer
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Breakdown: r.NewStyle().
			Foreground(ColorSubtle),

		Compact: r.NewStyle().
			Foreground(ColorMuted),

		Error: r.NewStyle().
			Foreground(ColorError).
			Bold(true),

		Label: r.NewStyle().
			Foreground(ColorSubtle),

		Normal: r.NewStyle().
			Foreground(ColorNormal),

		Rule: r.NewStyle().
			Foreground(ColorMuted),

		Title: r.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),

		Total: r.NewStyle().
			Bold(true).
			Foreground(ColorSecondary),

		Zero: r.NewStyle().
			Foreground(ColorTokenZero),
	}
}
