package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - report titles
	ColorSecondary Color = "86" // Cyan - totals
)

// UI semantic colors
const (
	ColorError  Color = "196" // Bright red
	ColorMuted  Color = "241" // Gray - rules, compact figures
	ColorNormal Color = "250" // Default text
	ColorSubtle Color = "245" // Light gray - labels
)

// Token colors
const (
	ColorTokenZero Color = "240" // Dark gray - days without usage
)
