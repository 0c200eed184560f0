package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - app name, titles
	ColorSecondary Color = "86" // Cyan - subtitles
)

// Source state colors
const (
	ColorChecking  Color = "33"  // Blue
	ColorFailed    Color = "196" // Bright red
	ColorIdle      Color = "8"   // Gray
	ColorOffline   Color = "241" // Dim gray
	ColorRecording Color = "1"   // Red - capture running
	ColorStarting  Color = "214" // Orange
	ColorStopping  Color = "3"   // Yellow
)

// UI semantic colors
const (
	ColorError     Color = "196" // Bright red
	ColorHighlight Color = "255" // White - emphasis
	ColorMuted     Color = "241" // Gray - secondary text
	ColorNormal    Color = "250" // Default text
	ColorSubtle    Color = "245" // Light gray - labels
	ColorVersion   Color = "240" // Dark gray
)

// Accent colors
const (
	ColorHelpGroup Color = "141" // Purple
	ColorSelected  Color = "57"  // Table selection background
)
