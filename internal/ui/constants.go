package ui

import "fyne.io/fyne/v2"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Window
const (
	WindowWidth  float32 = 400
	WindowHeight float32 = 600
)

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
)

// Progress bar range, the bar shows percentages directly
const (
	ProgressMin = 0
	ProgressMax = 100
)

// Dialog sizing
var (
	SettingsDialogSize = fyne.NewSize(460, 380)
)
