package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// It collects the download request, hands it to the background runner and
// renders the job events it receives. Widgets are only touched on the Fyne UI
// goroutine. All UI strings are localized via Localization.
