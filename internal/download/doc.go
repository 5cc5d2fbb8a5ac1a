package download

// Package download implements the download pipeline built on top of yt-dlp
// (via github.com/lrstanley/go-ytdlp). A job probes the title, runs the primary
// format attempt and at most one relaxed fallback attempt, and reports state and
// progress as events that the UI goroutine renders.
