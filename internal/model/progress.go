package model

import (
	"fmt"
	"time"
)

// Bytes per megabyte used for display
const BytesPerMB = 1024 * 1024

// Progress is a snapshot of a running transfer attempt
type Progress struct {
	Status          string
	DownloadedBytes int64
	TotalBytes      int64   // 0 if unknown
	Speed           float64 // bytes per second
	Percent         float64 // 0 to 100
	Attempt         int     // 1 for primary, 2 for fallback
}

// DownloadedMB returns the downloaded amount in megabytes
func (p Progress) DownloadedMB() float64 {
	return float64(p.DownloadedBytes) / BytesPerMB
}

// SpeedMBps returns the transfer speed in megabytes per second
func (p Progress) SpeedMBps() float64 {
	return p.Speed / BytesPerMB
}

// Stats renders the progress line shown under the progress bar
func (p Progress) Stats() string {
	return fmt.Sprintf("Downloaded: %.2f MB | Speed: %.2f MB/s | %.2f%%",
		p.DownloadedMB(), p.SpeedMBps(), p.Percent)
}

// Result describes a finished download
type Result struct {
	Title        string
	OutputPath   string
	Format       string
	Attempts     int
	UsedFallback bool
}

// EventType classifies messages a job posts to the UI
type EventType string

const (
	EventTypeState    EventType = "state"
	EventTypeProgress EventType = "progress"
	EventTypeResult   EventType = "result"
)

// Event is a single message from the worker to the UI goroutine
type Event struct {
	JobID    string
	Type     EventType
	State    JobState
	Progress Progress
	Result   *Result
	Err      error
	At       time.Time
}
