package download

import (
	"time"

	"github.com/ytget/yt-media-downloader/internal/model"
)

// ProgressTracker turns raw updates of one transfer attempt into progress
// snapshots. The percentage stays within [0, 100] and never goes down, even
// when yt-dlp moves on to the second stream of a merged format.
type ProgressTracker struct {
	attempt int
	started time.Time
	percent float64
}

// NewProgressTracker creates a tracker for the given attempt number
func NewProgressTracker(attempt int, started time.Time) *ProgressTracker {
	return &ProgressTracker{attempt: attempt, started: started}
}

// Update computes the snapshot for u as seen at now
func (t *ProgressTracker) Update(u FetchUpdate, now time.Time) model.Progress {
	// Unknown totals leave the percentage where it was
	if u.TotalBytes > 0 {
		percent := float64(u.DownloadedBytes) / float64(u.TotalBytes) * 100
		percent = clamp(percent, 0, 100)
		if percent > t.percent {
			t.percent = percent
		}
	}

	started := u.Started
	if started.IsZero() {
		started = t.started
	}

	var speed float64
	if elapsed := now.Sub(started).Seconds(); elapsed > 0 && u.DownloadedBytes > 0 {
		speed = float64(u.DownloadedBytes) / elapsed
	}

	return model.Progress{
		Status:          u.Status,
		DownloadedBytes: u.DownloadedBytes,
		TotalBytes:      u.TotalBytes,
		Speed:           speed,
		Percent:         t.percent,
		Attempt:         t.attempt,
	}
}

// Percent returns the highest percentage seen so far
func (t *ProgressTracker) Percent() float64 {
	return t.percent
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
