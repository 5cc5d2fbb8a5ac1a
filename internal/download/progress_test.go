package download

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ytget/yt-media-downloader/internal/model"
)

func TestProgressTracker_Percent(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tracker := NewProgressTracker(1, start)

	p := tracker.Update(FetchUpdate{DownloadedBytes: 250, TotalBytes: 1000}, start.Add(time.Second))
	assert.InDelta(t, 25.0, p.Percent, 0.0001)
	assert.Equal(t, 1, p.Attempt)

	// second stream of a merged download restarts from zero
	p = tracker.Update(FetchUpdate{DownloadedBytes: 10, TotalBytes: 500}, start.Add(2*time.Second))
	assert.InDelta(t, 25.0, p.Percent, 0.0001)

	p = tracker.Update(FetchUpdate{DownloadedBytes: 2000, TotalBytes: 1000}, start.Add(3*time.Second))
	assert.Equal(t, 100.0, p.Percent)
	assert.Equal(t, 100.0, tracker.Percent())
}

func TestProgressTracker_UnknownTotal(t *testing.T) {
	start := time.Now()
	tracker := NewProgressTracker(2, start)

	p := tracker.Update(FetchUpdate{DownloadedBytes: 4096}, start.Add(time.Second))
	assert.Equal(t, 0.0, p.Percent)
	assert.Equal(t, int64(0), p.TotalBytes)
	assert.Equal(t, 2, p.Attempt)

	p = tracker.Update(FetchUpdate{DownloadedBytes: -5, TotalBytes: 10}, start.Add(time.Second))
	assert.Equal(t, 0.0, p.Percent, "negative byte counts clamp to zero")
}

func TestProgressTracker_Speed(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tracker := NewProgressTracker(1, start)

	// falls back to the tracker start when the update has none
	p := tracker.Update(FetchUpdate{DownloadedBytes: 4 * model.BytesPerMB, TotalBytes: 8 * model.BytesPerMB}, start.Add(2*time.Second))
	assert.InDelta(t, 2.0, p.SpeedMBps(), 0.0001)
	assert.InDelta(t, 4.0, p.DownloadedMB(), 0.0001)

	// uses the transfer's own start time when reported
	started := start.Add(3 * time.Second)
	p = tracker.Update(FetchUpdate{DownloadedBytes: model.BytesPerMB, Started: started}, started.Add(4*time.Second))
	assert.InDelta(t, 0.25, p.SpeedMBps(), 0.0001)

	// no time elapsed means no speed estimate
	p = tracker.Update(FetchUpdate{DownloadedBytes: 100}, start)
	assert.Equal(t, 0.0, p.Speed)
}

func TestProgressTracker_Stats(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tracker := NewProgressTracker(1, start)

	p := tracker.Update(FetchUpdate{
		DownloadedBytes: 3 * model.BytesPerMB,
		TotalBytes:      12 * model.BytesPerMB,
	}, start.Add(3*time.Second))

	assert.Equal(t, "Downloaded: 3.00 MB | Speed: 1.00 MB/s | 25.00%", p.Stats())
}
