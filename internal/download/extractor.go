package download

import (
	"context"
	"time"
)

// Metadata is the result of a probe
type Metadata struct {
	Title string
}

// FetchRequest describes a single transfer attempt
type FetchRequest struct {
	URL            string
	Format         string
	OutputTemplate string // yt-dlp output template, extension left as %(ext)s
	Retries        int
	ExtractAudio   bool
	AudioFormat    string
}

// FetchUpdate is a raw progress snapshot reported by the extractor
type FetchUpdate struct {
	Status          string
	DownloadedBytes int64
	TotalBytes      int64
	Started         time.Time
	Filename        string
}

// FetchResult is what the extractor reports after a successful transfer
type FetchResult struct {
	Filename string // may be empty when the extractor can't tell
}

// Extractor is the external extraction/download tool.
type Extractor interface {
	// Probe fetches metadata for url without transferring media.
	Probe(ctx context.Context, url, format string) (Metadata, error)

	// Fetch transfers the media, calling onProgress zero or more times.
	Fetch(ctx context.Context, req FetchRequest, onProgress func(FetchUpdate)) (FetchResult, error)
}
