package download

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"github.com/rs/zerolog/log"
)

// DefaultProgressInterval is how often yt-dlp progress is reported
const DefaultProgressInterval = 500 * time.Millisecond

var _ Extractor = (*YTDLP)(nil)

// YTDLP runs the yt-dlp executable through go-ytdlp.
type YTDLP struct {
	progressInterval time.Duration
}

// NewYTDLP creates the yt-dlp backed extractor
func NewYTDLP() *YTDLP {
	return &YTDLP{progressInterval: DefaultProgressInterval}
}

// EnsureInstalled downloads yt-dlp into the go-ytdlp cache if it is not
// already available.
func EnsureInstalled(ctx context.Context) error {
	if _, err := ytdlp.Install(ctx, &ytdlp.InstallOptions{}); err != nil {
		return fmt.Errorf("install yt-dlp: %w", err)
	}
	return nil
}

// Probe implements Extractor
func (y *YTDLP) Probe(ctx context.Context, url, format string) (Metadata, error) {
	dl := ytdlp.New().
		Format(format).
		NoPlaylist().
		SkipDownload().
		DumpJSON()

	result, err := dl.Run(ctx, url)
	if err != nil {
		return Metadata{}, err
	}

	info, err := result.GetExtractedInfo()
	if err != nil {
		return Metadata{}, fmt.Errorf("parse extracted info: %w", err)
	}
	if len(info) == 0 {
		return Metadata{}, ErrNoMetadata
	}

	var md Metadata
	if info[0].Title != nil {
		md.Title = *info[0].Title
	}
	return md, nil
}

// Fetch implements Extractor
func (y *YTDLP) Fetch(ctx context.Context, req FetchRequest, onProgress func(FetchUpdate)) (FetchResult, error) {
	dl := ytdlp.New().
		Format(req.Format).
		NoPlaylist().
		Continue().
		Output(req.OutputTemplate)

	if req.Retries > 0 {
		dl.Retries(strconv.Itoa(req.Retries))
	}
	if req.ExtractAudio && req.AudioFormat != "" {
		dl.ExtractAudio().AudioFormat(req.AudioFormat)
	}

	var (
		mu       sync.Mutex
		lastFile string
	)

	dl.ProgressFunc(y.progressInterval, func(update ytdlp.ProgressUpdate) {
		if update.Filename != "" {
			mu.Lock()
			lastFile = update.Filename
			mu.Unlock()
		}
		if onProgress == nil {
			return
		}
		onProgress(FetchUpdate{
			Status:          string(update.Status),
			DownloadedBytes: int64(update.DownloadedBytes),
			TotalBytes:      int64(update.TotalBytes),
			Started:         update.Started,
			Filename:        update.Filename,
		})
	})

	result, err := dl.Run(ctx, req.URL)
	if err != nil {
		return FetchResult{}, err
	}

	mu.Lock()
	out := FetchResult{Filename: lastFile}
	mu.Unlock()

	// Prefer the path from the info JSON when yt-dlp printed one
	info, err := result.GetExtractedInfo()
	if err == nil && len(info) > 0 && info[0].Filename != nil && *info[0].Filename != "" {
		out.Filename = *info[0].Filename
	} else if err != nil {
		log.Debug().Err(err).Str("url", req.URL).Msg("no extracted info after download")
	}

	return out, nil
}
