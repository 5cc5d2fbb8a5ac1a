package download

import (
	"context"

	"github.com/ytget/yt-media-downloader/internal/model"
)

var (
	_ Orchestrator = (*Service)(nil)
	_ Configurer   = (*Service)(nil)
	_ JobRunner    = (*Runner)(nil)
)

// Orchestrator runs a single download request to completion.
type Orchestrator interface {
	Run(ctx context.Context, jobID string, req model.Request, emit func(model.Event)) (*model.Result, error)
}

// Configurer applies settings changes to the download service.
type Configurer interface {
	// SetDownloadDirectory sets the download directory
	SetDownloadDirectory(dir string)

	// SetRetries sets the yt-dlp internal retry count
	SetRetries(retries int)

	// SetExtractAudio toggles conversion of audio downloads to mp3
	SetExtractAudio(extract bool)
}

// JobRunner defines the interface the UI uses to start downloads.
type JobRunner interface {
	Submit(req model.Request) (string, <-chan model.Event, error)
	Busy() bool
}
