package download

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ytget/yt-media-downloader/internal/model"
	"github.com/ytget/yt-media-downloader/internal/platform"
)

// Output template suffix letting yt-dlp pick the real extension
const extTemplate = ".%(ext)s"

// AudioExtractFormat is the codec used when audio extraction is enabled
const AudioExtractFormat = model.ExtensionAudio

// AttemptOutcome is the result of a single transfer attempt
type AttemptOutcome int

const (
	// OutcomeSucceeded means the file was written
	OutcomeSucceeded AttemptOutcome = iota

	// OutcomeFallbackNeeded means the primary attempt failed and the relaxed
	// selector should be tried
	OutcomeFallbackNeeded

	// OutcomeFailed means no further attempt will be made
	OutcomeFailed
)

// String returns a short name for logging
func (o AttemptOutcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeFallbackNeeded:
		return "fallback-needed"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Options configures the orchestrator
type Options struct {
	DownloadDir  string
	Retries      int
	ExtractAudio bool
}

// Service orchestrates one download: probe, primary attempt, fallback attempt.
type Service struct {
	extractor Extractor
	now       func() time.Time

	mu   sync.RWMutex
	opts Options
}

// NewService creates a new download service
func NewService(extractor Extractor, opts Options) *Service {
	return &Service{
		extractor: extractor,
		now:       time.Now,
		opts:      opts,
	}
}

// SetDownloadDirectory sets the download directory used by the next job
func (s *Service) SetDownloadDirectory(dir string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts.DownloadDir = dir
}

// SetRetries sets the yt-dlp internal retry count used by the next job
func (s *Service) SetRetries(retries int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts.Retries = retries
}

// SetExtractAudio toggles conversion of audio downloads to mp3
func (s *Service) SetExtractAudio(extract bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts.ExtractAudio = extract
}

// DownloadDirectory returns the configured download directory
func (s *Service) DownloadDirectory() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opts.DownloadDir
}

func (s *Service) options() Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opts
}

// job holds the per-run state of Run
type job struct {
	id    string
	req   model.Request
	opts  Options
	state model.JobState
	emit  func(model.Event)
}

// Run executes the request synchronously and reports state and progress
// through emit. It returns *ExtractionError when the probe fails and
// *TransferError when both attempts fail.
func (s *Service) Run(ctx context.Context, jobID string, req model.Request, emit func(model.Event)) (*model.Result, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if emit == nil {
		emit = func(model.Event) {}
	}

	j := &job{
		id:    jobID,
		req:   req,
		opts:  s.options(),
		state: model.JobStateIdle,
		emit:  emit,
	}
	logger := log.With().Str("job", jobID).Str("url", req.URL).Logger()

	if err := platform.CreateDirectoryIfNotExists(j.opts.DownloadDir); err != nil {
		return nil, fmt.Errorf("create download directory: %w", err)
	}

	s.transition(j, model.JobStateProbing)
	meta, err := s.extractor.Probe(ctx, req.URL, req.PrimaryFormat())
	if err != nil {
		logger.Error().Err(err).Msg("probe failed")
		s.transition(j, model.JobStateFailed)
		return nil, &ExtractionError{URL: req.URL, Err: err}
	}

	title := meta.Title
	if title == "" {
		title = platform.DefaultFallbackTitle
	}
	ext := req.NominalExtension()
	base := platform.SanitizeFilename(title, len(ext))
	template := filepath.Join(j.opts.DownloadDir, base+extTemplate)
	logger.Info().Str("title", title).Str("output", template).Msg("probe succeeded")

	s.transition(j, model.JobStateDownloading)
	format := req.PrimaryFormat()
	for attempt := 1; ; attempt++ {
		fetched, outcome, err := s.attempt(ctx, j, attempt, format, template)
		logger.Info().Int("attempt", attempt).Str("format", format).Stringer("outcome", outcome).Err(err).Msg("attempt finished")

		switch outcome {
		case OutcomeSucceeded:
			s.transition(j, model.JobStateSucceeded)
			return &model.Result{
				Title:        title,
				OutputPath:   s.resolveOutput(j.opts.DownloadDir, base, ext, fetched.Filename),
				Format:       format,
				Attempts:     attempt,
				UsedFallback: attempt > 1,
			}, nil
		case OutcomeFallbackNeeded:
			s.transition(j, model.JobStateFallbackDownloading)
			format = req.FallbackFormat()
		default:
			s.transition(j, model.JobStateFailed)
			return nil, &TransferError{URL: req.URL, Format: format, Attempts: attempt, Err: err}
		}
	}
}

// attempt performs one transfer and decides what happens next. Only the first
// attempt can ask for a fallback, so there is never a third transfer.
func (s *Service) attempt(ctx context.Context, j *job, n int, format, template string) (FetchResult, AttemptOutcome, error) {
	tracker := NewProgressTracker(n, s.now())
	fetchReq := FetchRequest{
		URL:            j.req.URL,
		Format:         format,
		OutputTemplate: template,
		Retries:        j.opts.Retries,
	}
	if j.req.MediaType == model.MediaTypeAudio && j.opts.ExtractAudio {
		fetchReq.ExtractAudio = true
		fetchReq.AudioFormat = AudioExtractFormat
	}

	res, err := s.extractor.Fetch(ctx, fetchReq, func(u FetchUpdate) {
		j.emit(model.Event{
			JobID:    j.id,
			Type:     model.EventTypeProgress,
			State:    j.state,
			Progress: tracker.Update(u, s.now()),
			At:       s.now(),
		})
	})

	switch {
	case err == nil:
		return res, OutcomeSucceeded, nil
	case n == 1 && ctx.Err() == nil:
		return res, OutcomeFallbackNeeded, err
	default:
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			err = errors.Join(err, ctxErr)
		}
		return res, OutcomeFailed, err
	}
}

// resolveOutput picks the final path: the file yt-dlp reported, else the
// file found on disk for base, else the nominal base.ext path.
func (s *Service) resolveOutput(dir, base, ext, reported string) string {
	if reported != "" {
		if _, err := os.Stat(reported); err == nil {
			return reported
		}
	}
	if found, err := platform.ResolveOutputFile(dir, base); err == nil {
		return found
	}
	return filepath.Join(dir, base+"."+ext)
}

func (s *Service) transition(j *job, next model.JobState) {
	if !j.state.CanTransition(next) {
		log.Warn().Str("job", j.id).Stringer("from", j.state).Stringer("to", next).Msg("unexpected state transition")
	}
	j.state = next
	j.emit(model.Event{
		JobID: j.id,
		Type:  model.EventTypeState,
		State: next,
		At:    s.now(),
	})
}
