package download

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ytget/yt-media-downloader/internal/model"
)

// EventBufferSize bounds how far the worker can run ahead of the UI
const EventBufferSize = 16

// JobIDPrefix prefixes generated job IDs
const JobIDPrefix = "job-"

// Runner executes at most one job at a time on a background goroutine and
// posts its events to a channel owned by the caller.
type Runner struct {
	ctx  context.Context
	orch Orchestrator

	mu    sync.Mutex
	state model.JobState
	jobID string
}

// NewRunner creates an idle runner. ctx bounds every job, cancelling it
// aborts a running transfer (used on application shutdown).
func NewRunner(ctx context.Context, orch Orchestrator) *Runner {
	return &Runner{
		ctx:   ctx,
		orch:  orch,
		state: model.JobStateIdle,
	}
}

// Submit validates req and starts it in the background. Invalid requests and
// submissions while busy return an error without starting anything. The
// returned channel is closed after the result event.
func (r *Runner) Submit(req model.Request) (string, <-chan model.Event, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return "", nil, err
	}

	r.mu.Lock()
	if r.state != model.JobStateIdle {
		r.mu.Unlock()
		return "", nil, ErrJobAlreadyRunning
	}
	id := generateJobID()
	r.jobID = id
	r.state = model.JobStateProbing
	r.mu.Unlock()

	events := make(chan model.Event, EventBufferSize)
	go r.run(id, req, events)

	return id, events, nil
}

// Busy reports whether a job is running
func (r *Runner) Busy() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state != model.JobStateIdle
}

// State returns the state of the current job, Idle when none runs
func (r *Runner) State() model.JobState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Runner) run(id string, req model.Request, events chan<- model.Event) {
	defer close(events)

	logger := log.With().Str("job", id).Logger()
	logger.Info().Str("url", req.URL).Str("type", string(req.MediaType)).Str("quality", req.Quality).Msg("job started")

	emit := func(ev model.Event) {
		if ev.Type == model.EventTypeState {
			r.setState(ev.State)
		}
		events <- ev
	}

	result, err := r.orch.Run(r.ctx, id, req, emit)

	final := model.JobStateSucceeded
	if err != nil {
		final = model.JobStateFailed
		logger.Error().Err(err).Msg("job failed")
	} else {
		logger.Info().Str("output", result.OutputPath).Int("attempts", result.Attempts).Msg("job completed")
	}

	// Idle before the result goes out, so the UI may submit again right away
	r.mu.Lock()
	r.state = model.JobStateIdle
	r.jobID = ""
	r.mu.Unlock()

	events <- model.Event{
		JobID:  id,
		Type:   model.EventTypeResult,
		State:  final,
		Result: result,
		Err:    err,
		At:     time.Now(),
	}
}

func (r *Runner) setState(state model.JobState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = state
}

// generateJobID generates a unique job ID
func generateJobID() string {
	return JobIDPrefix + uuid.New().String()
}
