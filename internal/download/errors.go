package download

import (
	"errors"
	"fmt"
)

var (
	_ error = (*ExtractionError)(nil)
	_ error = (*TransferError)(nil)
)

// ErrJobAlreadyRunning is returned when a second job is submitted while one is active.
var ErrJobAlreadyRunning = errors.New("a download is already running")

// ErrNoMetadata is returned when the probe succeeds but yields no video info.
var ErrNoMetadata = errors.New("no video information returned")

// ExtractionError means the metadata probe failed: the URL is unreachable,
// the site is unsupported or no stream matches the format.
type ExtractionError struct {
	URL string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting video info (url=%s): %v", e.URL, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// TransferError means the transfer failed on both the primary and the fallback attempt.
type TransferError struct {
	URL      string
	Format   string // format of the last attempt
	Attempts int
	Err      error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("downloading (url=%s, format=%s, attempts=%d): %v", e.URL, e.Format, e.Attempts, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}
