package model

// JobState represents the lifecycle state of a single download job
type JobState string

const (
	// JobStateIdle means no job is running and input is accepted
	JobStateIdle JobState = "Idle"

	// JobStateProbing means metadata is being fetched without transferring media
	JobStateProbing JobState = "Probing"

	// JobStateDownloading means the primary attempt is transferring media
	JobStateDownloading JobState = "Downloading"

	// JobStateFallbackDownloading means the relaxed format attempt is running
	JobStateFallbackDownloading JobState = "FallbackDownloading"

	// JobStateSucceeded means the file was written
	JobStateSucceeded JobState = "Succeeded"

	// JobStateFailed means the probe or both attempts failed
	JobStateFailed JobState = "Failed"
)

// String returns the string representation of JobState
func (s JobState) String() string {
	return string(s)
}

// IsActive returns true while the job holds the worker
func (s JobState) IsActive() bool {
	return s == JobStateProbing || s == JobStateDownloading || s == JobStateFallbackDownloading
}

// IsFinished returns true for terminal states (succeeded or failed)
func (s JobState) IsFinished() bool {
	return s == JobStateSucceeded || s == JobStateFailed
}

// CanTransition reports whether the job state machine allows moving to next.
func (s JobState) CanTransition(next JobState) bool {
	switch s {
	case JobStateIdle:
		return next == JobStateProbing
	case JobStateProbing:
		return next == JobStateDownloading || next == JobStateFailed
	case JobStateDownloading:
		return next == JobStateSucceeded || next == JobStateFallbackDownloading
	case JobStateFallbackDownloading:
		return next == JobStateSucceeded || next == JobStateFailed
	case JobStateSucceeded, JobStateFailed:
		return next == JobStateIdle
	default:
		return false
	}
}
