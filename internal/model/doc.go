package model

// Package model defines the session-scoped data passed between the UI and the
// download pipeline: the download request, media types and quality presets,
// job states, progress snapshots and the events a running job emits.
