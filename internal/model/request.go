package model

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// MediaType selects whether the audio track or the full video is downloaded
type MediaType string

const (
	MediaTypeVideo MediaType = "Video"
	MediaTypeAudio MediaType = "Audio"
)

// Format selectors passed to yt-dlp
const (
	FormatBestAudio = "bestaudio"
	FormatBest      = "best"
)

// Nominal file extensions per media type
const (
	ExtensionAudio = "mp3"
	ExtensionVideo = "mp4"
)

// DefaultQuality is the preset selected on startup
const DefaultQuality = "bestvideo+bestaudio"

// QualityPresets lists the selectable video quality presets in display order.
var QualityPresets = []string{
	"bestvideo+bestaudio",
	"worstvideo+bestaudio",
	"bestvideo[height<=720]+bestaudio",
	"bestvideo[height<=480]+bestaudio",
	"bestvideo[height<=360]+bestaudio",
}

// MediaTypes lists the selectable media types in display order.
var MediaTypes = []MediaType{MediaTypeVideo, MediaTypeAudio}

// Validation errors
var (
	ErrEmptyURL             = errors.New("please enter a YouTube URL")
	ErrInvalidURL           = errors.New("URL must start with http:// or https://")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrUnsupportedQuality   = errors.New("unsupported quality preset")
)

// ParseMediaType converts a select value into a MediaType
func ParseMediaType(value string) (MediaType, error) {
	for _, mt := range MediaTypes {
		if string(mt) == value {
			return mt, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedMediaType, value)
}

// IsQualityPreset reports whether preset is one of QualityPresets
func IsQualityPreset(preset string) bool {
	for _, p := range QualityPresets {
		if p == preset {
			return true
		}
	}
	return false
}

// Request is a single download request built from the input panel
type Request struct {
	URL       string
	MediaType MediaType
	Quality   string
}

// Normalize trims whitespace and control characters pasted along with the URL.
func (r Request) Normalize() Request {
	clean := strings.ReplaceAll(r.URL, "\n", "")
	clean = strings.ReplaceAll(clean, "\r", "")
	clean = strings.ReplaceAll(clean, "\t", " ")
	r.URL = strings.TrimSpace(clean)
	return r
}

// Validate checks the request against the fixed media type and preset sets.
func (r Request) Validate() error {
	if strings.TrimSpace(r.URL) == "" {
		return ErrEmptyURL
	}

	parsed, err := url.Parse(strings.TrimSpace(r.URL))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return ErrInvalidURL
	}

	if _, err := ParseMediaType(string(r.MediaType)); err != nil {
		return err
	}

	// Audio ignores the preset, so only video requests need a known one
	if r.MediaType == MediaTypeVideo && !IsQualityPreset(r.Quality) {
		return fmt.Errorf("%w: %q", ErrUnsupportedQuality, r.Quality)
	}

	return nil
}

// PrimaryFormat returns the format selector for the first attempt
func (r Request) PrimaryFormat() string {
	if r.MediaType == MediaTypeAudio {
		return FormatBestAudio
	}
	return r.Quality
}

// FallbackFormat returns the relaxed selector for the single retry
func (r Request) FallbackFormat() string {
	if r.MediaType == MediaTypeAudio {
		return FormatBestAudio
	}
	return FormatBest
}

// NominalExtension returns mp3 for audio and mp4 for video. The real extension
// is whatever yt-dlp ends up writing.
func (r Request) NominalExtension() string {
	if r.MediaType == MediaTypeAudio {
		return ExtensionAudio
	}
	return ExtensionVideo
}
