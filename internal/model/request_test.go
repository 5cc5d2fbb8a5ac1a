package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{"empty url", Request{URL: "", MediaType: MediaTypeVideo, Quality: DefaultQuality}, ErrEmptyURL},
		{"blank url", Request{URL: "   ", MediaType: MediaTypeAudio}, ErrEmptyURL},
		{"no scheme", Request{URL: "youtu.be/abc", MediaType: MediaTypeVideo, Quality: DefaultQuality}, ErrInvalidURL},
		{"ftp scheme", Request{URL: "ftp://youtu.be/abc", MediaType: MediaTypeVideo, Quality: DefaultQuality}, ErrInvalidURL},
		{"bad media type", Request{URL: "https://youtu.be/abc", MediaType: "Podcast"}, ErrUnsupportedMediaType},
		{"bad preset", Request{URL: "https://youtu.be/abc", MediaType: MediaTypeVideo, Quality: "8k"}, ErrUnsupportedQuality},
		{"audio ignores preset", Request{URL: "https://youtu.be/abc", MediaType: MediaTypeAudio, Quality: ""}, nil},
		{"video preset", Request{URL: "https://www.youtube.com/watch?v=abc", MediaType: MediaTypeVideo, Quality: "bestvideo[height<=480]+bestaudio"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
		})
	}
}

func TestRequest_Formats(t *testing.T) {
	for _, preset := range QualityPresets {
		video := Request{MediaType: MediaTypeVideo, Quality: preset}
		assert.Equal(t, preset, video.PrimaryFormat())
		assert.Equal(t, FormatBest, video.FallbackFormat())
		assert.Equal(t, ExtensionVideo, video.NominalExtension())

		audio := Request{MediaType: MediaTypeAudio, Quality: preset}
		assert.Equal(t, FormatBestAudio, audio.PrimaryFormat())
		assert.Equal(t, FormatBestAudio, audio.FallbackFormat())
		assert.Equal(t, ExtensionAudio, audio.NominalExtension())
	}
}

func TestRequest_Normalize(t *testing.T) {
	req := Request{URL: "\t https://youtu.be/abc\r\n"}.Normalize()
	assert.Equal(t, "https://youtu.be/abc", req.URL)
}

func TestParseMediaType(t *testing.T) {
	mt, err := ParseMediaType("Audio")
	assert.NoError(t, err)
	assert.Equal(t, MediaTypeAudio, mt)

	_, err = ParseMediaType("audio")
	assert.ErrorIs(t, err, ErrUnsupportedMediaType)
}

func TestProgress_Stats(t *testing.T) {
	p := Progress{
		DownloadedBytes: 5 * BytesPerMB,
		Speed:           1.5 * BytesPerMB,
		Percent:         42.5,
	}
	assert.Equal(t, "Downloaded: 5.00 MB | Speed: 1.50 MB/s | 42.50%", p.Stats())
}
