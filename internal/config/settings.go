package config

import (
	"path/filepath"

	"fyne.io/fyne/v2"

	"github.com/ytget/yt-media-downloader/internal/model"
	"github.com/ytget/yt-media-downloader/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir    = "download_directory"
	KeyMediaType      = "media_type"
	KeyQualityPreset  = "quality_preset"
	KeyRetries        = "retries"
	KeyLanguage       = "app_language"
	KeyExtractAudio   = "extract_audio_mp3"
	KeyAutoInstallDLP = "auto_install_ytdlp"
)

// Default values
const (
	DefaultMediaType      = model.MediaTypeVideo
	DefaultQualityPreset  = model.DefaultQuality
	DefaultRetries        = 5
	MinRetries            = 1
	MaxRetries            = 10
	DefaultLanguage       = "system"
	DefaultExtractAudio   = false
	DefaultAutoInstallDLP = true
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		defaultDir, err := platform.DefaultDownloadDir()
		if err != nil {
			defaultDir = filepath.Join("/tmp", platform.AppDownloadsDirName)
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetMediaType returns the last selected media type
func (s *Settings) GetMediaType() model.MediaType {
	mt, err := model.ParseMediaType(s.app.Preferences().String(KeyMediaType))
	if err != nil {
		s.SetMediaType(DefaultMediaType)
		return DefaultMediaType
	}
	return mt
}

// SetMediaType remembers the selected media type
func (s *Settings) SetMediaType(mt model.MediaType) {
	s.app.Preferences().SetString(KeyMediaType, string(mt))
}

// GetQualityPreset returns the last selected quality preset
func (s *Settings) GetQualityPreset() string {
	preset := s.app.Preferences().String(KeyQualityPreset)
	if !model.IsQualityPreset(preset) {
		s.SetQualityPreset(DefaultQualityPreset)
		return DefaultQualityPreset
	}
	return preset
}

// SetQualityPreset sets the quality preset. Unknown presets reset to the default.
func (s *Settings) SetQualityPreset(preset string) {
	if !model.IsQualityPreset(preset) {
		preset = DefaultQualityPreset
	}
	s.app.Preferences().SetString(KeyQualityPreset, preset)
}

// GetQualityPresetOptions returns available quality preset options
func (s *Settings) GetQualityPresetOptions() []string {
	return append([]string(nil), model.QualityPresets...)
}

// GetRetries returns how many times yt-dlp retries a failed request internally
func (s *Settings) GetRetries() int {
	value := s.app.Preferences().Int(KeyRetries)
	if value <= 0 {
		s.SetRetries(DefaultRetries)
		return DefaultRetries
	}
	return value
}

// SetRetries sets the yt-dlp retry count
func (s *Settings) SetRetries(count int) {
	if count < MinRetries {
		count = MinRetries
	}
	if count > MaxRetries {
		count = MaxRetries
	}
	s.app.Preferences().SetInt(KeyRetries, count)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
	}
}

// GetExtractAudio returns whether audio downloads are converted to real mp3
func (s *Settings) GetExtractAudio() bool {
	return s.app.Preferences().BoolWithFallback(KeyExtractAudio, DefaultExtractAudio)
}

// SetExtractAudio sets whether audio downloads are converted to mp3 (needs ffmpeg)
func (s *Settings) SetExtractAudio(extract bool) {
	s.app.Preferences().SetBool(KeyExtractAudio, extract)
}

// GetAutoInstallYTDLP returns whether a missing yt-dlp binary is fetched at startup
func (s *Settings) GetAutoInstallYTDLP() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoInstallDLP, DefaultAutoInstallDLP)
}

// SetAutoInstallYTDLP sets whether a missing yt-dlp binary is fetched at startup
func (s *Settings) SetAutoInstallYTDLP(install bool) {
	s.app.Preferences().SetBool(KeyAutoInstallDLP, install)
}
