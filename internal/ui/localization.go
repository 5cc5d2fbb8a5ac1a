package ui

import "fmt"

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle           = "app_title"
	KeyDownload           = "download"
	KeySettings           = "settings"
	KeyFile               = "file"
	KeyLanguage           = "language"
	KeyOpenFolder         = "open_folder"
	KeyURLLabel           = "url_label"
	KeyDownloadType       = "download_type"
	KeySelectQuality      = "select_quality"
	KeyEnterURL           = "enter_url"
	KeyPleaseWait         = "please_wait"
	KeyError              = "error"
	KeySuccess            = "success"
	KeyPleaseEnterURL     = "please_enter_url"
	KeyInvalidURL         = "invalid_url"
	KeyAlreadyRunning     = "already_running"
	KeyStatusProbing      = "status_probing"
	KeyStatusDownloading  = "status_downloading"
	KeyStatusFallback     = "status_fallback"
	KeyStatusCompleted    = "status_completed"
	KeySavedAs            = "saved_as"
	KeyExtractionFailed   = "extraction_failed"
	KeyDownloadFailed     = "download_failed"
	KeyShowInFolder       = "show_in_folder"
	KeyOK                 = "ok"
	KeyErrorOpeningFile   = "error_opening_file"
	KeyDownloadDirectory  = "download_directory"
	KeyRetries            = "retries"
	KeyExtractAudio       = "extract_audio"
	KeyAutoInstall        = "auto_install"
	KeySave               = "save"
	KeyCancel             = "cancel"
	KeyBrowse             = "browse"
	KeySettingsSaved      = "settings_saved"
	KeyDownloadSettings   = "download_settings"
	KeyInterfaceSettings  = "interface_settings"
	KeyRestartForLanguage = "restart_for_language"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// Format returns the localized text for key with args substituted
func (l *Localization) Format(key string, args ...any) string {
	return fmt.Sprintf(l.GetText(key), args...)
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:           "YouTube Media Downloader",
		KeyDownload:           "Download",
		KeySettings:           "Settings",
		KeyFile:               "File",
		KeyLanguage:           "Language",
		KeyOpenFolder:         "Open Download Folder",
		KeyURLLabel:           "YouTube URL:",
		KeyDownloadType:       "Download Type:",
		KeySelectQuality:      "Select Video Quality:",
		KeyEnterURL:           "https://www.youtube.com/watch?v=...",
		KeyPleaseWait:         "Downloading... Please wait...",
		KeyError:              "Error",
		KeySuccess:            "Success",
		KeyPleaseEnterURL:     "Please enter a YouTube URL",
		KeyInvalidURL:         "Invalid URL",
		KeyAlreadyRunning:     "A download is already running",
		KeyStatusProbing:      "Fetching video info...",
		KeyStatusDownloading:  "Downloading %s...",
		KeyStatusFallback:     "Requested format not found, trying to download best available format...",
		KeyStatusCompleted:    "Download completed!",
		KeySavedAs:            "Download completed! Saved as %s",
		KeyExtractionFailed:   "An error occurred while extracting video info: %v",
		KeyDownloadFailed:     "An error occurred while downloading: %v",
		KeyShowInFolder:       "Show in folder",
		KeyOK:                 "OK",
		KeyErrorOpeningFile:   "Error opening file",
		KeyDownloadDirectory:  "Download Directory:",
		KeyRetries:            "Retries per request (1-10):",
		KeyExtractAudio:       "Convert audio downloads to MP3 (requires ffmpeg)",
		KeyAutoInstall:        "Install yt-dlp automatically when missing",
		KeySave:               "Save",
		KeyCancel:             "Cancel",
		KeyBrowse:             "Browse",
		KeySettingsSaved:      "Settings saved successfully!",
		KeyDownloadSettings:   "Download Settings",
		KeyInterfaceSettings:  "Interface Settings",
		KeyRestartForLanguage: "Menus switch language after restart",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:           "Загрузчик медиа с YouTube",
		KeyDownload:           "Скачать",
		KeySettings:           "Настройки",
		KeyFile:               "Файл",
		KeyLanguage:           "Язык",
		KeyOpenFolder:         "Открыть папку загрузок",
		KeyURLLabel:           "URL YouTube:",
		KeyDownloadType:       "Тип загрузки:",
		KeySelectQuality:      "Качество видео:",
		KeyEnterURL:           "https://www.youtube.com/watch?v=...",
		KeyPleaseWait:         "Загрузка... Пожалуйста, подождите...",
		KeyError:              "Ошибка",
		KeySuccess:            "Готово",
		KeyPleaseEnterURL:     "Пожалуйста, введите URL YouTube",
		KeyInvalidURL:         "Неверный URL",
		KeyAlreadyRunning:     "Загрузка уже выполняется",
		KeyStatusProbing:      "Получение информации о видео...",
		KeyStatusDownloading:  "Загрузка (%s)...",
		KeyStatusFallback:     "Запрошенный формат не найден, загружаем лучший доступный...",
		KeyStatusCompleted:    "Загрузка завершена!",
		KeySavedAs:            "Загрузка завершена! Сохранено как %s",
		KeyExtractionFailed:   "Ошибка при получении информации о видео: %v",
		KeyDownloadFailed:     "Ошибка при загрузке: %v",
		KeyShowInFolder:       "Показать в папке",
		KeyOK:                 "OK",
		KeyErrorOpeningFile:   "Ошибка открытия файла",
		KeyDownloadDirectory:  "Папка загрузки:",
		KeyRetries:            "Повторов на запрос (1-10):",
		KeyExtractAudio:       "Конвертировать аудио в MP3 (нужен ffmpeg)",
		KeyAutoInstall:        "Устанавливать yt-dlp автоматически",
		KeySave:               "Сохранить",
		KeyCancel:             "Отмена",
		KeyBrowse:             "Обзор",
		KeySettingsSaved:      "Настройки успешно сохранены!",
		KeyDownloadSettings:   "Настройки загрузки",
		KeyInterfaceSettings:  "Интерфейс",
		KeyRestartForLanguage: "Меню сменит язык после перезапуска",
	}
}
