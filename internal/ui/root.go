package ui

import (
	"errors"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog/log"

	"github.com/ytget/yt-media-downloader/internal/config"
	"github.com/ytget/yt-media-downloader/internal/download"
	"github.com/ytget/yt-media-downloader/internal/model"
	"github.com/ytget/yt-media-downloader/internal/platform"
)

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	runner       download.JobRunner
	configurer   download.Configurer

	titleLabel      *widget.Label
	urlLabel        *widget.Label
	typeLabel       *widget.Label
	qualityLabel    *widget.Label
	urlEntry        *widget.Entry
	mediaTypeSelect *widget.Select
	qualitySelect   *widget.Select
	downloadBtn     *widget.Button
	progressBar     *widget.ProgressBar
	statusLabel     *widget.Label
	busyLabel       *widget.Label

	// Blocking dialogs, replaced in tests
	notifyError   func(message string)
	notifySuccess func(result *model.Result)

	// closed when the events of the current job have all been applied
	jobDone chan struct{}
}

// NewRootUI creates and initializes the main UI. configurer may be nil when
// settings changes need not reach the download service.
func NewRootUI(window fyne.Window, app fyne.App, runner download.JobRunner, configurer download.Configurer) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		settings:     settings,
		localization: localization,
		runner:       runner,
		configurer:   configurer,
	}
	ui.notifyError = ui.showError
	ui.notifySuccess = ui.showSuccess

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	t := ui.localization.GetText

	ui.createMenu()

	ui.titleLabel = widget.NewLabelWithStyle(t(KeyAppTitle), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	ui.titleLabel.Importance = widget.HighImportance

	ui.urlLabel = widget.NewLabel(t(KeyURLLabel))
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(t(KeyEnterURL))
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onDownloadClick()
	}

	ui.typeLabel = widget.NewLabel(t(KeyDownloadType))
	typeOptions := make([]string, 0, len(model.MediaTypes))
	for _, mt := range model.MediaTypes {
		typeOptions = append(typeOptions, string(mt))
	}
	ui.mediaTypeSelect = widget.NewSelect(typeOptions, nil)
	ui.mediaTypeSelect.SetSelected(string(ui.settings.GetMediaType()))

	ui.qualityLabel = widget.NewLabel(t(KeySelectQuality))
	ui.qualitySelect = widget.NewSelect(ui.settings.GetQualityPresetOptions(), nil)
	ui.qualitySelect.SetSelected(ui.settings.GetQualityPreset())

	ui.downloadBtn = widget.NewButton(t(KeyDownload), ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance

	ui.progressBar = widget.NewProgressBar()
	ui.progressBar.Min = ProgressMin
	ui.progressBar.Max = ProgressMax
	ui.progressBar.TextFormatter = func() string { return "" }

	ui.statusLabel = widget.NewLabel("")
	ui.statusLabel.Wrapping = fyne.TextWrapWord
	ui.statusLabel.Alignment = fyne.TextAlignCenter

	ui.busyLabel = widget.NewLabel(t(KeyPleaseWait))
	ui.busyLabel.Alignment = fyne.TextAlignCenter
	ui.busyLabel.Hide()

	form := container.NewVBox(
		ui.titleLabel,
		widget.NewSeparator(),
		ui.urlLabel,
		ui.urlEntry,
		ui.typeLabel,
		ui.mediaTypeSelect,
		ui.qualityLabel,
		ui.qualitySelect,
		ui.downloadBtn,
		ui.progressBar,
		ui.statusLabel,
		ui.busyLabel,
	)

	ui.window.SetContent(container.NewPadded(form))
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	t := ui.localization.GetText

	openFolderItem := fyne.NewMenuItem(IconFolder+" "+t(KeyOpenFolder), ui.onOpenDownloadFolder)
	settingsItem := fyne.NewMenuItem(IconSettings+" "+t(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(t(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(t(KeyFile), openFolderItem, settingsItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all static texts with the current language
func (ui *RootUI) refreshUITexts() {
	t := ui.localization.GetText

	ui.window.SetTitle(t(KeyAppTitle))
	ui.titleLabel.SetText(t(KeyAppTitle))
	ui.urlLabel.SetText(t(KeyURLLabel))
	ui.urlEntry.SetPlaceHolder(t(KeyEnterURL))
	ui.typeLabel.SetText(t(KeyDownloadType))
	ui.qualityLabel.SetText(t(KeySelectQuality))
	ui.downloadBtn.SetText(t(KeyDownload))
	ui.busyLabel.SetText(t(KeyPleaseWait))
}

// request builds a download request from the current widget values
func (ui *RootUI) request() model.Request {
	return model.Request{
		URL:       ui.urlEntry.Text,
		MediaType: model.MediaType(ui.mediaTypeSelect.Selected),
		Quality:   ui.qualitySelect.Selected,
	}.Normalize()
}

// onDownloadClick handles the download button click
func (ui *RootUI) onDownloadClick() {
	req := ui.request()
	if err := req.Validate(); err != nil {
		log.Warn().Err(err).Str("url", req.URL).Msg("rejected download request")
		ui.notifyError(ui.errorMessage(err))
		return
	}

	ui.settings.SetMediaType(req.MediaType)
	ui.settings.SetQualityPreset(req.Quality)

	ui.setInputsEnabled(false)
	ui.progressBar.SetValue(ProgressMin)
	ui.statusLabel.SetText(ui.downloadingText(req.MediaType))
	ui.busyLabel.Show()

	jobID, events, err := ui.runner.Submit(req)
	if err != nil {
		log.Error().Err(err).Str("url", req.URL).Msg("submit failed")
		ui.resetProgress()
		ui.finishJob()
		ui.notifyError(ui.errorMessage(err))
		return
	}

	log.Info().Str("job", jobID).Str("url", req.URL).Msg("download submitted")

	done := make(chan struct{})
	ui.jobDone = done
	go ui.consume(events, done)
}

// consume forwards job events to the UI goroutine one at a time, in order
func (ui *RootUI) consume(events <-chan model.Event, done chan<- struct{}) {
	defer close(done)
	for ev := range events {
		fyne.DoAndWait(func() {
			ui.applyEvent(ev)
		})
	}
}

// applyEvent renders a single job event. Must run on the UI goroutine.
func (ui *RootUI) applyEvent(ev model.Event) {
	switch ev.Type {
	case model.EventTypeState:
		ui.applyState(ev.State)
	case model.EventTypeProgress:
		ui.progressBar.SetValue(ev.Progress.Percent)
		ui.statusLabel.SetText(ev.Progress.Stats())
	case model.EventTypeResult:
		ui.applyResult(ev)
	}
}

func (ui *RootUI) applyState(state model.JobState) {
	switch state {
	case model.JobStateProbing:
		ui.statusLabel.SetText(ui.localization.GetText(KeyStatusProbing))
	case model.JobStateDownloading:
		ui.statusLabel.SetText(ui.downloadingText(model.MediaType(ui.mediaTypeSelect.Selected)))
	case model.JobStateFallbackDownloading:
		ui.progressBar.SetValue(ProgressMin)
		ui.statusLabel.SetText(ui.localization.GetText(KeyStatusFallback))
	}
}

func (ui *RootUI) applyResult(ev model.Event) {
	defer ui.finishJob()

	if ev.Err != nil {
		ui.resetProgress()
		ui.notifyError(ui.errorMessage(ev.Err))
		return
	}

	ui.progressBar.SetValue(ProgressMax)
	ui.statusLabel.SetText(ui.localization.GetText(KeyStatusCompleted))
	if ev.Result != nil {
		ui.notifySuccess(ev.Result)
	}
}

// finishJob returns the panel to its idle layout
func (ui *RootUI) finishJob() {
	ui.urlEntry.SetText("")
	ui.busyLabel.Hide()
	ui.setInputsEnabled(true)
}

func (ui *RootUI) resetProgress() {
	ui.progressBar.SetValue(ProgressMin)
	ui.statusLabel.SetText("")
}

func (ui *RootUI) setInputsEnabled(enabled bool) {
	for _, w := range []fyne.Disableable{ui.urlEntry, ui.mediaTypeSelect, ui.qualitySelect, ui.downloadBtn} {
		if enabled {
			w.Enable()
		} else {
			w.Disable()
		}
	}
}

func (ui *RootUI) downloadingText(mt model.MediaType) string {
	return ui.localization.Format(KeyStatusDownloading, strings.ToLower(string(mt)))
}

// errorMessage maps job and validation errors to the text shown to the user
func (ui *RootUI) errorMessage(err error) string {
	var extractionErr *download.ExtractionError
	var transferErr *download.TransferError

	switch {
	case errors.Is(err, model.ErrEmptyURL):
		return ui.localization.GetText(KeyPleaseEnterURL)
	case errors.Is(err, model.ErrInvalidURL):
		return ui.localization.GetText(KeyInvalidURL) + ": " + err.Error()
	case errors.Is(err, download.ErrJobAlreadyRunning):
		return ui.localization.GetText(KeyAlreadyRunning)
	case errors.As(err, &extractionErr):
		return ui.localization.Format(KeyExtractionFailed, extractionErr.Err)
	case errors.As(err, &transferErr):
		return ui.localization.Format(KeyDownloadFailed, transferErr.Err)
	default:
		return ui.localization.Format(KeyDownloadFailed, err)
	}
}

func (ui *RootUI) showError(message string) {
	dialog.ShowError(errors.New(message), ui.window)
}

// showSuccess reports the saved file and offers to reveal it
func (ui *RootUI) showSuccess(result *model.Result) {
	t := ui.localization.GetText
	message := ui.localization.Format(KeySavedAs, filepath.Base(result.OutputPath))

	confirm := dialog.NewConfirm(t(KeySuccess), message, func(reveal bool) {
		if reveal {
			ui.onRevealFile(result.OutputPath)
		}
	}, ui.window)
	confirm.SetConfirmText(t(KeyShowInFolder))
	confirm.SetDismissText(t(KeyOK))
	confirm.Show()
}

// onRevealFile handles revealing a file in the system file manager
func (ui *RootUI) onRevealFile(filePath string) {
	if filePath == "" {
		return
	}

	if err := platform.OpenFileInManager(filePath); err != nil {
		log.Error().Err(err).Str("path", filePath).Msg("reveal file failed")
		ui.notifyError(ui.localization.GetText(KeyErrorOpeningFile) + ": " + err.Error())
	}
}

// onOpenDownloadFolder opens the configured download directory
func (ui *RootUI) onOpenDownloadFolder() {
	dir := ui.settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		ui.notifyError(ui.localization.GetText(KeyErrorOpeningFile) + ": " + err.Error())
		return
	}
	if err := platform.OpenDirectory(dir); err != nil {
		log.Error().Err(err).Str("dir", dir).Msg("open download folder failed")
		ui.notifyError(ui.localization.GetText(KeyErrorOpeningFile) + ": " + err.Error())
	}
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, ui.applySettings)
}

// applySettings pushes saved settings to the download service and the UI
func (ui *RootUI) applySettings() {
	if ui.configurer != nil {
		ui.configurer.SetDownloadDirectory(ui.settings.GetDownloadDirectory())
		ui.configurer.SetRetries(ui.settings.GetRetries())
		ui.configurer.SetExtractAudio(ui.settings.GetExtractAudio())
	}

	if lang := ui.settings.GetLanguage(); lang != ui.localization.GetCurrentLanguage() {
		ui.localization.SetLanguage(lang)
		ui.refreshUITexts()
		ui.createMenu()
	}
}
