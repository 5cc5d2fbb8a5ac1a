package ui

import (
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/yt-media-downloader/internal/download"
	"github.com/ytget/yt-media-downloader/internal/model"
)

func TestMain(m *testing.M) {
	log.Logger = log.Level(zerolog.FatalLevel)
	os.Exit(m.Run())
}

// fakeRunner replays scripted events. When ch is set it is handed out
// instead, so the test controls when the job ends.
type fakeRunner struct {
	mu       sync.Mutex
	requests []model.Request
	events   []model.Event
	ch       chan model.Event
	err      error
}

func (f *fakeRunner) Submit(req model.Request) (string, <-chan model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)

	if f.err != nil {
		return "", nil, f.err
	}
	if f.ch != nil {
		return "job-test", f.ch, nil
	}

	ch := make(chan model.Event, len(f.events))
	for _, ev := range f.events {
		ch <- ev
	}
	close(ch)
	return "job-test", ch, nil
}

func (f *fakeRunner) Busy() bool {
	return false
}

type fakeConfigurer struct {
	dir     string
	retries int
	extract bool
}

func (f *fakeConfigurer) SetDownloadDirectory(dir string) { f.dir = dir }
func (f *fakeConfigurer) SetRetries(retries int)          { f.retries = retries }
func (f *fakeConfigurer) SetExtractAudio(extract bool)    { f.extract = extract }

type uiHarness struct {
	ui        *RootUI
	app       fyne.App
	runner    *fakeRunner
	errors    []string
	successes []*model.Result
}

func newHarness(t *testing.T, runner *fakeRunner) *uiHarness {
	t.Helper()

	app := test.NewTempApp(t)
	window := app.NewWindow("test")
	t.Cleanup(window.Close)

	h := &uiHarness{app: app, runner: runner}
	h.ui = NewRootUI(window, app, runner, nil)
	h.ui.notifyError = func(message string) { h.errors = append(h.errors, message) }
	h.ui.notifySuccess = func(result *model.Result) { h.successes = append(h.successes, result) }
	return h
}

func (h *uiHarness) waitJob(t *testing.T) {
	t.Helper()
	require.NotNil(t, h.ui.jobDone, "no job was started")
	select {
	case <-h.ui.jobDone:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for job events to be applied")
	}
}

func stateEvent(state model.JobState) model.Event {
	return model.Event{JobID: "job-test", Type: model.EventTypeState, State: state}
}

func progressEvent(percent float64, downloaded int64) model.Event {
	return model.Event{
		JobID: "job-test",
		Type:  model.EventTypeProgress,
		Progress: model.Progress{
			Status:          "downloading",
			DownloadedBytes: downloaded,
			TotalBytes:      2 * downloaded,
			Speed:           float64(model.BytesPerMB),
			Percent:         percent,
			Attempt:         1,
		},
	}
}

func resultEvent(result *model.Result, err error) model.Event {
	state := model.JobStateSucceeded
	if err != nil {
		state = model.JobStateFailed
	}
	return model.Event{JobID: "job-test", Type: model.EventTypeResult, State: state, Result: result, Err: err}
}

func TestNewRootUIDefaults(t *testing.T) {
	h := newHarness(t, &fakeRunner{})

	assert.Equal(t, string(model.MediaTypeVideo), h.ui.mediaTypeSelect.Selected)
	assert.Equal(t, model.DefaultQuality, h.ui.qualitySelect.Selected)
	assert.Equal(t, model.QualityPresets, h.ui.qualitySelect.Options)
	assert.Equal(t, float64(ProgressMax), h.ui.progressBar.Max)
	assert.False(t, h.ui.busyLabel.Visible())
	assert.False(t, h.ui.downloadBtn.Disabled())
}

func TestDownloadEmptyURL(t *testing.T) {
	runner := &fakeRunner{}
	h := newHarness(t, runner)

	h.ui.urlEntry.SetText("   ")
	test.Tap(h.ui.downloadBtn)

	assert.Equal(t, []string{"Please enter a YouTube URL"}, h.errors)
	assert.Empty(t, runner.requests)
	assert.Nil(t, h.ui.jobDone)
	assert.False(t, h.ui.downloadBtn.Disabled())
}

func TestDownloadInvalidURL(t *testing.T) {
	runner := &fakeRunner{}
	h := newHarness(t, runner)

	h.ui.urlEntry.SetText("ftp://example.com/video")
	test.Tap(h.ui.downloadBtn)

	require.Len(t, h.errors, 1)
	assert.Contains(t, h.errors[0], "Invalid URL")
	assert.Empty(t, runner.requests)
}

func TestDownloadSuccess(t *testing.T) {
	result := &model.Result{
		Title:      "Test Video",
		OutputPath: "/downloads/Test Video.mp4",
		Format:     model.DefaultQuality,
		Attempts:   1,
	}
	runner := &fakeRunner{events: []model.Event{
		stateEvent(model.JobStateProbing),
		stateEvent(model.JobStateDownloading),
		progressEvent(50, 1024*1024),
		resultEvent(result, nil),
	}}
	h := newHarness(t, runner)

	h.ui.urlEntry.SetText("https://www.youtube.com/watch?v=abc123")
	test.Tap(h.ui.downloadBtn)
	h.waitJob(t)

	require.Len(t, runner.requests, 1)
	assert.Equal(t, model.Request{
		URL:       "https://www.youtube.com/watch?v=abc123",
		MediaType: model.MediaTypeVideo,
		Quality:   model.DefaultQuality,
	}, runner.requests[0])

	assert.Equal(t, float64(ProgressMax), h.ui.progressBar.Value)
	assert.Equal(t, "Download completed!", h.ui.statusLabel.Text)
	assert.Equal(t, []*model.Result{result}, h.successes)
	assert.Empty(t, h.errors)

	assert.Empty(t, h.ui.urlEntry.Text)
	assert.False(t, h.ui.busyLabel.Visible())
	assert.False(t, h.ui.downloadBtn.Disabled())
	assert.False(t, h.ui.urlEntry.Disabled())
	assert.False(t, h.ui.mediaTypeSelect.Disabled())
	assert.False(t, h.ui.qualitySelect.Disabled())
}

func TestDownloadAudioRemembersSelection(t *testing.T) {
	runner := &fakeRunner{events: []model.Event{resultEvent(&model.Result{OutputPath: "/tmp/a.mp3"}, nil)}}
	h := newHarness(t, runner)

	h.ui.mediaTypeSelect.SetSelected(string(model.MediaTypeAudio))
	h.ui.qualitySelect.SetSelected("bestvideo[height<=480]+bestaudio")
	h.ui.urlEntry.SetText("https://youtu.be/abc123")
	test.Tap(h.ui.downloadBtn)
	h.waitJob(t)

	require.Len(t, runner.requests, 1)
	assert.Equal(t, model.MediaTypeAudio, runner.requests[0].MediaType)

	// a new window built on the same app starts from the remembered values
	again := NewRootUI(h.app.NewWindow("again"), h.app, runner, nil)
	assert.Equal(t, string(model.MediaTypeAudio), again.mediaTypeSelect.Selected)
	assert.Equal(t, "bestvideo[height<=480]+bestaudio", again.qualitySelect.Selected)
}

func TestInputsDisabledWhileRunning(t *testing.T) {
	runner := &fakeRunner{ch: make(chan model.Event, 4)}
	h := newHarness(t, runner)

	h.ui.urlEntry.SetText("https://www.youtube.com/watch?v=abc123")
	test.Tap(h.ui.downloadBtn)

	assert.True(t, h.ui.downloadBtn.Disabled())
	assert.True(t, h.ui.urlEntry.Disabled())
	assert.True(t, h.ui.mediaTypeSelect.Disabled())
	assert.True(t, h.ui.qualitySelect.Disabled())
	assert.True(t, h.ui.busyLabel.Visible())
	assert.Equal(t, "Downloading video...", h.ui.statusLabel.Text)

	// a second click while disabled starts nothing
	test.Tap(h.ui.downloadBtn)
	assert.Len(t, runner.requests, 1)

	runner.ch <- resultEvent(&model.Result{OutputPath: "/tmp/v.mp4"}, nil)
	close(runner.ch)
	h.waitJob(t)

	assert.False(t, h.ui.downloadBtn.Disabled())
	assert.False(t, h.ui.busyLabel.Visible())
}

func TestDownloadExtractionFailure(t *testing.T) {
	cause := errors.New("unsupported URL")
	runner := &fakeRunner{events: []model.Event{
		stateEvent(model.JobStateProbing),
		resultEvent(nil, &download.ExtractionError{URL: "https://example.com/x", Err: cause}),
	}}
	h := newHarness(t, runner)

	h.ui.urlEntry.SetText("https://example.com/x")
	test.Tap(h.ui.downloadBtn)
	h.waitJob(t)

	assert.Equal(t, []string{"An error occurred while extracting video info: unsupported URL"}, h.errors)
	assert.Empty(t, h.successes)
	assert.Equal(t, float64(ProgressMin), h.ui.progressBar.Value)
	assert.Empty(t, h.ui.statusLabel.Text)
	assert.Empty(t, h.ui.urlEntry.Text)
	assert.False(t, h.ui.downloadBtn.Disabled())
}

func TestDownloadTransferFailure(t *testing.T) {
	cause := errors.New("HTTP Error 403: Forbidden")
	runner := &fakeRunner{events: []model.Event{
		stateEvent(model.JobStateDownloading),
		progressEvent(10, 1024),
		stateEvent(model.JobStateFallbackDownloading),
		resultEvent(nil, &download.TransferError{URL: "https://youtu.be/x", Format: model.FormatBest, Attempts: 2, Err: cause}),
	}}
	h := newHarness(t, runner)

	h.ui.urlEntry.SetText("https://youtu.be/x")
	test.Tap(h.ui.downloadBtn)
	h.waitJob(t)

	assert.Equal(t, []string{"An error occurred while downloading: HTTP Error 403: Forbidden"}, h.errors)
	assert.Equal(t, float64(ProgressMin), h.ui.progressBar.Value)
	assert.False(t, h.ui.busyLabel.Visible())
}

func TestSubmitRejected(t *testing.T) {
	runner := &fakeRunner{err: download.ErrJobAlreadyRunning}
	h := newHarness(t, runner)

	h.ui.urlEntry.SetText("https://youtu.be/x")
	test.Tap(h.ui.downloadBtn)

	assert.Equal(t, []string{"A download is already running"}, h.errors)
	assert.Nil(t, h.ui.jobDone)
	assert.False(t, h.ui.downloadBtn.Disabled())
	assert.False(t, h.ui.busyLabel.Visible())
}

func TestApplyEventProgressAndFallback(t *testing.T) {
	h := newHarness(t, &fakeRunner{})

	h.ui.applyEvent(progressEvent(42.5, 2*model.BytesPerMB))
	assert.Equal(t, 42.5, h.ui.progressBar.Value)
	assert.Equal(t, "Downloaded: 2.00 MB | Speed: 1.00 MB/s | 42.50%", h.ui.statusLabel.Text)

	h.ui.applyEvent(stateEvent(model.JobStateFallbackDownloading))
	assert.Equal(t, float64(ProgressMin), h.ui.progressBar.Value)
	assert.Equal(t, "Requested format not found, trying to download best available format...", h.ui.statusLabel.Text)

	h.ui.applyEvent(stateEvent(model.JobStateProbing))
	assert.Equal(t, "Fetching video info...", h.ui.statusLabel.Text)
}

func TestApplySettings(t *testing.T) {
	h := newHarness(t, &fakeRunner{})
	configurer := &fakeConfigurer{}
	h.ui.configurer = configurer

	h.ui.settings.SetDownloadDirectory("/data/yt")
	h.ui.settings.SetRetries(7)
	h.ui.settings.SetExtractAudio(true)
	h.ui.settings.SetLanguage("ru")
	h.ui.applySettings()

	assert.Equal(t, "/data/yt", configurer.dir)
	assert.Equal(t, 7, configurer.retries)
	assert.True(t, configurer.extract)
	assert.Equal(t, "ru", h.ui.localization.GetCurrentLanguage())
	assert.Equal(t, "Скачать", h.ui.downloadBtn.Text)
}

func TestLanguageChange(t *testing.T) {
	h := newHarness(t, &fakeRunner{})

	h.ui.onLanguageChange("ru")
	assert.Equal(t, "ru", h.ui.settings.GetLanguage())
	assert.Equal(t, "Загрузка... Пожалуйста, подождите...", h.ui.busyLabel.Text)

	h.ui.onLanguageChange("en")
	assert.Equal(t, "Download", h.ui.downloadBtn.Text)
}
