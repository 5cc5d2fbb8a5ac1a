package main

import (
	"context"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ytget/yt-media-downloader/internal/config"
	"github.com/ytget/yt-media-downloader/internal/download"
	"github.com/ytget/yt-media-downloader/internal/platform"
	"github.com/ytget/yt-media-downloader/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.yt-media-downloader"
	AppName = "YT Media Downloader"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	log.Info().Str("version", version).Msg("starting")

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	settings := config.NewSettings(myApp)
	downloadsDir := settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(downloadsDir); err != nil {
		log.Error().Err(err).Str("dir", downloadsDir).Msg("failed to ensure downloads dir")
	}

	// Cancelled when the app stops, which aborts a running transfer
	ctx, cancel := context.WithCancel(context.Background())
	myApp.Lifecycle().SetOnStopped(cancel)
	defer cancel()

	if settings.GetAutoInstallYTDLP() {
		go func() {
			if err := download.EnsureInstalled(ctx); err != nil {
				log.Error().Err(err).Msg("yt-dlp is not available")
			}
		}()
	}

	downloadSvc := download.NewService(download.NewYTDLP(), download.Options{
		DownloadDir:  downloadsDir,
		Retries:      settings.GetRetries(),
		ExtractAudio: settings.GetExtractAudio(),
	})
	runner := download.NewRunner(ctx, downloadSvc)

	ui.NewRootUI(myWindow, myApp, runner, downloadSvc)

	myWindow.ShowAndRun()
}
