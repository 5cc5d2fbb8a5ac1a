package platform

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"unicode/utf8"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Download directory names
const (
	DownloadsDirName     = "Downloads"
	AppDownloadsDirName  = "YoutubeDownloads"
	DefaultFallbackTitle = "downloaded_file"
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
)

// Command parameters
const (
	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
)

// MaxFilenameLength accounts for the most restrictive common filesystem limit.
const MaxFilenameLength = 255

// File manager names
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// File extensions left behind by unfinished yt-dlp transfers
var (
	SkippedExtensions = []string{".part", ".ytdl", ".temp"}
)

// Characters forbidden in filenames on Windows and/or Linux
var forbiddenChars = []rune{
	'<', '>', ':', '"', '/', '\\', '|', '?', '*', '#', '%', '{', '}', '$', '`',
}

// ErrFileNotFound is returned when no completed download matches a base name.
var ErrFileNotFound = errors.New("file not found")

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// GetHomeDownloadsDir returns the standard Downloads directory for the user
func GetHomeDownloadsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, DownloadsDirName), nil
}

// DefaultDownloadDir returns ~/Downloads/YoutubeDownloads
func DefaultDownloadDir() (string, error) {
	downloads, err := GetHomeDownloadsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(downloads, AppDownloadsDirName), nil
}

// SanitizeFilename turns a video title into a safe file base name.
// Control characters and forbidden characters are dropped, whitespace is
// collapsed and the result is cut so that base+"."+ext fits MaxFilenameLength.
func SanitizeFilename(title string, extLen int) string {
	var b strings.Builder
	for _, r := range title {
		if r < 0x20 || r == 0x7f || isForbidden(r) {
			continue
		}
		b.WriteRune(r)
	}

	name := strings.Join(strings.Fields(b.String()), " ")
	name = strings.Trim(name, ". ")
	if name == "" {
		return DefaultFallbackTitle
	}

	limit := MaxFilenameLength - extLen - 1
	if limit > 0 && len(name) > limit {
		name = truncateUTF8(name, limit)
	}
	return name
}

func isForbidden(r rune) bool {
	for _, c := range forbiddenChars {
		if r == c {
			return true
		}
	}
	return false
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return strings.TrimRight(s[:n], " .")
}

// ResolveOutputFile finds the completed file yt-dlp wrote for baseName in dir.
// The extension is not known up front since the selected stream decides it.
// Temporary transfer files are ignored; with several matches the most recently
// modified wins.
func ResolveOutputFile(dir, baseName string) (string, error) {
	if baseName == "" {
		return "", fmt.Errorf("base name is empty")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if isTemporaryFile(name) {
			continue
		}

		ext := filepath.Ext(name)
		if ext == "" || strings.TrimSuffix(name, ext) != baseName {
			continue
		}
		candidates = append(candidates, filepath.Join(dir, name))
	}

	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: %s.*", ErrFileNotFound, filepath.Join(dir, baseName))
	}

	sort.Slice(candidates, func(i, j int) bool {
		infoI, errI := os.Stat(candidates[i])
		infoJ, errJ := os.Stat(candidates[j])
		if errI != nil || errJ != nil {
			return candidates[i] < candidates[j]
		}
		return infoI.ModTime().After(infoJ.ModTime())
	})
	return candidates[0], nil
}

func isTemporaryFile(name string) bool {
	for _, ext := range SkippedExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	// yt-dlp keeps per-format intermediates as name.f137.mp4 until merging
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if ext := filepath.Ext(base); len(ext) > 2 && ext[1] == 'f' && isDigits(ext[2:]) {
		return true
	}
	return false
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// OpenFileInManager opens the file in the system file manager and highlights it
func OpenFileInManager(filePath string) error {
	if _, err := os.Stat(filePath); err != nil {
		return fmt.Errorf("file does not exist: %v", err)
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, MacOSSelectFlag, absPath).Run()
	case OSWindows:
		return exec.Command(ExplorerCommand, WindowsSelectParam, absPath).Run()
	case OSLinux:
		return openDirInManagerLinux(filepath.Dir(absPath))
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// OpenDirectory opens a directory in the system file manager
func OpenDirectory(dir string) error {
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("directory does not exist: %v", err)
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, dir).Run()
	case OSWindows:
		return exec.Command(ExplorerCommand, dir).Run()
	case OSLinux:
		return openDirInManagerLinux(dir)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// openDirInManagerLinux opens a directory on Linux.
// File selection is not standardized on Linux, so only the directory is shown.
func openDirInManagerLinux(dir string) error {
	if err := exec.Command(XDGOpenCommand, dir).Run(); err == nil {
		return nil
	}

	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return exec.Command(fm, dir).Run()
		}
	}

	return fmt.Errorf("no suitable file manager found")
}
