package platform

// Package platform contains OS integration used by the downloader: download
// directory discovery, filename sanitising, locating the file yt-dlp actually
// wrote, and revealing files in the system file manager.
