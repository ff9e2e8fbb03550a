// Package catalog manages confirmed library entries (movies, series, episodes)
// and the media folders the scanner reads them from.
package catalog

import (
	"fmt"
	"strings"
	"time"
)

// TranscodeStatus tracks readiness of an entry's playable media.
// Transitions are owned by the external transcoding collaborator; the
// catalog does not validate one status against the previous one.
type TranscodeStatus string

const (
	StatusPending    TranscodeStatus = "pending"
	StatusQueued     TranscodeStatus = "queued"
	StatusInProgress TranscodeStatus = "in_progress"
	StatusCompleted  TranscodeStatus = "completed"
	StatusFailed     TranscodeStatus = "failed"
)

// ParseTranscodeStatus validates a status string (case-insensitive).
func ParseTranscodeStatus(s string) (TranscodeStatus, error) {
	switch TranscodeStatus(strings.ToLower(s)) {
	case StatusPending:
		return StatusPending, nil
	case StatusQueued:
		return StatusQueued, nil
	case StatusInProgress:
		return StatusInProgress, nil
	case StatusCompleted:
		return StatusCompleted, nil
	case StatusFailed:
		return StatusFailed, nil
	default:
		return "", fmt.Errorf("invalid transcode status %q", s)
	}
}

// FileInfo holds the file-technical fields sourced from the local file.
// These are overwritten on every scan; catalog metadata is not.
type FileInfo struct {
	Path       string
	Name       string
	Resolution string
	Quality    string
	Source     string
	Audio      string
	Provider   string
}

// Movie is a confirmed movie entry, keyed by TMDB id.
type Movie struct {
	ID           int64
	TMDBID       int64
	Title        string
	Overview     string
	PosterPath   string
	BackdropPath string
	Genres       string
	ReleaseDate  string
	File         FileInfo
	Status       TranscodeStatus
	AddedAt      time.Time
	UpdatedAt    time.Time
}

// Series is a confirmed series entry, keyed by TMDB id.
type Series struct {
	ID           int64
	TMDBID       int64
	Title        string
	Overview     string
	PosterPath   string
	BackdropPath string
	Genres       string
	FirstAirDate string
	Status       TranscodeStatus
	AddedAt      time.Time
	UpdatedAt    time.Time
}

// Episode is a confirmed episode entry, keyed by (series_id, season, episode).
// It also carries its own TMDB id for direct lookup.
type Episode struct {
	ID        int64
	SeriesID  int64
	TMDBID    int64
	Season    int
	Episode   int
	Title     string
	Overview  string
	StillPath string
	AirDate   string
	File      FileInfo
	Status    TranscodeStatus
	AddedAt   time.Time
	UpdatedAt time.Time
}

// FolderKind distinguishes movie folders from series folders.
type FolderKind string

const (
	FolderMovies FolderKind = "movies"
	FolderSeries FolderKind = "series"
)

// ParseFolderKind validates a folder kind string.
func ParseFolderKind(s string) (FolderKind, error) {
	switch FolderKind(strings.ToLower(s)) {
	case FolderMovies:
		return FolderMovies, nil
	case FolderSeries:
		return FolderSeries, nil
	default:
		return "", fmt.Errorf("invalid folder kind %q", s)
	}
}

// Folder is a configured root directory to scan.
type Folder struct {
	ID      int64
	Path    string
	Kind    FolderKind
	Active  bool
	AddedAt time.Time
}
