// Package parse turns media file paths into structured movie and episode
// candidates. Patterns are tried in order; the first pattern to match wins.
// The caller picks the pattern family (movie or episode) based on the kind
// of folder it is scanning.
package parse

import (
	"path/filepath"
	"strings"
)

// Tokens holds the optional quality tokens extracted from a filename.
// Absent tokens are empty strings.
type Tokens struct {
	Resolution string // 2160p, 1080p, 720p, 480p
	Quality    string // remux, proper, repack, extended
	Source     string // bluray, webdl, webrip, hdtv, dvd
	Audio      string // atmos, truehd, dts, ddp, ac3, aac
	Group      string // release group / provider
}

// Movie is a parsed movie candidate.
type Movie struct {
	Title    string
	Year     int
	FilePath string
	FileName string
	Tokens   Tokens
}

// Episode is a parsed episode candidate.
type Episode struct {
	SeriesName string
	Season     int
	Episode    int
	FilePath   string
	FileName   string
	Tokens     Tokens
}

// ParseMovie parses a file path as a movie release.
// Returns (nil, false) if no movie pattern matches; such files are noise
// (samples, stray extras) and are skipped by the scanner, not conflicted.
func ParseMovie(path string) (*Movie, bool) {
	name := stripExtension(filepath.Base(path))
	for _, pattern := range moviePatterns {
		if m, ok := pattern(name); ok {
			m.FilePath = path
			m.FileName = filepath.Base(path)
			m.Tokens = scanTokens(name)
			return m, true
		}
	}
	return nil, false
}

// ParseEpisode parses a file path as an episode release.
// Returns (nil, false) if no episode pattern matches. Quality tokens are
// extracted by an independent secondary scan, not tied to the season/episode
// pattern position.
func ParseEpisode(path string) (*Episode, bool) {
	name := stripExtension(filepath.Base(path))
	for _, pattern := range episodePatterns {
		if e, ok := pattern(name); ok {
			e.FilePath = path
			e.FileName = filepath.Base(path)
			e.Tokens = scanTokens(name)
			return e, true
		}
	}
	return nil, false
}

func stripExtension(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

/// cleanName turns separator-delimited title text into a display title:
// dots and underscores become spaces, repeated whitespace collapses, and
// the result is trimmed.
func cleanName(s string) string {
	s = strings.ReplaceAll(s, ".", " ")
	s = strings.ReplaceAll(s, "_", " ")
	return strings.Join(strings.Fields(s), " ")
}
