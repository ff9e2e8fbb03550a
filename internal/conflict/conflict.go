// Package conflict persists files that could not be matched to exactly one
// catalog entry and tracks their human resolution.
package conflict

import (
	"errors"
	"time"
)

// ErrNotFound indicates the requested conflict doesn't exist.
var ErrNotFound = errors.New("conflict not found")

// MediaType distinguishes movie conflicts from series conflicts.
type MediaType string

const (
	MediaMovie  MediaType = "movie"
	MediaSeries MediaType = "series"
)

// Candidate is one possible catalog match for a conflicted file.
// Score orders candidates for display; it is advisory only.
type Candidate struct {
	ExternalID  int64   `json:"external_id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	Score       float64 `json:"score"`
}

// Conflict is a durable record of an ambiguous or unmatched file.
// At most one conflict exists per file path; repeated scans over the same
// unresolved file refresh its candidate list in place.
type Conflict struct {
	ID         int64
	FileName   string
	FilePath   string
	MediaType  MediaType
	Candidates []Candidate
	Resolved   bool
	SelectedID *int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
