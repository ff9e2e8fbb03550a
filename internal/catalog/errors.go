package catalog

import "errors"

// Sentinel errors returned by the store. Callers branch with errors.Is;
// the sqlite driver's errors are never exposed directly.
var (
	ErrNotFound   = errors.New("catalog: not found")
	ErrDuplicate  = errors.New("catalog: duplicate entry")
	ErrConstraint = errors.New("catalog: constraint violation")

	// ErrNoEpisodes is returned by CascadeSeriesStatus when the series
	// exists but has no episode rows to update.
	ErrNoEpisodes = errors.New("catalog: series has no episodes")
)
