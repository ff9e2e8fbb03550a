package scanner

import (
	"context"

	"github.com/vmunix/scanarr/internal/tmdb"
)

//go:generate mockgen -source=provider.go -destination=mocks/provider.go -package=mocks

// MetadataProvider is the external metadata catalog surface the pipeline
// depends on. *tmdb.Client satisfies it; tests substitute a mock.
type MetadataProvider interface {
	SearchMovie(ctx context.Context, title string, year int) ([]tmdb.Candidate, error)
	SearchSeries(ctx context.Context, name string) ([]tmdb.Candidate, error)
	MovieDetails(ctx context.Context, id int64) (*tmdb.MovieDetails, error)
	SeriesDetails(ctx context.Context, id int64) (*tmdb.SeriesDetails, error)
	EpisodeDetails(ctx context.Context, seriesID int64, season, episode int) (*tmdb.EpisodeDetails, error)
}
