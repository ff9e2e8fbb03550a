package catalog

import (
	"database/sql"
	"testing"

	"github.com/vmunix/scanarr/internal/migrations"
	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return db
}

// ptr is a helper to create pointer to value
func ptr[T any](v T) *T {
	return &v
}

func testMovie(tmdbID int64) *Movie {
	return &Movie{
		TMDBID:      tmdbID,
		Title:       "Inception",
		Overview:    "A thief who steals corporate secrets.",
		PosterPath:  "/poster.jpg",
		Genres:      "Action, Sci-Fi",
		ReleaseDate: "2010-07-16",
		File: FileInfo{
			Path:       "/movies/Inception.2010.1080p.BluRay.x264-GROUP.mkv",
			Name:       "Inception.2010.1080p.BluRay.x264-GROUP.mkv",
			Resolution: "1080p",
			Source:     "bluray",
			Provider:   "GROUP",
		},
	}
}

func testSeries(tmdbID int64) *Series {
	return &Series{
		TMDBID:       tmdbID,
		Title:        "Breaking Bad",
		Overview:     "A chemistry teacher turns to crime.",
		PosterPath:   "/bb.jpg",
		Genres:       "Drama",
		FirstAirDate: "2008-01-20",
	}
}

func testEpisode(seriesID int64, season, episode int) *Episode {
	return &Episode{
		SeriesID: seriesID,
		TMDBID:   62085,
		Season:   season,
		Episode:  episode,
		Title:    "Pilot",
		AirDate:  "2008-01-20",
		File: FileInfo{
			Path:       "/tv/Breaking.Bad.S01E01.720p.mkv",
			Name:       "Breaking.Bad.S01E01.720p.mkv",
			Resolution: "720p",
		},
	}
}
