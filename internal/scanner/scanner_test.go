package scanner

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
	_ "modernc.org/sqlite"

	"github.com/vmunix/scanarr/internal/catalog"
	"github.com/vmunix/scanarr/internal/conflict"
	"github.com/vmunix/scanarr/internal/events"
	"github.com/vmunix/scanarr/internal/migrations"
	"github.com/vmunix/scanarr/internal/scanner/mocks"
	"github.com/vmunix/scanarr/internal/tmdb"
)

type testEnv struct {
	scanner   *Scanner
	catalog   *catalog.Store
	conflicts *conflict.Store
	provider  *mocks.MockMetadataProvider
	bus       *events.Bus
}

func setupScanner(t *testing.T) *testEnv {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(migrations.InitialSQL)
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	provider := mocks.NewMockMetadataProvider(ctrl)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cat := catalog.NewStore(db)
	conf := conflict.NewStore(db)
	bus := events.NewBus(log)
	t.Cleanup(func() { bus.Close() })
	return &testEnv{
		scanner:   New(cat, conf, provider, bus, Config{}, log),
		catalog:   cat,
		conflicts: conf,
		provider:  provider,
		bus:       bus,
	}
}

// writeMediaFile creates an empty file under dir, making parent directories
// as needed.
func writeMediaFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	return path
}

func addFolder(t *testing.T, env *testEnv, path string, kind catalog.FolderKind) {
	t.Helper()
	require.NoError(t, env.catalog.AddFolder(&catalog.Folder{Path: path, Kind: kind, Active: true}))
}

func TestScanAllSingleMatchSyncsMovie(t *testing.T) {
	env := setupScanner(t)
	dir := t.TempDir()
	path := writeMediaFile(t, dir, "Inception.2010.1080p.BluRay.DTS-GROUP.mkv")
	addFolder(t, env, dir, catalog.FolderMovies)

	env.provider.EXPECT().SearchMovie(gomock.Any(), "Inception", 2010).
		Return([]tmdb.Candidate{{ID: 27205, Title: "Inception", ReleaseDate: "2010-07-16"}}, nil)
	env.provider.EXPECT().MovieDetails(gomock.Any(), int64(27205)).
		Return(&tmdb.MovieDetails{
			ID:          27205,
			Title:       "Inception",
			Overview:    "A thief who steals corporate secrets.",
			ReleaseDate: "2010-07-16",
			Genres:      []tmdb.Genre{{ID: 28, Name: "Action"}, {ID: 878, Name: "Science Fiction"}},
		}, nil)

	sum, err := env.scanner.ScanAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Files)
	assert.Equal(t, 1, sum.Matched)
	assert.Equal(t, 0, sum.Conflicts)
	assert.Equal(t, 0, sum.Skipped)
	assert.Equal(t, 0, sum.Errors)

	m, err := env.catalog.GetMovieByTMDBID(27205)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "Inception", m.Title)
	assert.Equal(t, "Action, Science Fiction", m.Genres)
	assert.Equal(t, catalog.StatusPending, m.Status)
	assert.Equal(t, path, m.File.Path)
	assert.Equal(t, "1080p", m.File.Resolution)
	assert.Equal(t, "bluray", m.File.Source)
	assert.Equal(t, "dts", m.File.Audio)
	assert.Equal(t, "GROUP", m.File.Provider)
}

func TestScanAllSingleMatchSyncsEpisode(t *testing.T) {
	env := setupScanner(t)
	dir := t.TempDir()
	writeMediaFile(t, dir, "Show Name/Season 2/Show.Name.S02E05.720p.WEB-DL.mkv")
	addFolder(t, env, dir, catalog.FolderSeries)

	env.provider.EXPECT().SearchSeries(gomock.Any(), "Show Name").
		Return([]tmdb.Candidate{{ID: 4000, Title: "Show Name", ReleaseDate: "2019-01-10"}}, nil)
	env.provider.EXPECT().SeriesDetails(gomock.Any(), int64(4000)).
		Return(&tmdb.SeriesDetails{ID: 4000, Name: "Show Name", FirstAirDate: "2019-01-10"}, nil)
	env.provider.EXPECT().EpisodeDetails(gomock.Any(), int64(4000), 2, 5).
		Return(&tmdb.EpisodeDetails{ID: 9005, Name: "The Fifth One", SeasonNumber: 2, EpisodeNumber: 5}, nil)

	sum, err := env.scanner.ScanAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Matched)

	sr, err := env.catalog.GetSeriesByTMDBID(4000)
	require.NoError(t, err)
	require.NotNil(t, sr)
	assert.Equal(t, "Show Name", sr.Title)

	ep, err := env.catalog.GetEpisodeByNumber(sr.ID, 2, 5)
	require.NoError(t, err)
	require.NotNil(t, ep)
	assert.Equal(t, "The Fifth One", ep.Title)
	assert.Equal(t, "720p", ep.File.Resolution)
}

func TestScanAllRescanIsIdempotent(t *testing.T) {
	env := setupScanner(t)
	dir := t.TempDir()
	writeMediaFile(t, dir, "Inception.2010.1080p.mkv")
	addFolder(t, env, dir, catalog.FolderMovies)

	env.provider.EXPECT().SearchMovie(gomock.Any(), "Inception", 2010).
		Return([]tmdb.Candidate{{ID: 27205, Title: "Inception"}}, nil).Times(2)
	env.provider.EXPECT().MovieDetails(gomock.Any(), int64(27205)).
		Return(&tmdb.MovieDetails{ID: 27205, Title: "Inception", Overview: "original overview"}, nil)
	// Second scan sees updated upstream metadata; it must not overwrite ours.
	env.provider.EXPECT().MovieDetails(gomock.Any(), int64(27205)).
		Return(&tmdb.MovieDetails{ID: 27205, Title: "Inception Remastered", Overview: "rewritten overview"}, nil)

	_, err := env.scanner.ScanAll(context.Background())
	require.NoError(t, err)

	m, err := env.catalog.GetMovieByTMDBID(27205)
	require.NoError(t, err)
	require.NotNil(t, m)
	require.NoError(t, env.catalog.SetMovieStatus(m.ID, catalog.StatusCompleted))

	_, err = env.scanner.ScanAll(context.Background())
	require.NoError(t, err)

	movies, err := env.catalog.ListMovies(catalog.MovieFilter{})
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Inception", movies[0].Title)
	assert.Equal(t, "original overview", movies[0].Overview)
	assert.Equal(t, catalog.StatusCompleted, movies[0].Status)
}

func TestScanAllAmbiguousMatchBecomesConflict(t *testing.T) {
	env := setupScanner(t)
	dir := t.TempDir()
	path := writeMediaFile(t, dir, "Dune.2021.2160p.mkv")
	addFolder(t, env, dir, catalog.FolderMovies)

	candidates := []tmdb.Candidate{
		{ID: 438631, Title: "Dune", ReleaseDate: "2021-09-15"},
		{ID: 841, Title: "Dune", ReleaseDate: "1984-12-14"},
	}
	env.provider.EXPECT().SearchMovie(gomock.Any(), "Dune", 2021).Return(candidates, nil)

	sum, err := env.scanner.ScanAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Conflicts)
	assert.Equal(t, 0, sum.Matched)

	c, err := env.conflicts.GetByPath(path)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, conflict.MediaMovie, c.MediaType)
	assert.False(t, c.Resolved)
	require.Len(t, c.Candidates, 2)
	assert.Equal(t, int64(438631), c.Candidates[0].ExternalID)
	assert.Greater(t, c.Candidates[0].Score, 0.0)

	movies, err := env.catalog.ListMovies(catalog.MovieFilter{})
	require.NoError(t, err)
	assert.Empty(t, movies)
}

func TestScanAllNoMatchBecomesConflict(t *testing.T) {
	env := setupScanner(t)
	dir := t.TempDir()
	path := writeMediaFile(t, dir, "Obscure.Film.1997.mkv")
	addFolder(t, env, dir, catalog.FolderMovies)

	env.provider.EXPECT().SearchMovie(gomock.Any(), "Obscure Film", 1997).
		Return(nil, nil)

	sum, err := env.scanner.ScanAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Conflicts)

	c, err := env.conflicts.GetByPath(path)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Empty(t, c.Candidates)
}

func TestScanAllConflictDedupByPath(t *testing.T) {
	env := setupScanner(t)
	dir := t.TempDir()
	path := writeMediaFile(t, dir, "Dune.2021.mkv")
	addFolder(t, env, dir, catalog.FolderMovies)

	env.provider.EXPECT().SearchMovie(gomock.Any(), "Dune", 2021).
		Return([]tmdb.Candidate{{ID: 438631, Title: "Dune"}, {ID: 841, Title: "Dune"}}, nil)
	// Second scan surfaces an extra candidate; the existing row is refreshed
	// in place rather than duplicated.
	env.provider.EXPECT().SearchMovie(gomock.Any(), "Dune", 2021).
		Return([]tmdb.Candidate{{ID: 438631, Title: "Dune"}, {ID: 841, Title: "Dune"}, {ID: 9999, Title: "Dune Documentary"}}, nil)

	_, err := env.scanner.ScanAll(context.Background())
	require.NoError(t, err)
	_, err = env.scanner.ScanAll(context.Background())
	require.NoError(t, err)

	all, err := env.conflicts.List(false)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, path, all[0].FilePath)
	assert.Len(t, all[0].Candidates, 3)
}

func TestScanAllSkipsUnparseableFiles(t *testing.T) {
	env := setupScanner(t)
	dir := t.TempDir()
	writeMediaFile(t, dir, "sample.mkv")
	writeMediaFile(t, dir, "notes.txt")
	addFolder(t, env, dir, catalog.FolderMovies)

	sum, err := env.scanner.ScanAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Files) // .txt never enumerated
	assert.Equal(t, 1, sum.Skipped)
	assert.Equal(t, 0, sum.Conflicts)
	assert.Equal(t, 0, sum.Errors)

	all, err := env.conflicts.List(false)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestScanAllFileFailureIsIsolated(t *testing.T) {
	env := setupScanner(t)
	dir := t.TempDir()
	writeMediaFile(t, dir, "Broken.2020.mkv")
	writeMediaFile(t, dir, "Inception.2010.mkv")
	addFolder(t, env, dir, catalog.FolderMovies)

	env.provider.EXPECT().SearchMovie(gomock.Any(), "Broken", 2020).
		Return(nil, errors.New("upstream 500"))
	env.provider.EXPECT().SearchMovie(gomock.Any(), "Inception", 2010).
		Return([]tmdb.Candidate{{ID: 27205, Title: "Inception"}}, nil)
	env.provider.EXPECT().MovieDetails(gomock.Any(), int64(27205)).
		Return(&tmdb.MovieDetails{ID: 27205, Title: "Inception"}, nil)

	sum, err := env.scanner.ScanAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Files)
	assert.Equal(t, 1, sum.Errors)
	assert.Equal(t, 1, sum.Matched)
}

func TestScanAllMovieFoldersBeforeSeriesFolders(t *testing.T) {
	env := setupScanner(t)
	movieDir := t.TempDir()
	seriesDir := t.TempDir()
	writeMediaFile(t, movieDir, "Inception.2010.mkv")
	writeMediaFile(t, seriesDir, "Show.Name.S01E01.mkv")
	// Series folder registered first; movies must still be scanned first.
	addFolder(t, env, seriesDir, catalog.FolderSeries)
	addFolder(t, env, movieDir, catalog.FolderMovies)

	movieSearch := env.provider.EXPECT().SearchMovie(gomock.Any(), "Inception", 2010).
		Return([]tmdb.Candidate{{ID: 27205, Title: "Inception"}, {ID: 1, Title: "Inception Diaries"}}, nil)
	env.provider.EXPECT().SearchSeries(gomock.Any(), "Show Name").
		Return(nil, nil).After(movieSearch)

	sum, err := env.scanner.ScanAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Files)
	assert.Equal(t, 2, sum.Conflicts)
}

func TestScanAllRejectsConcurrentScan(t *testing.T) {
	env := setupScanner(t)

	env.scanner.scanning.Store(true)
	_, err := env.scanner.ScanAll(context.Background())
	assert.ErrorIs(t, err, ErrScanInProgress)
	assert.True(t, env.scanner.Scanning())

	env.scanner.scanning.Store(false)
	sum, err := env.scanner.ScanAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Files)
	assert.False(t, env.scanner.Scanning())
}

func TestStartRejectsSecondTrigger(t *testing.T) {
	env := setupScanner(t)

	env.scanner.scanning.Store(true)
	err := env.scanner.Start(context.Background())
	assert.ErrorIs(t, err, ErrScanInProgress)
	env.scanner.scanning.Store(false)
}

func TestScanAllInactiveFoldersIgnored(t *testing.T) {
	env := setupScanner(t)
	dir := t.TempDir()
	writeMediaFile(t, dir, "Inception.2010.mkv")
	require.NoError(t, env.catalog.AddFolder(&catalog.Folder{Path: dir, Kind: catalog.FolderMovies, Active: false}))

	sum, err := env.scanner.ScanAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Files)
}

func TestScanAllMissingFolderCountsError(t *testing.T) {
	env := setupScanner(t)
	addFolder(t, env, filepath.Join(t.TempDir(), "gone"), catalog.FolderMovies)

	sum, err := env.scanner.ScanAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Errors)
	assert.Equal(t, 0, sum.Files)
}

func TestNewNormalizesExtensions(t *testing.T) {
	env := setupScanner(t)
	dir := t.TempDir()
	writeMediaFile(t, dir, "Inception.2010.MKV")
	addFolder(t, env, dir, catalog.FolderMovies)

	env.provider.EXPECT().SearchMovie(gomock.Any(), "Inception", 2010).Return(nil, nil)

	sum, err := env.scanner.ScanAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Files)
}
