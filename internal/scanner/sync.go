package scanner

import (
	"context"
	"fmt"

	"github.com/vmunix/scanarr/internal/catalog"
	"github.com/vmunix/scanarr/internal/conflict"
	"github.com/vmunix/scanarr/internal/events"
	"github.com/vmunix/scanarr/internal/tmdb"
	"github.com/vmunix/scanarr/pkg/parse"
)

// syncMovie fetches full movie metadata and upserts the catalog entry.
// Catalog fields are written once at create; file fields refresh every scan.
func (s *Scanner) syncMovie(ctx context.Context, tmdbID int64, parsed *parse.Movie) error {
	details, err := s.metadata.MovieDetails(ctx, tmdbID)
	if err != nil {
		return fmt.Errorf("movie details %d: %w", tmdbID, err)
	}

	m := &catalog.Movie{
		TMDBID:       details.ID,
		Title:        details.Title,
		Overview:     details.Overview,
		PosterPath:   details.PosterPath,
		BackdropPath: details.BackdropPath,
		Genres:       tmdb.GenreNames(details.Genres),
		ReleaseDate:  details.ReleaseDate,
		File:         fileInfo(parsed.FilePath, parsed.FileName, parsed.Tokens),
	}
	created, err := s.catalog.UpsertMovie(m)
	if err != nil {
		return fmt.Errorf("upsert movie %q: %w", details.Title, err)
	}

	s.log.Info("movie synced", "title", details.Title, "tmdb_id", details.ID, "created", created)
	if s.bus != nil {
		s.bus.Publish(events.NewCatalogUpserted("movie", m.ID, created))
	}
	return nil
}

// syncEpisode fetches series and episode metadata, upserts the series, then
// upserts the specific episode under it.
func (s *Scanner) syncEpisode(ctx context.Context, seriesTMDBID int64, parsed *parse.Episode) error {
	seriesDetails, err := s.metadata.SeriesDetails(ctx, seriesTMDBID)
	if err != nil {
		return fmt.Errorf("series details %d: %w", seriesTMDBID, err)
	}

	sr := &catalog.Series{
		TMDBID:       seriesDetails.ID,
		Title:        seriesDetails.Name,
		Overview:     seriesDetails.Overview,
		PosterPath:   seriesDetails.PosterPath,
		BackdropPath: seriesDetails.BackdropPath,
		Genres:       tmdb.GenreNames(seriesDetails.Genres),
		FirstAirDate: seriesDetails.FirstAirDate,
	}
	seriesCreated, err := s.catalog.UpsertSeries(sr)
	if err != nil {
		return fmt.Errorf("upsert series %q: %w", seriesDetails.Name, err)
	}
	if s.bus != nil {
		s.bus.Publish(events.NewCatalogUpserted("series", sr.ID, seriesCreated))
	}

	epDetails, err := s.metadata.EpisodeDetails(ctx, seriesTMDBID, parsed.Season, parsed.Episode)
	if err != nil {
		return fmt.Errorf("episode details S%02dE%02d: %w", parsed.Season, parsed.Episode, err)
	}

	e := &catalog.Episode{
		SeriesID:  sr.ID,
		TMDBID:    epDetails.ID,
		Season:    parsed.Season,
		Episode:   parsed.Episode,
		Title:     epDetails.Name,
		Overview:  epDetails.Overview,
		StillPath: epDetails.StillPath,
		AirDate:   epDetails.AirDate,
		File:      fileInfo(parsed.FilePath, parsed.FileName, parsed.Tokens),
	}
	created, err := s.catalog.UpsertEpisode(e)
	if err != nil {
		return fmt.Errorf("upsert episode S%02dE%02d of %q: %w", parsed.Season, parsed.Episode, seriesDetails.Name, err)
	}

	s.log.Info("episode synced",
		"series", seriesDetails.Name,
		"season", parsed.Season,
		"episode", parsed.Episode,
		"created", created,
	)
	if s.bus != nil {
		s.bus.Publish(events.NewCatalogUpserted("episode", e.ID, created))
	}
	return nil
}

// recordConflict persists a zero-or-many match outcome as a conflict,
// deduplicated by file path. Candidates are scored against the parsed title
// for display ordering only.
func (s *Scanner) recordConflict(mediaType conflict.MediaType, filePath, fileName, parsedTitle string, candidates []tmdb.Candidate, sum *Summary) error {
	c := &conflict.Conflict{
		FileName:   fileName,
		FilePath:   filePath,
		MediaType:  mediaType,
		Candidates: make([]conflict.Candidate, len(candidates)),
	}
	for i, cand := range candidates {
		c.Candidates[i] = conflict.Candidate{
			ExternalID:  cand.ID,
			Title:       cand.Title,
			ReleaseDate: cand.ReleaseDate,
			Overview:    cand.Overview,
			PosterPath:  cand.PosterPath,
			Score:       parse.Score(parsedTitle, cand.Title),
		}
	}

	wasResolved, err := s.recordConflictRow(c)
	if err != nil {
		return err
	}
	if wasResolved {
		// Previously resolved path; ambiguity was settled for good.
		return nil
	}

	sum.Conflicts++
	s.log.Info("conflict recorded", "path", filePath, "candidates", len(candidates))
	if s.bus != nil {
		s.bus.Publish(events.NewConflictCreated(c.ID, filePath, len(candidates)))
	}
	return nil
}

func (s *Scanner) recordConflictRow(c *conflict.Conflict) (wasResolved bool, err error) {
	if _, err := s.conflicts.Upsert(c); err != nil {
		return false, fmt.Errorf("record conflict for %s: %w", c.FilePath, err)
	}
	return c.Resolved, nil
}

func fileInfo(path, name string, t parse.Tokens) catalog.FileInfo {
	return catalog.FileInfo{
		Path:       path,
		Name:       name,
		Resolution: t.Resolution,
		Quality:    t.Quality,
		Source:     t.Source,
		Audio:      t.Audio,
		Provider:   t.Group,
	}
}
