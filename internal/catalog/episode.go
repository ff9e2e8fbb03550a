package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const episodeColumns = `id, series_id, tmdb_id, season, episode, title, overview, still_path, air_date,
	file_path, file_name, resolution, quality, source, audio, provider, transcode_status, added_at, updated_at`

func scanEpisode(row interface{ Scan(...any) error }) (*Episode, error) {
	e := &Episode{}
	err := row.Scan(&e.ID, &e.SeriesID, &e.TMDBID, &e.Season, &e.Episode, &e.Title, &e.Overview,
		&e.StillPath, &e.AirDate,
		&e.File.Path, &e.File.Name, &e.File.Resolution, &e.File.Quality, &e.File.Source,
		&e.File.Audio, &e.File.Provider, &e.Status, &e.AddedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func getEpisode(q querier, id int64) (*Episode, error) {
	e, err := scanEpisode(q.QueryRow(`SELECT `+episodeColumns+` FROM episodes WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("get episode %d: %w", id, mapSQLiteError(err))
	}
	return e, nil
}

// GetEpisode retrieves an episode by row ID.
// Returns ErrNotFound if the episode does not exist.
func (s *Store) GetEpisode(id int64) (*Episode, error) { return getEpisode(s.db, id) }

// GetEpisode retrieves an episode by row ID within a transaction.
func (t *Tx) GetEpisode(id int64) (*Episode, error) { return getEpisode(t.tx, id) }

// GetEpisodeByNumber retrieves an episode by its composite key.
// Returns nil, nil if not found.
func (s *Store) GetEpisodeByNumber(seriesID int64, season, episode int) (*Episode, error) {
	e, err := scanEpisode(s.db.QueryRow(
		`SELECT `+episodeColumns+` FROM episodes WHERE series_id = ? AND season = ? AND episode = ?`,
		seriesID, season, episode))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get episode S%02dE%02d of series %d: %w", season, episode, seriesID, mapSQLiteError(err))
	}
	return e, nil
}

// UpsertEpisode creates or updates an episode keyed by (series_id, season,
// episode). On create it writes both catalog and file fields and sets the
// initial transcode status to pending. On update it overwrites only the
// file fields. The stored row is written back to e.
// Returns true if a new row was created.
func (s *Store) UpsertEpisode(e *Episode) (bool, error) {
	existing, err := s.GetEpisodeByNumber(e.SeriesID, e.Season, e.Episode)
	if err != nil {
		return false, err
	}

	now := time.Now()
	if existing == nil {
		e.Status = StatusPending
		result, err := s.db.Exec(`
			INSERT INTO episodes (series_id, tmdb_id, season, episode, title, overview, still_path, air_date,
				file_path, file_name, resolution, quality, source, audio, provider, transcode_status, added_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.SeriesID, e.TMDBID, e.Season, e.Episode, e.Title, e.Overview, e.StillPath, e.AirDate,
			e.File.Path, e.File.Name, e.File.Resolution, e.File.Quality, e.File.Source,
			e.File.Audio, e.File.Provider, e.Status, now, now,
		)
		if err != nil {
			return false, fmt.Errorf("insert episode S%02dE%02d: %w", e.Season, e.Episode, mapSQLiteError(err))
		}
		id, err := result.LastInsertId()
		if err != nil {
			return false, fmt.Errorf("get last insert id: %w", err)
		}
		e.ID = id
		e.AddedAt = now
		e.UpdatedAt = now
		return true, nil
	}

	_, err = s.db.Exec(`
		UPDATE episodes SET file_path = ?, file_name = ?, resolution = ?, quality = ?, source = ?, audio = ?, provider = ?, updated_at = ?
		WHERE id = ?`,
		e.File.Path, e.File.Name, e.File.Resolution, e.File.Quality, e.File.Source,
		e.File.Audio, e.File.Provider, now, existing.ID,
	)
	if err != nil {
		return false, fmt.Errorf("update episode %d: %w", existing.ID, mapSQLiteError(err))
	}

	file := e.File
	*e = *existing
	e.File = file
	e.UpdatedAt = now
	return false, nil
}

func listEpisodes(q querier, f EpisodeFilter) ([]*Episode, error) {
	var conditions []string
	var args []any

	if f.SeriesID != nil {
		conditions = append(conditions, "series_id = ?")
		args = append(args, *f.SeriesID)
	}
	if f.Season != nil {
		conditions = append(conditions, "season = ?")
		args = append(args, *f.Season)
	}
	if f.Status != nil {
		conditions = append(conditions, "transcode_status = ?")
		args = append(args, *f.Status)
	}

	query := `SELECT ` + episodeColumns + ` FROM episodes`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY series_id, season, episode"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list episodes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Episode
	for rows.Next() {
		e, err := scanEpisode(rows)
		if err != nil {
			return nil, fmt.Errorf("scan episode: %w", err)
		}
		results = append(results, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate episodes: %w", err)
	}
	return results, nil
}

// ListEpisodes returns episodes matching the filter.
func (s *Store) ListEpisodes(f EpisodeFilter) ([]*Episode, error) { return listEpisodes(s.db, f) }

// ListEpisodes returns episodes matching the filter within a transaction.
func (t *Tx) ListEpisodes(f EpisodeFilter) ([]*Episode, error) { return listEpisodes(t.tx, f) }

// DeleteEpisode removes an episode by row ID.
// This operation is idempotent - no error is returned if the episode does not exist.
func (s *Store) DeleteEpisode(id int64) error {
	if _, err := s.db.Exec("DELETE FROM episodes WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete episode %d: %w", id, mapSQLiteError(err))
	}
	return nil
}
