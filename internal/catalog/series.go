package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const seriesColumns = `id, tmdb_id, title, overview, poster_path, backdrop_path, genres, first_air_date,
	transcode_status, added_at, updated_at`

func scanSeries(row interface{ Scan(...any) error }) (*Series, error) {
	sr := &Series{}
	err := row.Scan(&sr.ID, &sr.TMDBID, &sr.Title, &sr.Overview, &sr.PosterPath, &sr.BackdropPath,
		&sr.Genres, &sr.FirstAirDate, &sr.Status, &sr.AddedAt, &sr.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return sr, nil
}

func getSeries(q querier, id int64) (*Series, error) {
	sr, err := scanSeries(q.QueryRow(`SELECT `+seriesColumns+` FROM series WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("get series %d: %w", id, mapSQLiteError(err))
	}
	return sr, nil
}

// GetSeries retrieves a series by row ID.
// Returns ErrNotFound if the series does not exist.
func (s *Store) GetSeries(id int64) (*Series, error) { return getSeries(s.db, id) }

// GetSeries retrieves a series by row ID within a transaction.
func (t *Tx) GetSeries(id int64) (*Series, error) { return getSeries(t.tx, id) }

// GetSeriesByTMDBID retrieves a series by its external metadata id.
// Returns nil, nil if not found.
func (s *Store) GetSeriesByTMDBID(tmdbID int64) (*Series, error) {
	sr, err := scanSeries(s.db.QueryRow(`SELECT `+seriesColumns+` FROM series WHERE tmdb_id = ?`, tmdbID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get series by tmdb id %d: %w", tmdbID, mapSQLiteError(err))
	}
	return sr, nil
}

// UpsertSeries creates a series keyed by TMDB id, or returns the existing
// row. Series carry no file fields, so an existing row is returned as-is:
// catalog metadata is authoritative once fetched and is never overwritten
// by a rescan. Returns true if a new row was created.
func (s *Store) UpsertSeries(sr *Series) (bool, error) {
	existing, err := s.GetSeriesByTMDBID(sr.TMDBID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		*sr = *existing
		return false, nil
	}

	now := time.Now()
	sr.Status = StatusPending
	result, err := s.db.Exec(`
		INSERT INTO series (tmdb_id, title, overview, poster_path, backdrop_path, genres, first_air_date, transcode_status, added_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sr.TMDBID, sr.Title, sr.Overview, sr.PosterPath, sr.BackdropPath, sr.Genres, sr.FirstAirDate,
		sr.Status, now, now,
	)
	if err != nil {
		return false, fmt.Errorf("insert series: %w", mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return false, fmt.Errorf("get last insert id: %w", err)
	}
	sr.ID = id
	sr.AddedAt = now
	sr.UpdatedAt = now
	return true, nil
}

// ListSeries returns series matching the filter, ordered by id.
func (s *Store) ListSeries(f SeriesFilter) ([]*Series, error) {
	query := `SELECT ` + seriesColumns + ` FROM series`
	var args []any
	if f.Status != nil {
		query += " WHERE transcode_status = ?"
		args = append(args, *f.Status)
	}
	query += " ORDER BY id"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Series
	for rows.Next() {
		sr, err := scanSeries(rows)
		if err != nil {
			return nil, fmt.Errorf("scan series: %w", err)
		}
		results = append(results, sr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate series: %w", err)
	}
	return results, nil
}

// DeleteSeries removes a series by row ID along with its episodes.
// This operation is idempotent - no error is returned if the series does not exist.
func (s *Store) DeleteSeries(id int64) error {
	if _, err := s.db.Exec("DELETE FROM series WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete series %d: %w", id, mapSQLiteError(err))
	}
	return nil
}
