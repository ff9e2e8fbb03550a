package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const movieColumns = `id, tmdb_id, title, overview, poster_path, backdrop_path, genres, release_date,
	file_path, file_name, resolution, quality, source, audio, provider, transcode_status, added_at, updated_at`

func scanMovie(row interface{ Scan(...any) error }) (*Movie, error) {
	m := &Movie{}
	err := row.Scan(&m.ID, &m.TMDBID, &m.Title, &m.Overview, &m.PosterPath, &m.BackdropPath,
		&m.Genres, &m.ReleaseDate,
		&m.File.Path, &m.File.Name, &m.File.Resolution, &m.File.Quality, &m.File.Source,
		&m.File.Audio, &m.File.Provider, &m.Status, &m.AddedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func getMovie(q querier, id int64) (*Movie, error) {
	m, err := scanMovie(q.QueryRow(`SELECT `+movieColumns+` FROM movies WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("get movie %d: %w", id, mapSQLiteError(err))
	}
	return m, nil
}

// GetMovie retrieves a movie by row ID.
// Returns ErrNotFound if the movie does not exist.
func (s *Store) GetMovie(id int64) (*Movie, error) { return getMovie(s.db, id) }

// GetMovie retrieves a movie by row ID within a transaction.
func (t *Tx) GetMovie(id int64) (*Movie, error) { return getMovie(t.tx, id) }

// GetMovieByTMDBID retrieves a movie by its external metadata id.
// Returns nil, nil if not found.
func (s *Store) GetMovieByTMDBID(tmdbID int64) (*Movie, error) {
	m, err := scanMovie(s.db.QueryRow(`SELECT `+movieColumns+` FROM movies WHERE tmdb_id = ?`, tmdbID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movie by tmdb id %d: %w", tmdbID, mapSQLiteError(err))
	}
	return m, nil
}

// UpsertMovie creates or updates a movie keyed by TMDB id.
// On create it writes both catalog and file fields and sets the initial
// transcode status to pending. On update it overwrites only the file fields;
// catalog metadata and transcode status are left untouched. The stored row
// is written back to m, so upserting is idempotent under repeated scans.
// Returns true if a new row was created.
func (s *Store) UpsertMovie(m *Movie) (bool, error) {
	existing, err := s.GetMovieByTMDBID(m.TMDBID)
	if err != nil {
		return false, err
	}

	now := time.Now()
	if existing == nil {
		m.Status = StatusPending
		result, err := s.db.Exec(`
			INSERT INTO movies (tmdb_id, title, overview, poster_path, backdrop_path, genres, release_date,
				file_path, file_name, resolution, quality, source, audio, provider, transcode_status, added_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.TMDBID, m.Title, m.Overview, m.PosterPath, m.BackdropPath, m.Genres, m.ReleaseDate,
			m.File.Path, m.File.Name, m.File.Resolution, m.File.Quality, m.File.Source,
			m.File.Audio, m.File.Provider, m.Status, now, now,
		)
		if err != nil {
			return false, fmt.Errorf("insert movie: %w", mapSQLiteError(err))
		}
		id, err := result.LastInsertId()
		if err != nil {
			return false, fmt.Errorf("get last insert id: %w", err)
		}
		m.ID = id
		m.AddedAt = now
		m.UpdatedAt = now
		return true, nil
	}

	_, err = s.db.Exec(`
		UPDATE movies SET file_path = ?, file_name = ?, resolution = ?, quality = ?, source = ?, audio = ?, provider = ?, updated_at = ?
		WHERE id = ?`,
		m.File.Path, m.File.Name, m.File.Resolution, m.File.Quality, m.File.Source,
		m.File.Audio, m.File.Provider, now, existing.ID,
	)
	if err != nil {
		return false, fmt.Errorf("update movie %d: %w", existing.ID, mapSQLiteError(err))
	}

	file := m.File
	*m = *existing
	m.File = file
	m.UpdatedAt = now
	return false, nil
}

// ListMovies returns movies matching the filter, ordered by id.
func (s *Store) ListMovies(f MovieFilter) ([]*Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies`
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
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}
	return results, nil
}

// DeleteMovie removes a movie by row ID.
// This operation is idempotent - no error is returned if the movie does not exist.
func (s *Store) DeleteMovie(id int64) error {
	if _, err := s.db.Exec("DELETE FROM movies WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete movie %d: %w", id, mapSQLiteError(err))
	}
	return nil
}
