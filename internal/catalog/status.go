package catalog

import (
	"fmt"
	"time"
)

// SetMovieStatus sets the transcode status on a movie. Any status may be set
// from any status; the transcoding collaborator owns transition correctness.
// Returns ErrNotFound if the movie does not exist.
func (s *Store) SetMovieStatus(id int64, status TranscodeStatus) error {
	result, err := s.db.Exec(
		"UPDATE movies SET transcode_status = ?, updated_at = ? WHERE id = ?",
		status, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("set movie %d status: %w", id, mapSQLiteError(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("set movie %d status: %w", id, ErrNotFound)
	}
	return nil
}

// SetEpisodeStatus sets the transcode status on an episode.
// Returns ErrNotFound if the episode does not exist.
func (s *Store) SetEpisodeStatus(id int64, status TranscodeStatus) error {
	result, err := s.db.Exec(
		"UPDATE episodes SET transcode_status = ?, updated_at = ? WHERE id = ?",
		status, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("set episode %d status: %w", id, mapSQLiteError(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("set episode %d status: %w", id, ErrNotFound)
	}
	return nil
}

// CascadeSeriesStatus sets the transcode status on a series row and every
// episode under it, in a single transaction. The whole cascade fails with no
// rows changed if the series does not exist (ErrNotFound) or has zero
// episodes (ErrNoEpisodes).
func (s *Store) CascadeSeriesStatus(seriesID int64, status TranscodeStatus) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now()

	result, err := tx.Exec(
		"UPDATE series SET transcode_status = ?, updated_at = ? WHERE id = ?",
		status, now, seriesID,
	)
	if err != nil {
		return fmt.Errorf("cascade series %d status: %w", seriesID, mapSQLiteError(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("cascade series %d status: %w", seriesID, ErrNotFound)
	}

	result, err = tx.Exec(
		"UPDATE episodes SET transcode_status = ?, updated_at = ? WHERE series_id = ?",
		status, now, seriesID,
	)
	if err != nil {
		return fmt.Errorf("cascade episodes of series %d: %w", seriesID, mapSQLiteError(err))
	}
	rows, err = result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("cascade series %d status: %w", seriesID, ErrNoEpisodes)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
