package conflict

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Store provides access to conflict data.
type Store struct {
	db *sql.DB
}

// NewStore creates a new conflict store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const conflictColumns = `id, file_name, file_path, media_type, candidates, resolved, selected_id, created_at, updated_at`

func scanConflict(row interface{ Scan(...any) error }) (*Conflict, error) {
	c := &Conflict{}
	var candidatesJSON string
	err := row.Scan(&c.ID, &c.FileName, &c.FilePath, &c.MediaType, &candidatesJSON,
		&c.Resolved, &c.SelectedID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(candidatesJSON), &c.Candidates); err != nil {
		return nil, fmt.Errorf("decode candidates: %w", err)
	}
	return c, nil
}

// Get retrieves a conflict by ID.
// Returns ErrNotFound if the conflict does not exist.
func (s *Store) Get(id int64) (*Conflict, error) {
	c, err := scanConflict(s.db.QueryRow(`SELECT `+conflictColumns+` FROM conflicts WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get conflict %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get conflict %d: %w", id, err)
	}
	return c, nil
}

// GetByPath retrieves a conflict by file path.
// Returns nil, nil if not found.
func (s *Store) GetByPath(path string) (*Conflict, error) {
	c, err := scanConflict(s.db.QueryRow(`SELECT `+conflictColumns+` FROM conflicts WHERE file_path = ?`, path))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get conflict by path %q: %w", path, err)
	}
	return c, nil
}

// Upsert records a conflict, deduplicated by file path. A new path inserts
// an unresolved row; an existing unresolved row gets its candidate list
// refreshed in place; an already-resolved row is left untouched, so a
// resolved path never re-triggers a conflict. The stored row is written
// back to c. Returns true if a new row was created.
func (s *Store) Upsert(c *Conflict) (bool, error) {
	existing, err := s.GetByPath(c.FilePath)
	if err != nil {
		return false, err
	}

	now := time.Now()
	candidatesJSON, err := json.Marshal(candidatesOrEmpty(c.Candidates))
	if err != nil {
		return false, fmt.Errorf("encode candidates: %w", err)
	}

	if existing == nil {
		result, err := s.db.Exec(`
			INSERT INTO conflicts (file_name, file_path, media_type, candidates, resolved, created_at, updated_at)
			VALUES (?, ?, ?, ?, 0, ?, ?)`,
			c.FileName, c.FilePath, c.MediaType, string(candidatesJSON), now, now,
		)
		if err != nil {
			return false, fmt.Errorf("insert conflict: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return false, fmt.Errorf("get last insert id: %w", err)
		}
		c.ID = id
		c.Resolved = false
		c.CreatedAt = now
		c.UpdatedAt = now
		return true, nil
	}

	if existing.Resolved {
		*c = *existing
		return false, nil
	}

	_, err = s.db.Exec(
		"UPDATE conflicts SET candidates = ?, updated_at = ? WHERE id = ?",
		string(candidatesJSON), now, existing.ID,
	)
	if err != nil {
		return false, fmt.Errorf("update conflict %d: %w", existing.ID, err)
	}

	candidates := c.Candidates
	*c = *existing
	c.Candidates = candidates
	c.UpdatedAt = now
	return false, nil
}

// Resolve marks a conflict resolved with the chosen external id.
// Returns ErrNotFound if the conflict does not exist; no partial state
// change occurs in that case.
func (s *Store) Resolve(id int64, selectedID int64) (*Conflict, error) {
	c, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if _, err := s.db.Exec(
		"UPDATE conflicts SET resolved = 1, selected_id = ?, updated_at = ? WHERE id = ?",
		selectedID, now, id,
	); err != nil {
		return nil, fmt.Errorf("resolve conflict %d: %w", id, err)
	}

	c.Resolved = true
	c.SelectedID = &selectedID
	c.UpdatedAt = now
	return c, nil
}

// List returns conflicts, unresolved-only when the flag is set, ordered by id.
func (s *Store) List(unresolvedOnly bool) ([]*Conflict, error) {
	query := `SELECT ` + conflictColumns + ` FROM conflicts`
	if unresolvedOnly {
		query += " WHERE resolved = 0"
	}
	query += " ORDER BY id"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list conflicts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Conflict
	for rows.Next() {
		c, err := scanConflict(rows)
		if err != nil {
			return nil, fmt.Errorf("scan conflict: %w", err)
		}
		results = append(results, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conflicts: %w", err)
	}
	return results, nil
}

// Delete removes a conflict by ID.
// This operation is idempotent - no error is returned if the conflict does not exist.
func (s *Store) Delete(id int64) error {
	if _, err := s.db.Exec("DELETE FROM conflicts WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete conflict %d: %w", id, err)
	}
	return nil
}

// DeleteAll removes every conflict and returns the number deleted.
func (s *Store) DeleteAll() (int64, error) {
	result, err := s.db.Exec("DELETE FROM conflicts")
	if err != nil {
		return 0, fmt.Errorf("delete conflicts: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return rows, nil
}

// candidatesOrEmpty keeps a no-match conflict's list as [] rather than null.
func candidatesOrEmpty(candidates []Candidate) []Candidate {
	if candidates == nil {
		return []Candidate{}
	}
	return candidates
}
