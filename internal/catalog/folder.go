package catalog

import (
	"fmt"
	"strings"
	"time"
)

// AddFolder inserts a new media folder.
// Sets ID and AddedAt on the struct.
// Returns ErrDuplicate if a folder with the same path already exists.
func (s *Store) AddFolder(f *Folder) error {
	now := time.Now()
	result, err := s.db.Exec(
		"INSERT INTO folders (path, kind, active, added_at) VALUES (?, ?, ?, ?)",
		f.Path, f.Kind, f.Active, now,
	)
	if err != nil {
		return fmt.Errorf("insert folder: %w", mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	f.ID = id
	f.AddedAt = now
	return nil
}

// GetFolder retrieves a folder by ID.
// Returns ErrNotFound if the folder does not exist.
func (s *Store) GetFolder(id int64) (*Folder, error) {
	f := &Folder{}
	err := s.db.QueryRow(
		"SELECT id, path, kind, active, added_at FROM folders WHERE id = ?", id,
	).Scan(&f.ID, &f.Path, &f.Kind, &f.Active, &f.AddedAt)
	if err != nil {
		return nil, fmt.Errorf("get folder %d: %w", id, mapSQLiteError(err))
	}
	return f, nil
}

// ListFolders returns folders matching the filter, ordered by id.
func (s *Store) ListFolders(filter FolderFilter) ([]*Folder, error) {
	var conditions []string
	var args []any

	if filter.Kind != nil {
		conditions = append(conditions, "kind = ?")
		args = append(args, *filter.Kind)
	}
	if filter.ActiveOnly {
		conditions = append(conditions, "active = 1")
	}

	query := "SELECT id, path, kind, active, added_at FROM folders"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Folder
	for rows.Next() {
		f := &Folder{}
		if err := rows.Scan(&f.ID, &f.Path, &f.Kind, &f.Active, &f.AddedAt); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		results = append(results, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}
	return results, nil
}

// SetFolderActive toggles a folder's active flag.
// Returns ErrNotFound if the folder does not exist.
func (s *Store) SetFolderActive(id int64, active bool) error {
	result, err := s.db.Exec("UPDATE folders SET active = ? WHERE id = ?", active, id)
	if err != nil {
		return fmt.Errorf("set folder %d active: %w", id, mapSQLiteError(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("set folder %d active: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteFolder removes a folder by ID.
// This operation is idempotent - no error is returned if the folder does not exist.
func (s *Store) DeleteFolder(id int64) error {
	if _, err := s.db.Exec("DELETE FROM folders WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete folder %d: %w", id, mapSQLiteError(err))
	}
	return nil
}
