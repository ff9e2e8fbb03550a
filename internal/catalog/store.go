package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// querier is satisfied by both *sql.DB and *sql.Tx so the row helpers
// work inside and outside transactions.
type querier interface {
	QueryRow(query string, args ...any) *sql.Row
	Query(query string, args ...any) (*sql.Rows, error)
	Exec(query string, args ...any) (sql.Result, error)
}

// Store is the catalog database layer. Zero value is not usable; create
// with NewStore.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Begin starts a transaction.
func (s *Store) Begin() (*Tx, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &Tx{tx: tx}, nil
}

// Tx mirrors Store operations inside one transaction.
type Tx struct {
	tx *sql.Tx
}

func (t *Tx) Commit() error   { return t.tx.Commit() }
func (t *Tx) Rollback() error { return t.tx.Rollback() }

// mapSQLiteError folds driver errors into the package sentinels. The
// modernc driver exposes constraint failures only through the message
// text, so this matches on the SQLite error strings.
func mapSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint"),
		strings.Contains(msg, "PRIMARY KEY constraint"):
		return ErrDuplicate
	case strings.Contains(msg, "FOREIGN KEY constraint"),
		strings.Contains(msg, "CHECK constraint"):
		return ErrConstraint
	}
	return err
}
