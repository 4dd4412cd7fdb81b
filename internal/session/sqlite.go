package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/config"
	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/domain"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS session (
	id         INTEGER PRIMARY KEY CHECK (id = 1),
	token      TEXT    NOT NULL,
	shop_id    INTEGER NOT NULL,
	user_id    INTEGER NOT NULL DEFAULT 0,
	user_name  TEXT    NOT NULL DEFAULT '',
	updated_at TEXT    NOT NULL
);`

// DefaultPath is the session database inside the state dir.
func DefaultPath() string {
	return filepath.Join(config.Get("state_dir", ""), "session.db")
}

// SQLiteStore persists the session in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("session store: db path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, fmt.Errorf("session store: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("session store: open db: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) init() error {
	if _, err := s.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("session store: set busy timeout: %w", err)
	}
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("session store: create schema: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) Load(ctx context.Context) (Session, error) {
	var (
		sess      Session
		updatedAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT token, shop_id, user_id, user_name, updated_at FROM session WHERE id = 1`,
	).Scan(&sess.Token, &sess.ShopID, &sess.UserID, &sess.UserName, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, domain.ErrSessionMissing
	}
	if err != nil {
		return Session{}, fmt.Errorf("session store: load: %w", err)
	}
	if t, perr := time.Parse(time.RFC3339Nano, updatedAt); perr == nil {
		sess.UpdatedAt = t
	}
	if !sess.Valid() {
		return Session{}, domain.ErrSessionMissing
	}
	return sess, nil
}

func (s *SQLiteStore) Save(ctx context.Context, sess Session) error {
	if !sess.Valid() {
		return fmt.Errorf("session store: save: token and shop id are required")
	}
	if sess.UpdatedAt.IsZero() {
		sess.UpdatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO session (id, token, shop_id, user_id, user_name, updated_at)
VALUES (1, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	token = excluded.token,
	shop_id = excluded.shop_id,
	user_id = excluded.user_id,
	user_name = excluded.user_name,
	updated_at = excluded.updated_at`,
		sess.Token, sess.ShopID, sess.UserID, sess.UserName, sess.UpdatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("session store: save: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session`); err != nil {
		return fmt.Errorf("session store: clear: %w", err)
	}
	return nil
}
