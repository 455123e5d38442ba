// Package store persists review sessions in a local SQLite database so an
// interrupted review can resume against its working copy.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/skv/csm-reporter/internal/model"
)

// ErrNotFound is returned when no session matches the query.
var ErrNotFound = errors.New("session not found")

// SQLiteStore persists sessions using a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// WAL keeps reads cheap while progress writes happen per review step.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// CreateSession inserts a new walking session and returns it with its
// generated ID and timestamps filled in.
func (s *SQLiteStore) CreateSession(ctx context.Context, sess model.Session) (model.Session, error) {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	if sess.State == "" {
		sess.State = model.SessionWalking
	}
	now := time.Now().UTC()
	sess.CreatedAt = now
	sess.UpdatedAt = now

	stats, period, daas, err := marshalBlobs(sess)
	if err != nil {
		return model.Session{}, err
	}

	const query = `
		INSERT INTO sessions (
			id, main_path, working_path, daas_path, state,
			current_row, deleted_rows, total, last_status,
			stats, period, daas, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = s.db.ExecContext(ctx, query,
		sess.ID, sess.MainPath, sess.WorkingPath, sess.DaasPath, sess.State,
		sess.CurrentRow, sess.DeletedRows, sess.Total, sess.LastStatus,
		stats, period, daas, sess.CreatedAt, sess.UpdatedAt,
	)
	if err != nil {
		return model.Session{}, fmt.Errorf("inserting session %s: %w", sess.ID, err)
	}

	return sess, nil
}

// SaveProgress updates the mutable fields of an existing session.
func (s *SQLiteStore) SaveProgress(ctx context.Context, sess model.Session) error {
	sess.UpdatedAt = time.Now().UTC()

	stats, period, daas, err := marshalBlobs(sess)
	if err != nil {
		return err
	}

	const query = `
		UPDATE sessions SET
			working_path = ?, daas_path = ?, state = ?,
			current_row = ?, deleted_rows = ?, total = ?, last_status = ?,
			stats = ?, period = ?, daas = ?, updated_at = ?
		WHERE id = ?`

	res, err := s.db.ExecContext(ctx, query,
		sess.WorkingPath, sess.DaasPath, sess.State,
		sess.CurrentRow, sess.DeletedRows, sess.Total, sess.LastStatus,
		stats, period, daas, sess.UpdatedAt, sess.ID,
	)
	if err != nil {
		return fmt.Errorf("updating session %s: %w", sess.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("session %s: %w", sess.ID, ErrNotFound)
	}
	return nil
}

// GetSession retrieves a session by ID.
func (s *SQLiteStore) GetSession(ctx context.Context, id string) (*model.Session, error) {
	return s.getWhere(ctx, "WHERE id = ?", id)
}

// LatestOpenSession returns the most recently updated walking session, or
// ErrNotFound when every session has terminated.
func (s *SQLiteStore) LatestOpenSession(ctx context.Context) (*model.Session, error) {
	return s.getWhere(ctx, "WHERE state = ? ORDER BY updated_at DESC LIMIT 1", model.SessionWalking)
}

// DeleteSession removes a session row entirely (full-session reset).
func (s *SQLiteStore) DeleteSession(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting session %s: %w", id, err)
	}
	return nil
}

// sessionRow mirrors the sessions table including the JSON blob columns.
type sessionRow struct {
	model.Session
	StatsJSON  string `db:"stats"`
	PeriodJSON string `db:"period"`
	DaasJSON   string `db:"daas"`
}

func (s *SQLiteStore) getWhere(ctx context.Context, clause string, args ...any) (*model.Session, error) {
	var row sessionRow
	query := `
		SELECT id, main_path, working_path, daas_path, state,
			current_row, deleted_rows, total, last_status,
			stats, period, daas, created_at, updated_at
		FROM sessions ` + clause

	if err := s.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying session: %w", err)
	}

	sess := row.Session
	if err := json.Unmarshal([]byte(row.StatsJSON), &sess.Stats); err != nil {
		return nil, fmt.Errorf("decoding session %s stats: %w", sess.ID, err)
	}
	if err := json.Unmarshal([]byte(row.PeriodJSON), &sess.Period); err != nil {
		return nil, fmt.Errorf("decoding session %s period: %w", sess.ID, err)
	}
	if err := json.Unmarshal([]byte(row.DaasJSON), &sess.Daas); err != nil {
		return nil, fmt.Errorf("decoding session %s daas data: %w", sess.ID, err)
	}

	return &sess, nil
}

func marshalBlobs(sess model.Session) (stats, period, daas string, err error) {
	statsB, err := json.Marshal(sess.Stats)
	if err != nil {
		return "", "", "", fmt.Errorf("marshaling stats for session %s: %w", sess.ID, err)
	}
	periodB, err := json.Marshal(sess.Period)
	if err != nil {
		return "", "", "", fmt.Errorf("marshaling period for session %s: %w", sess.ID, err)
	}
	daasB, err := json.Marshal(sess.Daas)
	if err != nil {
		return "", "", "", fmt.Errorf("marshaling daas data for session %s: %w", sess.ID, err)
	}
	return string(statsB), string(periodB), string(daasB), nil
}
