package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/swingmatch/swingmatch/internal/capture"
)

const schema = `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		stroke TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		mediaRef TEXT NOT NULL DEFAULT '',
		durationSeconds INTEGER NOT NULL,
		status TEXT NOT NULL,
		createdAt REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS session_tags (
		sessionId TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		tag TEXT NOT NULL,
		PRIMARY KEY (sessionId, position)
	);

	CREATE TABLE IF NOT EXISTS analysis_requests (
		id TEXT PRIMARY KEY,
		sessionId TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		status TEXT NOT NULL DEFAULT 'queued',
		createdAt REAL NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(createdAt);
`

// Store is the local library. It implements capture.Library, and
// capture.Analyzer by queueing requests for later analysis.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

var (
	_ capture.Library  = (*Store)(nil)
	_ capture.Analyzer = (*Store)(nil)
)

// DefaultDBPath returns the default database path.
func DefaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "swingmatch", "swingmatch.sqlite")
}

// Open opens (creating if needed) the database at path with WAL and
// applies the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Verify connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSession stores a reviewed capture in the library.
func (s *Store) SaveSession(ctx context.Context, p capture.Payload) error {
	_, err := s.insertSession(ctx, p, StatusSaved, false)
	return err
}

// SubmitForAnalysis stores the capture and queues it for analysis in one
// transaction.
func (s *Store) SubmitForAnalysis(ctx context.Context, p capture.Payload) error {
	_, err := s.insertSession(ctx, p, StatusUploaded, true)
	return err
}

func (s *Store) insertSession(ctx context.Context, p capture.Payload, status string, queue bool) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	id := uuid.NewString()
	created := unixFromTime(s.now())

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO sessions (id, stroke, notes, mediaRef, durationSeconds, status, createdAt)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, p.Stroke, p.Notes, string(p.MediaRef), p.DurationSeconds, status, created); err != nil {
		return "", fmt.Errorf("insert session: %w", err)
	}

	for i, tag := range p.Tags {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO session_tags (sessionId, position, tag) VALUES (?, ?, ?)
		`, id, i, tag); err != nil {
			return "", fmt.Errorf("insert tag: %w", err)
		}
	}

	if queue {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO analysis_requests (id, sessionId, status, createdAt)
			VALUES (?, ?, ?, ?)
		`, uuid.NewString(), id, AnalysisQueued, created); err != nil {
			return "", fmt.Errorf("queue analysis: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// RecentSessions returns up to limit sessions, newest first. A non-empty
// stroke restricts the result to that stroke.
func (s *Store) RecentSessions(ctx context.Context, stroke string, limit int) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, stroke, notes, mediaRef, durationSeconds, status, createdAt
		FROM sessions
		WHERE ? = '' OR stroke = ?
		ORDER BY createdAt DESC
		LIMIT ?
	`, stroke, stroke, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var createdAt float64
		if err := rows.Scan(&sess.ID, &sess.Stroke, &sess.Notes, &sess.MediaRef,
			&sess.DurationSeconds, &sess.Status, &createdAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sess.CreatedAt = timeFromUnix(createdAt)
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range sessions {
		tags, err := s.TagsForSession(ctx, sessions[i].ID)
		if err != nil {
			return nil, err
		}
		sessions[i].Tags = tags
	}
	return sessions, nil
}

// LatestSession returns the most recent session, or nil if there is none.
func (s *Store) LatestSession(ctx context.Context) (*Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, stroke, notes, mediaRef, durationSeconds, status, createdAt
		FROM sessions
		ORDER BY createdAt DESC
		LIMIT 1
	`)

	var sess Session
	var createdAt float64
	if err := row.Scan(&sess.ID, &sess.Stroke, &sess.Notes, &sess.MediaRef,
		&sess.DurationSeconds, &sess.Status, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}
	sess.CreatedAt = timeFromUnix(createdAt)

	tags, err := s.TagsForSession(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	sess.Tags = tags
	return &sess, nil
}

// TagsForSession returns a session's tags in the order they were added.
func (s *Store) TagsForSession(ctx context.Context, sessionID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT tag FROM session_tags
		WHERE sessionId = ?
		ORDER BY position ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// PendingAnalyses returns queued analysis requests, oldest first.
func (s *Store) PendingAnalyses(ctx context.Context) ([]AnalysisRequest, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.sessionId, s.stroke, a.status, a.createdAt
		FROM analysis_requests a
		JOIN sessions s ON s.id = a.sessionId
		WHERE a.status = ?
		ORDER BY a.createdAt ASC
	`, AnalysisQueued)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}
	defer rows.Close()

	var reqs []AnalysisRequest
	for rows.Next() {
		var r AnalysisRequest
		var createdAt float64
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Stroke, &r.Status, &createdAt); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		r.CreatedAt = timeFromUnix(createdAt)
		reqs = append(reqs, r)
	}
	return reqs, rows.Err()
}

// CountSessions returns how many sessions the library holds.
func (s *Store) CountSessions(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return n, nil
}

func unixFromTime(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

func timeFromUnix(ts float64) time.Time {
	sec := int64(ts)
	nsec := int64((ts - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}
