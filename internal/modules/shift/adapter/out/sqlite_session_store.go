package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"

	"leadtrack/internal/modules/shift/domain"
	shiftout "leadtrack/internal/modules/shift/port/out"

	_ "modernc.org/sqlite"
)

var _ shiftout.SessionStore = (*SQLiteSessionStore)(nil)

// SQLiteSessionStore persists sessions as rows of the workspace database;
// snapshots and conversions are stored as JSON columns.
type SQLiteSessionStore struct {
	db *sql.DB
}

func NewSQLiteSessionStore(dbPath string) (*SQLiteSessionStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteSessionStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteSessionStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteSessionStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS shift_sessions (
  id TEXT PRIMARY KEY,
  schema_version INTEGER NOT NULL,
  operator_name TEXT NOT NULL,
  date TEXT NOT NULL,
  login_time TEXT NOT NULL,
  logout_time TEXT,
  entry_snapshot TEXT NOT NULL,
  exit_snapshot TEXT,
  conversions TEXT,
  estimated_call_count INTEGER,
  is_active INTEGER NOT NULL,
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_shift_sessions_date ON shift_sessions(date DESC, created_at DESC);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create shift_sessions: %w", err)
	}
	return nil
}

func (s *SQLiteSessionStore) Upsert(ctx context.Context, session domain.Session) error {
	entry, err := encodeSnapshot(session.EntrySnapshot)
	if err != nil {
		return err
	}
	var (
		logout, exit, conversions sql.NullString
		estimate                  sql.NullInt64
	)
	if !session.IsActive {
		raw, err := encodeSnapshot(session.ExitSnapshot)
		if err != nil {
			return err
		}
		conv, err := json.Marshal(session.Conversions)
		if err != nil {
			return fmt.Errorf("encode conversions: %w", err)
		}
		logout = sql.NullString{String: session.LogoutTime, Valid: true}
		exit = sql.NullString{String: raw, Valid: true}
		conversions = sql.NullString{String: string(conv), Valid: true}
		estimate = sql.NullInt64{Int64: int64(session.EstimatedCallCount), Valid: true}
	}

	const stmt = `
INSERT INTO shift_sessions (id, schema_version, operator_name, date, login_time, logout_time, entry_snapshot, exit_snapshot, conversions, estimated_call_count, is_active, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  operator_name=excluded.operator_name,
  date=excluded.date,
  login_time=excluded.login_time,
  logout_time=excluded.logout_time,
  entry_snapshot=excluded.entry_snapshot,
  exit_snapshot=excluded.exit_snapshot,
  conversions=excluded.conversions,
  estimated_call_count=excluded.estimated_call_count,
  is_active=excluded.is_active;
`
	_, err = s.db.ExecContext(ctx, stmt,
		session.ID,
		domain.SchemaVersion,
		session.OperatorName,
		session.Date,
		session.LoginTime,
		logout,
		entry,
		exit,
		conversions,
		estimate,
		session.IsActive,
		session.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert session %s: %w", session.ID, err)
	}
	return nil
}

func (s *SQLiteSessionStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM shift_sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

func (s *SQLiteSessionStore) List(ctx context.Context) ([]domain.Session, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, operator_name, date, login_time, logout_time, entry_snapshot, exit_snapshot, conversions, estimated_call_count, is_active, created_at
FROM shift_sessions ORDER BY date DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	out := []domain.Session{}
	for rows.Next() {
		var (
			session                   domain.Session
			logout, exit, conversions sql.NullString
			estimate                  sql.NullInt64
			entry, createdAt          string
		)
		if err := rows.Scan(&session.ID, &session.OperatorName, &session.Date, &session.LoginTime, &logout, &entry, &exit, &conversions, &estimate, &session.IsActive, &createdAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if session.EntrySnapshot, err = decodeSnapshot(entry); err != nil {
			return nil, fmt.Errorf("session %s: %w", session.ID, err)
		}
		session.LogoutTime = logout.String
		if exit.Valid {
			if session.ExitSnapshot, err = decodeSnapshot(exit.String); err != nil {
				return nil, fmt.Errorf("session %s: %w", session.ID, err)
			}
		}
		if conversions.Valid {
			if err := json.Unmarshal([]byte(conversions.String), &session.Conversions); err != nil {
				return nil, fmt.Errorf("session %s: decode conversions: %w", session.ID, err)
			}
		}
		session.EstimatedCallCount = int(estimate.Int64)
		if session.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("session %s: decode created_at: %w", session.ID, err)
		}
		out = append(out, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return out, nil
}

func encodeSnapshot(snapshot []domain.StatusSnapshot) (string, error) {
	if snapshot == nil {
		snapshot = []domain.StatusSnapshot{}
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return string(raw), nil
}

func decodeSnapshot(raw string) ([]domain.StatusSnapshot, error) {
	out := []domain.StatusSnapshot{}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return out, nil
}
