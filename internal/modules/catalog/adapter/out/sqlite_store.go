package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"

	"leadtrack/internal/modules/catalog/domain"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps clients and dropdown fields in the workspace database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS clients (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  phone TEXT,
  email TEXT,
  company TEXT,
  status TEXT,
  priority TEXT,
  call_outcome TEXT,
  follow_up_required INTEGER NOT NULL DEFAULT 0,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS dropdowns (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  options TEXT NOT NULL,
  created_by TEXT,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create catalog tables: %w", err)
	}
	return nil
}

func (s *SQLiteStore) UpsertClient(ctx context.Context, client domain.Client) error {
	const stmt = `
INSERT INTO clients (id, name, phone, email, company, status, priority, call_outcome, follow_up_required, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  name=excluded.name,
  phone=excluded.phone,
  email=excluded.email,
  company=excluded.company,
  status=excluded.status,
  priority=excluded.priority,
  call_outcome=excluded.call_outcome,
  follow_up_required=excluded.follow_up_required,
  updated_at=excluded.updated_at;
`
	_, err := s.db.ExecContext(ctx, stmt,
		client.ID,
		client.Name,
		client.Phone,
		client.Email,
		client.Company,
		client.Status,
		client.Priority,
		client.CallOutcome,
		client.FollowUpRequired,
		client.CreatedAt.Format(time.RFC3339Nano),
		client.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert client: %w", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteClient(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListClients(ctx context.Context) ([]domain.Client, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, name, phone, email, company, status, priority, call_outcome, follow_up_required, created_at, updated_at
FROM clients ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("query clients: %w", err)
	}
	defer rows.Close()

	out := []domain.Client{}
	for rows.Next() {
		var (
			c                  domain.Client
			phone, email       sql.NullString
			company, status    sql.NullString
			priority, outcome  sql.NullString
			createdAt, updated string
		)
		if err := rows.Scan(&c.ID, &c.Name, &phone, &email, &company, &status, &priority, &outcome, &c.FollowUpRequired, &createdAt, &updated); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		c.Phone, c.Email, c.Company = phone.String, email.String, company.String
		c.Status, c.Priority, c.CallOutcome = status.String, priority.String, outcome.String
		c.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		c.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) UpsertDropdown(ctx context.Context, dropdown domain.DropdownField) error {
	options := dropdown.Options
	if options == nil {
		options = []string{}
	}
	encoded, err := json.Marshal(options)
	if err != nil {
		return fmt.Errorf("encode dropdown options: %w", err)
	}
	const stmt = `
INSERT INTO dropdowns (id, name, options, created_by, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  name=excluded.name,
  options=excluded.options,
  updated_at=excluded.updated_at;
`
	_, err = s.db.ExecContext(ctx, stmt,
		dropdown.ID,
		dropdown.Name,
		string(encoded),
		dropdown.CreatedBy,
		dropdown.CreatedAt.Format(time.RFC3339Nano),
		dropdown.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert dropdown: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListDropdowns(ctx context.Context) ([]domain.DropdownField, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, name, options, created_by, created_at, updated_at
FROM dropdowns ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query dropdowns: %w", err)
	}
	defer rows.Close()

	out := []domain.DropdownField{}
	for rows.Next() {
		var (
			d                  domain.DropdownField
			options            string
			createdBy          sql.NullString
			createdAt, updated string
		)
		if err := rows.Scan(&d.ID, &d.Name, &options, &createdBy, &createdAt, &updated); err != nil {
			return nil, fmt.Errorf("scan dropdown: %w", err)
		}
		if err := json.Unmarshal([]byte(options), &d.Options); err != nil {
			return nil, fmt.Errorf("decode dropdown %s options: %w", d.ID, err)
		}
		d.CreatedBy = createdBy.String
		d.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		d.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dropdowns: %w", err)
	}
	return out, nil
}
