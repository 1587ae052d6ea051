package out

import (
	"context"

	"leadtrack/internal/modules/shift/domain"
)

// RecordCatalog is a synchronous view over live client records and the
// user-defined status categories.
type RecordCatalog interface {
	ListRecords() []domain.Record
	ListStatusCategories() []string
}

// SessionStore persists sessions. Upsert and Delete are idempotent.
type SessionStore interface {
	Upsert(ctx context.Context, session domain.Session) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Session, error)
}

// SessionExporter renders a completed session somewhere a human reads it.
type SessionExporter interface {
	Export(ctx context.Context, session domain.Session) (string, error)
}

// ChangeNotifier calls onChange whenever the session store is modified from
// outside this process. Watch blocks until ctx is done.
type ChangeNotifier interface {
	Watch(ctx context.Context, onChange func()) error
}
