package out

import (
	"context"

	"leadtrack/internal/modules/catalog/domain"
)

type ClientStore interface {
	UpsertClient(ctx context.Context, client domain.Client) error
	DeleteClient(ctx context.Context, id string) error
	ListClients(ctx context.Context) ([]domain.Client, error)
}

type DropdownStore interface {
	UpsertDropdown(ctx context.Context, dropdown domain.DropdownField) error
	ListDropdowns(ctx context.Context) ([]domain.DropdownField, error)
}

// ChangeNotifier calls onChange whenever the backing store is modified from
// outside this process. Watch blocks until ctx is done.
type ChangeNotifier interface {
	Watch(ctx context.Context, onChange func()) error
}
