package in

import (
	"context"

	"leadtrack/internal/modules/catalog/dto"
)

type Usecase interface {
	AddClient(ctx context.Context, input dto.AddClientInput) (dto.ClientOutput, error)
	UpdateStatus(ctx context.Context, input dto.UpdateStatusInput) (dto.ClientOutput, error)
	DeleteClient(ctx context.Context, clientID string) error
	ListClients(ctx context.Context) ([]dto.ClientOutput, error)
	ListDropdowns(ctx context.Context) ([]dto.DropdownOutput, error)
	AddStatusOption(ctx context.Context, input dto.StatusOptionInput) (dto.DropdownOutput, error)
	RemoveStatusOption(ctx context.Context, input dto.StatusOptionInput) (dto.DropdownOutput, error)
	SeedDefaults(ctx context.Context) (bool, error)
	Refresh(ctx context.Context) error
	Watch(ctx context.Context) error

	// Records and StatusCategories read the live in-memory view and never
	// touch the store.
	Records() []dto.RecordView
	StatusCategories() []string
}
