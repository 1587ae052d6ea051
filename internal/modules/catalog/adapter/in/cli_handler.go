package in

import (
	"context"

	"leadtrack/internal/modules/catalog/dto"
	catalogin "leadtrack/internal/modules/catalog/port/in"
)

type CLIHandler struct {
	usecase catalogin.Usecase
}

func NewCLIHandler(usecase catalogin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) AddClient(ctx context.Context, input dto.AddClientInput) (dto.ClientOutput, error) {
	return h.usecase.AddClient(ctx, input)
}

func (h CLIHandler) UpdateStatus(ctx context.Context, clientID, status string) (dto.ClientOutput, error) {
	return h.usecase.UpdateStatus(ctx, dto.UpdateStatusInput{ClientID: clientID, Status: status})
}

func (h CLIHandler) DeleteClient(ctx context.Context, clientID string) error {
	return h.usecase.DeleteClient(ctx, clientID)
}

func (h CLIHandler) ListClients(ctx context.Context) ([]dto.ClientOutput, error) {
	return h.usecase.ListClients(ctx)
}

func (h CLIHandler) ListStatuses(ctx context.Context) ([]string, error) {
	if err := h.usecase.Refresh(ctx); err != nil {
		return nil, err
	}
	return h.usecase.StatusCategories(), nil
}

func (h CLIHandler) AddStatus(ctx context.Context, option string) (dto.DropdownOutput, error) {
	return h.usecase.AddStatusOption(ctx, dto.StatusOptionInput{Option: option})
}

func (h CLIHandler) RemoveStatus(ctx context.Context, option string) (dto.DropdownOutput, error) {
	return h.usecase.RemoveStatusOption(ctx, dto.StatusOptionInput{Option: option})
}

func (h CLIHandler) Seed(ctx context.Context) (bool, error) {
	return h.usecase.SeedDefaults(ctx)
}
