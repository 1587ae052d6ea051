package service

import (
	"context"
	"fmt"
	"strings"

	"leadtrack/internal/modules/catalog/domain"
	catalogout "leadtrack/internal/modules/catalog/port/out"
	"leadtrack/internal/platform/clock"
	apperrors "leadtrack/internal/platform/errors"
	"leadtrack/internal/platform/id"
)

type CatalogService struct {
	clock     clock.Clock
	idGen     id.Generator
	clients   catalogout.ClientStore
	dropdowns catalogout.DropdownStore
}

func NewCatalogService(clock clock.Clock, idGen id.Generator, clients catalogout.ClientStore, dropdowns catalogout.DropdownStore) *CatalogService {
	return &CatalogService{clock: clock, idGen: idGen, clients: clients, dropdowns: dropdowns}
}

func (s *CatalogService) AddClient(ctx context.Context, client domain.Client) (domain.Client, error) {
	client.Name = strings.TrimSpace(client.Name)
	client.Status = strings.TrimSpace(client.Status)
	if client.Status != "" {
		if err := s.requireCategory(ctx, client.Status); err != nil {
			return domain.Client{}, err
		}
	}
	now := s.clock.Now()
	client.ID = s.idGen.New()
	client.CreatedAt = now
	client.UpdatedAt = now
	if err := client.Validate(); err != nil {
		return domain.Client{}, err
	}
	if err := s.clients.UpsertClient(ctx, client); err != nil {
		return domain.Client{}, err
	}
	return client, nil
}

func (s *CatalogService) UpdateStatus(ctx context.Context, clientID, status string) (domain.Client, error) {
	client, err := s.findClient(ctx, clientID)
	if err != nil {
		return domain.Client{}, err
	}
	status = strings.TrimSpace(status)
	if err := s.requireCategory(ctx, status); err != nil {
		return domain.Client{}, err
	}
	client.Status = status
	client.UpdatedAt = s.clock.Now()
	if err := s.clients.UpsertClient(ctx, client); err != nil {
		return domain.Client{}, err
	}
	return client, nil
}

func (s *CatalogService) DeleteClient(ctx context.Context, clientID string) error {
	if _, err := s.findClient(ctx, clientID); err != nil {
		return err
	}
	return s.clients.DeleteClient(ctx, clientID)
}

func (s *CatalogService) ListClients(ctx context.Context) ([]domain.Client, error) {
	return s.clients.ListClients(ctx)
}

func (s *CatalogService) ListDropdowns(ctx context.Context) ([]domain.DropdownField, error) {
	return s.dropdowns.ListDropdowns(ctx)
}

// AddStatusOption appends a status category, creating the lead status field
// on first use.
func (s *CatalogService) AddStatusOption(ctx context.Context, option string) (domain.DropdownField, error) {
	option = strings.TrimSpace(option)
	if option == "" {
		return domain.DropdownField{}, fmt.Errorf("%w: status option is required", apperrors.ErrInvalidInput)
	}
	field, found, err := s.leadStatusField(ctx)
	if err != nil {
		return domain.DropdownField{}, err
	}
	now := s.clock.Now()
	if !found {
		field = domain.DropdownField{ID: s.idGen.New(), Name: domain.LeadStatusField, CreatedBy: "user", CreatedAt: now}
	}
	if field.HasOption(option) {
		return domain.DropdownField{}, fmt.Errorf("%w: status %q already exists", apperrors.ErrInvalidInput, option)
	}
	field.Options = append(append([]string(nil), field.Options...), option)
	field.UpdatedAt = now
	if err := s.dropdowns.UpsertDropdown(ctx, field); err != nil {
		return domain.DropdownField{}, err
	}
	return field, nil
}

// RemoveStatusOption drops a category. Clients still carrying it keep their
// status and simply stop being counted.
func (s *CatalogService) RemoveStatusOption(ctx context.Context, option string) (domain.DropdownField, error) {
	option = strings.TrimSpace(option)
	field, found, err := s.leadStatusField(ctx)
	if err != nil {
		return domain.DropdownField{}, err
	}
	if !found || !field.HasOption(option) {
		return domain.DropdownField{}, fmt.Errorf("%w: status %q", apperrors.ErrNotFound, option)
	}
	kept := make([]string, 0, len(field.Options)-1)
	for _, o := range field.Options {
		if o != option {
			kept = append(kept, o)
		}
	}
	field.Options = kept
	field.UpdatedAt = s.clock.Now()
	if err := s.dropdowns.UpsertDropdown(ctx, field); err != nil {
		return domain.DropdownField{}, err
	}
	return field, nil
}

// SeedDefaults installs the default dropdowns into a workspace that has none.
func (s *CatalogService) SeedDefaults(ctx context.Context) (bool, error) {
	existing, err := s.dropdowns.ListDropdowns(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}
	for _, d := range domain.DefaultDropdowns(s.clock.Now()) {
		if err := s.dropdowns.UpsertDropdown(ctx, d); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (s *CatalogService) findClient(ctx context.Context, clientID string) (domain.Client, error) {
	clients, err := s.clients.ListClients(ctx)
	if err != nil {
		return domain.Client{}, err
	}
	for _, c := range clients {
		if c.ID == clientID {
			return c, nil
		}
	}
	return domain.Client{}, fmt.Errorf("%w: client %s", apperrors.ErrNotFound, clientID)
}

func (s *CatalogService) leadStatusField(ctx context.Context) (domain.DropdownField, bool, error) {
	dropdowns, err := s.dropdowns.ListDropdowns(ctx)
	if err != nil {
		return domain.DropdownField{}, false, err
	}
	for _, d := range dropdowns {
		if d.Name == domain.LeadStatusField {
			return d, true, nil
		}
	}
	return domain.DropdownField{}, false, nil
}

func (s *CatalogService) requireCategory(ctx context.Context, status string) error {
	field, _, err := s.leadStatusField(ctx)
	if err != nil {
		return err
	}
	if !field.HasOption(status) {
		return fmt.Errorf("%w: unknown status %q", apperrors.ErrInvalidInput, status)
	}
	return nil
}
