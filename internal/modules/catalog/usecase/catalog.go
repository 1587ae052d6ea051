package usecase

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"leadtrack/internal/modules/catalog/domain"
	"leadtrack/internal/modules/catalog/dto"
	catalogin "leadtrack/internal/modules/catalog/port/in"
	catalogout "leadtrack/internal/modules/catalog/port/out"
	"leadtrack/internal/modules/catalog/service"
)

// Interactor serves catalog commands and keeps a live in-memory view of
// records and status categories. The view is rebuilt after every local
// mutation and whenever the notifier reports an outside write.
type Interactor struct {
	svc      *service.CatalogService
	notifier catalogout.ChangeNotifier
	log      zerolog.Logger

	mu         sync.RWMutex
	records    []dto.RecordView
	categories []string
}

func NewInteractor(svc *service.CatalogService, notifier catalogout.ChangeNotifier, log zerolog.Logger) catalogin.Usecase {
	return &Interactor{svc: svc, notifier: notifier, log: log}
}

func (i *Interactor) AddClient(ctx context.Context, input dto.AddClientInput) (dto.ClientOutput, error) {
	client, err := i.svc.AddClient(ctx, domain.Client{
		Name:             input.Name,
		Phone:            input.Phone,
		Email:            input.Email,
		Company:          input.Company,
		Status:           input.Status,
		Priority:         input.Priority,
		CallOutcome:      input.CallOutcome,
		FollowUpRequired: input.FollowUpRequired,
	})
	if err != nil {
		return dto.ClientOutput{}, err
	}
	if err := i.Refresh(ctx); err != nil {
		return dto.ClientOutput{}, err
	}
	return toClientOutput(client), nil
}

func (i *Interactor) UpdateStatus(ctx context.Context, input dto.UpdateStatusInput) (dto.ClientOutput, error) {
	client, err := i.svc.UpdateStatus(ctx, input.ClientID, input.Status)
	if err != nil {
		return dto.ClientOutput{}, err
	}
	if err := i.Refresh(ctx); err != nil {
		return dto.ClientOutput{}, err
	}
	return toClientOutput(client), nil
}

func (i *Interactor) DeleteClient(ctx context.Context, clientID string) error {
	if err := i.svc.DeleteClient(ctx, clientID); err != nil {
		return err
	}
	return i.Refresh(ctx)
}

func (i *Interactor) ListClients(ctx context.Context) ([]dto.ClientOutput, error) {
	clients, err := i.svc.ListClients(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientOutput, 0, len(clients))
	for _, c := range clients {
		out = append(out, toClientOutput(c))
	}
	return out, nil
}

func (i *Interactor) ListDropdowns(ctx context.Context) ([]dto.DropdownOutput, error) {
	dropdowns, err := i.svc.ListDropdowns(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DropdownOutput, 0, len(dropdowns))
	for _, d := range dropdowns {
		out = append(out, toDropdownOutput(d))
	}
	return out, nil
}

func (i *Interactor) AddStatusOption(ctx context.Context, input dto.StatusOptionInput) (dto.DropdownOutput, error) {
	field, err := i.svc.AddStatusOption(ctx, input.Option)
	if err != nil {
		return dto.DropdownOutput{}, err
	}
	if err := i.Refresh(ctx); err != nil {
		return dto.DropdownOutput{}, err
	}
	return toDropdownOutput(field), nil
}

func (i *Interactor) RemoveStatusOption(ctx context.Context, input dto.StatusOptionInput) (dto.DropdownOutput, error) {
	field, err := i.svc.RemoveStatusOption(ctx, input.Option)
	if err != nil {
		return dto.DropdownOutput{}, err
	}
	if err := i.Refresh(ctx); err != nil {
		return dto.DropdownOutput{}, err
	}
	return toDropdownOutput(field), nil
}

func (i *Interactor) SeedDefaults(ctx context.Context) (bool, error) {
	seeded, err := i.svc.SeedDefaults(ctx)
	if err != nil {
		return false, err
	}
	if seeded {
		i.log.Info().Msg("default dropdowns seeded")
	}
	return seeded, i.Refresh(ctx)
}

// Refresh reloads clients and dropdowns concurrently and swaps the view in
// one step, so readers never see records from one load and categories from
// another.
func (i *Interactor) Refresh(ctx context.Context) error {
	var (
		clients   []domain.Client
		dropdowns []domain.DropdownField
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		clients, err = i.svc.ListClients(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		dropdowns, err = i.svc.ListDropdowns(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	records := make([]dto.RecordView, 0, len(clients))
	for _, c := range clients {
		records = append(records, dto.RecordView{ID: c.ID, Status: c.Status})
	}
	categories := domain.StatusCategories(dropdowns)

	i.mu.Lock()
	i.records = records
	i.categories = categories
	i.mu.Unlock()
	return nil
}

// Watch refreshes the view on every outside change until ctx is done.
func (i *Interactor) Watch(ctx context.Context) error {
	if i.notifier == nil {
		<-ctx.Done()
		return nil
	}
	return i.notifier.Watch(ctx, func() {
		if err := i.Refresh(ctx); err != nil {
			i.log.Warn().Err(err).Msg("catalog refresh failed")
			return
		}
		i.log.Debug().Msg("catalog view refreshed")
	})
}

func (i *Interactor) Records() []dto.RecordView {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return append([]dto.RecordView(nil), i.records...)
}

func (i *Interactor) StatusCategories() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return append([]string(nil), i.categories...)
}

func toClientOutput(c domain.Client) dto.ClientOutput {
	return dto.ClientOutput{
		ID:               c.ID,
		Name:             c.Name,
		Phone:            c.Phone,
		Email:            c.Email,
		Company:          c.Company,
		Status:           c.Status,
		Priority:         c.Priority,
		CallOutcome:      c.CallOutcome,
		FollowUpRequired: c.FollowUpRequired,
		CreatedAt:        c.CreatedAt,
	}
}

func toDropdownOutput(d domain.DropdownField) dto.DropdownOutput {
	return dto.DropdownOutput{ID: d.ID, Name: d.Name, Options: append([]string(nil), d.Options...)}
}
