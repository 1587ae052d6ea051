package in

import (
	"context"

	"leadtrack/internal/modules/shift/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.SessionOutput, error)
	PreviewEnd(ctx context.Context, input dto.PreviewInput) (dto.SessionOutput, error)
	End(ctx context.Context, input dto.EndInput) (dto.SessionOutput, error)
	Delete(ctx context.Context, input dto.DeleteInput) error
	CurrentSnapshot(ctx context.Context) ([]dto.SnapshotEntry, error)
	Status(ctx context.Context) (dto.StatusOutput, error)
	History(ctx context.Context) ([]dto.SessionOutput, error)
	GetActive(ctx context.Context) (dto.SessionOutput, error)
}
