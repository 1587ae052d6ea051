package in

import (
	"context"

	"leadtrack/internal/modules/shift/dto"
	shiftin "leadtrack/internal/modules/shift/port/in"
)

type CLIHandler struct {
	usecase shiftin.Usecase
}

func NewCLIHandler(usecase shiftin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, operatorName, loginTime string) (dto.SessionOutput, error) {
	return h.usecase.Start(ctx, dto.StartInput{OperatorName: operatorName, LoginTime: loginTime})
}

func (h CLIHandler) Preview(ctx context.Context, logoutTime string) (dto.SessionOutput, error) {
	return h.usecase.PreviewEnd(ctx, dto.PreviewInput{LogoutTime: logoutTime})
}

func (h CLIHandler) End(ctx context.Context, sessionID, logoutTime string) (dto.SessionOutput, error) {
	return h.usecase.End(ctx, dto.EndInput{SessionID: sessionID, LogoutTime: logoutTime})
}

func (h CLIHandler) Delete(ctx context.Context, sessionID string) error {
	return h.usecase.Delete(ctx, dto.DeleteInput{SessionID: sessionID})
}

func (h CLIHandler) Status(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) History(ctx context.Context) ([]dto.SessionOutput, error) {
	return h.usecase.History(ctx)
}

func (h CLIHandler) GetActive(ctx context.Context) (dto.SessionOutput, error) {
	return h.usecase.GetActive(ctx)
}

func (h CLIHandler) CurrentSnapshot(ctx context.Context) ([]dto.SnapshotEntry, error) {
	return h.usecase.CurrentSnapshot(ctx)
}
