package service

import (
	"fmt"
	"strings"

	"leadtrack/internal/modules/shift/domain"
	"leadtrack/internal/platform/clock"
	apperrors "leadtrack/internal/platform/errors"
	"leadtrack/internal/platform/id"
)

type SessionService struct {
	clock clock.Clock
	idGen id.Generator
}

func NewSessionService(clock clock.Clock, idGen id.Generator) *SessionService {
	return &SessionService{clock: clock, idGen: idGen}
}

// Begin builds a new active session around an entry snapshot.
func (s *SessionService) Begin(operatorName, loginTime string, entry []domain.StatusSnapshot) (domain.Session, error) {
	operatorName = strings.TrimSpace(operatorName)
	if operatorName == "" {
		return domain.Session{}, fmt.Errorf("%w: operator name is required", apperrors.ErrInvalidInput)
	}
	if err := domain.ValidateTimeOfDay(loginTime); err != nil {
		return domain.Session{}, err
	}
	now := s.clock.Now()
	session := domain.Session{
		ID:            s.idGen.New(),
		OperatorName:  operatorName,
		Date:          clock.Date(now),
		LoginTime:     loginTime,
		EntrySnapshot: entry,
		IsActive:      true,
		CreatedAt:     now,
	}
	if err := session.Validate(); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

// Finish returns the ended form of active without modifying it.
func (s *SessionService) Finish(active domain.Session, logoutTime string, exit []domain.StatusSnapshot) (domain.Session, error) {
	if err := domain.ValidateTimeOfDay(logoutTime); err != nil {
		return domain.Session{}, err
	}
	if !active.IsActive {
		return domain.Session{}, fmt.Errorf("%w: %s", apperrors.ErrSessionNotActive, active.ID)
	}
	return active.Close(logoutTime, exit), nil
}
