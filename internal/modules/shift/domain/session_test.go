package domain_test

import (
	"errors"
	"testing"
	"time"

	"leadtrack/internal/modules/shift/domain"
	apperrors "leadtrack/internal/platform/errors"
)

func activeSession() domain.Session {
	return domain.Session{
		ID:            "1767225600000-abcd1234",
		OperatorName:  "Ann",
		Date:          "2026-01-01",
		LoginTime:     "09:00",
		EntrySnapshot: []domain.StatusSnapshot{{Status: "New Lead", Count: 3}, {Status: "Converted", Count: 0}},
		IsActive:      true,
		CreatedAt:     time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestCloseLeavesReceiverUntouched(t *testing.T) {
	t.Parallel()
	active := activeSession()
	exit := []domain.StatusSnapshot{{Status: "New Lead", Count: 1}, {Status: "Converted", Count: 2}}

	ended := active.Close("17:30", exit)
	if ended.IsActive || ended.LogoutTime != "17:30" || ended.EstimatedCallCount != 2 {
		t.Fatalf("unexpected ended session: %+v", ended)
	}
	if !active.IsActive || active.LogoutTime != "" || active.ExitSnapshot != nil || active.Conversions != nil {
		t.Fatalf("receiver mutated: %+v", active)
	}

	exit[0].Count = 99
	ended.EntrySnapshot[0].Count = 42
	if ended.ExitSnapshot[0].Count != 1 {
		t.Fatalf("exit snapshot shares caller memory")
	}
	if active.EntrySnapshot[0].Count != 3 {
		t.Fatalf("entry snapshot shared between active and ended values")
	}
}

func TestCloneIsDeep(t *testing.T) {
	t.Parallel()
	ended := activeSession().Close("10:00", []domain.StatusSnapshot{{Status: "New Lead", Count: 2}})
	clone := ended.Clone()
	clone.Conversions["New Lead"] = 100
	clone.ExitSnapshot[0].Count = 100
	if ended.Conversions["New Lead"] != -1 || ended.ExitSnapshot[0].Count != 2 {
		t.Fatalf("clone shares memory with original: %+v", ended)
	}
}

func TestValidateTimeOfDay(t *testing.T) {
	t.Parallel()
	for _, ok := range []string{"00:00", "09:05", "23:59", "12:30"} {
		if err := domain.ValidateTimeOfDay(ok); err != nil {
			t.Fatalf("%q should be valid: %v", ok, err)
		}
	}
	for _, bad := range []string{"", "9:00", "24:00", "12:60", "12-30", "noon", "12:30:00"} {
		if err := domain.ValidateTimeOfDay(bad); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("%q should be invalid input, got %v", bad, err)
		}
	}
}

func TestSessionValidate(t *testing.T) {
	t.Parallel()
	if err := activeSession().Validate(); err != nil {
		t.Fatalf("active session should validate: %v", err)
	}
	s := activeSession()
	s.OperatorName = "  "
	if err := s.Validate(); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("blank operator must fail, got %v", err)
	}
	ended := activeSession()
	ended.IsActive = false
	if err := ended.Validate(); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("ended session without logout time must fail, got %v", err)
	}
}
