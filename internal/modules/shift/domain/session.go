package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	apperrors "leadtrack/internal/platform/errors"
)

const SchemaVersion = 1

var timeOfDay = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Session is one tracked work period of an operator. LogoutTime, ExitSnapshot,
// Conversions and EstimatedCallCount are only meaningful once IsActive is false.
type Session struct {
	ID                 string
	OperatorName       string
	Date               string
	LoginTime          string
	LogoutTime         string
	EntrySnapshot      []StatusSnapshot
	ExitSnapshot       []StatusSnapshot
	Conversions        map[string]int
	EstimatedCallCount int
	IsActive           bool
	CreatedAt          time.Time
}

// Clone returns a deep copy so a caller can keep a prior value around while
// the original is mutated.
func (s Session) Clone() Session {
	out := s
	out.EntrySnapshot = cloneSnapshot(s.EntrySnapshot)
	out.ExitSnapshot = cloneSnapshot(s.ExitSnapshot)
	if s.Conversions != nil {
		out.Conversions = make(map[string]int, len(s.Conversions))
		for k, v := range s.Conversions {
			out.Conversions[k] = v
		}
	}
	return out
}

// Close returns the ended form of an active session. The receiver is left
// untouched.
func (s Session) Close(logoutTime string, exit []StatusSnapshot) Session {
	out := s.Clone()
	out.LogoutTime = logoutTime
	out.ExitSnapshot = cloneSnapshot(exit)
	out.Conversions = ComputeConversions(out.EntrySnapshot, out.ExitSnapshot)
	out.EstimatedCallCount = EstimateCalls(out.Conversions)
	out.IsActive = false
	return out
}

func (s Session) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("%w: session id is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(s.OperatorName) == "" {
		return fmt.Errorf("%w: operator name is required", apperrors.ErrInvalidInput)
	}
	if err := ValidateTimeOfDay(s.LoginTime); err != nil {
		return err
	}
	if !s.IsActive {
		if err := ValidateTimeOfDay(s.LogoutTime); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTimeOfDay accepts 24-hour "HH:MM" strings.
func ValidateTimeOfDay(value string) error {
	if !timeOfDay.MatchString(value) {
		return fmt.Errorf("%w: time %q must be HH:MM", apperrors.ErrInvalidInput, value)
	}
	return nil
}
