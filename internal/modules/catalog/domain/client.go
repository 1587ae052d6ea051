package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "leadtrack/internal/platform/errors"
)

const (
	LeadStatusField  = "Lead Status"
	CallOutcomeField = "Call Outcome"
	SystemAuthor     = "system"
)

type Client struct {
	ID               string
	Name             string
	Phone            string
	Email            string
	Company          string
	Status           string
	Priority         string
	CallOutcome      string
	FollowUpRequired bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (c Client) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("%w: client id is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: client name is required", apperrors.ErrInvalidInput)
	}
	return nil
}

// DropdownField is a user-defined list of options. The options of the
// "Lead Status" field are the status categories, in the order stored here.
type DropdownField struct {
	ID        string
	Name      string
	Options   []string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (d DropdownField) HasOption(option string) bool {
	for _, o := range d.Options {
		if o == option {
			return true
		}
	}
	return false
}

// DefaultDropdowns are seeded into an empty workspace.
func DefaultDropdowns(now time.Time) []DropdownField {
	return []DropdownField{
		{
			ID:        "default-lead-status",
			Name:      LeadStatusField,
			Options:   []string{"New Lead", "Hot Lead", "Warm Lead", "Cold Lead", "Converted", "Lost", "Installed"},
			CreatedBy: SystemAuthor,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:        "default-call-outcome",
			Name:      CallOutcomeField,
			Options:   []string{"Connected", "No Answer", "Busy", "Wrong Number", "Voicemail", "Call Back Later", "Not Interested"},
			CreatedBy: SystemAuthor,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// StatusCategories returns the lead status options, or nil when no lead
// status field is configured.
func StatusCategories(dropdowns []DropdownField) []string {
	for _, d := range dropdowns {
		if d.Name == LeadStatusField {
			return append([]string(nil), d.Options...)
		}
	}
	return nil
}
