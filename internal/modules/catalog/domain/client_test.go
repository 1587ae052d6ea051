package domain_test

import (
	"errors"
	"testing"
	"time"

	"leadtrack/internal/modules/catalog/domain"
	apperrors "leadtrack/internal/platform/errors"
)

func TestStatusCategoriesFollowsLeadStatusField(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	dropdowns := domain.DefaultDropdowns(now)
	got := domain.StatusCategories(dropdowns)
	if len(got) != 7 || got[0] != "New Lead" || got[6] != "Installed" {
		t.Fatalf("unexpected categories: %v", got)
	}
	got[0] = "mutated"
	if dropdowns[0].Options[0] != "New Lead" {
		t.Fatalf("categories share memory with dropdown options")
	}
	if cats := domain.StatusCategories(dropdowns[1:]); cats != nil {
		t.Fatalf("expected no categories without lead status field, got %v", cats)
	}
}

func TestClientValidate(t *testing.T) {
	t.Parallel()
	if err := (domain.Client{ID: "c-1", Name: "Acme"}).Validate(); err != nil {
		t.Fatalf("valid client rejected: %v", err)
	}
	if err := (domain.Client{ID: "c-1", Name: " "}).Validate(); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("blank name must be invalid input, got %v", err)
	}
	if err := (domain.Client{Name: "Acme"}).Validate(); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("missing id must be invalid input, got %v", err)
	}
}

func TestHasOption(t *testing.T) {
	t.Parallel()
	d := domain.DropdownField{Options: []string{"New Lead", "Lost"}}
	if !d.HasOption("Lost") || d.HasOption("lost") {
		t.Fatalf("HasOption must be exact")
	}
}
