package domain_test

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"leadtrack/internal/modules/shift/domain"
)

func records(labels ...string) []domain.Record {
	out := make([]domain.Record, 0, len(labels))
	for _, l := range labels {
		out = append(out, domain.Record{StatusLabel: l})
	}
	return out
}

func TestSnapshotCountsInCategoryOrder(t *testing.T) {
	t.Parallel()
	got := domain.Snapshot(
		records("New Lead", "New Lead", "New Lead", "Lost", "unknown"),
		[]string{"New Lead", "Converted", "Lost"},
	)
	want := []domain.StatusSnapshot{
		{Status: "New Lead", Count: 3},
		{Status: "Converted", Count: 0},
		{Status: "Lost", Count: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshotEmptyCategories(t *testing.T) {
	t.Parallel()
	got := domain.Snapshot(records("New Lead"), nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil snapshot, got %#v", got)
	}
}

func TestSnapshotIsCaseSensitive(t *testing.T) {
	t.Parallel()
	got := domain.Snapshot(records("new lead", "New Lead"), []string{"New Lead"})
	if got[0].Count != 1 {
		t.Fatalf("expected exact match only, got %d", got[0].Count)
	}
}

func TestSnapshotDoesNotMutateInputs(t *testing.T) {
	t.Parallel()
	recs := records("A", "B")
	cats := []string{"B", "A"}
	_ = domain.Snapshot(recs, cats)
	if cats[0] != "B" || cats[1] != "A" || recs[0].StatusLabel != "A" {
		t.Fatalf("inputs mutated: %v %v", recs, cats)
	}
}

func TestSnapshotTotalsAndOrderProperties(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(7))
	pool := []string{"New Lead", "Hot Lead", "Converted", "Lost", "Installed", "Other"}
	for iter := 0; iter < 200; iter++ {
		recs := make([]domain.Record, rng.Intn(40))
		for i := range recs {
			recs[i].StatusLabel = pool[rng.Intn(len(pool))]
		}
		cats := make([]string, 0, len(pool))
		for _, p := range pool {
			if rng.Intn(2) == 0 {
				cats = append(cats, p)
			}
		}
		snap := domain.Snapshot(recs, cats)
		if len(snap) != len(cats) {
			t.Fatalf("length %d != categories %d", len(snap), len(cats))
		}
		for i := range cats {
			if snap[i].Status != cats[i] {
				t.Fatalf("order mismatch at %d: %s vs %s", i, snap[i].Status, cats[i])
			}
		}
		inCats := 0
		allowed := map[string]bool{}
		for _, c := range cats {
			allowed[c] = true
		}
		for _, r := range recs {
			if allowed[r.StatusLabel] {
				inCats++
			}
		}
		total := domain.Total(snap)
		if total > len(recs) || total != inCats {
			t.Fatalf("total %d, records %d, in categories %d", total, len(recs), inCats)
		}
	}
}
