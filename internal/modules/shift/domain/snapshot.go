package domain

// Record is the slice of a client record the snapshot engine reads.
type Record struct {
	StatusLabel string
}

// StatusSnapshot is the number of records carrying one status label at a
// point in time.
type StatusSnapshot struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// Snapshot counts records per category. The result mirrors the category list
// position by position; categories without records report zero and records
// whose label is not a category are not counted anywhere.
func Snapshot(records []Record, categories []string) []StatusSnapshot {
	out := make([]StatusSnapshot, len(categories))
	if len(categories) == 0 {
		return out
	}
	counts := make(map[string]int, len(categories))
	for _, r := range records {
		counts[r.StatusLabel]++
	}
	for i, category := range categories {
		out[i] = StatusSnapshot{Status: category, Count: counts[category]}
	}
	return out
}

// Total sums the counts of a snapshot.
func Total(snapshot []StatusSnapshot) int {
	total := 0
	for _, s := range snapshot {
		total += s.Count
	}
	return total
}

func countOf(snapshot []StatusSnapshot, status string) (int, bool) {
	for _, s := range snapshot {
		if s.Status == status {
			return s.Count, true
		}
	}
	return 0, false
}

func cloneSnapshot(snapshot []StatusSnapshot) []StatusSnapshot {
	if snapshot == nil {
		return nil
	}
	out := make([]StatusSnapshot, len(snapshot))
	copy(out, snapshot)
	return out
}
