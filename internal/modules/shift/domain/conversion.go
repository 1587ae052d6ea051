package domain

// ComputeConversions derives the per-status delta between an entry and an
// exit snapshot. Every label present in either snapshot gets a key; labels
// that only exist at exit count in full, as if moved in from nothing.
func ComputeConversions(entry, exit []StatusSnapshot) map[string]int {
	out := make(map[string]int, len(entry)+len(exit))
	for _, e := range entry {
		exitCount, _ := countOf(exit, e.Status)
		out[e.Status] = exitCount - e.Count
	}
	for _, x := range exit {
		if _, ok := countOf(entry, x.Status); ok {
			continue
		}
		out[x.Status] = x.Count
	}
	return out
}

// EstimateCalls approximates the number of status-changing calls behind a
// set of conversions: ceil(sum(|delta|) / 2).
//
// One call usually moves a lead out of one bucket and into another, which
// shows up as a -1 and a +1. The estimate is a heuristic and drifts when a
// call creates or deletes a lead, when one edit touches several statuses, or
// when more than one operator works the catalog during the shift.
func EstimateCalls(conversions map[string]int) int {
	sum := 0
	for _, delta := range conversions {
		if delta < 0 {
			delta = -delta
		}
		sum += delta
	}
	return (sum + 1) / 2
}

// StatusChange is one display row of an entry/exit comparison.
type StatusChange struct {
	Status  string
	Entry   int
	Exit    int
	Delta   int
	InEntry bool
	InExit  bool
}

// Compare lays out entry labels in entry order followed by exit-only labels
// in exit order.
func Compare(entry, exit []StatusSnapshot) []StatusChange {
	conversions := ComputeConversions(entry, exit)
	rows := make([]StatusChange, 0, len(conversions))
	seen := make(map[string]bool, len(conversions))
	for _, e := range entry {
		if seen[e.Status] {
			continue
		}
		seen[e.Status] = true
		exitCount, inExit := countOf(exit, e.Status)
		rows = append(rows, StatusChange{
			Status:  e.Status,
			Entry:   e.Count,
			Exit:    exitCount,
			Delta:   conversions[e.Status],
			InEntry: true,
			InExit:  inExit,
		})
	}
	for _, x := range exit {
		if seen[x.Status] {
			continue
		}
		seen[x.Status] = true
		rows = append(rows, StatusChange{
			Status: x.Status,
			Exit:   x.Count,
			Delta:  conversions[x.Status],
			InExit: true,
		})
	}
	return rows
}
