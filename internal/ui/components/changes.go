package components

import (
	"fmt"
	"strings"

	shiftdto "leadtrack/internal/modules/shift/dto"
	"leadtrack/internal/ui/theme"
)

// ChangeTable renders entry/exit counts per status with a signed delta
// column. left and right label the two count columns.
func ChangeTable(rows []shiftdto.ChangeOutput, left, right string) string {
	if len(rows) == 0 {
		return theme.Muted.Render("no status categories defined")
	}
	w := len("Status")
	for _, r := range rows {
		if n := len(statusLabel(r)); n > w {
			w = n
		}
	}

	var sb strings.Builder
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("%-*s  %6s  %6s  %6s", w, "Status", left, right, "Change")) + "\n")
	for _, r := range rows {
		line := fmt.Sprintf("%-*s  %6d  %6d  ", w, statusLabel(r), r.Entry, r.Exit)
		delta := fmt.Sprintf("%6s", formatDelta(r.Delta))
		switch {
		case r.Delta > 0:
			delta = theme.Gain.Render(delta)
		case r.Delta < 0:
			delta = theme.Loss.Render(delta)
		default:
			delta = theme.Muted.Render(delta)
		}
		sb.WriteString(line + delta + "\n")
	}
	return sb.String()
}

func statusLabel(r shiftdto.ChangeOutput) string {
	switch {
	case !r.InEntry:
		return r.Status + " (new)"
	case !r.InExit:
		return r.Status + " (removed)"
	}
	return r.Status
}

func formatDelta(d int) string {
	if d == 0 {
		return "0"
	}
	return fmt.Sprintf("%+d", d)
}
