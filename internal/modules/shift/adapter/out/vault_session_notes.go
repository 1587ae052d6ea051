package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"leadtrack/internal/modules/shift/domain"
	shiftout "leadtrack/internal/modules/shift/port/out"
	"leadtrack/internal/platform/markdown"
	"leadtrack/internal/platform/slug"
)

// VaultSessionNotes writes one markdown note per completed session under
// <notes>/YYYY/MM/DD/.
type VaultSessionNotes struct {
	notesPath string
}

type noteMeta struct {
	SchemaVersion      int            `yaml:"schema_version"`
	ID                 string         `yaml:"id"`
	Operator           string         `yaml:"operator"`
	Date               string         `yaml:"date"`
	Login              string         `yaml:"login"`
	Logout             string         `yaml:"logout"`
	EstimatedCallCount int            `yaml:"estimated_call_count"`
	Entry              map[string]int `yaml:"entry"`
	Exit               map[string]int `yaml:"exit"`
	Conversions        map[string]int `yaml:"conversions"`
}

func NewVaultSessionNotes(notesPath string) shiftout.SessionExporter {
	return &VaultSessionNotes{notesPath: notesPath}
}

func (n *VaultSessionNotes) Export(_ context.Context, session domain.Session) (string, error) {
	if session.IsActive {
		return "", fmt.Errorf("session %s is still active", session.ID)
	}
	created := session.CreatedAt
	dir := filepath.Join(n.notesPath, created.Format("2006"), created.Format("01"), created.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create notes dir: %w", err)
	}
	name := fmt.Sprintf("%s-%s-%s.md", created.Format("150405"), slug.Make(session.OperatorName, "operator"), idSuffix(session.ID))
	path := filepath.Join(dir, name)

	meta := noteMeta{
		SchemaVersion:      domain.SchemaVersion,
		ID:                 session.ID,
		Operator:           session.OperatorName,
		Date:               session.Date,
		Login:              session.LoginTime,
		Logout:             session.LogoutTime,
		EstimatedCallCount: session.EstimatedCallCount,
		Entry:              counts(session.EntrySnapshot),
		Exit:               counts(session.ExitSnapshot),
		Conversions:        session.Conversions,
	}

	body := strings.Builder{}
	fmt.Fprintf(&body, "# Shift %s %s\n\n", session.Date, session.OperatorName)
	fmt.Fprintf(&body, "- Login: %s\n- Logout: %s\n- Estimated calls: %d\n\n", session.LoginTime, session.LogoutTime, session.EstimatedCallCount)
	body.WriteString("| Status | Entry | Exit | Change |\n|---|---:|---:|---:|\n")
	for _, row := range domain.Compare(session.EntrySnapshot, session.ExitSnapshot) {
		fmt.Fprintf(&body, "| %s | %d | %d | %+d |\n", row.Status, row.Entry, row.Exit, row.Delta)
	}

	rendered, err := markdown.RenderFrontmatter(meta, body.String())
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write session note: %w", err)
	}
	return path, nil
}

func counts(snapshot []domain.StatusSnapshot) map[string]int {
	out := make(map[string]int, len(snapshot))
	for _, s := range snapshot {
		out[s.Status] += s.Count
	}
	return out
}

// idSuffix keeps the random tail of a session id so two shifts started in
// the same second by the same operator get distinct notes.
func idSuffix(id string) string {
	if i := strings.LastIndexByte(id, '-'); i >= 0 && i < len(id)-1 {
		return slug.Make(id[i+1:], "session")
	}
	return slug.Make(id, "session")
}
