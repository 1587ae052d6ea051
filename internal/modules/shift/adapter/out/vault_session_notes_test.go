package out

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"leadtrack/internal/modules/shift/domain"
)

func readNote(t *testing.T, raw []byte) (noteMeta, string) {
	t.Helper()
	front, body, ok := strings.Cut(strings.TrimPrefix(string(raw), "---\n"), "\n---\n")
	require.True(t, ok, "note has no frontmatter")
	var meta noteMeta
	require.NoError(t, yaml.Unmarshal([]byte(front), &meta))
	return meta, body
}

func TestVaultSessionNotesExport(t *testing.T) {
	root := t.TempDir()
	notes := NewVaultSessionNotes(filepath.Join(root, "shifts"))

	session := domain.Session{
		ID:            "1-a",
		OperatorName:  "Ada Lovelace",
		Date:          "2026-03-02",
		LoginTime:     "09:00",
		EntrySnapshot: []domain.StatusSnapshot{{Status: "New Lead", Count: 10}, {Status: "Converted", Count: 2}},
		IsActive:      true,
		CreatedAt:     time.Date(2026, 3, 2, 9, 0, 5, 0, time.Local),
	}
	_, err := notes.Export(context.Background(), session)
	require.Error(t, err)

	ended := session.Close("17:00", []domain.StatusSnapshot{{Status: "New Lead", Count: 7}, {Status: "Converted", Count: 5}})
	path, err := notes.Export(context.Background(), ended)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "shifts", "2026", "03", "02", "090005-ada-lovelace-a.md"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	meta, body := readNote(t, raw)
	assert.Equal(t, "1-a", meta.ID)
	assert.Equal(t, 3, meta.EstimatedCallCount)
	assert.Equal(t, "17:00", meta.Logout)
	assert.Equal(t, map[string]int{"New Lead": -3, "Converted": 3}, meta.Conversions)
	assert.Contains(t, body, "| New Lead | 10 | 7 | -3 |")
	assert.Contains(t, body, "| Converted | 2 | 5 | +3 |")
}

func TestVaultSessionNotesSameSecondSameOperator(t *testing.T) {
	notes := NewVaultSessionNotes(t.TempDir())
	created := time.Date(2026, 3, 2, 9, 0, 5, 0, time.Local)
	exit := []domain.StatusSnapshot{{Status: "New Lead", Count: 1}}

	first := domain.Session{ID: "1772442005000-0a1b2c3d", OperatorName: "Ada", Date: "2026-03-02", LoginTime: "09:00", IsActive: true, CreatedAt: created}
	second := first.Clone()
	second.ID = "1772442005000-9f8e7d6c"

	firstPath, err := notes.Export(context.Background(), first.Close("10:00", exit))
	require.NoError(t, err)
	secondPath, err := notes.Export(context.Background(), second.Close("11:00", exit))
	require.NoError(t, err)
	assert.NotEqual(t, firstPath, secondPath)
	assert.True(t, strings.HasSuffix(firstPath, "090005-ada-0a1b2c3d.md"))

	raw, err := os.ReadFile(firstPath)
	require.NoError(t, err)
	meta, _ := readNote(t, raw)
	assert.Equal(t, "10:00", meta.Logout)
}
