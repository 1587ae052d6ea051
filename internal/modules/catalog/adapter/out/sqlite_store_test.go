package out

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadtrack/internal/modules/catalog/domain"
)

func TestSQLiteStoreClients(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), ".leadtrack", "leadtrack.db"))
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	require.NoError(t, store.UpsertClient(ctx, domain.Client{ID: "a", Name: "Ada", Status: "Hot Lead", FollowUpRequired: true, CreatedAt: base, UpdatedAt: base}))
	require.NoError(t, store.UpsertClient(ctx, domain.Client{ID: "b", Name: "Bob", CreatedAt: base.Add(time.Hour), UpdatedAt: base.Add(time.Hour)}))

	clients, err := store.ListClients(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 2)
	assert.Equal(t, "b", clients[0].ID)
	assert.Equal(t, "Hot Lead", clients[1].Status)
	assert.True(t, clients[1].FollowUpRequired)
	assert.True(t, base.Equal(clients[1].CreatedAt))

	updated := clients[1]
	updated.Status = "Converted"
	require.NoError(t, store.UpsertClient(ctx, updated))
	require.NoError(t, store.DeleteClient(ctx, "b"))

	clients, err = store.ListClients(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Converted", clients[0].Status)
}

func TestSQLiteStoreDropdowns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "leadtrack.db")
	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	ctx := context.Background()

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	for _, d := range domain.DefaultDropdowns(now) {
		require.NoError(t, store.UpsertDropdown(ctx, d))
	}
	require.NoError(t, store.UpsertDropdown(ctx, domain.DropdownField{ID: "empty", Name: "Priority", CreatedAt: now.Add(time.Minute), UpdatedAt: now}))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer reopened.Close()
	dropdowns, err := reopened.ListDropdowns(ctx)
	require.NoError(t, err)
	require.Len(t, dropdowns, 3)
	assert.Equal(t, domain.DefaultDropdowns(now)[0].Options, domain.StatusCategories(dropdowns))
	assert.Empty(t, dropdowns[2].Options)
	assert.NotNil(t, dropdowns[2].Options)
}
