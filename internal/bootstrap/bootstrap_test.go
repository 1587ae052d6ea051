package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadtrack/internal/modules/catalog/dto"
	shiftdto "leadtrack/internal/modules/shift/dto"
	"leadtrack/internal/platform/config"
	apperrors "leadtrack/internal/platform/errors"
)

func TestAppShiftRoundTrip(t *testing.T) {
	workspace := t.TempDir()
	cfg, err := config.New(workspace)
	require.NoError(t, err)
	ctx := context.Background()

	app, err := New(ctx, cfg, zerolog.Nop())
	require.NoError(t, err)

	statuses, err := app.CatalogCLI.ListStatuses(ctx)
	require.NoError(t, err)
	require.Contains(t, statuses, "Hot Lead")

	client, err := app.CatalogCLI.AddClient(ctx, dto.AddClientInput{Name: "Ada", Status: "Hot Lead"})
	require.NoError(t, err)

	started, err := app.ShiftCLI.Start(ctx, "Ada", "09:00")
	require.NoError(t, err)

	_, err = app.CatalogCLI.UpdateStatus(ctx, client.ID, "Converted")
	require.NoError(t, err)

	ended, err := app.ShiftCLI.End(ctx, "", "17:00")
	require.NoError(t, err)
	assert.Equal(t, started.ID, ended.ID)
	assert.Equal(t, -1, ended.Conversions["Hot Lead"])
	assert.Equal(t, 1, ended.Conversions["Converted"])
	assert.Equal(t, 1, ended.EstimatedCallCount)
	assert.NotEmpty(t, ended.NotePath)
	require.NoError(t, app.Close())

	reopened, err := New(ctx, cfg, zerolog.Nop())
	require.NoError(t, err)
	defer reopened.Close()
	history, err := reopened.ShiftCLI.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.False(t, history[0].IsActive)
	assert.Equal(t, 1, history[0].EstimatedCallCount)
}

func TestRouterServesShiftAPI(t *testing.T) {
	cfg, err := config.New(t.TempDir())
	require.NoError(t, err)
	app, err := New(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer app.Close()
	router := Router(app)

	req := httptest.NewRequest(http.MethodPost, "/api/shift/start", strings.NewReader(`{"operator_name":"Ada","login_time":"08:30"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/shift/active", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var active shiftdto.SessionOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &active))
	assert.Equal(t, "08:30", active.LoginTime)
	assert.Len(t, active.EntrySnapshot, 7)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWatchPicksUpShiftsStartedElsewhere(t *testing.T) {
	cfg, err := config.New(t.TempDir())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	running, err := New(ctx, cfg, zerolog.Nop())
	require.NoError(t, err)
	defer running.Close()
	done := make(chan error, 1)
	go func() { done <- running.Watch(ctx) }()

	// give the watcher time to register the directory
	time.Sleep(100 * time.Millisecond)

	// a one-shot CLI invocation against the same workspace
	oneShot, err := New(ctx, cfg, zerolog.Nop())
	require.NoError(t, err)
	_, err = oneShot.ShiftCLI.Start(ctx, "Ada", "09:00")
	require.NoError(t, err)
	require.NoError(t, oneShot.Close())

	require.Eventually(t, func() bool {
		active, err := running.ShiftCLI.GetActive(ctx)
		return err == nil && active.OperatorName == "Ada"
	}, 5*time.Second, 50*time.Millisecond)

	_, err = running.ShiftCLI.Start(ctx, "Bob", "09:05")
	assert.ErrorIs(t, err, apperrors.ErrSessionAlreadyActive)

	cancel()
	require.NoError(t, <-done)
}
