package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shiftdto "leadtrack/internal/modules/shift/dto"
)

func run(t *testing.T, workspace string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"--workspace", workspace}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestShiftCommands(t *testing.T) {
	ws := t.TempDir()

	out, err := run(t, ws, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "already configured")

	_, err = run(t, ws, "client", "add", "Ada", "--status", "New Lead")
	require.NoError(t, err)

	out, err = run(t, ws, "--json", "shift", "start", "--operator", "Ada", "--login", "09:00")
	require.NoError(t, err)
	var started shiftdto.SessionOutput
	require.NoError(t, json.Unmarshal([]byte(out), &started))
	assert.True(t, started.IsActive)

	_, err = run(t, ws, "shift", "start", "--operator", "Bob", "--login", "09:10")
	assert.ErrorContains(t, err, "already active")

	out, err = run(t, ws, "shift", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "active "+started.ID)

	out, err = run(t, ws, "--json", "shift", "end", "--logout", "17:00")
	require.NoError(t, err)
	var ended shiftdto.SessionOutput
	require.NoError(t, json.Unmarshal([]byte(out), &ended))
	assert.Equal(t, started.ID, ended.ID)
	assert.False(t, ended.IsActive)

	_, err = run(t, ws, "shift", "end", "--logout", "17:05")
	assert.Error(t, err)

	out, err = run(t, ws, "shift", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "09:00-17:00")

	_, err = run(t, ws, "shift", "delete", "--session-id", started.ID)
	require.NoError(t, err)
	out, err = run(t, ws, "shift", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "no shifts")
}

func TestShiftStartRejectsBadTime(t *testing.T) {
	_, err := run(t, t.TempDir(), "shift", "start", "--operator", "Ada", "--login", "25:00")
	assert.ErrorContains(t, err, "HH:MM")
}
