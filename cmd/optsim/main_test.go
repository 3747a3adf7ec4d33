package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhackett1/OptSimple/internal/config"
	"github.com/bhackett1/OptSimple/internal/store"
	"github.com/bhackett1/OptSimple/internal/testutil"
)

func TestFlagDefaults(t *testing.T) {
	assert.Equal(t, config.DefaultConfigPath, *defaultsPath)
	assert.Equal(t, 10, *events)
	assert.Equal(t, 1, *workers)
	assert.Empty(t, *dbPath)
	assert.False(t, *strict)
}

func setFlag(t *testing.T, p *string, v string) {
	t.Helper()
	old := *p
	*p = v
	t.Cleanup(func() { *p = old })
}

func setBool(t *testing.T, p *bool, v bool) {
	t.Helper()
	old := *p
	*p = v
	t.Cleanup(func() { *p = old })
}

func TestRun_EndToEnd(t *testing.T) {
	testutil.CaptureOutput(t)
	dir := t.TempDir()
	mesh := filepath.Join(dir, "Capsule.stl")
	require.NoError(t, os.WriteFile(mesh, []byte("solid capsule\nendsolid capsule\n"), 0o644))
	macro := testutil.WriteMacro(t,
		"/control/verbose 0",
		"/ne697/geometry/det_geometry Sphere",
		"/run/initialize",
		"/run/beamOn 20",
	)

	setFlag(t, defaultsPath, "")
	setFlag(t, meshPath, mesh)
	setFlag(t, macroPath, macro)
	setFlag(t, dbPath, filepath.Join(dir, "runs.db"))
	setFlag(t, reportDir, filepath.Join(dir, "report"))

	require.NoError(t, run(context.Background()))

	for _, name := range []string{"vertex_x.png", "vertex_y.png", "vertex_z.png", "vertex_phi.png", "vertices.html"} {
		_, err := os.Stat(filepath.Join(dir, "report", name))
		assert.NoError(t, err, name)
	}

	db, err := store.Open(filepath.Join(dir, "runs.db"))
	require.NoError(t, err)
	defer db.Close()
	runs, err := db.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 20, runs[0].EventCount)
	assert.Equal(t, config.GeometrySphere, runs[0].Geometry)
}

func TestRun_MissingMeshFails(t *testing.T) {
	testutil.CaptureOutput(t)
	setFlag(t, defaultsPath, "")
	setFlag(t, meshPath, filepath.Join(t.TempDir(), "nope.stl"))
	setFlag(t, macroPath, "")

	assert.Error(t, run(context.Background()))
}

func TestRun_BadDefaultsFile(t *testing.T) {
	testutil.CaptureOutput(t)
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"det_geometry": "Cube"}`), 0o644))
	setFlag(t, defaultsPath, path)

	assert.Error(t, run(context.Background()))
}

func TestRun_ReplayStoredRun(t *testing.T) {
	testutil.CaptureOutput(t)
	dir := t.TempDir()
	mesh := filepath.Join(dir, "Capsule.stl")
	require.NoError(t, os.WriteFile(mesh, []byte("solid capsule\n"), 0o644))
	db := filepath.Join(dir, "runs.db")

	setFlag(t, defaultsPath, "")
	setFlag(t, meshPath, mesh)
	setFlag(t, macroPath, "")
	setFlag(t, dbPath, db)
	setFlag(t, reportDir, "")
	require.NoError(t, run(context.Background()))

	setBool(t, listRuns, true)
	var buf bytes.Buffer
	require.NoError(t, runStoreCommand(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "events=10")
	assert.Contains(t, lines[0], "finished")
	runID := strings.Split(lines[0], "\t")[0]
	setBool(t, listRuns, false)

	out := filepath.Join(dir, "replay")
	setFlag(t, reportRun, runID)
	setFlag(t, reportDir, out)
	require.NoError(t, run(context.Background()))
	for _, name := range []string{"vertex_x.png", "vertices.html"} {
		_, err := os.Stat(filepath.Join(out, name))
		assert.NoError(t, err, name)
	}

	setFlag(t, reportRun, "no-such-run")
	assert.ErrorIs(t, run(context.Background()), store.ErrRunNotFound)
}

func TestRunStoreCommand_Migrate(t *testing.T) {
	testutil.CaptureOutput(t)
	setFlag(t, dbPath, filepath.Join(t.TempDir(), "runs.db"))

	tests := []struct {
		action  string
		want    string
		wantErr bool
	}{
		{"status", "schema version 0 (dirty=false)", false},
		{"up", "schema version 2 (dirty=false)", false},
		{"down", "schema version 1 (dirty=false)", false},
		{"status", "schema version 1 (dirty=false)", false},
		{"sideways", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			setFlag(t, migrateCmd, tt.action)
			var buf bytes.Buffer
			err := runStoreCommand(&buf)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestRunStoreCommand_RequiresDB(t *testing.T) {
	setFlag(t, dbPath, "")
	setBool(t, listRuns, true)
	assert.Error(t, run(context.Background()))
}
