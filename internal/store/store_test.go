package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhackett1/OptSimple/internal/config"
	"github.com/bhackett1/OptSimple/internal/testutil"
	"github.com/bhackett1/OptSimple/internal/timeutil"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	testutil.CaptureOutput(t)
	db, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpen_MigratesToLatest(t *testing.T) {
	db := openTestDB(t)
	version, dirty, err := db.MigrateVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)
	assert.False(t, dirty)

	// Running again is a no-op.
	require.NoError(t, db.MigrateUp())

	var fk int
	require.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestOpen_Reopen(t *testing.T) {
	testutil.CaptureOutput(t)
	path := filepath.Join(t.TempDir(), "runs.db")
	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.InsertRun(&Run{RunID: "r1", Geometry: "Sphere"}))
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()
	r, err := db.GetRun("r1")
	require.NoError(t, err)
	assert.Equal(t, "Sphere", r.Geometry)
}

func TestMigrateDown(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.MigrateDown())
	version, _, err := db.MigrateVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	_, err = db.ListVertices("any")
	assert.Error(t, err, "vertices table dropped")
	require.NoError(t, db.MigrateUp())
}

func TestOpenWithoutMigrations(t *testing.T) {
	testutil.CaptureOutput(t)
	path := filepath.Join(t.TempDir(), "raw.db")
	db, err := OpenWithoutMigrations(path)
	require.NoError(t, err)
	defer db.Close()

	version, dirty, err := db.MigrateVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(0), version)
	assert.False(t, dirty)

	require.NoError(t, db.MigrateUp())
	version, _, err = db.MigrateVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)
}

func TestRuns_InsertGetFinish(t *testing.T) {
	db := openTestDB(t)
	settings := config.NewDetectorConfig().Snapshot()

	run := &Run{Seed: 1 << 63, Workers: 4, Geometry: settings.Geometry, Settings: settings, GunOffset: 300}
	require.NoError(t, db.InsertRun(run))
	_, err := uuid.Parse(run.RunID)
	require.NoError(t, err, "generated id must be a UUID")
	assert.NotZero(t, run.StartedAt)

	got, err := db.GetRun(run.RunID)
	require.NoError(t, err)
	if diff := cmp.Diff(run, got); diff != "" {
		t.Errorf("run mismatch (-want +got):\n%s", diff)
	}
	assert.Nil(t, got.FinishedAt)

	require.NoError(t, db.FinishRun(run.RunID, 25))
	got, err = db.GetRun(run.RunID)
	require.NoError(t, err)
	assert.Equal(t, 25, got.EventCount)
	require.NotNil(t, got.FinishedAt)

	assert.ErrorIs(t, db.FinishRun("missing", 1), ErrRunNotFound)
	_, err = db.GetRun("missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
	assert.Error(t, db.InsertRun(&Run{RunID: run.RunID}), "duplicate id")
}

func TestRuns_Timestamps(t *testing.T) {
	db := openTestDB(t)
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := timeutil.NewMockClock(start)
	db.SetClock(clock)

	run := &Run{RunID: "timed"}
	require.NoError(t, db.InsertRun(run))
	assert.Equal(t, start.UnixNano(), run.StartedAt)

	clock.Advance(90 * time.Second)
	require.NoError(t, db.FinishRun("timed", 3))
	got, err := db.GetRun("timed")
	require.NoError(t, err)
	require.NotNil(t, got.FinishedAt)
	assert.Equal(t, start.Add(90*time.Second).UnixNano(), *got.FinishedAt)
}

func TestRuns_List(t *testing.T) {
	db := openTestDB(t)
	for i, id := range []string{"b", "a", "c"} {
		require.NoError(t, db.InsertRun(&Run{RunID: id, StartedAt: int64(10 - i)}))
	}
	runs, err := db.ListRuns()
	require.NoError(t, err)
	var ids []string
	for _, r := range runs {
		ids = append(ids, r.RunID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}

func TestVertices(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.InsertRun(&Run{RunID: "run"}))

	in := []Vertex{
		{RunID: "run", EventID: 1, Particle: "gamma", Energy: 1, Phi: 0.5, Height: -10, U: 0.25, X: 1, Y: 2, Z: -10},
		{RunID: "run", EventID: 0, Particle: "gamma", Energy: 1, Phi: 0, Height: 500, U: 1, X: 500, Y: 0, Z: 500},
	}
	require.NoError(t, db.InsertVertices(in))

	out, err := db.ListVertices("run")
	require.NoError(t, err)
	assert.Equal(t, []Vertex{in[1], in[0]}, out)

	empty, err := db.ListVertices("other")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestVertices_RequireRun(t *testing.T) {
	db := openTestDB(t)
	err := db.InsertVertices([]Vertex{{RunID: "nope", EventID: 0, Particle: "gamma"}})
	assert.Error(t, err, "foreign key must reject unknown run")

	require.NoError(t, db.InsertRun(&Run{RunID: "run"}))
	err = db.InsertVertices([]Vertex{
		{RunID: "run", EventID: 0, Particle: "gamma"},
		{RunID: "run", EventID: 0, Particle: "gamma"},
	})
	assert.Error(t, err)
	out, err := db.ListVertices("run")
	require.NoError(t, err)
	assert.Empty(t, out, "failed batch must roll back")
}
