package uicmd

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhackett1/OptSimple/internal/testutil"
	"github.com/bhackett1/OptSimple/internal/units"
)

type recorder struct {
	calls []string
	err   error
}

func (r *recorder) SetNewValue(cmd *Command, value string) error {
	r.calls = append(r.calls, cmd.Path+"="+value)
	return r.err
}

func newTestManager(t *testing.T) (*Manager, *recorder) {
	t.Helper()
	m := NewManager()
	rec := &recorder{}
	_, err := m.AddDirectory("/test/", "Test commands.")
	require.NoError(t, err)

	require.NoError(t, m.Register(NewDoubleWithUnit("/test/length", "len", units.Length, "cm").
		WithGuidance("Set a length.").AvailableIn(PreInit), rec))
	require.NoError(t, m.Register(NewString("/test/shape", "shape").
		WithCandidates("Sphere Cylinder").AvailableIn(PreInit, Idle), rec))
	require.NoError(t, m.Register(NewInt("/test/count", "n").WithDefault("1"), rec))
	require.NoError(t, m.Register(NewAction("/test/go"), rec))
	return m, rec
}

func TestManager_Apply(t *testing.T) {
	tests := []struct {
		line    string
		want    string
		wantErr error
	}{
		{"/test/length 5 mm", "/test/length=5 mm", nil},
		{"/test/length 5", "/test/length=5 cm", nil},
		{"  /test/length   -2.5   m  ", "/test/length=-2.5 m", nil},
		{"/test/length five cm", "", ErrParameterUnreadable},
		{"/test/length 5 parsec", "", ErrParameterOutOfCandidates},
		{"/test/length", "", ErrParameterUnreadable},
		{"/test/shape Sphere", "/test/shape=Sphere", nil},
		{"/test/shape Cube", "", ErrParameterOutOfCandidates},
		{"/test/count", "/test/count=1", nil},
		{"/test/count x", "", ErrParameterUnreadable},
		{"/test/go ignored", "/test/go=", nil},
		{"/test/missing 1", "", ErrCommandNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			m, rec := newTestManager(t)
			err := m.Apply(tt.line)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, rec.calls, "messenger must not be called on error")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{tt.want}, rec.calls)
		})
	}
}

func TestManager_StateGate(t *testing.T) {
	m, rec := newTestManager(t)
	m.SetState(Idle)

	err := m.Apply("/test/length 1 cm")
	assert.ErrorIs(t, err, ErrIllegalState)
	assert.Contains(t, err.Error(), "Idle")

	require.NoError(t, m.Apply("/test/shape Cylinder"))
	require.NoError(t, m.Apply("/test/go"))

	m.SetState(EventProc)
	assert.ErrorIs(t, m.Apply("/test/shape Sphere"), ErrIllegalState)
	assert.Equal(t, []string{"/test/shape=Cylinder", "/test/go="}, rec.calls)
}

func TestManager_MessengerError(t *testing.T) {
	m, rec := newTestManager(t)
	rec.err = errors.New("boom")
	assert.EqualError(t, m.Apply("/test/go"), "boom")
}

func TestManager_RegisterDuplicate(t *testing.T) {
	m, rec := newTestManager(t)
	assert.ErrorIs(t, m.Register(NewAction("/test/go"), rec), ErrDuplicateCommand)
	assert.Error(t, m.Register(NewAction("relative"), rec))

	_, err := m.AddDirectory("/bad", "")
	assert.Error(t, err)
}

func TestManager_Guidance(t *testing.T) {
	m, _ := newTestManager(t)
	g, ok := m.Guidance("/test/length")
	assert.True(t, ok)
	assert.Equal(t, "Set a length.", g)
	g, ok = m.Guidance("/test/")
	assert.True(t, ok)
	assert.Equal(t, "Test commands.", g)
	_, ok = m.Guidance("/nope/")
	assert.False(t, ok)

	assert.Equal(t, []string{"/test/count", "/test/go", "/test/length", "/test/shape"}, m.Paths())
}

func TestManager_ExecuteMacro(t *testing.T) {
	m, rec := newTestManager(t)
	macro := strings.Join([]string{
		"# comment",
		"",
		"/test/length 3 cm",
		"   ",
		"/test/shape Sphere",
	}, "\n")

	require.NoError(t, m.ExecuteMacro(context.Background(), strings.NewReader(macro)))
	assert.Equal(t, []string{"/test/length=3 cm", "/test/shape=Sphere"}, rec.calls)
}

func TestManager_ExecuteMacroStopsOnError(t *testing.T) {
	m, rec := newTestManager(t)
	macro := "/test/length 3 cm\n/test/bogus\n/test/go\n"

	err := m.ExecuteMacro(context.Background(), strings.NewReader(macro))
	assert.ErrorIs(t, err, ErrCommandNotFound)
	assert.Contains(t, err.Error(), "macro line 2")
	assert.Equal(t, []string{"/test/length=3 cm"}, rec.calls)
}

func TestManager_ExecuteMacroCancelled(t *testing.T) {
	m, rec := newTestManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, m.ExecuteMacro(ctx, strings.NewReader("/test/go\n")), context.Canceled)
	assert.Empty(t, rec.calls)
}

func TestManager_ExecuteMacroFile(t *testing.T) {
	out := testutil.CaptureOutput(t)
	m, rec := newTestManager(t)
	m.SetVerbose(2)

	path := testutil.WriteMacro(t, "/test/go", "/test/count 4")
	require.NoError(t, m.ExecuteMacroFile(context.Background(), path))
	assert.Equal(t, []string{"/test/go=", "/test/count=4"}, rec.calls)
	assert.True(t, out.HasInfo("/test/count 4"))

	assert.Error(t, m.ExecuteMacroFile(context.Background(), path+".missing"))
}

func TestCommand_Helpers(t *testing.T) {
	c := NewString("/a/b/name", "p")
	assert.Equal(t, "name", c.CommandName())
	assert.True(t, c.IsAvailable(EventProc), "no states means always available")
	assert.Nil(t, c.Owner())
	assert.Equal(t, "GeomClosed", GeomClosed.String())
	assert.Equal(t, "Unknown", State(42).String())
}
