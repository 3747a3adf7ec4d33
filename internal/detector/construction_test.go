package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhackett1/OptSimple/internal/config"
	"github.com/bhackett1/OptSimple/internal/geometry"
	"github.com/bhackett1/OptSimple/internal/optics"
	"github.com/bhackett1/OptSimple/internal/testutil"
)

func newConstruction(t *testing.T) (*Construction, *testutil.Output) {
	t.Helper()
	out := testutil.CaptureOutput(t)
	c, err := New(optics.NewRegistry(), geometry.StaticMesh{})
	require.NoError(t, err)
	return c, out
}

func TestNew_BuildsMaterials(t *testing.T) {
	c, out := newConstruction(t)
	assert.True(t, out.HasInfo("Creating DetectorConstruction"))
	assert.True(t, out.HasInfo("PEN MATERIAL:"))
	assert.Equal(t, 3, c.Registry().Len())
	assert.Equal(t, config.DefaultDetRadius, c.Config().GetDetRadius())
	assert.Nil(t, c.Plan())

	_, err := New(c.Registry(), geometry.StaticMesh{})
	assert.ErrorIs(t, err, optics.ErrDuplicateMaterial)
}

func TestConstruct(t *testing.T) {
	c, _ := newConstruction(t)
	world, err := c.Construct()
	require.NoError(t, err)
	assert.Equal(t, geometry.WorldPhysical, world.Name)
	require.NotNil(t, c.Plan())
	assert.Same(t, world, c.Plan().World())
}

func TestConstruct_FailureKeepsPreviousPlan(t *testing.T) {
	c, _ := newConstruction(t)
	_, err := c.Construct()
	require.NoError(t, err)
	before := c.Plan()

	c.Config().SetDetMaterial("MISSING")
	_, err = c.Construct()
	assert.ErrorIs(t, err, optics.ErrMaterialNotFound)
	assert.Same(t, before, c.Plan())
}

func TestConstructSDandField(t *testing.T) {
	c, _ := newConstruction(t)
	_, err := c.ConstructSDandField()
	assert.ErrorIs(t, err, ErrNotConstructed)

	_, err = c.Construct()
	require.NoError(t, err)
	sd, err := c.ConstructSDandField()
	require.NoError(t, err)
	assert.Equal(t, "world_sd", sd.Name)
	for _, lv := range c.Plan().Tracking().Volumes() {
		assert.Same(t, sd, lv.SensitiveDetector())
	}

	_, err = c.ConstructSDandField()
	assert.ErrorIs(t, err, geometry.ErrAlreadyAttached)

	// A rebuilt plan has a fresh tracking set.
	_, err = c.Construct()
	require.NoError(t, err)
	_, err = c.ConstructSDandField()
	assert.NoError(t, err)
}
