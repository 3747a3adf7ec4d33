package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/bhackett1/OptSimple/internal/units"
)

func TestNewDetectorConfig_Defaults(t *testing.T) {
	cfg := NewDetectorConfig()

	want := Settings{
		DetThickness:  50,
		DetRadius:     500,
		DetMaterial:   "G4_AIR",
		WorldMaterial: "G4_SODIUM_IODIDE",
		Geometry:      "Cylinder",
	}
	if diff := cmp.Diff(want, cfg.Snapshot()); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestDetectorConfig_AccessorsDoNotValidate(t *testing.T) {
	cfg := NewDetectorConfig()

	cfg.SetDetThickness(-1 * units.Centimeter)
	cfg.SetDetRadius(-20)
	cfg.SetDetMaterial("NOT_A_MATERIAL")
	cfg.SetWorldMaterial("")
	cfg.SetGeometry("Cube")

	assert.Equal(t, -10.0, cfg.GetDetThickness())
	assert.Equal(t, -20.0, cfg.GetDetRadius())
	assert.Equal(t, "NOT_A_MATERIAL", cfg.GetDetMaterial())
	assert.Equal(t, "", cfg.GetWorldMaterial())
	assert.Equal(t, "Cube", cfg.GetGeometry())
}

func TestDetectorConfig_LengthRules(t *testing.T) {
	cfg := NewDetectorConfig()
	assert.Equal(t, Warned("Thickness must be greater than zero!"), cfg.Thickness.Check(-1))
	assert.Equal(t, Warned("Radius must be greater than zero!"), cfg.Radius.Check(-1))
	assert.Equal(t, Accepted(), cfg.Radius.Check(0))
}

func TestNewGunOffset(t *testing.T) {
	p := NewGunOffset()
	assert.Equal(t, 300.0, p.Get())
	assert.Equal(t, Warned("Gun height must be greater than zero!"), p.Check(-1))
}
