package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadDetectorDefaults(t *testing.T) {
	path := writeConfig(t, "detector.json", `{
  "det_thickness": "2 cm",
  "det_radius": "1 m",
  "det_geometry": "Sphere",
  "gun_offset": "-10 cm"
}`)

	d, err := LoadDetectorDefaults(path)
	require.NoError(t, err)

	assert.Equal(t, 20.0, d.GetDetThickness())
	assert.Equal(t, 1000.0, d.GetDetRadius())
	assert.Equal(t, GeometrySphere, d.GetGeometry())
	assert.Equal(t, -100.0, d.GetGunOffset())
	// Omitted fields fall back.
	assert.Equal(t, DefaultDetMaterial, d.GetDetMaterial())
	assert.Equal(t, DefaultWorldMaterial, d.GetWorldMaterial())
	assert.Equal(t, DefaultMeshPath, d.GetMeshPath())

	cfg := NewDetectorConfig()
	d.ApplyTo(cfg)
	assert.Equal(t, 1000.0, cfg.GetDetRadius())
	assert.Equal(t, GeometrySphere, cfg.GetGeometry())
}

func TestLoadDetectorDefaults_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		body    string
		wantErr string
	}{
		{"wrong extension", "detector.yaml", `{}`, ".json extension"},
		{"bad json", "detector.json", `{`, "failed to parse config JSON"},
		{"bad length", "detector.json", `{"det_radius": "50 furlongs"}`, "invalid det_radius"},
		{"bad number", "detector.json", `{"det_thickness": "abc cm"}`, "invalid det_thickness"},
		{"unknown geometry", "detector.json", `{"det_geometry": "Cube"}`, "det_geometry must be"},
		{"empty material", "detector.json", `{"det_material": ""}`, "det_material must not be empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadDetectorDefaults(writeConfig(t, tt.file, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	_, err := LoadDetectorDefaults(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to stat")
}

func TestLoadDetectorDefaults_TooLarge(t *testing.T) {
	body := `{"mesh_path": "` + strings.Repeat("a", 1024*1024) + `"}`
	_, err := LoadDetectorDefaults(writeConfig(t, "big.json", body))
	assert.ErrorContains(t, err, "too large")
}

func TestEmptyDetectorDefaults_Getters(t *testing.T) {
	d := EmptyDetectorDefaults()
	assert.Equal(t, DefaultDetThickness, d.GetDetThickness())
	assert.Equal(t, DefaultDetRadius, d.GetDetRadius())
	assert.Equal(t, DefaultGunOffset, d.GetGunOffset())
	assert.Equal(t, DefaultGeometry, d.GetGeometry())

	d.MeshPath = ptrString("")
	assert.Equal(t, DefaultMeshPath, d.GetMeshPath())
}

func TestMustLoadDefaultConfig(t *testing.T) {
	d := MustLoadDefaultConfig()
	assert.Equal(t, DefaultDetRadius, d.GetDetRadius())
	assert.Equal(t, DefaultDetThickness, d.GetDetThickness())
	assert.Equal(t, DefaultGunOffset, d.GetGunOffset())
	assert.Equal(t, DefaultGeometry, d.GetGeometry())
	assert.Equal(t, DefaultMeshPath, d.GetMeshPath())
}
