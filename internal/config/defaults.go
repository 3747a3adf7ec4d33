package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bhackett1/OptSimple/internal/units"
)

// DefaultConfigPath is the path to the canonical detector defaults file.
const DefaultConfigPath = "config/detector.defaults.json"

// DefaultMeshPath is the capsule mesh location used when none is configured.
const DefaultMeshPath = "./Capsule.stl"

// DetectorDefaults is the startup configuration file schema. Lengths are
// written with their unit, e.g. "50 cm". Omitted fields fall back to the
// built-in defaults through the Get* methods.
type DetectorDefaults struct {
	DetThickness  *string `json:"det_thickness,omitempty"`
	DetRadius     *string `json:"det_radius,omitempty"`
	DetMaterial   *string `json:"det_material,omitempty"`
	WorldMaterial *string `json:"world_material,omitempty"`
	Geometry      *string `json:"det_geometry,omitempty"`
	GunOffset     *string `json:"gun_offset,omitempty"`
	MeshPath      *string `json:"mesh_path,omitempty"`
}

func ptrString(v string) *string { return &v }

// EmptyDetectorDefaults returns defaults with every field unset.
func EmptyDetectorDefaults() *DetectorDefaults {
	return &DetectorDefaults{}
}

// LoadDetectorDefaults loads DetectorDefaults from a JSON file.
// The file must have a .json extension and be under 1MB.
func LoadDetectorDefaults(path string) (*DetectorDefaults, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyDetectorDefaults()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that lengths parse and the geometry variant is known.
// Negative lengths are accepted here, matching the command behaviour.
func (d *DetectorDefaults) Validate() error {
	lengths := map[string]*string{
		"det_thickness": d.DetThickness,
		"det_radius":    d.DetRadius,
		"gun_offset":    d.GunOffset,
	}
	for name, v := range lengths {
		if v == nil {
			continue
		}
		if _, err := units.ParseLength(*v); err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, *v, err)
		}
	}

	if d.Geometry != nil && *d.Geometry != GeometryCylinder && *d.Geometry != GeometrySphere {
		return fmt.Errorf("det_geometry must be %q or %q, got %q", GeometrySphere, GeometryCylinder, *d.Geometry)
	}
	if d.DetMaterial != nil && *d.DetMaterial == "" {
		return fmt.Errorf("det_material must not be empty")
	}
	if d.WorldMaterial != nil && *d.WorldMaterial == "" {
		return fmt.Errorf("world_material must not be empty")
	}
	return nil
}

func lengthOr(v *string, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	l, err := units.ParseLength(*v)
	if err != nil {
		return fallback
	}
	return l
}

func stringOr(v *string, fallback string) string {
	if v == nil || *v == "" {
		return fallback
	}
	return *v
}

// GetDetThickness returns the detector shell thickness in mm.
func (d *DetectorDefaults) GetDetThickness() float64 {
	return lengthOr(d.DetThickness, DefaultDetThickness)
}

// GetDetRadius returns the detector radius in mm.
func (d *DetectorDefaults) GetDetRadius() float64 {
	return lengthOr(d.DetRadius, DefaultDetRadius)
}

// GetGunOffset returns the particle gun height offset in mm.
func (d *DetectorDefaults) GetGunOffset() float64 {
	return lengthOr(d.GunOffset, DefaultGunOffset)
}

func (d *DetectorDefaults) GetDetMaterial() string {
	return stringOr(d.DetMaterial, DefaultDetMaterial)
}

func (d *DetectorDefaults) GetWorldMaterial() string {
	return stringOr(d.WorldMaterial, DefaultWorldMaterial)
}

func (d *DetectorDefaults) GetGeometry() string {
	return stringOr(d.Geometry, DefaultGeometry)
}

func (d *DetectorDefaults) GetMeshPath() string {
	return stringOr(d.MeshPath, DefaultMeshPath)
}

// ApplyTo copies the detector fields into cfg.
func (d *DetectorDefaults) ApplyTo(cfg *DetectorConfig) {
	cfg.SetDetThickness(d.GetDetThickness())
	cfg.SetDetRadius(d.GetDetRadius())
	cfg.SetDetMaterial(d.GetDetMaterial())
	cfg.SetWorldMaterial(d.GetWorldMaterial())
	cfg.SetGeometry(d.GetGeometry())
}

// MustLoadDefaultConfig loads DefaultConfigPath from the current directory or
// a parent. It panics if the file cannot be found; intended for test setup.
func MustLoadDefaultConfig() *DetectorDefaults {
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath,
		"../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadDetectorDefaults(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}
