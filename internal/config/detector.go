package config

import "github.com/bhackett1/OptSimple/internal/units"

// Geometry variants accepted by the det_geometry command.
const (
	GeometryCylinder = "Cylinder"
	GeometrySphere   = "Sphere"
)

// Defaults for a freshly constructed detector.
const (
	DefaultDetThickness  = 5 * units.Centimeter
	DefaultDetRadius     = 50 * units.Centimeter
	DefaultDetMaterial   = "G4_AIR"
	DefaultWorldMaterial = "G4_SODIUM_IODIDE"
	DefaultGeometry      = GeometryCylinder
	DefaultGunOffset     = 30 * units.Centimeter
)

// DetectorConfig holds the mutable detector parameters read by the geometry
// builder. It is not safe for concurrent mutation; the host applies commands
// from a single goroutine.
type DetectorConfig struct {
	Thickness     *Parameter[float64]
	Radius        *Parameter[float64]
	DetMaterial   *Parameter[string]
	WorldMaterial *Parameter[string]
	Geometry      *Parameter[string]
}

// NewDetectorConfig returns a config populated with the defaults.
func NewDetectorConfig() *DetectorConfig {
	return &DetectorConfig{
		Thickness:     NewParameter("det_thickness", DefaultDetThickness, NonNegative("Thickness must be greater than zero!")),
		Radius:        NewParameter("det_radius", DefaultDetRadius, NonNegative("Radius must be greater than zero!")),
		DetMaterial:   NewParameter[string]("det_material", DefaultDetMaterial, nil),
		WorldMaterial: NewParameter[string]("world_material", DefaultWorldMaterial, nil),
		Geometry:      NewParameter[string]("det_geometry", DefaultGeometry, nil),
	}
}

func (c *DetectorConfig) SetDetThickness(v float64) { c.Thickness.Set(v) }
func (c *DetectorConfig) GetDetThickness() float64  { return c.Thickness.Get() }

func (c *DetectorConfig) SetDetRadius(v float64) { c.Radius.Set(v) }
func (c *DetectorConfig) GetDetRadius() float64  { return c.Radius.Get() }

func (c *DetectorConfig) SetDetMaterial(name string) { c.DetMaterial.Set(name) }
func (c *DetectorConfig) GetDetMaterial() string     { return c.DetMaterial.Get() }

func (c *DetectorConfig) SetWorldMaterial(name string) { c.WorldMaterial.Set(name) }
func (c *DetectorConfig) GetWorldMaterial() string     { return c.WorldMaterial.Get() }

func (c *DetectorConfig) SetGeometry(variant string) { c.Geometry.Set(variant) }
func (c *DetectorConfig) GetGeometry() string        { return c.Geometry.Get() }

// Settings is a plain snapshot of a DetectorConfig, used for persistence.
type Settings struct {
	DetThickness  float64 `json:"det_thickness_mm"`
	DetRadius     float64 `json:"det_radius_mm"`
	DetMaterial   string  `json:"det_material"`
	WorldMaterial string  `json:"world_material"`
	Geometry      string  `json:"det_geometry"`
}

// Snapshot copies the current values.
func (c *DetectorConfig) Snapshot() Settings {
	return Settings{
		DetThickness:  c.GetDetThickness(),
		DetRadius:     c.GetDetRadius(),
		DetMaterial:   c.GetDetMaterial(),
		WorldMaterial: c.GetWorldMaterial(),
		Geometry:      c.GetGeometry(),
	}
}

// NewGunOffset returns the gun height offset parameter at its default.
func NewGunOffset() *Parameter[float64] {
	return NewParameter("gun_offset", DefaultGunOffset, NonNegative("Gun height must be greater than zero!"))
}
