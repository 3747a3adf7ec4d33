// Package detector is the host-facing detector construction: it owns the
// detector configuration and material registry and turns them into a
// geometry plan on request.
package detector

import (
	"fmt"

	"github.com/bhackett1/OptSimple/internal/config"
	"github.com/bhackett1/OptSimple/internal/geometry"
	"github.com/bhackett1/OptSimple/internal/monitoring"
	"github.com/bhackett1/OptSimple/internal/optics"
)

// SensitiveDetectorName names the detector attached to the tracking volumes.
const SensitiveDetectorName = "world_sd"

// ErrNotConstructed is returned when the sensitive detector is requested
// before any geometry exists.
var ErrNotConstructed = fmt.Errorf("geometry not constructed")

type Construction struct {
	cfg      *config.DetectorConfig
	registry *optics.Registry
	mesh     geometry.MeshImporter
	plan     *geometry.Plan
}

// New creates a construction with default configuration and registers the
// optical materials into reg.
func New(reg *optics.Registry, mesh geometry.MeshImporter) (*Construction, error) {
	monitoring.Logf("Creating DetectorConstruction")
	if err := optics.BuildMaterials(reg); err != nil {
		return nil, fmt.Errorf("failed to build materials: %w", err)
	}
	return &Construction{
		cfg:      config.NewDetectorConfig(),
		registry: reg,
		mesh:     mesh,
	}, nil
}

func (c *Construction) Config() *config.DetectorConfig { return c.cfg }

func (c *Construction) Registry() *optics.Registry { return c.registry }

// Plan returns the most recently constructed plan, or nil.
func (c *Construction) Plan() *geometry.Plan { return c.plan }

// Construct builds a new plan from the current configuration and returns its
// world placement. The previous plan is kept if the build fails.
func (c *Construction) Construct() (*geometry.Placement, error) {
	plan, err := geometry.Build(c.cfg, c.registry, c.mesh)
	if err != nil {
		return nil, err
	}
	c.plan = plan
	return plan.World(), nil
}

// ConstructSDandField attaches the world_sd detector to the tracking volumes
// of the current plan.
func (c *Construction) ConstructSDandField() (*geometry.SensitiveDetector, error) {
	if c.plan == nil {
		return nil, ErrNotConstructed
	}
	sd := &geometry.SensitiveDetector{Name: SensitiveDetectorName}
	if err := c.plan.Tracking().Attach(sd); err != nil {
		return nil, err
	}
	return sd, nil
}
