package messenger

import (
	"github.com/bhackett1/OptSimple/internal/config"
	"github.com/bhackett1/OptSimple/internal/monitoring"
	"github.com/bhackett1/OptSimple/internal/uicmd"
	"github.com/bhackett1/OptSimple/internal/units"
)

const (
	GeometryDir      = Root + "geometry/"
	DetThicknessPath = GeometryDir + "det_thickness"
	DetRadiusPath    = GeometryDir + "det_radius"
	DetGeometryPath  = GeometryDir + "det_geometry"
)

// Geometry handles the det_thickness, det_radius and det_geometry commands.
type Geometry struct {
	cfg    *config.DetectorConfig
	policy config.WarningPolicy

	thickness *uicmd.Command
	radius    *uicmd.Command
	variant   *uicmd.Command
}

// NewGeometry registers the geometry commands on m.
func NewGeometry(m *uicmd.Manager, cfg *config.DetectorConfig) (*Geometry, error) {
	g := &Geometry{cfg: cfg, policy: config.ApplyOnWarning}
	if _, err := m.AddDirectory(GeometryDir, "Change parameters of the geometry."); err != nil {
		return nil, err
	}

	g.thickness = uicmd.NewDoubleWithUnit(DetThicknessPath, "thickness", units.Length, "cm").
		WithGuidance("Set the thickness of the detector shell.").
		WithDefault(units.BestUnit(cfg.GetDetThickness(), units.Length)).
		AvailableIn(uicmd.PreInit)
	g.radius = uicmd.NewDoubleWithUnit(DetRadiusPath, "radius", units.Length, "cm").
		WithGuidance("Set the inner radius of the detector shell.").
		WithDefault(units.BestUnit(cfg.GetDetRadius(), units.Length)).
		AvailableIn(uicmd.PreInit)
	g.variant = uicmd.NewString(DetGeometryPath, "geometry").
		WithGuidance("Select the detector shell shape.").
		WithDefault(cfg.GetGeometry()).
		WithCandidates(config.GeometrySphere+" "+config.GeometryCylinder).
		AvailableIn(uicmd.PreInit, uicmd.Idle)

	for _, c := range []*uicmd.Command{g.thickness, g.radius, g.variant} {
		if err := m.Register(c, g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// SetWarningPolicy changes how negative lengths are handled.
func (g *Geometry) SetWarningPolicy(p config.WarningPolicy) { g.policy = p }

func (g *Geometry) SetNewValue(cmd *uicmd.Command, value string) error {
	switch cmd {
	case g.thickness:
		v, stored, err := applyLength(g.cfg.Thickness, value, g.policy)
		if err != nil {
			return err
		}
		if stored {
			monitoring.Logf("Detector thickness set to %s", units.BestUnit(v, units.Length))
		}
	case g.radius:
		v, stored, err := applyLength(g.cfg.Radius, value, g.policy)
		if err != nil {
			return err
		}
		if stored {
			monitoring.Logf("Detector radius set to %s", units.BestUnit(v, units.Length))
		}
	case g.variant:
		g.cfg.SetGeometry(value)
		monitoring.Logf("Detector geometry set to %s", value)
	}
	return nil
}
