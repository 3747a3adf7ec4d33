// Package geometry builds the detector layout: a world box, the imported PEN
// capsule, a fixed germanium crystal and one outer shell selected at build
// time.
package geometry

import (
	"fmt"
	"math"

	"github.com/bhackett1/OptSimple/internal/optics"
	"github.com/bhackett1/OptSimple/internal/units"
)

// Fixed dimensions of the layout.
const (
	ShellWallThickness = 0.5 * units.Centimeter
	HPGeRadius         = 24.6 * units.Millimeter
	HPGeHalfLength     = 23.5 * units.Millimeter
	HPGeMaterial       = "G4_Ge"
)

// CapsuleOffset is the PEN capsule translation.
var CapsuleOffset = Vec3{0, 0, -5 * units.Centimeter}

// Volume names.
const (
	WorldSolid     = "world_solid"
	WorldLogical   = "world_log"
	WorldPhysical  = "world_phys"
	PENSolid       = "PEN_solid"
	PENLogical     = "PEN_logic"
	PENPhysical    = "PEN_phys"
	HPGeSolid      = "solidHPGE"
	HPGeLogical    = "logicHPGE"
	HPGePhysical   = "physHPGE"
	CylinderSolid  = "det_solidCylinder"
	SphereSolid    = "det_solidSphere"
	ShellLogical   = "det_log"
	ShellPhysical  = "det_phys"
	CylinderLayout = "Cylinder"
)

// Config is the subset of detector configuration read by Build.
type Config interface {
	GetDetRadius() float64
	GetDetMaterial() string
	GetWorldMaterial() string
	GetGeometry() string
}

// Build assembles a Plan from the current configuration. Materials are
// resolved through reg; a name that is neither registered nor predefined is
// an error. Any geometry value other than "Cylinder" builds the sphere shell.
func Build(cfg Config, reg *optics.Registry, mesh MeshImporter) (*Plan, error) {
	radius := cfg.GetDetRadius()
	p := newPlan(cfg.GetGeometry())

	// World
	worldMat, err := reg.FindOrBuild(cfg.GetWorldMaterial())
	if err != nil {
		return nil, fmt.Errorf("world material: %w", err)
	}
	worldSolid, err := NewBox(WorldSolid, 2*radius, 2*radius, 2*radius)
	if err != nil {
		return nil, fmt.Errorf("build world: %w", err)
	}
	worldLog := &LogicalVolume{Name: WorldLogical, Solid: worldSolid, Material: worldMat}
	p.world = &Placement{Name: WorldPhysical, Logical: worldLog, CheckOverlaps: true}
	p.add(p.world)

	// PEN capsule
	penSolid, err := mesh.Import(PENSolid)
	if err != nil {
		return nil, err
	}
	penMat, err := reg.Lookup(optics.PENName)
	if err != nil {
		return nil, fmt.Errorf("capsule material: %w", err)
	}
	p.add(&Placement{
		Name:          PENPhysical,
		Logical:       &LogicalVolume{Name: PENLogical, Solid: penSolid, Material: penMat},
		Mother:        worldLog,
		Translation:   CapsuleOffset,
		Rotation:      RotateX(90 * units.Degree),
		CheckOverlaps: true,
	})

	// Germanium crystal
	geMat, err := reg.FindOrBuild(HPGeMaterial)
	if err != nil {
		return nil, fmt.Errorf("germanium material: %w", err)
	}
	geSolid, err := NewTubs(HPGeSolid, 0, HPGeRadius, HPGeHalfLength, 0, 2*math.Pi)
	if err != nil {
		return nil, err
	}
	geLog := &LogicalVolume{Name: HPGeLogical, Solid: geSolid, Material: geMat}
	p.tracking.add(geLog)
	p.add(&Placement{Name: HPGePhysical, Logical: geLog, Mother: worldLog, CheckOverlaps: true})

	// Outer shell
	detMat, err := reg.FindOrBuild(cfg.GetDetMaterial())
	if err != nil {
		return nil, fmt.Errorf("detector material: %w", err)
	}
	var shell Solid
	if cfg.GetGeometry() == CylinderLayout {
		shell, err = NewTubs(CylinderSolid, radius, radius+ShellWallThickness, radius, 0, 2*math.Pi)
	} else {
		shell, err = NewSphere(SphereSolid, radius, radius+ShellWallThickness, 0, 2*math.Pi, 0, math.Pi)
	}
	if err != nil {
		return nil, fmt.Errorf("build shell: %w", err)
	}
	shellLog := &LogicalVolume{Name: ShellLogical, Solid: shell, Material: detMat}
	p.tracking.add(shellLog)
	p.add(&Placement{Name: ShellPhysical, Logical: shellLog, Mother: worldLog, CheckOverlaps: true})

	p.checkOverlaps()
	return p, nil
}
