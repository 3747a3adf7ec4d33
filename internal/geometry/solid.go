package geometry

import (
	"fmt"
	"math"
)

// ErrInvalidSolid is returned for solids with impossible dimensions.
var ErrInvalidSolid = fmt.Errorf("invalid solid dimensions")

// Vec3 is a position or displacement in mm.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Solid is a shape with dimensions only.
type Solid interface {
	Name() string
	// Extent returns the axis-aligned bounding box around the solid origin.
	// ok is false when the extent is unknown, as for imported meshes.
	Extent() (lo, hi Vec3, ok bool)
}

// Box is a cuboid given by half-lengths.
type Box struct {
	name                string
	HalfX, HalfY, HalfZ float64
}

func NewBox(name string, hx, hy, hz float64) (*Box, error) {
	if hx <= 0 || hy <= 0 || hz <= 0 {
		return nil, fmt.Errorf("%w: box %s half-lengths (%g, %g, %g) must be positive", ErrInvalidSolid, name, hx, hy, hz)
	}
	return &Box{name: name, HalfX: hx, HalfY: hy, HalfZ: hz}, nil
}

func (b *Box) Name() string { return b.name }

func (b *Box) Extent() (Vec3, Vec3, bool) {
	return Vec3{-b.HalfX, -b.HalfY, -b.HalfZ}, Vec3{b.HalfX, b.HalfY, b.HalfZ}, true
}

// Tubs is a cylindrical section along Z.
type Tubs struct {
	name               string
	RMin, RMax, HalfZ  float64
	StartPhi, DeltaPhi float64
}

func NewTubs(name string, rmin, rmax, halfZ, startPhi, deltaPhi float64) (*Tubs, error) {
	if rmin < 0 || rmax <= rmin || halfZ <= 0 {
		return nil, fmt.Errorf("%w: tubs %s rmin=%g rmax=%g dz=%g", ErrInvalidSolid, name, rmin, rmax, halfZ)
	}
	if deltaPhi <= 0 || deltaPhi > 2*math.Pi {
		return nil, fmt.Errorf("%w: tubs %s delta phi %g", ErrInvalidSolid, name, deltaPhi)
	}
	return &Tubs{name: name, RMin: rmin, RMax: rmax, HalfZ: halfZ, StartPhi: startPhi, DeltaPhi: deltaPhi}, nil
}

func (t *Tubs) Name() string { return t.name }

func (t *Tubs) Extent() (Vec3, Vec3, bool) {
	return Vec3{-t.RMax, -t.RMax, -t.HalfZ}, Vec3{t.RMax, t.RMax, t.HalfZ}, true
}

// Sphere is a spherical shell section.
type Sphere struct {
	name                   string
	RMin, RMax             float64
	StartPhi, DeltaPhi     float64
	StartTheta, DeltaTheta float64
}

func NewSphere(name string, rmin, rmax, startPhi, deltaPhi, startTheta, deltaTheta float64) (*Sphere, error) {
	if rmin < 0 || rmax <= rmin {
		return nil, fmt.Errorf("%w: sphere %s rmin=%g rmax=%g", ErrInvalidSolid, name, rmin, rmax)
	}
	if deltaPhi <= 0 || deltaPhi > 2*math.Pi || deltaTheta <= 0 || startTheta+deltaTheta > math.Pi+1e-12 {
		return nil, fmt.Errorf("%w: sphere %s angular range", ErrInvalidSolid, name)
	}
	return &Sphere{name: name, RMin: rmin, RMax: rmax, StartPhi: startPhi, DeltaPhi: deltaPhi,
		StartTheta: startTheta, DeltaTheta: deltaTheta}, nil
}

func (s *Sphere) Name() string { return s.name }

func (s *Sphere) Extent() (Vec3, Vec3, bool) {
	return Vec3{-s.RMax, -s.RMax, -s.RMax}, Vec3{s.RMax, s.RMax, s.RMax}, true
}

// TessellatedSolid is an imported surface mesh, kept opaque.
type TessellatedSolid struct {
	name   string
	Source string
	Size   int64
}

func (m *TessellatedSolid) Name() string { return m.name }

func (m *TessellatedSolid) Extent() (Vec3, Vec3, bool) { return Vec3{}, Vec3{}, false }
