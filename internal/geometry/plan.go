package geometry

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bhackett1/OptSimple/internal/monitoring"
)

// Plan is a built geometry. It is not modified after Build returns, except
// for the one-time sensitive detector attachment.
type Plan struct {
	variant    string
	world      *Placement
	placements []*Placement
	logicals   map[string]*LogicalVolume
	tracking   *TrackingVolumeSet
	overlaps   []string
}

func newPlan(variant string) *Plan {
	return &Plan{
		variant:  variant,
		logicals: make(map[string]*LogicalVolume),
		tracking: &TrackingVolumeSet{},
	}
}

func (p *Plan) add(pl *Placement) {
	p.placements = append(p.placements, pl)
	p.logicals[pl.Logical.Name] = pl.Logical
}

// World returns the root placement.
func (p *Plan) World() *Placement { return p.world }

// Variant is the geometry setting the plan was built from.
func (p *Plan) Variant() string { return p.variant }

// Placements returns every placement in build order, world first.
func (p *Plan) Placements() []*Placement { return slices.Clone(p.placements) }

// Placement finds a placement by name.
func (p *Plan) Placement(name string) (*Placement, bool) {
	for _, pl := range p.placements {
		if pl.Name == name {
			return pl, true
		}
	}
	return nil, false
}

// Logical finds a logical volume by name.
func (p *Plan) Logical(name string) (*LogicalVolume, bool) {
	lv, ok := p.logicals[name]
	return lv, ok
}

func (p *Plan) Tracking() *TrackingVolumeSet { return p.tracking }

// Overlaps lists the containment problems found at build time.
func (p *Plan) Overlaps() []string { return slices.Clone(p.overlaps) }

// checkOverlaps verifies that every daughter with a known extent fits inside
// its mother's extent. Problems are reported but do not fail the build.
func (p *Plan) checkOverlaps() {
	for _, pl := range p.placements {
		if pl.Mother == nil || !pl.CheckOverlaps {
			continue
		}
		lo, hi, ok := pl.Logical.Solid.Extent()
		mlo, mhi, mok := pl.Mother.Solid.Extent()
		if !ok || !mok {
			continue
		}
		lo, hi = lo.Add(pl.Translation), hi.Add(pl.Translation)
		if lo.X < mlo.X || lo.Y < mlo.Y || lo.Z < mlo.Z || hi.X > mhi.X || hi.Y > mhi.Y || hi.Z > mhi.Z {
			msg := fmt.Sprintf("%s extends outside mother volume %s", pl.Name, pl.Mother.Name)
			p.overlaps = append(p.overlaps, msg)
			monitoring.Errorf("WARNING: Checking overlaps for volume %s ... %s", pl.Name, msg)
			continue
		}
		monitoring.Logf("Checking overlaps for volume %s ... OK!", pl.Name)
	}
}

// Summary renders one line per placement.
func (p *Plan) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Geometry (%s): %d placements\n", p.variant, len(p.placements))
	for _, pl := range p.placements {
		mother := "-"
		if pl.Mother != nil {
			mother = pl.Mother.Name
		}
		fmt.Fprintf(&b, "  %-10s %-10s %-18s %-26s in %s\n",
			pl.Name, pl.Logical.Name, pl.Logical.Solid.Name(), pl.Logical.Material.Name, mother)
	}
	fmt.Fprintf(&b, "Tracking volumes: %s\n", strings.Join(p.tracking.Names(), ", "))
	return b.String()
}
