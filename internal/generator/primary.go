// Package generator produces the primary vertex of each event.
package generator

import (
	"math"

	"github.com/bhackett1/OptSimple/internal/config"
	"github.com/bhackett1/OptSimple/internal/geometry"
	"github.com/bhackett1/OptSimple/internal/monitoring"
	"github.com/bhackett1/OptSimple/internal/units"
)

// SamplingRadius is the fixed radius used by the vertex formula. It does not
// follow the configured detector radius.
const SamplingRadius = 50 * units.Centimeter

// Particle identifies a primary particle species.
type Particle struct {
	Name string
	PDG  int
	Mass float64
}

var Gamma = Particle{Name: "gamma", PDG: 22}

// Vertex is one primary particle at the start of an event. Direction is nil
// when the generator leaves it unset.
type Vertex struct {
	Particle  Particle
	Energy    float64
	Position  geometry.Vec3
	Time      float64
	Direction *geometry.Vec3
}

// Sample holds the raw quantities drawn for a vertex.
type Sample struct {
	Phi    float64
	Height float64
	U      float64
}

// Event is a simulated event and its primary vertices.
type Event struct {
	ID       int
	Vertices []Vertex
	Samples  []Sample
}

// PrimaryGenerator places one 1 MeV gamma per event.
type PrimaryGenerator struct {
	particle Particle
	energy   float64
	radius   float64
	offset   *config.Parameter[float64]
	rng      RandomSource
}

func NewPrimaryGenerator(rng RandomSource) *PrimaryGenerator {
	monitoring.Logf("Creating PGA")
	return &PrimaryGenerator{
		particle: Gamma,
		energy:   1 * units.MegaElectronVolt,
		radius:   SamplingRadius,
		offset:   config.NewGunOffset(),
		rng:      rng,
	}
}

// Offset is the gun height offset parameter. It is settable through the gun
// commands but not read by the sampling formula.
func (g *PrimaryGenerator) Offset() *config.Parameter[float64] { return g.offset }

func (g *PrimaryGenerator) Particle() Particle { return g.particle }

func (g *PrimaryGenerator) Energy() float64 { return g.energy }

// SetSource replaces the random source.
func (g *PrimaryGenerator) SetSource(rng RandomSource) { g.rng = rng }

// Draw consumes three deviates, in order phi, height, U.
func Draw(rng RandomSource, radius float64) Sample {
	return Sample{
		Phi:    math.Pi * rng.Flat(),
		Height: -radius + 2*radius*rng.Flat(),
		U:      rng.Flat(),
	}
}

// Position maps a sample to a vertex position. The same U scales both x and
// y and phi covers half a turn, so the result is not uniform over any
// volume.
func Position(s Sample, radius float64) geometry.Vec3 {
	return geometry.Vec3{
		X: s.U * radius * math.Cos(s.Phi),
		Y: s.U * radius * math.Sin(s.Phi),
		Z: s.Height,
	}
}

// Vertex builds a primary vertex from a sample.
func (g *PrimaryGenerator) Vertex(s Sample) Vertex {
	return Vertex{Particle: g.particle, Energy: g.energy, Position: Position(s, g.radius)}
}

// GeneratePrimaries appends one vertex to ev.
func (g *PrimaryGenerator) GeneratePrimaries(ev *Event) {
	s := Draw(g.rng, g.radius)
	ev.Samples = append(ev.Samples, s)
	ev.Vertices = append(ev.Vertices, g.Vertex(s))
}
