package generator

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// RandomSource yields uniform deviates in [0, 1).
type RandomSource interface {
	Flat() float64
}

// UniformSource draws from a PCG stream through gonum's uniform
// distribution. Distinct stream ids under one seed are independent.
type UniformSource struct {
	dist distuv.Uniform
}

func NewUniformSource(seed, stream uint64) *UniformSource {
	return &UniformSource{dist: distuv.Uniform{Min: 0, Max: 1, Src: rand.NewPCG(seed, stream)}}
}

func (s *UniformSource) Flat() float64 { return s.dist.Rand() }

// ScriptedSource replays fixed values in order, wrapping at the end.
type ScriptedSource struct {
	values []float64
	next   int
}

func NewScriptedSource(values ...float64) *ScriptedSource {
	if len(values) == 0 {
		values = []float64{0}
	}
	return &ScriptedSource{values: values}
}

func (s *ScriptedSource) Flat() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// Draws reports how many values have been consumed.
func (s *ScriptedSource) Draws() int { return s.next }
