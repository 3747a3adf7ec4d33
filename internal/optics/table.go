package optics

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/interp"
)

// Energy-indexed property names.
const (
	RIndex                 = "RINDEX"
	AbsLength              = "ABSLENGTH"
	ScintillationComponent = "SCINTILLATIONCOMPONENT1"
	WLSAbsLength           = "WLSABSLENGTH"
	WLSComponent           = "WLSCOMPONENT"
)

// Scalar property names.
const (
	ScintillationYield        = "SCINTILLATIONYIELD"
	WLSTimeConstant           = "WLSTIMECONSTANT"
	YieldRatio                = "YIELDRATIO"
	FastTimeConstant          = "FASTTIMECONSTANT"
	FastScintillationRiseTime = "FASTSCINTILLATIONRISETIME"
	ResolutionScale           = "RESOLUTIONSCALE"
)

// Property is one energy-indexed property sampled on its table's grid.
type Property struct {
	Name     string
	Energies []float64
	Values   []float64

	pl *interp.PiecewiseLinear
}

// Len returns the number of samples.
func (p *Property) Len() int { return len(p.Energies) }

// Value interpolates linearly between samples. ok is false outside the grid.
func (p *Property) Value(energy float64) (v float64, ok bool) {
	if energy < p.Energies[0] || energy > p.Energies[len(p.Energies)-1] {
		return 0, false
	}
	return p.pl.Predict(energy), true
}

// PropertyTable maps property names to energy-indexed samples and scalar
// constants. Every energy-indexed property is bound to the table's grid.
type PropertyTable struct {
	grid   *Grid
	props  map[string]*Property
	consts map[string]float64
}

// NewPropertyTable creates an empty table over grid.
func NewPropertyTable(grid *Grid) *PropertyTable {
	return &PropertyTable{
		grid:   grid,
		props:  make(map[string]*Property),
		consts: make(map[string]float64),
	}
}

// Grid returns the table's sample grid.
func (t *PropertyTable) Grid() *Grid { return t.grid }

// AddProperty attaches values sampled on the table grid. values are given in
// the grid's original order (the order its wavelengths were listed).
func (t *PropertyTable) AddProperty(name string, values []float64) error {
	if name == "" {
		return fmt.Errorf("property name must not be empty")
	}
	ordered, err := t.grid.order(values)
	if err != nil {
		return fmt.Errorf("property %s: %w", name, err)
	}
	p := &Property{
		Name:     name,
		Energies: t.grid.Energies(),
		Values:   ordered,
		pl:       &interp.PiecewiseLinear{},
	}
	if err := p.pl.Fit(p.Energies, p.Values); err != nil {
		return fmt.Errorf("property %s: %w", name, err)
	}
	t.props[name] = p
	return nil
}

// AddConstProperty sets a scalar property in internal units.
func (t *PropertyTable) AddConstProperty(name string, value float64) {
	t.consts[name] = value
}

// Property returns the named energy-indexed property.
func (t *PropertyTable) Property(name string) (*Property, bool) {
	p, ok := t.props[name]
	return p, ok
}

// ConstProperty returns the named scalar property.
func (t *PropertyTable) ConstProperty(name string) (float64, bool) {
	v, ok := t.consts[name]
	return v, ok
}

// PropertyNames returns the energy-indexed property names, sorted.
func (t *PropertyTable) PropertyNames() []string {
	return sortedKeys(t.props)
}

// ConstPropertyNames returns the scalar property names, sorted.
func (t *PropertyTable) ConstPropertyNames() []string {
	return sortedKeys(t.consts)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
