package optics

import (
	"fmt"
	"math"
	"strings"
)

// Isotope is a nuclide with its molar mass in g/mole.
type Isotope struct {
	Name      string
	Z         int
	N         int
	MolarMass float64
}

// IsotopeFraction is an isotope together with its relative abundance.
type IsotopeFraction struct {
	Isotope   *Isotope
	Abundance float64
}

// Element is a chemical element, optionally resolved into isotopes.
type Element struct {
	Name      string
	Symbol    string
	Z         float64
	MolarMass float64
	Isotopes  []IsotopeFraction
}

// NewElement defines an element from its effective atomic number and molar mass.
func NewElement(name, symbol string, z, molarMass float64) *Element {
	return &Element{Name: name, Symbol: symbol, Z: z, MolarMass: molarMass}
}

// NewElementFromIsotopes defines an element from isotope abundances. All
// isotopes must share one Z; abundances are normalised to their sum.
func NewElementFromIsotopes(name, symbol string, isotopes ...IsotopeFraction) (*Element, error) {
	if len(isotopes) == 0 {
		return nil, fmt.Errorf("element %s: no isotopes", name)
	}
	z := isotopes[0].Isotope.Z
	var total, mass float64
	for _, f := range isotopes {
		if f.Isotope.Z != z {
			return nil, fmt.Errorf("element %s: isotope %s has Z=%d, want %d", name, f.Isotope.Name, f.Isotope.Z, z)
		}
		if f.Abundance <= 0 {
			return nil, fmt.Errorf("element %s: isotope %s abundance must be positive", name, f.Isotope.Name)
		}
		total += f.Abundance
		mass += f.Abundance * f.Isotope.MolarMass
	}
	return &Element{
		Name:      name,
		Symbol:    symbol,
		Z:         float64(z),
		MolarMass: mass / total,
		Isotopes:  append([]IsotopeFraction(nil), isotopes...),
	}, nil
}

// Component is one element of a material, by atom count or by mass fraction.
type Component struct {
	Element      *Element
	Atoms        int
	MassFraction float64
}

type compositionMode int

const (
	byNone compositionMode = iota
	byAtoms
	byMass
)

// Material is a named medium with density in g/cm3 and an optional optical
// property table.
type Material struct {
	Name       string
	Density    float64
	Components []Component
	Table      *PropertyTable

	mode compositionMode
}

// NewMaterial creates a material with no components.
func NewMaterial(name string, density float64) *Material {
	return &Material{Name: name, Density: density}
}

// AddElementByAtoms adds el with n atoms per formula unit.
func (m *Material) AddElementByAtoms(el *Element, n int) error {
	if m.mode == byMass {
		return fmt.Errorf("material %s: cannot mix atom counts with mass fractions", m.Name)
	}
	if n <= 0 {
		return fmt.Errorf("material %s: atom count for %s must be positive", m.Name, el.Symbol)
	}
	m.mode = byAtoms
	m.Components = append(m.Components, Component{Element: el, Atoms: n})
	return nil
}

// AddElementByMass adds el with the given mass fraction.
func (m *Material) AddElementByMass(el *Element, fraction float64) error {
	if m.mode == byAtoms {
		return fmt.Errorf("material %s: cannot mix mass fractions with atom counts", m.Name)
	}
	if fraction <= 0 || fraction > 1 {
		return fmt.Errorf("material %s: mass fraction for %s must be in (0, 1]", m.Name, el.Symbol)
	}
	m.mode = byMass
	m.Components = append(m.Components, Component{Element: el, MassFraction: fraction})
	return nil
}

// MassFractions returns the mass fraction of each element symbol.
func (m *Material) MassFractions() map[string]float64 {
	out := make(map[string]float64, len(m.Components))
	var total float64
	for _, c := range m.Components {
		w := c.MassFraction
		if m.mode == byAtoms {
			w = float64(c.Atoms) * c.Element.MolarMass
		}
		out[c.Element.Symbol] += w
		total += w
	}
	if total == 0 {
		return out
	}
	for k, v := range out {
		out[k] = v / total
	}
	return out
}

// SetPropertiesTable attaches an optical property table.
func (m *Material) SetPropertiesTable(t *PropertyTable) {
	m.Table = t
}

func (m *Material) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Material: %s density: %g g/cm3 elements: %d", m.Name, m.Density, len(m.Components))
	fractions := m.MassFractions()
	for _, c := range m.Components {
		fmt.Fprintf(&b, " [%s Z=%g A=%.4f g/mole w=%.2f%%]", c.Element.Symbol, c.Element.Z, c.Element.MolarMass,
			math.Round(fractions[c.Element.Symbol]*1e4)/100)
	}
	return b.String()
}
