package optics

import "fmt"

// Predefined element data: Z and molar mass in g/mole.
var catalogElements = map[string]struct {
	name      string
	z         float64
	molarMass float64
}{
	"H":  {"Hydrogen", 1, 1.00794},
	"C":  {"Carbon", 6, 12.0107},
	"N":  {"Nitrogen", 7, 14.0067},
	"O":  {"Oxygen", 8, 15.9994},
	"Na": {"Sodium", 11, 22.98977},
	"Ar": {"Argon", 18, 39.948},
	"Ge": {"Germanium", 32, 72.64},
	"I":  {"Iodine", 53, 126.90447},
}

type catalogEntry struct {
	density float64
	atoms   []atomCount
	mass    []massFraction
}

type atomCount struct {
	symbol string
	n      int
}

type massFraction struct {
	symbol   string
	fraction float64
}

// Predefined materials that can be built on demand by name.
var catalog = map[string]catalogEntry{
	"G4_AIR": {density: 0.00120479, mass: []massFraction{
		{"C", 0.000124}, {"N", 0.755268}, {"O", 0.231781}, {"Ar", 0.012827},
	}},
	"G4_Galactic":                {density: 1e-25, atoms: []atomCount{{"H", 1}}},
	"G4_Ge":                      {density: 5.323, atoms: []atomCount{{"Ge", 1}}},
	"G4_SODIUM_IODIDE":           {density: 3.667, atoms: []atomCount{{"I", 1}, {"Na", 1}}},
	"G4_WATER":                   {density: 1.0, atoms: []atomCount{{"H", 2}, {"O", 1}}},
	"G4_PLASTIC_SC_VINYLTOLUENE": {density: 1.032, atoms: []atomCount{{"C", 9}, {"H", 10}}},
}

// CatalogNames lists the predefined material names, sorted.
func CatalogNames() []string {
	return sortedKeys(catalog)
}

// CatalogElement builds a predefined element by symbol.
func CatalogElement(symbol string) (*Element, error) {
	e, ok := catalogElements[symbol]
	if !ok {
		return nil, fmt.Errorf("unknown element %q", symbol)
	}
	return NewElement(e.name, symbol, e.z, e.molarMass), nil
}

func buildCatalogMaterial(name string) (*Material, bool, error) {
	entry, ok := catalog[name]
	if !ok {
		return nil, false, nil
	}
	m := NewMaterial(name, entry.density)
	for _, a := range entry.atoms {
		el, err := CatalogElement(a.symbol)
		if err != nil {
			return nil, true, err
		}
		if err := m.AddElementByAtoms(el, a.n); err != nil {
			return nil, true, err
		}
	}
	for _, f := range entry.mass {
		el, err := CatalogElement(f.symbol)
		if err != nil {
			return nil, true, err
		}
		if err := m.AddElementByMass(el, f.fraction); err != nil {
			return nil, true, err
		}
	}
	return m, true, nil
}
