// Package optics builds the optical materials used by the detector: sample
// grids, energy-indexed property tables and the name-indexed material registry.
package optics

import (
	"fmt"

	"github.com/bhackett1/OptSimple/internal/monitoring"
	"github.com/bhackett1/OptSimple/internal/units"
)

// Material names registered by BuildMaterials.
const (
	PENName          = "NE697_PEN"
	LiquidArgonName  = "LIQUID_AR"
	SodiumIodideName = "G4_SODIUM_IODIDE"
)

// BuildMaterials registers the plastic scintillator and liquid argon and
// attaches the sodium iodide optical table to the predefined material. It is
// meant to run once per registry; a second call fails with
// ErrDuplicateMaterial.
func BuildMaterials(reg *Registry) error {
	pen, err := BuildPEN()
	if err != nil {
		return fmt.Errorf("build %s: %w", PENName, err)
	}
	if err := reg.Register(pen); err != nil {
		return err
	}
	monitoring.Logf("PEN MATERIAL: %s", pen)

	lar, err := BuildLiquidArgon()
	if err != nil {
		return fmt.Errorf("build %s: %w", LiquidArgonName, err)
	}
	if err := reg.Register(lar); err != nil {
		return err
	}
	monitoring.Logf("Liquid Argon MATERIAL: %s", lar)

	nai, err := reg.FindOrBuild(SodiumIodideName)
	if err != nil {
		return err
	}
	if nai.Table != nil {
		return fmt.Errorf("%w: %s already has an optical table", ErrDuplicateMaterial, SodiumIodideName)
	}
	table, err := SodiumIodideTable()
	if err != nil {
		return fmt.Errorf("build %s table: %w", SodiumIodideName, err)
	}
	nai.SetPropertiesTable(table)
	return nil
}

// BuildPEN builds polyethylene naphthalate, a wavelength-shifting plastic
// scintillator.
func BuildPEN() (*Material, error) {
	pen := NewMaterial(PENName, 1.36*units.GramPerCm3)
	for _, c := range []struct {
		el *Element
		n  int
	}{
		{NewElement("Hydrogen", "H", 1, 1.01*units.GramPerMole), 10},
		{NewElement("Carbon", "C", 6, 12.01*units.GramPerMole), 14},
		{NewElement("Oxygen", "O", 8, 16.01*units.GramPerMole), 4},
	} {
		if err := pen.AddElementByAtoms(c.el, c.n); err != nil {
			return nil, err
		}
	}

	grid, err := NewWavelengthGrid(nm(200, 300, 400, 420, 440, 460, 480, 500, 600, 700)...)
	if err != nil {
		return nil, err
	}
	// Refractive index: generalized ellipsometry of biaxially-stretched films.
	rindex := []float64{1.8, 1.7, 1.69, 1.68, 1.67, 1.67, 1.66, 1.66, 1.64, 1.63}
	abslength := scale(units.Centimeter, 0.03, 0.03, 0.35, 3., 5.45, 6.61, 7.08, 7.15, 7.76, 19.45)
	emission := []float64{0.0, 0.0, 0.0145, 0.04221, 0.0582, 0.0542, 0.0384, 0.02381, 0.00056, 8.23e-5}

	table := NewPropertyTable(grid)
	if err := addAll(table, map[string][]float64{
		RIndex:                 rindex,
		AbsLength:              abslength,
		ScintillationComponent: emission,
		WLSAbsLength:           abslength,
		WLSComponent:           emission,
	}); err != nil {
		return nil, err
	}
	table.AddConstProperty(WLSTimeConstant, 0.5*units.Nanosecond)
	table.AddConstProperty(ScintillationYield, 5500./units.MegaElectronVolt)
	pen.SetPropertiesTable(table)
	return pen, nil
}

// BuildLiquidArgon builds liquid argon from natural isotope abundances.
func BuildLiquidArgon() (*Material, error) {
	natAr, err := NewElementFromIsotopes("natAr", "natAr",
		IsotopeFraction{&Isotope{Name: "LAr-Ar40", Z: 18, N: 40, MolarMass: 39.962 * units.GramPerMole}, 99.604 * units.Percent},
		IsotopeFraction{&Isotope{Name: "LAr-Ar38", Z: 18, N: 38, MolarMass: 37.9627 * units.GramPerMole}, 0.063 * units.Percent},
		IsotopeFraction{&Isotope{Name: "LAr-Ar36", Z: 18, N: 36, MolarMass: 35.9675 * units.GramPerMole}, 0.333 * units.Percent},
	)
	if err != nil {
		return nil, err
	}
	lar := NewMaterial(LiquidArgonName, 1.3982*units.GramPerCm3)
	if err := lar.AddElementByAtoms(natAr, 1); err != nil {
		return nil, err
	}

	grid, err := NewWavelengthGrid(nm(122.4, 127.9, 133.3, 138.7, 144.2, 155, 160.4, 209, 350.5, 459.1)...)
	if err != nil {
		return nil, err
	}
	rindex := []float64{1.48738, 1.418878, 1.37767, 1.349766, 1.329322, 1.30244, 1.293009, 1.253168, 1.230057, 1.2258}
	abslength := []float64{45.8 * units.Centimeter, 161.8 * units.Centimeter, 511. * units.Centimeter, 4500. * units.Centimeter,
		10 * units.Meter, 20 * units.Meter, 100 * units.Meter, 100 * units.Meter, 100 * units.Meter, 100 * units.Meter}
	emission := []float64{1688., 3964, 782.3, 11.7, 5.8, 0., 23.5, 0., 0., 0.}

	table := NewPropertyTable(grid)
	if err := addAll(table, map[string][]float64{
		RIndex:                 rindex,
		AbsLength:              abslength,
		ScintillationComponent: emission,
	}); err != nil {
		return nil, err
	}
	table.AddConstProperty(YieldRatio, 1.)
	table.AddConstProperty(ScintillationYield, 40000./units.MegaElectronVolt)
	lar.SetPropertiesTable(table)
	return lar, nil
}

// SodiumIodideTable returns the flat two-point optical table for NaI.
func SodiumIodideTable() (*PropertyTable, error) {
	grid, err := NewEnergyGrid(2*units.ElectronVolt, 5*units.ElectronVolt)
	if err != nil {
		return nil, err
	}
	table := NewPropertyTable(grid)
	if err := addAll(table, map[string][]float64{
		RIndex:                 {1.85, 1.85},
		AbsLength:              {1000. * units.Meter, 1000. * units.Meter},
		ScintillationComponent: {1.0, 1.0},
	}); err != nil {
		return nil, err
	}
	table.AddConstProperty(ScintillationYield, 38./units.MegaElectronVolt)
	table.AddConstProperty(FastTimeConstant, 250.*units.Nanosecond)
	table.AddConstProperty(FastScintillationRiseTime, 0.5*units.Microsecond)
	table.AddConstProperty(YieldRatio, 1.)
	table.AddConstProperty(ResolutionScale, 1.)
	return table, nil
}

func addAll(t *PropertyTable, props map[string][]float64) error {
	for _, name := range sortedKeys(props) {
		if err := t.AddProperty(name, props[name]); err != nil {
			return err
		}
	}
	return nil
}

func nm(vs ...float64) []float64 { return scale(units.Nanometer, vs...) }

func scale(unit float64, vs ...float64) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = v * unit
	}
	return out
}
