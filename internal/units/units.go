// Package units provides the internal unit system and value-with-unit parsing
// shared by configuration, commands and material tables.
//
// Internal units: millimetre, MeV, nanosecond, radian, g/cm3, g/mole.
package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Length
const (
	Nanometer  = 1e-6
	Micrometer = 1e-3
	Millimeter = 1.0
	Centimeter = 10.0
	Meter      = 1000.0
	Kilometer  = 1e6
)

// Energy
const (
	ElectronVolt     = 1e-6
	KiloElectronVolt = 1e-3
	MegaElectronVolt = 1.0
	GigaElectronVolt = 1e3
)

// Time
const (
	Nanosecond  = 1.0
	Microsecond = 1e3
	Millisecond = 1e6
	Second      = 1e9
)

// Angle
const (
	Radian = 1.0
	Degree = math.Pi / 180.0
)

// Density and molar mass are kept in g/cm3 and g/mole directly.
const (
	GramPerCm3  = 1.0
	GramPerMole = 1.0
	Percent     = 0.01
)

// HC is Planck's constant times the speed of light in eV·nm.
const HC = 1239.8

// Unit categories
const (
	Length = "Length"
	Energy = "Energy"
	Time   = "Time"
	Angle  = "Angle"
)

// Unit is one named symbol of a category.
type Unit struct {
	Symbol string
	Factor float64
}

// Symbols within a category are listed in ascending factor order.
var categories = map[string][]Unit{
	Length: {
		{"nm", Nanometer},
		{"um", Micrometer},
		{"mm", Millimeter},
		{"cm", Centimeter},
		{"m", Meter},
		{"km", Kilometer},
	},
	Energy: {
		{"eV", ElectronVolt},
		{"keV", KiloElectronVolt},
		{"MeV", MegaElectronVolt},
		{"GeV", GigaElectronVolt},
	},
	Time: {
		{"ns", Nanosecond},
		{"us", Microsecond},
		{"ms", Millisecond},
		{"s", Second},
	},
	Angle: {
		{"deg", Degree},
		{"rad", Radian},
	},
}

// IsValid checks if the given symbol belongs to the category.
func IsValid(category, symbol string) bool {
	_, ok := Factor(category, symbol)
	return ok
}

// Factor returns the internal-unit factor of symbol within category.
func Factor(category, symbol string) (float64, bool) {
	for _, u := range categories[category] {
		if u.Symbol == symbol {
			return u.Factor, true
		}
	}
	return 0, false
}

// GetValidUnitsString returns a space-separated list of the category's symbols,
// the form the command layer uses as unit candidates.
func GetValidUnitsString(category string) string {
	us := categories[category]
	symbols := make([]string, len(us))
	for i, u := range us {
		symbols[i] = u.Symbol
	}
	return strings.Join(symbols, " ")
}

// ParseValueWithUnit parses "<number> [unit]" into internal units. A missing
// unit falls back to defaultUnit.
func ParseValueWithUnit(text, category, defaultUnit string) (float64, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 || len(fields) > 2 {
		return 0, fmt.Errorf("expected \"<value> [unit]\", got %q", text)
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", fields[0], err)
	}
	symbol := defaultUnit
	if len(fields) == 2 {
		symbol = fields[1]
	}
	factor, ok := Factor(category, symbol)
	if !ok {
		return 0, fmt.Errorf("unknown %s unit %q (valid: %s)", strings.ToLower(category), symbol, GetValidUnitsString(category))
	}
	return v * factor, nil
}

// ParseLength is ParseValueWithUnit for lengths with a millimetre default.
func ParseLength(text string) (float64, error) {
	return ParseValueWithUnit(text, Length, "mm")
}

// BestUnit renders value using the largest unit of the category that keeps the
// magnitude at or above one, e.g. 500 mm -> "50 cm".
func BestUnit(value float64, category string) string {
	us := categories[category]
	if len(us) == 0 {
		return strconv.FormatFloat(value, 'g', -1, 64)
	}
	best := us[0]
	if value == 0 {
		best = baseUnit(us)
	}
	for _, u := range us {
		if math.Abs(value) >= u.Factor {
			best = u
		}
	}
	return fmt.Sprintf("%g %s", value/best.Factor, best.Symbol)
}

func baseUnit(us []Unit) Unit {
	for _, u := range us {
		if u.Factor == 1 {
			return u
		}
	}
	return us[0]
}

// PhotonEnergy converts a wavelength in internal length units to a photon energy
// in internal energy units.
func PhotonEnergy(wavelength float64) float64 {
	return HC / (wavelength / Nanometer) * ElectronVolt
}

// Wavelength is the inverse of PhotonEnergy.
func Wavelength(energy float64) float64 {
	return HC / (energy / ElectronVolt) * Nanometer
}
