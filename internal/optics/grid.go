package optics

import (
	"fmt"

	"github.com/bhackett1/OptSimple/internal/units"
)

var (
	// ErrNonMonotonicGrid is returned for sample grids that are not strictly
	// monotonic in wavelength (and hence in photon energy).
	ErrNonMonotonicGrid = fmt.Errorf("grid is not strictly monotonic")
	// ErrLengthMismatch is returned when a value array does not match its grid.
	ErrLengthMismatch = fmt.Errorf("value count does not match grid")
)

// Grid is the spectral sample grid shared by every energy-indexed property of
// one material. Energies are held in ascending order; when the grid was given
// as ascending wavelengths, value arrays are reversed along with it.
type Grid struct {
	energies    []float64
	wavelengths []float64
	reversed    bool
}

// NewWavelengthGrid builds a grid from wavelengths in internal length units
// using E = hc/λ.
func NewWavelengthGrid(wavelengths ...float64) (*Grid, error) {
	energies := make([]float64, len(wavelengths))
	for i, w := range wavelengths {
		if w <= 0 {
			return nil, fmt.Errorf("wavelength %d must be positive, got %g", i, w)
		}
		energies[i] = units.PhotonEnergy(w)
	}
	return newGrid(energies, append([]float64(nil), wavelengths...))
}

// NewEnergyGrid builds a grid from photon energies in internal energy units.
func NewEnergyGrid(energies ...float64) (*Grid, error) {
	wavelengths := make([]float64, len(energies))
	for i, e := range energies {
		if e <= 0 {
			return nil, fmt.Errorf("energy %d must be positive, got %g", i, e)
		}
		wavelengths[i] = units.Wavelength(e)
	}
	return newGrid(append([]float64(nil), energies...), wavelengths)
}

func newGrid(energies, wavelengths []float64) (*Grid, error) {
	if len(energies) < 2 {
		return nil, fmt.Errorf("grid needs at least 2 samples, got %d", len(energies))
	}
	ascending := energies[1] > energies[0]
	for i := 1; i < len(energies); i++ {
		if (energies[i] > energies[i-1]) != ascending || energies[i] == energies[i-1] {
			return nil, fmt.Errorf("%w: sample %d", ErrNonMonotonicGrid, i)
		}
	}
	g := &Grid{energies: energies, wavelengths: wavelengths, reversed: !ascending}
	if g.reversed {
		reverse(g.energies)
		reverse(g.wavelengths)
	}
	return g, nil
}

// Len returns the number of samples.
func (g *Grid) Len() int { return len(g.energies) }

// Energies returns the photon energies in ascending order.
func (g *Grid) Energies() []float64 { return append([]float64(nil), g.energies...) }

// Wavelengths returns the wavelengths in the same order as Energies, i.e.
// descending.
func (g *Grid) Wavelengths() []float64 { return append([]float64(nil), g.wavelengths...) }

// order returns values aligned with Energies.
func (g *Grid) order(values []float64) ([]float64, error) {
	if len(values) != len(g.energies) {
		return nil, fmt.Errorf("%w: %d values for %d samples", ErrLengthMismatch, len(values), len(g.energies))
	}
	out := append([]float64(nil), values...)
	if g.reversed {
		reverse(out)
	}
	return out, nil
}

func reverse(s []float64) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
