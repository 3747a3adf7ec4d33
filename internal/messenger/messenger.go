// Package messenger binds the /ne697/ command namespace to detector and gun
// parameters. Each messenger registers its commands with a uicmd.Manager and
// writes accepted values straight into the parameters it was handed.
package messenger

import (
	"fmt"

	"github.com/bhackett1/OptSimple/internal/config"
	"github.com/bhackett1/OptSimple/internal/monitoring"
	"github.com/bhackett1/OptSimple/internal/uicmd"
	"github.com/bhackett1/OptSimple/internal/units"
)

// Root is the top-level command directory.
const Root = "/ne697/"

// applyLength parses a normalized "<value> <unit>" string into p. A rule
// warning is reported at error level; whether the value is still stored is
// decided by policy. It returns the stored value and whether it was stored.
func applyLength(p *config.Parameter[float64], value string, policy config.WarningPolicy) (float64, bool, error) {
	v, err := units.ParseLength(value)
	if err != nil {
		return 0, false, err
	}
	res, stored := p.Apply(v, policy)
	if res.IsWarning() {
		monitoring.Errorf("Error: %s", res.Reason)
	}
	return v, stored, nil
}

// Set is the full group of detector messengers.
type Set struct {
	Geometry *Geometry
	Material *Material
	Gun      *Gun
}

// RegisterAll creates the geometry, material and gun messengers on m.
func RegisterAll(m *uicmd.Manager, cfg *config.DetectorConfig, gunOffset *config.Parameter[float64]) (*Set, error) {
	if _, err := m.AddDirectory(Root, "NE697 detector commands."); err != nil {
		return nil, err
	}
	geo, err := NewGeometry(m, cfg)
	if err != nil {
		return nil, fmt.Errorf("geometry messenger: %w", err)
	}
	mat, err := NewMaterial(m, cfg)
	if err != nil {
		return nil, fmt.Errorf("material messenger: %w", err)
	}
	gun, err := NewGun(m, gunOffset)
	if err != nil {
		return nil, fmt.Errorf("gun messenger: %w", err)
	}
	return &Set{Geometry: geo, Material: mat, Gun: gun}, nil
}

// SetWarningPolicy applies p to every length command.
func (s *Set) SetWarningPolicy(p config.WarningPolicy) {
	s.Geometry.SetWarningPolicy(p)
	s.Gun.SetWarningPolicy(p)
}
