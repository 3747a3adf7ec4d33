package messenger

import (
	"github.com/bhackett1/OptSimple/internal/config"
	"github.com/bhackett1/OptSimple/internal/monitoring"
	"github.com/bhackett1/OptSimple/internal/uicmd"
	"github.com/bhackett1/OptSimple/internal/units"
)

const (
	GunDir     = Root + "gun/"
	OffsetPath = GunDir + "offset"
)

// Gun handles /ne697/gun/offset.
type Gun struct {
	offset *config.Parameter[float64]
	policy config.WarningPolicy

	offsetCmd *uicmd.Command
}

// NewGun registers the gun commands on m, writing into offset.
func NewGun(m *uicmd.Manager, offset *config.Parameter[float64]) (*Gun, error) {
	g := &Gun{offset: offset, policy: config.ApplyOnWarning}
	if _, err := m.AddDirectory(GunDir, "Change parameters of the particle gun."); err != nil {
		return nil, err
	}
	g.offsetCmd = uicmd.NewDoubleWithUnit(OffsetPath, "offset", units.Length, "cm").
		WithGuidance("Set the height offset of the particle gun.").
		WithDefault(units.BestUnit(offset.Get(), units.Length)).
		AvailableIn(uicmd.PreInit)
	if err := m.Register(g.offsetCmd, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Gun) SetWarningPolicy(p config.WarningPolicy) { g.policy = p }

func (g *Gun) SetNewValue(cmd *uicmd.Command, value string) error {
	if cmd != g.offsetCmd {
		return nil
	}
	v, stored, err := applyLength(g.offset, value, g.policy)
	if err != nil {
		return err
	}
	if stored {
		monitoring.Logf("Particle gun height set to: %s", units.BestUnit(v, units.Length))
	}
	return nil
}
