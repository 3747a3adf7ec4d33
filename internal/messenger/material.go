package messenger

import (
	"github.com/bhackett1/OptSimple/internal/config"
	"github.com/bhackett1/OptSimple/internal/monitoring"
	"github.com/bhackett1/OptSimple/internal/uicmd"
)

const (
	MaterialDir       = Root + "material/"
	DetMaterialPath   = MaterialDir + "det_material"
	WorldMaterialPath = MaterialDir + "world_material"
)

// Material handles the det_material and world_material commands. Names are
// not checked against the registry; unknown names fail at geometry build.
type Material struct {
	cfg *config.DetectorConfig

	detMaterial   *uicmd.Command
	worldMaterial *uicmd.Command
}

func NewMaterial(m *uicmd.Manager, cfg *config.DetectorConfig) (*Material, error) {
	mm := &Material{cfg: cfg}
	if _, err := m.AddDirectory(MaterialDir, "Change material of detector."); err != nil {
		return nil, err
	}

	mm.detMaterial = uicmd.NewString(DetMaterialPath, "material").
		WithGuidance("Set the detector shell material.").
		WithDefault(cfg.GetDetMaterial()).
		AvailableIn(uicmd.PreInit, uicmd.Idle)
	mm.worldMaterial = uicmd.NewString(WorldMaterialPath, "material").
		WithGuidance("Set the world material.").
		WithDefault(cfg.GetWorldMaterial()).
		AvailableIn(uicmd.PreInit, uicmd.Idle)

	for _, c := range []*uicmd.Command{mm.detMaterial, mm.worldMaterial} {
		if err := m.Register(c, mm); err != nil {
			return nil, err
		}
	}
	return mm, nil
}

func (mm *Material) SetNewValue(cmd *uicmd.Command, value string) error {
	switch cmd {
	case mm.detMaterial:
		mm.cfg.SetDetMaterial(value)
		monitoring.Logf("Detector material set to %s", value)
	case mm.worldMaterial:
		mm.cfg.SetWorldMaterial(value)
		monitoring.Logf("World material set to %s", value)
	}
	return nil
}
