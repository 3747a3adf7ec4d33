package session

import (
	"context"
	"strconv"

	"github.com/bhackett1/OptSimple/internal/uicmd"
)

const (
	RunDir     = "/run/"
	ControlDir = "/control/"

	InitializePath     = "/run/initialize"
	BeamOnPath         = "/run/beamOn"
	ReinitGeometryPath = "/run/reinitializeGeometry"
	ExecutePath        = "/control/execute"
	VerbosePath        = "/control/verbose"
)

// hostMessenger serves the /run/ and /control/ commands.
type hostMessenger struct {
	s *Session
}

func (s *Session) registerHostCommands() error {
	if _, err := s.mgr.AddDirectory(RunDir, "Run control commands."); err != nil {
		return err
	}
	if _, err := s.mgr.AddDirectory(ControlDir, "UI control commands."); err != nil {
		return err
	}

	h := &hostMessenger{s: s}
	cmds := []*uicmd.Command{
		uicmd.NewAction(InitializePath).
			WithGuidance("Initialize the geometry and the sensitive detector.").
			AvailableIn(uicmd.PreInit, uicmd.Idle),
		uicmd.NewInt(BeamOnPath, "numberOfEvent").
			WithGuidance("Start a run with the given number of events.").
			WithDefault("1").
			AvailableIn(uicmd.Idle),
		uicmd.NewAction(ReinitGeometryPath).
			WithGuidance("Rebuild the geometry before the next run.").
			AvailableIn(uicmd.PreInit, uicmd.Idle),
		uicmd.NewString(ExecutePath, "macroFile").
			WithGuidance("Execute a macro file."),
		uicmd.NewInt(VerbosePath, "switch").
			WithGuidance("Macro echo level. 2 echoes each command.").
			WithDefault("2"),
	}
	for _, cmd := range cmds {
		if err := s.mgr.Register(cmd, h); err != nil {
			return err
		}
	}
	return nil
}

func (h *hostMessenger) SetNewValue(cmd *uicmd.Command, value string) error {
	switch cmd.Path {
	case InitializePath:
		return h.s.Initialize()
	case BeamOnPath:
		n, err := parseEvents(value)
		if err != nil {
			return err
		}
		_, err = h.s.BeamOn(context.Background(), n)
		return err
	case ReinitGeometryPath:
		h.s.ReinitializeGeometry()
	case ExecutePath:
		return h.s.mgr.ExecuteMacroFile(context.Background(), value)
	case VerbosePath:
		level, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		h.s.mgr.SetVerbose(level)
	}
	return nil
}
