// Package session hosts the detector: it owns the command manager, the
// application state and the run loop that drives the primary generator.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/bhackett1/OptSimple/internal/config"
	"github.com/bhackett1/OptSimple/internal/detector"
	"github.com/bhackett1/OptSimple/internal/generator"
	"github.com/bhackett1/OptSimple/internal/geometry"
	"github.com/bhackett1/OptSimple/internal/messenger"
	"github.com/bhackett1/OptSimple/internal/monitoring"
	"github.com/bhackett1/OptSimple/internal/optics"
	"github.com/bhackett1/OptSimple/internal/store"
	"github.com/bhackett1/OptSimple/internal/timeutil"
	"github.com/bhackett1/OptSimple/internal/uicmd"
)

var (
	ErrNotInitialized = errors.New("run manager not initialized")
	ErrInvalidEvents  = errors.New("number of events must not be negative")
)

// Recorder persists runs. *store.DB satisfies it.
type Recorder interface {
	InsertRun(run *store.Run) error
	InsertVertices(vertices []store.Vertex) error
	FinishRun(runID string, events int) error
}

type Options struct {
	// Seed and Workers select the random streams. Workers > 1 samples all
	// events of a run concurrently before they are processed in order.
	Seed    uint64
	Workers int

	Mesh     geometry.MeshImporter
	Defaults *config.DetectorDefaults
	Policy   config.WarningPolicy
	Recorder Recorder
	Clock    timeutil.Clock
}

// RunResult is the outcome of one beamOn.
type RunResult struct {
	Run      store.Run
	Events   []generator.Event
	Vertices []store.Vertex
}

type Session struct {
	opts         Options
	mgr          *uicmd.Manager
	construction *detector.Construction
	gen          *generator.PrimaryGenerator
	messengers   *messenger.Set

	initialized   bool
	geometryDirty bool
	runs          []*RunResult
}

// New creates a session in the PreInit state with every detector and host
// command registered.
func New(opts Options) (*Session, error) {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Clock == nil {
		opts.Clock = timeutil.RealClock{}
	}
	if opts.Mesh == nil {
		path := geometry.DefaultCapsulePath
		if opts.Defaults != nil {
			path = opts.Defaults.GetMeshPath()
		}
		opts.Mesh = geometry.NewFileMeshImporter(path)
	}

	construction, err := detector.New(optics.NewRegistry(), opts.Mesh)
	if err != nil {
		return nil, err
	}
	gen := generator.NewPrimaryGenerator(generator.NewUniformSource(opts.Seed, 0))
	if opts.Defaults != nil {
		opts.Defaults.ApplyTo(construction.Config())
		gen.Offset().Set(opts.Defaults.GetGunOffset())
	}

	s := &Session{
		opts:         opts,
		mgr:          uicmd.NewManager(),
		construction: construction,
		gen:          gen,
	}
	if s.messengers, err = messenger.RegisterAll(s.mgr, construction.Config(), gen.Offset()); err != nil {
		return nil, err
	}
	s.messengers.SetWarningPolicy(opts.Policy)
	if err := s.registerHostCommands(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) Manager() *uicmd.Manager { return s.mgr }

func (s *Session) State() uicmd.State { return s.mgr.State() }

func (s *Session) Construction() *detector.Construction { return s.construction }

func (s *Session) Generator() *generator.PrimaryGenerator { return s.gen }

// Runs returns the completed runs in order.
func (s *Session) Runs() []*RunResult { return append([]*RunResult(nil), s.runs...) }

// GeometryDirty reports whether a rebuild is pending for the next run.
func (s *Session) GeometryDirty() bool { return s.geometryDirty }

// Apply executes one command line.
func (s *Session) Apply(line string) error { return s.mgr.Apply(line) }

// ExecuteMacro runs a macro file through the command manager.
func (s *Session) ExecuteMacro(ctx context.Context, path string) error {
	return s.mgr.ExecuteMacroFile(ctx, path)
}

// Initialize constructs the geometry and attaches the sensitive detector,
// then moves to Idle. Repeated calls rebuild only when a reinitialize was
// requested.
func (s *Session) Initialize() error {
	if s.initialized && !s.geometryDirty {
		return nil
	}
	if err := s.buildGeometry(); err != nil {
		return err
	}
	s.initialized = true
	s.mgr.SetState(uicmd.Idle)
	return nil
}

// ReinitializeGeometry marks the geometry for rebuild at the next run or
// initialize.
func (s *Session) ReinitializeGeometry() {
	s.geometryDirty = true
	monitoring.Logf("Geometry will be rebuilt before the next run")
}

func (s *Session) buildGeometry() error {
	if _, err := s.construction.Construct(); err != nil {
		return fmt.Errorf("construct geometry: %w", err)
	}
	if _, err := s.construction.ConstructSDandField(); err != nil {
		return fmt.Errorf("construct sensitive detector: %w", err)
	}
	s.geometryDirty = false
	if s.mgr.Verbose() > 0 {
		monitoring.Logf("%s", s.construction.Plan().Summary())
	}
	return nil
}

// BeamOn runs n events. The state is GeomClosed while the geometry is
// prepared, EventProc while events are processed and Idle afterwards.
func (s *Session) BeamOn(ctx context.Context, n int) (*RunResult, error) {
	if !s.initialized {
		return nil, ErrNotInitialized
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidEvents, n)
	}
	defer s.mgr.SetState(uicmd.Idle)

	start := s.opts.Clock.Now()
	s.mgr.SetState(uicmd.GeomClosed)
	if s.geometryDirty {
		if err := s.buildGeometry(); err != nil {
			return nil, err
		}
	}

	cfg := s.construction.Config()
	result := &RunResult{Run: store.Run{
		RunID:     uuid.New().String(),
		Seed:      s.opts.Seed,
		Workers:   s.opts.Workers,
		Geometry:  cfg.GetGeometry(),
		Settings:  cfg.Snapshot(),
		GunOffset: s.gen.Offset().Get(),
	}}
	if s.opts.Recorder != nil {
		if err := s.opts.Recorder.InsertRun(&result.Run); err != nil {
			return nil, err
		}
	}

	var presampled []generator.Sample
	if s.opts.Workers > 1 {
		var err error
		presampled, err = generator.SampleSharded(ctx, s.opts.Seed+uint64(len(s.runs)), s.opts.Workers, n, generator.SamplingRadius)
		if err != nil {
			return nil, err
		}
	}

	s.mgr.SetState(uicmd.EventProc)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ev := generator.Event{ID: i}
		if presampled != nil {
			sample := presampled[i]
			ev.Samples = append(ev.Samples, sample)
			ev.Vertices = append(ev.Vertices, s.gen.Vertex(sample))
		} else {
			s.gen.GeneratePrimaries(&ev)
		}
		result.Events = append(result.Events, ev)
		result.Vertices = append(result.Vertices, storeVertices(result.Run.RunID, ev)...)
	}
	result.Run.EventCount = n

	if s.opts.Recorder != nil {
		if err := s.opts.Recorder.InsertVertices(result.Vertices); err != nil {
			return nil, err
		}
		if err := s.opts.Recorder.FinishRun(result.Run.RunID, n); err != nil {
			return nil, err
		}
	}
	s.runs = append(s.runs, result)
	monitoring.Logf("Run %d terminated: %d events processed in %s", len(s.runs)-1, n, s.opts.Clock.Since(start))
	return result, nil
}

func storeVertices(runID string, ev generator.Event) []store.Vertex {
	out := make([]store.Vertex, 0, len(ev.Vertices))
	for i, v := range ev.Vertices {
		sv := store.Vertex{
			RunID:    runID,
			EventID:  ev.ID,
			Particle: v.Particle.Name,
			Energy:   v.Energy,
			X:        v.Position.X,
			Y:        v.Position.Y,
			Z:        v.Position.Z,
		}
		if i < len(ev.Samples) {
			sv.Phi, sv.Height, sv.U = ev.Samples[i].Phi, ev.Samples[i].Height, ev.Samples[i].U
		}
		out = append(out, sv)
	}
	return out
}

func parseEvents(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", uicmd.ErrParameterUnreadable, value)
	}
	return n, nil
}
