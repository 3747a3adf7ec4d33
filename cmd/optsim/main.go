package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/bhackett1/OptSimple/internal/config"
	"github.com/bhackett1/OptSimple/internal/fsutil"
	"github.com/bhackett1/OptSimple/internal/geometry"
	"github.com/bhackett1/OptSimple/internal/report"
	"github.com/bhackett1/OptSimple/internal/session"
	"github.com/bhackett1/OptSimple/internal/store"
	"github.com/bhackett1/OptSimple/internal/version"
)

var (
	defaultsPath = flag.String("defaults", config.DefaultConfigPath, "Path to detector defaults JSON (empty for built-in defaults)")
	macroPath    = flag.String("macro", "", "Macro file to execute; when empty the detector is initialized and -events are run")
	events       = flag.Int("events", 10, "Number of events to run when no macro is given")
	seed         = flag.Uint64("seed", 1, "Random seed")
	workers      = flag.Int("workers", 1, "Number of sampling workers")
	dbPath       = flag.String("db", "", "SQLite file to record runs into (disabled when empty)")
	reportDir    = flag.String("report-dir", "", "Directory for vertex plots of the last run (disabled when empty)")
	meshPath     = flag.String("mesh", "", "Capsule mesh path (overrides the defaults file)")
	strict       = flag.Bool("strict", false, "Reject length values that produce a warning")
	reportRun    = flag.String("report-run", "", "Render reports for a stored run id from -db instead of simulating")
	listRuns     = flag.Bool("list-runs", false, "List runs stored in -db and exit")
	migrateCmd   = flag.String("migrate", "", "Run a schema action on -db and exit: up, down or status")
	showVersion  = flag.Bool("version", false, "Print version information and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("optsim %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("optsim: %v", err)
	}
}

func run(ctx context.Context) error {
	if *reportRun != "" || *listRuns || *migrateCmd != "" {
		return runStoreCommand(os.Stdout)
	}

	defaults := config.EmptyDetectorDefaults()
	if *defaultsPath != "" {
		loaded, err := config.LoadDetectorDefaults(*defaultsPath)
		switch {
		case err == nil:
			defaults = loaded
		case errors.Is(err, os.ErrNotExist) && *defaultsPath == config.DefaultConfigPath:
			log.Printf("no defaults file at %s, using built-in defaults", *defaultsPath)
		default:
			return fmt.Errorf("failed to load defaults: %w", err)
		}
	}

	opts := session.Options{
		Seed:     *seed,
		Workers:  *workers,
		Defaults: defaults,
	}
	if *meshPath != "" {
		opts.Mesh = geometry.NewFileMeshImporter(*meshPath)
	}
	if *strict {
		opts.Policy = config.RejectOnWarning
	}

	if *dbPath != "" {
		db, err := store.Open(*dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		opts.Recorder = db
	}

	s, err := session.New(opts)
	if err != nil {
		return err
	}

	if *macroPath != "" {
		if err := s.ExecuteMacro(ctx, *macroPath); err != nil {
			return err
		}
	} else {
		if err := s.Initialize(); err != nil {
			return err
		}
		if _, err := s.BeamOn(ctx, *events); err != nil {
			return err
		}
	}

	runs := s.Runs()
	if *reportDir == "" || len(runs) == 0 {
		return nil
	}
	last := runs[len(runs)-1]
	return writeReport(*reportDir, last.Run.RunID, last.Vertices)
}

func writeReport(dir, runID string, vertices []store.Vertex) error {
	fsys := fsutil.OSFileSystem{}
	paths, err := report.Histograms(fsys, vertices, dir, report.DefaultBins)
	if err != nil {
		return err
	}
	scatter := filepath.Join(dir, "vertices.html")
	if err := report.WriteScatter(fsys, scatter, runID, vertices); err != nil {
		return err
	}
	for _, p := range append(paths, scatter) {
		log.Printf("wrote %s", p)
	}
	return nil
}
