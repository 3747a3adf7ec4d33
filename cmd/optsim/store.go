package main

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/bhackett1/OptSimple/internal/store"
)

// runStoreCommand serves the -migrate, -list-runs and -report-run modes,
// which work on an existing database without simulating.
func runStoreCommand(w io.Writer) error {
	if *dbPath == "" {
		return fmt.Errorf("-db is required with -migrate, -list-runs and -report-run")
	}
	if *migrateCmd != "" {
		db, err := store.OpenWithoutMigrations(*dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		return runMigrate(w, db, *migrateCmd)
	}

	db, err := store.Open(*dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	switch {
	case *listRuns:
		return printRuns(w, db)
	default:
		return replayReport(db, *reportRun, *reportDir)
	}
}

func runMigrate(w io.Writer, db *store.DB, action string) error {
	switch action {
	case "up":
		if err := db.MigrateUp(); err != nil {
			return err
		}
	case "down":
		if err := db.MigrateDown(); err != nil {
			return err
		}
	case "status":
	default:
		return fmt.Errorf("unknown migrate action %q (want up, down or status)", action)
	}
	version, dirty, err := db.MigrateVersion()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "schema version %d (dirty=%t)\n", version, dirty)
	return nil
}

func printRuns(w io.Writer, db *store.DB) error {
	runs, err := db.ListRuns()
	if err != nil {
		return err
	}
	for _, r := range runs {
		state := "running"
		if r.FinishedAt != nil {
			state = "finished"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\tevents=%d\tseed=%d\t%s\n",
			r.RunID, time.Unix(0, r.StartedAt).UTC().Format(time.RFC3339), r.Geometry, r.EventCount, r.Seed, state)
	}
	return nil
}

func replayReport(db *store.DB, runID, dir string) error {
	if dir == "" {
		return fmt.Errorf("-report-dir is required with -report-run")
	}
	r, err := db.GetRun(runID)
	if err != nil {
		return err
	}
	vertices, err := db.ListVertices(r.RunID)
	if err != nil {
		return err
	}
	log.Printf("replaying run %s: %d vertices (%s)", r.RunID, len(vertices), r.Geometry)
	return writeReport(dir, r.RunID, vertices)
}
