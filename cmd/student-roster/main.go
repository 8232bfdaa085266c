// main is the entry point of the student roster manager.
//
// STARTUP SEQUENCE:
//
//  1. Load configuration (YAML file optional, defaults otherwise)
//  2. Initialise the logger
//  3. Open the storage backend named in the config
//  4. Register the menu entries
//  5. Run the menu loop until the user exits or presses Ctrl+C
//
// RUNNING:
//
//	go run ./cmd/student-roster
//
// or with an explicit config:
//
//	go run ./cmd/student-roster --config=config/local.yaml
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aanand-mishra/student-roster/internal/config"
	"github.com/aanand-mishra/student-roster/internal/menu"
	"github.com/aanand-mishra/student-roster/internal/menu/handlers/student"
	"github.com/aanand-mishra/student-roster/internal/roster"
	"github.com/aanand-mishra/student-roster/internal/storage"
	"github.com/aanand-mishra/student-roster/internal/storage/jsonfile"
	"github.com/aanand-mishra/student-roster/internal/storage/sqlite"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// Logs go to stderr so they never interleave with the menu on stdout.
	log := setupLogger(cfg.Env)

	log.Debug("starting student-roster",
		slog.String("env", cfg.Env),
		slog.String("backend", cfg.StorageBackend),
		slog.String("path", cfg.StoragePath),
	)

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	// The rest of the program only sees the storage.Storage interface.
	st, err := openStorage(cfg)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer st.Close()

	store := roster.New(st, log)

	// ── 4. Register Menu Entries ──────────────────────────────────────────
	//   1 → add      2 → view      3 → search
	//   4 → remove   5 → summary   6 → exit
	m := menu.New(menu.NewConsole(os.Stdin, os.Stdout), store, log)

	m.Handle("1", "Add Student", student.Add(store))
	m.Handle("2", "View Students", student.View())
	m.Handle("3", "Search Student", student.Search())
	m.Handle("4", "Remove Student", student.Remove(store))
	m.Handle("5", "Summary", student.Summary())
	m.HandleExit("6", "Exit")

	// ── 5. Run Until Exit or Interrupt ────────────────────────────────────
	// Ctrl+C (SIGINT) or SIGTERM cancels ctx; the menu then prints its
	// farewell and returns instead of the process dying mid-prompt.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m.Run(ctx)
}

// openStorage builds the backend selected by cfg.StorageBackend.
func openStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.StorageBackend {
	case config.BackendSQLite:
		db, err := sqlite.New(cfg.StoragePath)
		if err != nil {
			return nil, err
		}
		return db, nil
	case config.BackendJSON:
		return jsonfile.New(cfg.StoragePath), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
