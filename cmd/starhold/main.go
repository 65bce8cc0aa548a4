// Command starhold runs the deterministic galaxy conquest server: one
// simulated match, an HTTP/websocket API for the renderer, and optional
// match telemetry in SQLite.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/talgya/starhold/internal/api"
	"github.com/talgya/starhold/internal/config"
	"github.com/talgya/starhold/internal/galaxy"
	"github.com/talgya/starhold/internal/history"
	"github.com/talgya/starhold/internal/sim"
)

const statsSampleInterval = 5 * time.Second

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfgPath := os.Getenv("STARHOLD_CONFIG")
	if cfgPath == "" {
		cfgPath = "starhold.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("config load failed", "path", cfgPath, "error", err)
		os.Exit(1)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint32(time.Now().UnixNano())
		slog.Info("no seed configured, using clock", "seed", seed)
	}

	// ── Match ─────────────────────────────────────────────────────────
	session := sim.NewSession(galaxy.GenConfig{
		Seed:   seed,
		Width:  cfg.GalaxyWidth,
		Height: cfg.GalaxyHeight,
	})

	// ── Telemetry ─────────────────────────────────────────────────────
	var db *history.DB
	if cfg.HistoryPath != "" {
		os.MkdirAll(filepath.Dir(cfg.HistoryPath), 0755)
		db, err = history.Open(cfg.HistoryPath)
		if err != nil {
			slog.Error("failed to open history database", "path", cfg.HistoryPath, "error", err)
			os.Exit(1)
		}
		defer db.Close()
		slog.Info("history database opened", "path", cfg.HistoryPath)

		snap := session.TakeSnapshot()
		if err := db.RecordMatch(snap.MatchID, snap.Seed); err != nil {
			slog.Error("record match failed", "error", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Event sink: OnEvent fires under the session lock, so entries go
	// through a buffered channel and a writer goroutine. Overflow drops
	// telemetry, never stalls the tick.
	type taggedEvent struct {
		matchID string
		event   sim.Event
	}
	eventCh := make(chan taggedEvent, 256)
	if db != nil {
		session.OnEvent = func(e sim.Event) {
			select {
			case eventCh <- taggedEvent{session.MatchID.String(), e}:
			default:
			}
		}
	}

	hub := api.NewHub()
	go hub.Run()

	server := &api.Server{
		Session:      session,
		Hub:          hub,
		History:      db,
		Port:         cfg.Port,
		CORSOrigins:  cfg.CORSOrigins,
		CommandRate:  cfg.CommandRate,
		CommandBurst: cfg.CommandBurst,
	}
	server.Start()

	g, ctx := errgroup.WithContext(ctx)

	// Tick driver.
	runner := &sim.Runner{Session: session, Interval: cfg.TickInterval()}
	g.Go(func() error { return runner.Run(ctx) })

	// Snapshot broadcaster for websocket viewers.
	g.Go(func() error {
		ticker := time.NewTicker(cfg.BroadcastInterval())
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				frame, err := json.Marshal(session.TakeSnapshot())
				if err != nil {
					slog.Error("snapshot marshal failed", "error", err)
					continue
				}
				hub.Broadcast(frame)
			}
		}
	})

	// Telemetry writers.
	if db != nil {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case te := <-eventCh:
					if err := db.RecordEvents(te.matchID, []sim.Event{te.event}); err != nil {
						slog.Error("record event failed", "error", err)
					}
				}
			}
		})
		g.Go(func() error {
			ticker := time.NewTicker(statsSampleInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					snap := session.TakeSnapshot()
					if err := db.RecordStats(snap.MatchID, session.SampleStats()); err != nil {
						slog.Error("record stats failed", "error", err)
					}
				}
			}
		})
	}

	slog.Info("starhold is live",
		"seed", seed,
		"port", cfg.Port,
		"systems", len(session.TakeSnapshot().Systems),
	)

	if err := g.Wait(); err != nil {
		slog.Error("shutdown with error", "error", err)
		os.Exit(1)
	}
	slog.Info("starhold stopped")
}
