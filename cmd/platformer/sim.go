package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/bot"
	"github.com/vovakirdan/tui-platformer/internal/engine"
	"github.com/vovakirdan/tui-platformer/internal/levels"
	"github.com/vovakirdan/tui-platformer/internal/spectate"
)

var (
	flagSimLevel    string
	flagSimTicks    uint64
	flagSimInterval time.Duration
	flagSimHTTP     string
	flagSimBot      bool
	flagSimVerbose  bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless simulation",
	Long: `Run the simulation on its own clock without a terminal UI.
The autopilot walks right and jumps over walls, gaps and enemies.
Every collect, stomp and hit is logged.

With --http, spectators can follow along:
  GET /ws        websocket stream of snapshots and events
  GET /snapshot  latest snapshot as JSON

Examples:
  platformer sim
  platformer sim --level lvl01 --levels ./levels --ticks 3600
  platformer sim --interval 1ms --ticks 100000
  platformer sim --ticks 0 --http :8080   # until Ctrl+C`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagSimLevel, "level", levels.DefaultID, "Level ID to simulate")
	simCmd.Flags().Uint64Var(&flagSimTicks, "ticks", 1800, "Stop after this many ticks (0 = until interrupted)")
	simCmd.Flags().DurationVar(&flagSimInterval, "interval", 0, "Tick interval (default from config)")
	simCmd.Flags().StringVar(&flagSimHTTP, "http", "", "Serve spectator endpoints on this address")
	simCmd.Flags().BoolVar(&flagSimBot, "bot", true, "Drive the player with the autopilot")
	simCmd.Flags().BoolVar(&flagSimVerbose, "verbose", false, "Log bot decisions")
}

// simRun receives scheduler callbacks and tallies the run.
type simRun struct {
	logger   *log.Logger
	sched    *engine.Scheduler
	hub      *spectate.Hub
	maxTicks uint64

	mu      sync.Mutex
	collect int
	stomps  int
	hits    int
	last    engine.Snapshot

	done     chan struct{}
	doneOnce sync.Once
}

func (r *simRun) OnCollect(kind engine.Kind, id, sprite string) {
	r.mu.Lock()
	r.collect++
	r.mu.Unlock()
	r.logger.Info("collect", "kind", kind, "id", id, "sprite", sprite)
	if r.hub != nil {
		r.hub.OnCollect(kind, id, sprite)
	}
}

func (r *simRun) OnStomp(id string) {
	r.mu.Lock()
	r.stomps++
	r.mu.Unlock()
	r.logger.Info("stomp", "id", id)
	if r.hub != nil {
		r.hub.OnStomp(id)
	}
}

func (r *simRun) OnHit() {
	r.mu.Lock()
	r.hits++
	r.mu.Unlock()
	r.logger.Warn("hit")
	if r.hub != nil {
		r.hub.OnHit()
	}
}

func (r *simRun) OnTick(snap engine.Snapshot) {
	r.mu.Lock()
	r.last = snap
	r.mu.Unlock()

	if r.hub != nil {
		r.hub.OnTick(snap)
	}

	if flagSimBot {
		d := bot.Drive(r.sched, snap)
		if d.Jump && flagSimVerbose {
			r.logger.Debug("jump", "reason", d.Reason, "tick", snap.Tick, "x", snap.Player.X)
		}
	}

	if r.maxTicks > 0 && snap.Tick >= r.maxTicks {
		r.doneOnce.Do(func() { close(r.done) })
	}
}

func runSim(cmd *cobra.Command, args []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "sim",
	})
	if flagSimVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	lvl, err := levels.NewLoader(flagLevelDir).LoadByID(flagSimLevel)
	if err != nil {
		return err
	}
	el, err := lvl.WithSpawn(cfg.Player.SpawnX, cfg.Player.SpawnY).ToEngine()
	if err != nil {
		return err
	}
	sim, err := engine.New(el, cfg.EnginePhysics(), cfg.EngineViewport())
	if err != nil {
		return err
	}

	interval := flagSimInterval
	if interval <= 0 {
		interval = cfg.Interval()
	}
	sched := engine.NewScheduler(sim, interval)

	run := &simRun{
		logger:   logger,
		sched:    sched,
		maxTicks: flagSimTicks,
		done:     make(chan struct{}),
	}

	var srv *http.Server
	if flagSimHTTP != "" {
		run.hub = spectate.NewHub(32)
		srv = &http.Server{
			Addr:              flagSimHTTP,
			Handler:           spectate.NewHandler(run.hub, logger.WithPrefix("spectate")),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("spectator server error", "error", err)
			}
		}()
		logger.Info("spectators welcome", "address", flagSimHTTP)
	}

	logger.Info("starting simulation",
		"level", el.ID,
		"entities", len(el.Entities),
		"interval", interval,
		"ticks", flagSimTicks,
		"bot", flagSimBot,
	)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	start := time.Now()
	sched.Start(run)

	select {
	case <-run.done:
	case <-stop:
		logger.Info("interrupted")
	}
	sched.Stop()
	elapsed := time.Since(start)

	if srv != nil {
		run.hub.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}

	run.mu.Lock()
	defer run.mu.Unlock()
	p := run.last.Player
	logger.Info("simulation finished",
		"ticks", run.last.Tick,
		"elapsed", elapsed.Round(time.Millisecond),
		"collected", run.collect,
		"stomps", run.stomps,
		"hits", run.hits,
		"x", fmt.Sprintf("%.1f", p.X),
		"camera", fmt.Sprintf("%.1f", run.last.CameraX),
	)
	return nil
}
