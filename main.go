package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/synapse/config"
	"github.com/pthm-cable/synapse/game"
	"github.com/pthm-cable/synapse/remote"
	"github.com/pthm-cable/synapse/renderer"
	"github.com/pthm-cable/synapse/sim"
	"github.com/pthm-cable/synapse/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without a window")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int64("max-frames", 0, "Stop after N frames (0 = unlimited)")
	record := flag.String("record", "", "Headless: write an MJPEG AVI of every frame to this path")
	snapshot := flag.String("snapshot", "", "Headless: write the final frame as PNG to this path")
	listenURL := flag.String("listen", "", "Event channel websocket URL (empty = use config)")
	noListen := flag.Bool("no-listen", false, "Disable the event channel listener")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	opts := sim.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		Output:         output,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	url := cfg.Remote.URL
	if *listenURL != "" {
		url = *listenURL
	}
	listen := cfg.Remote.Enabled && !*noListen && url != ""

	if *headless {
		s := sim.New(cfg, opts)
		if listen {
			go remote.NewListener(url, cfg.Remote.Backoff, s).Run(ctx)
		}

		slog.Info("starting headless simulation",
			"seed", rngSeed,
			"neurons", len(s.Network().Neurons),
			"connections", len(s.Network().Connections),
			"max_frames", *maxFrames,
			"listen", listen,
		)

		if err := runHeadless(ctx, cfg, s, *maxFrames, *record, *snapshot); err != nil {
			slog.Error("headless run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), game.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g := game.NewGame(cfg, opts)
	defer g.Unload()

	if listen {
		go remote.NewListener(url, cfg.Remote.Backoff, g.Sim()).Run(ctx)
	}

	for !rl.WindowShouldClose() && ctx.Err() == nil {
		g.Update()
		g.Draw()

		if *maxFrames > 0 && g.FrameCount() >= *maxFrames {
			slog.Info("max frames reached", "frame", g.FrameCount())
			break
		}
	}
}

// runHeadless steps the simulation at a fixed frame time until ctx is
// cancelled or maxFrames is reached. Frames are rasterized offscreen only
// when they are recorded or snapshotted.
func runHeadless(ctx context.Context, cfg *config.Config, s *sim.Simulation, maxFrames int64, recordPath, snapshotPath string) error {
	fps := cfg.Record.FPS
	if fps <= 0 {
		fps = cfg.Screen.TargetFPS
	}
	dt := 1.0 / float64(fps)

	// target stays a nil interface when nothing is rasterized; a nil
	// *ImageSurface stored in it would not compare equal to nil.
	var surf *renderer.ImageSurface
	var target renderer.Surface
	if recordPath != "" || snapshotPath != "" {
		surf = renderer.NewImageSurface(cfg.Screen.Width, cfg.Screen.Height)
		target = surf
	}

	var rec *renderer.Recorder
	if recordPath != "" {
		var err error
		rec, err = renderer.NewRecorder(recordPath, cfg.Screen.Width, cfg.Screen.Height, fps, cfg.Record.Quality)
		if err != nil {
			return err
		}
		defer rec.Close()
	}

	for ctx.Err() == nil {
		s.Frame(dt, target)
		if rec != nil {
			if err := rec.AddFrame(surf.Image()); err != nil {
				return err
			}
		}

		if maxFrames > 0 && s.FrameCount() >= maxFrames {
			slog.Info("max frames reached", "frame", s.FrameCount(), "solved", s.SolvedCount())
			break
		}
	}

	if snapshotPath != "" {
		if err := surf.SavePNG(snapshotPath); err != nil {
			return err
		}
		slog.Info("snapshot written", "path", snapshotPath)
	}
	if rec != nil {
		if err := rec.Close(); err != nil {
			return err
		}
		slog.Info("recording written", "path", recordPath, "frames", rec.Frames())
	}
	return nil
}
