// Package game hosts the visualizer in a raylib window: it owns the frame
// loop, the render texture, the panels and the input handling.
package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/synapse/config"
	"github.com/pthm-cable/synapse/sim"
	"github.com/pthm-cable/synapse/telemetry"
	"github.com/pthm-cable/synapse/ui"
)

// Title is the window and HUD title.
const Title = "Synapse"

const controlsLegend = "Drag: rotate | Wheel/+/-: zoom | Space: pause | R: reset | Home: camera | F11: fullscreen"

// Game holds the window-side state around a simulation.
type Game struct {
	cfg     *config.Config
	sim     *sim.Simulation
	surface *Surface

	// UI
	hud       *ui.HUD
	controls  *ui.ControlsPanel
	stats     *ui.StatsPanel
	perfPanel *ui.PerfPanel
	overlays  *ui.OverlayRegistry
	lastStats *telemetry.WindowStats

	// Pointer drag started on the canvas, not on a panel
	dragging bool

	screenWidth  int32
	screenHeight int32
}

// NewGame creates a game around a new simulation. The window must already
// be open. opts.StatsCallback is chained, not replaced.
func NewGame(cfg *config.Config, opts sim.Options) *Game {
	g := &Game{
		cfg:          cfg,
		hud:          ui.NewHUD(),
		overlays:     ui.NewOverlayRegistry(cfg.Render.ShowHUD),
		screenWidth:  int32(cfg.Screen.Width),
		screenHeight: int32(cfg.Screen.Height),
	}

	next := opts.StatsCallback
	opts.StatsCallback = func(ws telemetry.WindowStats) {
		g.lastStats = &ws
		if next != nil {
			next(ws)
		}
	}
	g.sim = sim.New(cfg, opts)

	bg := cfg.Render.Background
	g.surface = NewSurface(g.screenWidth, g.screenHeight, rl.Color{R: bg[0], G: bg[1], B: bg[2], A: 255})

	g.controls = ui.NewControlsPanel(g.screenWidth-250, 10, 240)
	g.stats = ui.NewStatsPanel(10, 145, 260)
	g.perfPanel = ui.NewPerfPanel(g.screenWidth-250, g.controls.Height()+24)
	return g
}

// resize reallocates the render texture for a new window size and
// recenters the camera and the right-hand panels. Trails are lost.
func (g *Game) resize(width, height int32) {
	if width <= 0 || height <= 0 || (width == g.screenWidth && height == g.screenHeight) {
		return
	}
	g.screenWidth, g.screenHeight = width, height

	g.surface.Unload()
	bg := g.cfg.Render.Background
	g.surface = NewSurface(width, height, rl.Color{R: bg[0], G: bg[1], B: bg[2], A: 255})

	g.sim.Camera().Resize(float64(width), float64(height))
	g.controls.SetPosition(width-250, 10)
	g.perfPanel.SetPosition(width-250, g.controls.Height()+24)
}

// Sim returns the hosted simulation.
func (g *Game) Sim() *sim.Simulation {
	return g.sim
}

// Update handles input and advances one frame into the render texture.
// While paused the texture keeps the last frame.
func (g *Game) Update() {
	g.handleInput()

	g.surface.Begin()
	g.sim.Frame(float64(rl.GetFrameTime()), g.surface)
	g.surface.End()
	g.sim.RecordFrame()
}

// Draw presents the render texture and the panels.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.surface.Blit()
	g.drawUI()

	rl.EndDrawing()
}

// drawUI draws the enabled panels and applies control changes.
func (g *Game) drawUI() {
	nw := g.sim.Network()
	st := g.sim.Settings()
	step := g.sim.LastStep()
	running := g.sim.Running()

	if g.overlays.IsEnabled(ui.OverlayHUD) {
		g.hud.Draw(ui.HUDData{
			Title:       Title,
			SpikeRate:   sim.DisplayRate(st.SpikeRate),
			Solved:      g.sim.SolvedCount(),
			Neurons:     len(nw.Neurons),
			Connections: len(nw.Connections),
			Active:      nw.ActiveCount(g.cfg.Render.VisibilityThreshold),
			Fired:       step.Fired,
			Propagated:  step.Propagated,
			FPS:         rl.GetFPS(),
			Paused:      !running,
		})
		g.hud.DrawControls(g.screenWidth, g.screenHeight, controlsLegend+" | "+g.overlays.Legend())
	}

	if g.overlays.IsEnabled(ui.OverlayStats) {
		g.stats.Draw(g.lastStats)
	}
	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.Draw(g.sim.PerfStats())
	}

	g.controls.SetVisible(g.overlays.IsEnabled(ui.OverlayControls))
	act := g.controls.Draw(ui.ControlsState{
		SpikeRate:    st.SpikeRate,
		Connectivity: st.Connectivity,
		Fade:         st.Fade,
		Running:      running,
	})
	g.apply(act)
}

// apply routes control panel changes to the simulation.
func (g *Game) apply(act ui.ControlsActions) {
	if act.SpikeRateChanged {
		g.sim.SetSpikeRate(act.SpikeRate)
	}
	if act.ConnectivityChanged {
		g.sim.SetConnectivity(act.Connectivity)
	}
	if act.FadeChanged {
		g.sim.SetFade(act.Fade)
	}
	if act.TogglePause {
		g.sim.Toggle()
	}
	if act.Reset {
		g.sim.Reset()
	}
}

// Unload releases GPU resources.
func (g *Game) Unload() {
	if g.surface != nil {
		g.surface.Unload()
	}
}

// FrameCount returns the number of simulated frames.
func (g *Game) FrameCount() int64 {
	return g.sim.FrameCount()
}
