// Topology preview tool - interactive view of the brain-shaped point cloud
// with sliders for the generator parameters.
//
// Usage: go run ./cmd/topopreview
package main

import (
	"fmt"
	"math/rand"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/synapse/config"
	"github.com/pthm-cable/synapse/neural"
	"github.com/pthm-cable/synapse/systems"
)

const (
	windowWidth  = 1100
	windowHeight = 720
	previewW     = 660
	previewH     = 432
	sideW        = 200
	panelX       = previewW + sideW + 40
	panelWidth   = windowWidth - panelX - 10
)

// previewParams holds the tunable generator parameters.
type previewParams struct {
	Count          float32
	Thickness      float32
	DepthJitter    float32
	DepthScale     float32
	DepthExponent  float32
	Connectivity   float32
	StrictInterior bool
	Seed           int64
}

func main() {
	if err := config.Init(""); err != nil {
		panic(err)
	}
	cfg := config.Cfg()

	rl.InitWindow(windowWidth, windowHeight, "Topology Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := previewParams{
		Count:          float32(cfg.Simulation.NeuronCount),
		Thickness:      float32(cfg.Topology.OutlineThickness),
		DepthJitter:    float32(cfg.Topology.DepthJitter),
		DepthScale:     float32(cfg.Topology.DepthScale),
		DepthExponent:  float32(cfg.Topology.DepthExponent),
		Connectivity:   float32(cfg.Simulation.Connectivity),
		StrictInterior: cfg.Topology.StrictInterior,
		Seed:           1,
	}

	var nw *neural.Network
	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			nw = generate(cfg, params)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 8, G: 10, B: 18, A: 255})

		drawFront(cfg, nw)
		drawSide(cfg, nw)
		drawStats(nw)

		// Control panel
		y := float32(10)
		rl.DrawText("Topology Parameters", panelX, int32(y), 20, rl.RayWhite)
		y += 35

		needsRegen = slider(&y, "Neurons", &params.Count, 30, 1500, "%.0f") || needsRegen
		needsRegen = slider(&y, "Outline thickness", &params.Thickness, 0, 60, "%.1f") || needsRegen
		needsRegen = slider(&y, "Depth jitter", &params.DepthJitter, 0, 60, "%.1f") || needsRegen
		needsRegen = slider(&y, "Depth scale", &params.DepthScale, 0, 500, "%.0f") || needsRegen
		needsRegen = slider(&y, "Depth exponent", &params.DepthExponent, 0.1, 2, "%.2f") || needsRegen
		needsRegen = slider(&y, "Connectivity", &params.Connectivity, 0, 1, "%.2f") || needsRegen
		y += 10

		if gui.Button(rl.Rectangle{X: panelX, Y: y, Width: 100, Height: 30}, toggleText(params.StrictInterior, "Strict", "Permissive")) {
			params.StrictInterior = !params.StrictInterior
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 110, Y: y, Width: 100, Height: 30}, "New Seed") {
			params.Seed++
			needsRegen = true
		}
		y += 50

		// Output YAML
		rl.DrawText("YAML Config:", panelX, int32(y), 16, rl.LightGray)
		y += 22
		for _, line := range yamlLines(params) {
			rl.DrawText(line, panelX, int32(y), 14, rl.Gray)
			y += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", panelX, windowHeight-30, 12, rl.DarkGray)
		if rl.IsKeyPressed(rl.KeyC) {
			var yaml string
			for _, line := range yamlLines(params) {
				yaml += line + "\n"
			}
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

// slider draws a labelled slider bar and reports whether it moved.
func slider(y *float32, label string, v *float32, min, max float32, format string) bool {
	rl.DrawText(label, panelX, int32(*y), 14, rl.Gray)
	*y += 18
	next := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: *y, Width: float32(panelWidth - 60), Height: 20},
		"", "",
		*v, min, max,
	)
	rl.DrawText(fmt.Sprintf(format, next), panelX+int32(panelWidth-55), int32(*y+2), 16, rl.LightGray)
	*y += 35
	if next == *v {
		return false
	}
	*v = next
	return true
}

// generate builds a network with params applied on top of cfg.
func generate(cfg *config.Config, p previewParams) *neural.Network {
	c := *cfg
	c.Topology.OutlineThickness = float64(p.Thickness)
	c.Topology.DepthJitter = float64(p.DepthJitter)
	c.Topology.DepthScale = float64(p.DepthScale)
	c.Topology.DepthExponent = float64(p.DepthExponent)
	c.Topology.StrictInterior = p.StrictInterior

	shape := systems.NewBrainShape(c.Derived.ScreenW, c.Derived.ScreenH, c.Topology.DepthScale, c.Topology.DepthExponent)
	gen := systems.NewGenerator(shape, systems.TopologyParamsFromConfig(&c), neural.ParamsFromConfig(c.Neuron), rand.New(rand.NewSource(p.Seed)))
	return gen.Generate(int(p.Count), float64(p.Connectivity))
}

// depthColor maps depth to a cool-to-warm tint.
func depthColor(z, scale float64) rl.Color {
	t := 0.5
	if scale > 0 {
		t = 0.5 + z/(2*scale)
	}
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return rl.Color{R: uint8(110 + 145*t), G: uint8(227 - 107*t), B: uint8(255 - 38*t), A: 230}
}

// drawFront draws the silhouette as seen by an unrotated camera.
func drawFront(cfg *config.Config, nw *neural.Network) {
	sx := float32(previewW) / float32(cfg.Derived.ScreenW)
	sy := float32(previewH) / float32(cfg.Derived.ScreenH)
	rl.DrawRectangleLines(10, 10, previewW, previewH, rl.DarkGray)
	for _, n := range nw.Neurons {
		c := depthColor(n.Z, cfg.Topology.DepthScale)
		if !n.IsExcitatory() {
			c = rl.Color{R: 255, G: 120, B: 217, A: 230}
		}
		rl.DrawCircleV(rl.Vector2{X: 10 + float32(n.X)*sx, Y: 10 + float32(n.Y)*sy}, 2, c)
	}
	rl.DrawText("front (pink = inhibitory)", 14, previewH-8, 12, rl.Gray)
}

// drawSide draws depth against height.
func drawSide(cfg *config.Config, nw *neural.Network) {
	x0 := int32(previewW + 20)
	rl.DrawRectangleLines(x0, 10, sideW, previewH, rl.DarkGray)
	sy := float32(previewH) / float32(cfg.Derived.ScreenH)
	span := float32(2*cfg.Topology.DepthScale + 4*cfg.Topology.DepthJitter + 1)
	for _, n := range nw.Neurons {
		x := float32(x0) + sideW/2 + float32(n.Z)/span*sideW
		rl.DrawCircleV(rl.Vector2{X: x, Y: 10 + float32(n.Y)*sy}, 1.5, depthColor(n.Z, cfg.Topology.DepthScale))
	}
	rl.DrawText("side (depth)", x0+4, previewH-8, 12, rl.Gray)
}

func drawStats(nw *neural.Network) {
	var exc int
	for _, n := range nw.Neurons {
		if n.IsExcitatory() {
			exc++
		}
	}
	y := int32(previewH + 25)
	rl.DrawText(fmt.Sprintf("Neurons: %d  Excitatory: %d  Inhibitory: %d", len(nw.Neurons), exc, len(nw.Neurons)-exc), 15, y, 16, rl.LightGray)
	rl.DrawText(fmt.Sprintf("Connections: %d", len(nw.Connections)), 15, y+22, 16, rl.LightGray)
}

func yamlLines(p previewParams) []string {
	return []string{
		"simulation:",
		fmt.Sprintf("  neuron_count: %.0f", p.Count),
		fmt.Sprintf("  connectivity: %.2f", p.Connectivity),
		"topology:",
		fmt.Sprintf("  outline_thickness: %.1f", p.Thickness),
		fmt.Sprintf("  depth_jitter: %.1f", p.DepthJitter),
		fmt.Sprintf("  depth_scale: %.0f", p.DepthScale),
		fmt.Sprintf("  depth_exponent: %.2f", p.DepthExponent),
		fmt.Sprintf("  strict_interior: %t", p.StrictInterior),
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
