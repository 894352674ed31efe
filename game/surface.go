package game

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/synapse/renderer"
)

// Surface draws frames into a persistent render texture. The texture is
// never cleared between frames, so the translucent background wash leaves
// fading trails.
type Surface struct {
	target    rl.RenderTexture2D
	width     int32
	height    int32
	lineWidth float32
}

// NewSurface allocates a width x height render texture cleared to bg.
// Must be called after the window is open.
func NewSurface(width, height int32, bg rl.Color) *Surface {
	s := &Surface{
		target:    rl.LoadRenderTexture(width, height),
		width:     width,
		height:    height,
		lineWidth: 1,
	}
	rl.BeginTextureMode(s.target)
	rl.ClearBackground(bg)
	rl.EndTextureMode()
	return s
}

// Begin directs subsequent drawing into the texture.
func (s *Surface) Begin() {
	rl.BeginTextureMode(s.target)
}

// End restores drawing to the window.
func (s *Surface) End() {
	rl.EndTextureMode()
}

// Blit draws the texture onto the window. Render textures are stored
// upside down, hence the negative source height.
func (s *Surface) Blit() {
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(s.width), Height: -float32(s.height)}
	rl.DrawTextureRec(s.target.Texture, src, rl.Vector2{}, rl.White)
}

// Unload frees the texture.
func (s *Surface) Unload() {
	rl.UnloadRenderTexture(s.target)
}

// Size implements renderer.Surface.
func (s *Surface) Size() (float64, float64) {
	return float64(s.width), float64(s.height)
}

// FillRect implements renderer.Surface.
func (s *Surface) FillRect(x, y, w, h float64, c color.NRGBA) {
	rl.DrawRectangleRec(rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(w), Height: float32(h)}, rlColor(c))
}

// SetLineWidth implements renderer.Surface.
func (s *Surface) SetLineWidth(w float64) {
	s.lineWidth = float32(w)
}

// StrokeLine implements renderer.Surface.
func (s *Surface) StrokeLine(x1, y1, x2, y2 float64, c color.NRGBA) {
	rl.DrawLineEx(
		rl.Vector2{X: float32(x1), Y: float32(y1)},
		rl.Vector2{X: float32(x2), Y: float32(y2)},
		s.lineWidth, rlColor(c),
	)
}

// FillCircle implements renderer.Surface. raylib has no blur, so the halo
// is a stack of rings fading out toward r + glow.
func (s *Surface) FillCircle(x, y, r float64, fill color.NRGBA, glow float64, glowColor color.NRGBA) {
	center := rl.Vector2{X: float32(x), Y: float32(y)}

	for _, ring := range renderer.GlowRings(r, glow, glowColor) {
		if ring.Color.A == 0 {
			continue
		}
		rl.DrawCircleV(center, float32(ring.Radius), rlColor(ring.Color))
	}
	if r <= 0 || fill.A == 0 {
		return
	}
	rl.DrawCircleV(center, float32(r), rlColor(fill))
}

func rlColor(c color.NRGBA) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
