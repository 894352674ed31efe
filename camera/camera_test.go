package camera

import (
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	cam := New(1100, 720, DefaultParams())

	if cam.CenterX != 550 || cam.CenterY != 360 {
		t.Errorf("expected center (550, 360), got (%f, %f)", cam.CenterX, cam.CenterY)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}

func TestProjectCenter(t *testing.T) {
	cam := New(1100, 720, DefaultParams())
	cam.AngleX, cam.AngleY = 0.7, -1.3

	// The center at z = 0 stays put under any rotation
	p := cam.Project(550, 360, 0)
	if math.Abs(p.X-550) > 1e-9 || math.Abs(p.Y-360) > 1e-9 {
		t.Errorf("expected (550, 360), got (%f, %f)", p.X, p.Y)
	}
	if math.Abs(p.Scale-1) > 1e-12 {
		t.Errorf("expected scale 1, got %f", p.Scale)
	}
	if math.Abs(p.Depth-900) > 1e-9 {
		t.Errorf("expected depth 900, got %f", p.Depth)
	}
}

func TestProjectPerspective(t *testing.T) {
	cam := New(1000, 1000, DefaultParams())

	near := cam.Project(600, 500, -300)
	far := cam.Project(600, 500, 300)

	if near.Depth >= far.Depth {
		t.Errorf("near depth %f should be less than far depth %f", near.Depth, far.Depth)
	}
	if near.Scale <= far.Scale {
		t.Errorf("near scale %f should exceed far scale %f", near.Scale, far.Scale)
	}
	// scale = 900 / 600
	if math.Abs(near.Scale-1.5) > 1e-12 {
		t.Errorf("near scale = %f, want 1.5", near.Scale)
	}
	if math.Abs(near.X-650) > 1e-9 {
		t.Errorf("near x = %f, want 650", near.X)
	}
}

func TestProjectYaw(t *testing.T) {
	cam := New(1000, 1000, DefaultParams())
	cam.AngleY = math.Pi / 2

	// A quarter turn about Y swings +x into +z (away from the viewer)
	p := cam.Project(600, 500, 0)
	if math.Abs(p.X-500) > 1e-9 {
		t.Errorf("x = %f, want 500", p.X)
	}
	if math.Abs(p.Depth-1000) > 1e-9 {
		t.Errorf("depth = %f, want 1000", p.Depth)
	}
}

func TestProjectMinDepth(t *testing.T) {
	cam := New(1000, 1000, DefaultParams())

	p := cam.Project(500, 500, -5000)
	if p.Depth != 1 {
		t.Errorf("depth = %f, want clamp at 1", p.Depth)
	}
	if math.IsInf(p.Scale, 0) || math.IsNaN(p.Scale) {
		t.Errorf("scale not finite: %f", p.Scale)
	}
}

func TestProjectZoom(t *testing.T) {
	cam := New(1000, 1000, DefaultParams())
	cam.SetZoom(1.5)

	p := cam.Project(600, 500, 0)
	if math.Abs(p.X-650) > 1e-9 {
		t.Errorf("zoomed x = %f, want 650", p.X)
	}
}

func TestWheelClamp(t *testing.T) {
	cam := New(1000, 1000, DefaultParams())

	for i := 0; i < 50; i++ {
		cam.Wheel(1)
	}
	if cam.Zoom != 1.8 {
		t.Errorf("expected zoom clamped to 1.8, got %f", cam.Zoom)
	}

	for i := 0; i < 50; i++ {
		cam.Wheel(-1)
	}
	if cam.Zoom != 0.6 {
		t.Errorf("expected zoom clamped to 0.6, got %f", cam.Zoom)
	}

	cam.Wheel(0)
	if cam.Zoom != 0.6 {
		t.Errorf("zero wheel changed zoom to %f", cam.Zoom)
	}
}

func TestWheelStep(t *testing.T) {
	cam := New(1000, 1000, DefaultParams())
	cam.Wheel(3)
	if math.Abs(cam.Zoom-1.08) > 1e-12 {
		t.Errorf("one notch in: zoom = %f, want 1.08", cam.Zoom)
	}
	cam.Wheel(-120)
	if math.Abs(cam.Zoom-1.0) > 1e-12 {
		t.Errorf("one notch out: zoom = %f, want 1.0", cam.Zoom)
	}
}

func TestZoomBy(t *testing.T) {
	cam := New(1000, 1000, DefaultParams())
	cam.ZoomBy(1.5)
	if cam.Zoom != 1.5 {
		t.Errorf("expected zoom 1.5, got %f", cam.Zoom)
	}
	cam.ZoomBy(10)
	if cam.Zoom != 1.8 {
		t.Errorf("expected zoom clamped to 1.8, got %f", cam.Zoom)
	}
}

func TestDrag(t *testing.T) {
	cam := New(1000, 1000, DefaultParams())

	cam.DragTo(50, 50)
	if cam.AngleX != 0 || cam.AngleY != 0 {
		t.Fatal("DragTo without BeginDrag should do nothing")
	}

	cam.BeginDrag(100, 100)
	cam.DragTo(110, 95)

	if math.Abs(cam.AngleY-0.06) > 1e-12 {
		t.Errorf("angleY = %f, want 0.06", cam.AngleY)
	}
	if math.Abs(cam.AngleX-(-0.02)) > 1e-12 {
		t.Errorf("angleX = %f, want -0.02", cam.AngleX)
	}
	if math.Abs(cam.VelocityY-0.007) > 1e-12 {
		t.Errorf("velocityY = %f, want 0.007", cam.VelocityY)
	}
	if math.Abs(cam.VelocityX-(-0.003)) > 1e-12 {
		t.Errorf("velocityX = %f, want -0.003", cam.VelocityX)
	}

	// Inertia is suspended while dragging
	cam.Update()
	if math.Abs(cam.AngleY-0.06) > 1e-12 {
		t.Errorf("angle moved during drag: %f", cam.AngleY)
	}

	cam.EndDrag()
	cam.Update()
	if math.Abs(cam.AngleY-0.067) > 1e-12 {
		t.Errorf("angleY after release = %f, want 0.067", cam.AngleY)
	}
	if math.Abs(cam.VelocityY-0.007*0.94) > 1e-12 {
		t.Errorf("velocityY after release = %f, want %f", cam.VelocityY, 0.007*0.94)
	}
}

func TestInertiaDecays(t *testing.T) {
	cam := New(1000, 1000, DefaultParams())
	cam.VelocityY = 0.05

	for i := 0; i < 300; i++ {
		cam.Update()
	}
	if math.Abs(cam.VelocityY) > 1e-8 {
		t.Errorf("velocity did not decay: %g", cam.VelocityY)
	}
	// Geometric series: total = v / (1 - damping)
	if math.Abs(cam.AngleY-0.05/0.06) > 1e-6 {
		t.Errorf("angle = %f, want %f", cam.AngleY, 0.05/0.06)
	}
}

func TestResetAndResize(t *testing.T) {
	cam := New(1000, 1000, DefaultParams())
	cam.AngleX, cam.AngleY, cam.VelocityX = 1, 2, 3
	cam.SetZoom(1.7)
	cam.BeginDrag(1, 1)

	cam.Reset()
	if cam.AngleX != 0 || cam.AngleY != 0 || cam.VelocityX != 0 || cam.Zoom != 1 || cam.Dragging {
		t.Errorf("reset left state: %+v", cam)
	}

	cam.Resize(800, 600)
	if cam.CenterX != 400 || cam.CenterY != 300 {
		t.Errorf("expected center (400, 300), got (%f, %f)", cam.CenterX, cam.CenterY)
	}
	if cam.PivotX != 500 || cam.PivotY != 500 {
		t.Errorf("resize moved pivot to (%f, %f)", cam.PivotX, cam.PivotY)
	}
}

func TestResizeKeepsCloudCentered(t *testing.T) {
	cam := New(1000, 800, DefaultParams())
	cam.AngleX, cam.AngleY = 0.3, -0.7
	before := cam.Project(620, 330, 40)

	cam.Resize(1600, 1000)
	after := cam.Project(620, 330, 40)

	// Same rotation and scale, shifted by the change in screen center
	if math.Abs(after.X-before.X-300) > 1e-9 || math.Abs(after.Y-before.Y-100) > 1e-9 {
		t.Errorf("shift = (%f, %f), want (300, 100)", after.X-before.X, after.Y-before.Y)
	}
	if after.Scale != before.Scale || after.Depth != before.Depth {
		t.Errorf("resize changed perspective: %+v -> %+v", before, after)
	}
	if p := cam.Project(500, 400, 0); p.X != 800 || p.Y != 500 {
		t.Errorf("pivot projects to (%f, %f), want (800, 500)", p.X, p.Y)
	}
}
