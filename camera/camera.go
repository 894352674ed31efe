// Package camera provides the orbit camera used to view the neuron cloud.
package camera

import (
	"math"

	"github.com/pthm-cable/synapse/config"
)

// Params holds the tunable camera constants.
type Params struct {
	Distance  float64 // Viewing distance from the cloud center
	MinZoom   float64
	MaxZoom   float64
	ZoomStep  float64 // Zoom change per wheel notch
	Damping   float64 // Velocity multiplier per frame while coasting
	DragYaw   float64 // Yaw radians per pixel of horizontal drag
	DragPitch float64 // Pitch radians per pixel of vertical drag
	SpinYaw   float64 // Yaw velocity per pixel of the last drag move
	SpinPitch float64 // Pitch velocity per pixel of the last drag move
	MinDepth  float64 // Lower bound on projected depth
}

// DefaultParams returns the standard camera feel.
func DefaultParams() Params {
	return Params{
		Distance:  900,
		MinZoom:   0.6,
		MaxZoom:   1.8,
		ZoomStep:  0.08,
		Damping:   0.94,
		DragYaw:   0.006,
		DragPitch: 0.004,
		SpinYaw:   0.0007,
		SpinPitch: 0.0006,
		MinDepth:  1,
	}
}

// ParamsFromConfig builds Params from the camera config section.
func ParamsFromConfig(c config.CameraConfig) Params {
	return Params{
		Distance:  c.Distance,
		MinZoom:   c.MinZoom,
		MaxZoom:   c.MaxZoom,
		ZoomStep:  c.ZoomStep,
		Damping:   c.Damping,
		DragYaw:   c.DragYaw,
		DragPitch: c.DragPitch,
		SpinYaw:   c.SpinYaw,
		SpinPitch: c.SpinPitch,
		MinDepth:  c.MinDepth,
	}
}

// Orbit rotates the point cloud around the screen center. Dragging sets
// the angles directly; releasing leaves a velocity that decays each frame.
type Orbit struct {
	AngleX, AngleY       float64 // Pitch and yaw in radians
	VelocityX, VelocityY float64

	Dragging     bool
	LastX, LastY float64

	Zoom float64

	// World point the cloud rotates about
	PivotX, PivotY float64

	// Where the pivot lands on screen
	CenterX, CenterY float64

	Params Params
}

// Projection is a point mapped to the screen.
type Projection struct {
	X, Y  float64
	Scale float64 // Perspective scale, including zoom
	Depth float64 // Distance from the eye, larger is farther
}

// New creates a camera centered on a width x height viewport. The pivot
// is the viewport center and stays fixed across Resize.
func New(width, height float64, p Params) *Orbit {
	return &Orbit{
		Zoom:    1,
		PivotX:  width / 2,
		PivotY:  height / 2,
		CenterX: width / 2,
		CenterY: height / 2,
		Params:  p,
	}
}

// Update applies inertia. While dragging the angles are driven by the
// pointer and velocities are left untouched.
func (o *Orbit) Update() {
	if o.Dragging {
		return
	}
	o.AngleX += o.VelocityX
	o.AngleY += o.VelocityY
	o.VelocityX *= o.Params.Damping
	o.VelocityY *= o.Params.Damping
}

// BeginDrag starts a drag at the pointer position.
func (o *Orbit) BeginDrag(x, y float64) {
	o.Dragging = true
	o.LastX = x
	o.LastY = y
}

// DragTo rotates by the pointer movement since the last position. Does
// nothing unless a drag is active.
func (o *Orbit) DragTo(x, y float64) {
	if !o.Dragging {
		return
	}
	dx := x - o.LastX
	dy := y - o.LastY
	o.LastX = x
	o.LastY = y

	o.AngleY += dx * o.Params.DragYaw
	o.AngleX += dy * o.Params.DragPitch
	o.VelocityY = dx * o.Params.SpinYaw
	o.VelocityX = dy * o.Params.SpinPitch
}

// EndDrag releases the pointer; the last velocity carries on.
func (o *Orbit) EndDrag() {
	o.Dragging = false
}

// Wheel zooms one step per call. Positive direction zooms in.
func (o *Orbit) Wheel(direction float64) {
	switch {
	case direction > 0:
		o.SetZoom(o.Zoom + o.Params.ZoomStep)
	case direction < 0:
		o.SetZoom(o.Zoom - o.Params.ZoomStep)
	}
}

// SetZoom sets the zoom level, clamped to min/max.
func (o *Orbit) SetZoom(zoom float64) {
	o.Zoom = clamp(zoom, o.Params.MinZoom, o.Params.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (o *Orbit) ZoomBy(factor float64) {
	o.SetZoom(o.Zoom * factor)
}

// Reset returns the camera to the front view at 1:1 zoom.
func (o *Orbit) Reset() {
	o.AngleX, o.AngleY = 0, 0
	o.VelocityX, o.VelocityY = 0, 0
	o.Dragging = false
	o.Zoom = 1
}

// Resize recenters the projection on a new viewport. The pivot is kept,
// so the cloud stays in the middle of the new viewport.
func (o *Orbit) Resize(width, height float64) {
	o.CenterX = width / 2
	o.CenterY = height / 2
}

// Project maps a world point to the screen. The point is taken relative to
// the pivot, rotated about Y (yaw) and then X (pitch), given a perspective
// divide at the viewing distance and placed around the screen center.
func (o *Orbit) Project(x, y, z float64) Projection {
	dx := x - o.PivotX
	dy := y - o.PivotY

	sinY, cosY := math.Sincos(o.AngleY)
	xz := dx*cosY - z*sinY
	zz := dx*sinY + z*cosY

	sinX, cosX := math.Sincos(o.AngleX)
	yz := dy*cosX - zz*sinX
	zz2 := dy*sinX + zz*cosX

	d := o.Params.Distance
	depth := math.Max(d+zz2, o.Params.MinDepth)
	scale := d / depth * o.Zoom

	return Projection{
		X:     o.CenterX + xz*scale,
		Y:     o.CenterY + yz*scale,
		Scale: scale,
		Depth: depth,
	}
}

// clamp restricts a value to a range.
func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
