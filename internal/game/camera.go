package game

import (
	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/dustyard/internal/input"
	"chosenoffset.com/dustyard/internal/render"
)

const (
	cameraHeight    = 170
	cameraSpeed     = 20
	minCameraHeight = 10
)

// Camera is the top-down fly camera. w/s move along z, a/d along x and
// q/e lower and raise it.
type Camera struct {
	Eye   mgl64.Vec3
	Speed float64 // units per second
}

// NewCamera returns the camera above the origin.
func NewCamera() *Camera {
	return &Camera{Eye: mgl64.Vec3{0, cameraHeight, 0}, Speed: cameraSpeed}
}

// Move applies the held fly keys for dt seconds.
func (c *Camera) Move(in input.Snapshot, dt float64) {
	var d mgl64.Vec3
	if in.Pressed(input.KeyCameraForward) {
		d[2]++
	}
	if in.Pressed(input.KeyCameraBackward) {
		d[2]--
	}
	if in.Pressed(input.KeyCameraRight) {
		d[0]++
	}
	if in.Pressed(input.KeyCameraLeft) {
		d[0]--
	}
	if in.Pressed(input.KeyCameraUp) {
		d[1]++
	}
	if in.Pressed(input.KeyCameraDown) {
		d[1]--
	}
	c.Eye = c.Eye.Add(d.Mul(c.Speed * dt))
	c.Eye[1] = max(c.Eye[1], minCameraHeight)
}

// View returns the camera basis handed to the scene.
func (c *Camera) View() render.Camera {
	v := render.TopDownCamera(c.Eye.Y())
	v.Eye = c.Eye
	return v
}

// PixelsPerUnit zooms in as the camera gets lower. base is the scale at
// the starting height.
func (c *Camera) PixelsPerUnit(base float64) float64 {
	return base * cameraHeight / c.Eye.Y()
}
