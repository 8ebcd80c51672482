// Package render defines the boundary between the simulation and whatever
// draws it. The scene only ever talks to a Sink; backends such as
// render/ebiten implement it along with the host-side Engine and Game
// abstractions so the simulation never imports a graphics library.
package render

import (
	"errors"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/dustyard/internal/input"
)

// Binding is an opaque handle to a mesh or material owned by the backend.
// The core passes bindings through and never creates or frees them.
type Binding string

// Bindings used by the truck yard scene.
const (
	BindingGround Binding = "ground"
	BindingTruck  Binding = "truck"
	BindingTree   Binding = "tree"
	BindingGrass  Binding = "grass"
	BindingDust   Binding = "dust"
	BindingShadow Binding = "shadow"
)

// Color is a linear RGBA colour. Components are not clamped here; a backend
// decides how to treat values outside [0, 1].
type Color struct {
	R, G, B, A float64
}

// White is opaque white.
var White = Color{R: 1, G: 1, B: 1, A: 1}

// Transform places a model in the world: translate, then rotate Angle
// degrees around Axis, then scale.
type Transform struct {
	Position mgl64.Vec3
	Angle    float64
	Axis     mgl64.Vec3
	Scale    mgl64.Vec3
}

// Camera is the read-only view basis the host supplies each frame.
type Camera struct {
	Eye     mgl64.Vec3
	Forward mgl64.Vec3
	Right   mgl64.Vec3
	Up      mgl64.Vec3
}

// TopDownCamera looks straight down at the ground from the given height,
// with +z as screen up.
func TopDownCamera(height float64) Camera {
	return Camera{
		Eye:     mgl64.Vec3{0, height, 0},
		Forward: mgl64.Vec3{0, -1, 0},
		Right:   mgl64.Vec3{1, 0, 0},
		Up:      mgl64.Vec3{0, 0, 1},
	}
}

// Quad is a camera-facing square of half-extent Size centred on Position.
type Quad struct {
	Position mgl64.Vec3
	Right    mgl64.Vec3
	Up       mgl64.Vec3
	Size     float64
	Color    Color
	Binding  Binding
}

// Sink receives draw requests from the scene, in scene order.
type Sink interface {
	// DrawModel draws the bound model with the given transform.
	DrawModel(t Transform, b Binding)
	// DrawShadow draws a flattened copy of the bound model on the ground.
	DrawShadow(t Transform, b Binding)
	// DrawBillboard draws a blended camera-facing quad.
	DrawBillboard(q Quad)
}

// ErrQuit is returned from Game.Update to stop the engine without an error.
var ErrQuit = errors.New("quit requested")

// Surface is a drawable screen handed to Game.Draw by the engine.
type Surface interface {
	Size() (width, height int)
	Fill(clr color.Color)
	// DrawText prints text with the backend debug font at pixel position x, y.
	DrawText(text string, x, y int)
	// Project returns a Sink that draws the world onto this surface as seen
	// from cam, with pixelsPerUnit world units to pixels.
	Project(cam Camera, pixelsPerUnit float64) Sink
}

// InputSource captures the keyboard state from the backend.
type InputSource interface {
	// Poll writes the held state of every bound key into s.
	Poll(s *input.Snapshot)
	// JustPressed reports whether the key went down this frame.
	JustPressed(c input.Code) bool
}

// Game represents the game interface that the engine will call.
type Game interface {
	// Update updates the game logic. It is called every tick (typically 60 times per second).
	// Returning ErrQuit ends the run loop cleanly.
	Update() error

	// Draw draws the game screen. It is called every frame.
	Draw(screen Surface)

	// Layout accepts the outside size (e.g., window size) and returns the logical screen size.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine represents the game engine that manages the game loop and window.
type Engine interface {
	SetWindowSize(width, height int)
	SetWindowTitle(title string)
	SetWindowResizable(resizable bool)

	// RunGame runs the game loop with the provided game.
	// This is a blocking call that runs until the game ends.
	RunGame(game Game) error
}

// Viewport maps world positions to screen pixels with an orthographic
// projection onto the camera's right/up plane.
type Viewport struct {
	Camera        Camera
	PixelsPerUnit float64
	Width, Height int
}

// ToScreen returns the pixel position of p. The camera eye projects to the
// centre of the screen and screen y grows downwards.
func (v Viewport) ToScreen(p mgl64.Vec3) (x, y float64) {
	d := p.Sub(v.Camera.Eye)
	x = float64(v.Width)/2 + d.Dot(v.Camera.Right)*v.PixelsPerUnit
	y = float64(v.Height)/2 - d.Dot(v.Camera.Up)*v.PixelsPerUnit
	return x, y
}
