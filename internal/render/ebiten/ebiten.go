// Package ebiten implements the render host interfaces with Ebiten.
package ebiten

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"chosenoffset.com/dustyard/internal/render"
)

// EbitenSurface wraps an ebiten.Image to implement the render.Surface interface.
type EbitenSurface struct {
	img *ebiten.Image
}

// Size returns the width and height of the surface.
func (s *EbitenSurface) Size() (width, height int) {
	return s.img.Bounds().Dx(), s.img.Bounds().Dy()
}

// Fill fills the entire surface with the given color.
func (s *EbitenSurface) Fill(clr color.Color) {
	s.img.Fill(clr)
}

// DrawText draws text using the default debug font.
func (s *EbitenSurface) DrawText(str string, x, y int) {
	ebitenutil.DebugPrintAt(s.img, str, x, y)
}

// Project returns a sink drawing the top-down view of the world.
func (s *EbitenSurface) Project(cam render.Camera, pixelsPerUnit float64) render.Sink {
	w, h := s.Size()
	return &sceneSink{
		dst: s.img,
		vp:  render.Viewport{Camera: cam, PixelsPerUnit: pixelsPerUnit, Width: w, Height: h},
	}
}

// EbitenEngine implements the Engine interface using Ebiten.
type EbitenEngine struct{}

// NewEngine creates a new Ebiten-based game engine.
func NewEngine() render.Engine {
	return &EbitenEngine{}
}

// SetWindowSize sets the window size in pixels.
func (e *EbitenEngine) SetWindowSize(width, height int) {
	ebiten.SetWindowSize(width, height)
}

// SetWindowTitle sets the window title.
func (e *EbitenEngine) SetWindowTitle(title string) {
	ebiten.SetWindowTitle(title)
}

// SetWindowResizable enables or disables window resizing.
func (e *EbitenEngine) SetWindowResizable(resizable bool) {
	if resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
}

// RunGame runs the game loop with the provided game. A game returning
// render.ErrQuit ends the loop with a nil error.
func (e *EbitenEngine) RunGame(game render.Game) error {
	return ebiten.RunGame(&gameAdapter{game: game})
}

// gameAdapter adapts a render.Game to ebiten.Game interface.
type gameAdapter struct {
	game render.Game
}

// Update implements ebiten.Game.
func (a *gameAdapter) Update() error {
	err := a.game.Update()
	if errors.Is(err, render.ErrQuit) {
		return ebiten.Termination
	}
	return err
}

// Draw implements ebiten.Game.
func (a *gameAdapter) Draw(screen *ebiten.Image) {
	a.game.Draw(&EbitenSurface{img: screen})
}

// Layout implements ebiten.Game.
func (a *gameAdapter) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.game.Layout(outsideWidth, outsideHeight)
}
