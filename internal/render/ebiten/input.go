package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"chosenoffset.com/dustyard/internal/input"
	"chosenoffset.com/dustyard/internal/render"
)

// keymap binds snapshot codes to physical keys.
var keymap = map[input.Code]ebiten.Key{
	input.KeyEscape:         ebiten.KeyEscape,
	input.KeyTurnLeft:       ebiten.KeyH,
	input.KeyTurnRight:      ebiten.KeyK,
	input.KeyForward:        ebiten.KeyU,
	input.KeyBackward:       ebiten.KeyJ,
	input.KeyRestart:        ebiten.KeyR,
	input.KeyCameraForward:  ebiten.KeyW,
	input.KeyCameraBackward: ebiten.KeyS,
	input.KeyCameraLeft:     ebiten.KeyA,
	input.KeyCameraRight:    ebiten.KeyD,
	input.KeyCameraDown:     ebiten.KeyQ,
	input.KeyCameraUp:       ebiten.KeyE,
}

// EbitenInputSource implements the InputSource interface using Ebiten.
type EbitenInputSource struct{}

// NewInputSource creates a new Ebiten-based input source.
func NewInputSource() render.InputSource {
	return &EbitenInputSource{}
}

// Poll copies the held state of every bound key into the snapshot.
func (EbitenInputSource) Poll(s *input.Snapshot) {
	for code, key := range keymap {
		s.Set(code, ebiten.IsKeyPressed(key))
	}
}

// JustPressed returns whether the key was just pressed this frame.
func (EbitenInputSource) JustPressed(c input.Code) bool {
	key, ok := keymap[c]
	return ok && inpututil.IsKeyJustPressed(key)
}
