package game

import (
	"fmt"
	"image/color"

	"chosenoffset.com/dustyard/internal/render"
)

const basePixelsPerUnit = 3

const hudLineSpace = 16

var skyColor = color.RGBA{40, 48, 60, 255}

// Draw renders the scene, then the HUD or the game over text on top.
func (m *Manager) Draw(screen render.Surface) {
	screen.Fill(skyColor)

	view := m.Camera.View()
	m.Scene.Render(screen.Project(view, m.Camera.PixelsPerUnit(basePixelsPerUnit)), view)

	for i, line := range m.hudLines() {
		screen.DrawText(line, 8, 8+i*hudLineSpace)
	}
	if m.Mode == ModeGameOver {
		w, h := screen.Size()
		screen.DrawText("YOU DIED", w/2-24, h/2-8)
		screen.DrawText("R to restart, Esc to quit", w/2-75, h/2+8)
	}
}

func (m *Manager) hudLines() []string {
	lines := []string{
		fmt.Sprintf("trees dropped: %d  dust bursts: %d  fallen: %d", m.Stats.Dropped, m.Stats.Bursts, m.Stats.Culled),
		fmt.Sprintf("billboards: %d", len(m.Scene.Billboards())),
	}
	if p := m.Scene.Player(); p != nil {
		pos := p.Position()
		lines = append(lines, fmt.Sprintf("truck: %.1f %.1f %.1f", pos.X(), pos.Y(), pos.Z()))
	}
	if m.Mode == ModePlaying {
		lines = append(lines, "h/k steer  u/j drive  wasd/qe camera  esc quit")
	}
	return lines
}
