// Package game hosts the truck yard scene inside the engine loop: it keeps
// the wall clock, the fly camera and the game over screen.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"chosenoffset.com/dustyard/internal/input"
	"chosenoffset.com/dustyard/internal/render"
	"chosenoffset.com/dustyard/internal/simulation"
)

// Manager handles the overall game state and implements render.Game.
type Manager struct {
	ScreenWidth  int
	ScreenHeight int
	Mode         Mode
	Scene        *simulation.Scene
	Camera       *Camera
	Input        render.InputSource
	Stats        Stats

	// Ended is the reason the last session stopped, nil while playing.
	Ended *simulation.SessionEnded

	cfg     *simulation.Config
	logger  *slog.Logger
	now     func() time.Time
	newRand func() *rand.Rand
	start   time.Time
	last    time.Time
}

// NewManager creates a new game manager with a fresh scene.
func NewManager(cfg *simulation.Config, in render.InputSource, logger *slog.Logger, width, height int) (*Manager, error) {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{
		ScreenWidth:  width,
		ScreenHeight: height,
		Input:        in,
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
	}
	if err := m.Restart(); err != nil {
		return nil, err
	}
	return m, nil
}

// Restart replaces the scene with a new one and resets the clock.
func (m *Manager) Restart() error {
	scene, err := simulation.NewScene(m.cfg, m.newRand(), m.logger)
	if err != nil {
		return fmt.Errorf("failed to create scene: %w", err)
	}
	m.Scene = scene
	m.Camera = NewCamera()
	m.Mode = ModePlaying
	m.Ended = nil
	m.Stats = Stats{}
	m.subscribe()
	m.start = m.now()
	m.last = m.start
	return nil
}

func (m *Manager) subscribe() {
	ev := m.Scene.Events()
	// The ground and the truck are added before anyone listens.
	ev.EntitySpawned.AddListener(func(_ context.Context, _ simulation.EntityEvent) {
		m.Stats.Dropped++
	})
	ev.Burst.AddListener(func(_ context.Context, _ simulation.BurstEvent) {
		m.Stats.Bursts++
	})
	ev.EntityCulled.AddListener(func(_ context.Context, _ simulation.EntityEvent) {
		m.Stats.Culled++
	})
	ev.SessionEnded.AddListener(func(_ context.Context, e simulation.SessionEnded) {
		m.logger.Info("Session over", "reason", e.Reason, "seconds", e.Time, "dropped", m.Stats.Dropped, "bursts", m.Stats.Bursts)
	})
}

// Update advances the scene by the wall-clock time since the last frame.
func (m *Manager) Update() error {
	switch m.Mode {
	case ModePlaying:
		var in input.Snapshot
		m.Input.Poll(&in)

		now := m.now()
		dt := now.Sub(m.last).Seconds()
		t := now.Sub(m.start).Seconds()
		m.last = now

		m.Camera.Move(in, dt)
		res := m.Scene.Tick(t, dt, in, m.Camera.View())
		if res.Ended == nil {
			return nil
		}
		m.Ended = res.Ended
		if res.Ended.Reason == simulation.ReasonQuit {
			return render.ErrQuit
		}
		m.Mode = ModeGameOver
	case ModeGameOver:
		if m.Input.JustPressed(input.KeyEscape) {
			return render.ErrQuit
		}
		if m.Input.JustPressed(input.KeyRestart) {
			m.logger.Info("Restarting")
			return m.Restart()
		}
	}
	return nil
}

// Layout handles window resize.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	m.ScreenWidth, m.ScreenHeight = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
