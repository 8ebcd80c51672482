package simulation

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/maniartech/signals"

	"chosenoffset.com/dustyard/internal/entity"
)

// Reason tells why a session ended.
type Reason int

const (
	ReasonCollision Reason = iota + 1
	ReasonQuit
)

func (r Reason) String() string {
	switch r {
	case ReasonCollision:
		return "collision"
	case ReasonQuit:
		return "quit"
	}
	return fmt.Sprintf("reason(%d)", int(r))
}

// SessionEnded is emitted exactly once, when the scene terminates.
type SessionEnded struct {
	Reason Reason
	Time   float64
	Player entity.ID
	Other  entity.ID // zero unless Reason is ReasonCollision
}

// EntityEvent describes an entity entering or leaving the scene.
type EntityEvent struct {
	ID       entity.ID
	Kind     entity.Kind
	Position mgl64.Vec3
}

// BurstEvent describes a dust burst at a ground contact.
type BurstEvent struct {
	Entity   entity.ID
	Position mgl64.Vec3
	Count    int
}

// Events are synchronous notifications fired from inside Tick. Listeners
// run on the ticking goroutine and must not call back into the scene.
type Events struct {
	EntitySpawned   *signals.SyncSignal[EntityEvent]
	EntityCulled    *signals.SyncSignal[EntityEvent]
	Burst           *signals.SyncSignal[BurstEvent]
	ParticlesCulled *signals.SyncSignal[int]
	SessionEnded    *signals.SyncSignal[SessionEnded]
}

func newEvents() *Events {
	return &Events{
		EntitySpawned:   signals.NewSync[EntityEvent](),
		EntityCulled:    signals.NewSync[EntityEvent](),
		Burst:           signals.NewSync[BurstEvent](),
		ParticlesCulled: signals.NewSync[int](),
		SessionEnded:    signals.NewSync[SessionEnded](),
	}
}

func emit[T any](s *signals.SyncSignal[T], payload T) {
	s.Emit(context.Background(), payload)
}

func entityEvent(e *entity.Entity) EntityEvent {
	return EntityEvent{ID: e.ID, Kind: e.Kind, Position: e.Position()}
}
