package simulation

import (
	"errors"
	"log/slog"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/dustyard/internal/entity"
	"chosenoffset.com/dustyard/internal/input"
	"chosenoffset.com/dustyard/internal/particle"
	"chosenoffset.com/dustyard/internal/render"
)

// ErrSecondControllable is returned when adding a controllable entity while
// another one is alive.
var ErrSecondControllable = errors.New("scene already has a controllable entity")

// State is the lifecycle state of a scene.
type State int

const (
	Running State = iota
	Terminated
)

func (s State) String() string {
	if s == Terminated {
		return "terminated"
	}
	return "running"
}

// TickResult summarises one call to Tick.
type TickResult struct {
	Spawned         []entity.ID
	Culled          []entity.ID
	Bursts          int
	ParticlesCulled int
	// Ended is set on the one tick the session terminates.
	Ended *SessionEnded
}

// Scene owns every entity and billboard of a session. It is not safe for
// concurrent use: the host calls Tick and Render from one goroutine.
type Scene struct {
	cfg    *Config
	logger *slog.Logger
	rng    *rand.Rand
	events *Events

	entities  []*entity.Entity
	particles []particle.Billboard

	nextID entity.ID
	state  State
	lastT  float64
}

// NewEmptyScene returns a running scene with nothing in it.
func NewEmptyScene(cfg *Config, rng *rand.Rand, logger *slog.Logger) (*Scene, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Scene{
		cfg:    cfg,
		logger: logger,
		rng:    rng,
		events: newEvents(),
	}
	return s, nil
}

// NewScene returns the truck yard: the ground, the truck dropped from
// height, and a field of grass decals.
func NewScene(cfg *Config, rng *rand.Rand, logger *slog.Logger) (*Scene, error) {
	s, err := NewEmptyScene(cfg, rng, logger)
	if err != nil {
		return nil, err
	}
	if _, err := s.Add(entity.GroundProfile()); err != nil {
		return nil, err
	}
	if _, err := s.Add(entity.TruckProfile(s.cfg.Spawn.TruckHeight)); err != nil {
		return nil, err
	}
	p := s.cfg.Particles
	s.particles = append(s.particles, particle.Field(s.rng, p.GrassCount, p.GrassSpread, p.GrassHeight, render.BindingGrass)...)
	s.logger.Info("Scene initialized", "entities", len(s.entities), "billboards", len(s.particles))
	return s, nil
}

// Add appends an entity built from a profile.
func (s *Scene) Add(p entity.Profile) (*entity.Entity, error) {
	if p.Kind == entity.KindControllable && s.controllable() != nil {
		return nil, ErrSecondControllable
	}
	s.nextID++
	e := entity.New(s.nextID, p)
	s.entities = append(s.entities, e)
	s.logger.Debug("Entity spawned", "id", e.ID, "kind", e.Kind, "position", e.Position())
	emit(s.events.EntitySpawned, entityEvent(e))
	return e, nil
}

// AddBillboard appends a billboard.
func (s *Scene) AddBillboard(b particle.Billboard) {
	s.particles = append(s.particles, b)
}

// Events returns the scene notifications.
func (s *Scene) Events() *Events {
	return s.events
}

// State returns the lifecycle state.
func (s *Scene) State() State {
	return s.state
}

// Entities returns the live entities in scene order.
func (s *Scene) Entities() []*entity.Entity {
	return slices.Clone(s.entities)
}

// Billboards returns the live billboards in render order.
func (s *Scene) Billboards() []particle.Billboard {
	return slices.Clone(s.particles)
}

// Player returns the entity the proximity check runs against: the first one
// inserted after the ground. It is nil while fewer than two entities live.
func (s *Scene) Player() *entity.Entity {
	if len(s.entities) < 2 {
		return nil
	}
	return s.entities[1]
}

func (s *Scene) controllable() *entity.Entity {
	for _, e := range s.entities {
		if e.Has(entity.Controllable) {
			return e
		}
	}
	return nil
}

// Tick advances the scene to time t, dt seconds after the previous tick.
// Once the scene has terminated Tick does nothing.
func (s *Scene) Tick(t, dt float64, in input.Snapshot, cam render.Camera) TickResult {
	var res TickResult
	if s.state == Terminated {
		return res
	}
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		s.logger.Warn("Ignoring invalid frame time", "dt", dt)
		dt = 0
	}

	if in.Pressed(input.KeyEscape) {
		res.Ended = s.end(SessionEnded{Reason: ReasonQuit, Time: t, Player: s.playerID()})
		return res
	}

	if s.crossedSpawnBoundary(t) {
		e := s.spawnDecor()
		res.Spawned = append(res.Spawned, e.ID)
	}
	s.lastT = t

	res.Bursts = s.updateEntities(dt, in)

	rule := s.cfg.ParticleRule()
	for i := range s.particles {
		s.particles[i].Step(dt, rule)
	}

	particle.SortByDepth(s.particles, cam.Forward)

	res.Ended = s.checkProximity(t)

	res.Culled, res.ParticlesCulled = s.cull()
	return res
}

// crossedSpawnBoundary reports whether (lastT, t] contains a multiple of
// the spawn interval. At most one decor entity is spawned per tick.
func (s *Scene) crossedSpawnBoundary(t float64) bool {
	iv := s.cfg.Spawn.Interval
	return t > s.lastT && math.Floor(t/iv) > math.Floor(s.lastT/iv)
}

func (s *Scene) spawnDecor() *entity.Entity {
	spread := s.cfg.Spawn.Spread
	pos := mgl64.Vec3{
		float64(s.rng.IntN(2*spread) - spread),
		s.cfg.Spawn.Height,
		float64(s.rng.IntN(2*spread) - spread),
	}
	// Decor is never controllable, so Add cannot fail.
	e, _ := s.Add(entity.DecorProfile(pos))
	return e
}

func (s *Scene) updateEntities(dt float64, in input.Snapshot) int {
	params := s.cfg.KinematicsParams()
	bursts := 0
	for _, e := range s.entities {
		e.Control(in, s.cfg.Physics.Thrust)
		step := e.Integrate(dt, params)
		if step.Sanitized {
			s.logger.Warn("Discarded non-finite entity state", "id", e.ID, "kind", e.Kind)
		}
		if step.Contact && s.burst(e, step.At) {
			bursts++
		}
	}
	return bursts
}

// burst reports false when the config asks for no dust at all.
func (s *Scene) burst(e *entity.Entity, at mgl64.Vec3) bool {
	p := s.cfg.Particles
	dust := particle.Burst(s.rng, at, p.BurstSize, p.BurstSpeed, render.BindingDust)
	if len(dust) == 0 {
		return false
	}
	s.particles = append(s.particles, dust...)
	s.logger.Debug("Ground contact", "id", e.ID, "position", at, "particles", len(dust))
	emit(s.events.Burst, BurstEvent{Entity: e.ID, Position: at, Count: len(dust)})
	return true
}

// checkProximity runs the player against every later entity. A grounded
// candidate inside the planar box is towed; an airborne one close below the
// player ends the session.
func (s *Scene) checkProximity(t float64) *SessionEnded {
	player := s.Player()
	if player == nil {
		return nil
	}
	pr := s.cfg.Proximity
	pp := player.Position()
	for _, c := range s.entities[2:] {
		cp := c.Position()
		dx, dz := pp.X()-cp.X(), pp.Z()-cp.Z()
		if math.Abs(dx) >= pr.PlanarRadius || math.Abs(dz) >= pr.PlanarRadius {
			continue
		}
		if c.Body.OnGround {
			c.Body.Velocity = player.Body.Velocity.Mul(pr.TowFactor)
			continue
		}
		if pp.Y()-cp.Y() < pr.VerticalGap {
			return s.end(SessionEnded{
				Reason: ReasonCollision,
				Time:   t,
				Player: player.ID,
				Other:  c.ID,
			})
		}
	}
	return nil
}

func (s *Scene) cull() ([]entity.ID, int) {
	limit := s.cfg.Physics.CullY
	var culled []entity.ID
	s.entities = slices.DeleteFunc(s.entities, func(e *entity.Entity) bool {
		if e.Position().Y() >= limit {
			return false
		}
		culled = append(culled, e.ID)
		s.logger.Debug("Entity culled", "id", e.ID, "kind", e.Kind)
		emit(s.events.EntityCulled, entityEvent(e))
		return true
	})

	before := len(s.particles)
	s.particles = slices.DeleteFunc(s.particles, func(p particle.Billboard) bool {
		return p.Position.Y() < limit
	})
	removed := before - len(s.particles)
	if removed > 0 {
		emit(s.events.ParticlesCulled, removed)
	}
	return culled, removed
}

func (s *Scene) end(ev SessionEnded) *SessionEnded {
	if s.state == Terminated {
		return nil
	}
	s.state = Terminated
	s.logger.Info("Session ended", "reason", ev.Reason, "time", ev.Time, "player", ev.Player, "other", ev.Other)
	emit(s.events.SessionEnded, ev)
	return &ev
}

func (s *Scene) playerID() entity.ID {
	if p := s.Player(); p != nil {
		return p.ID
	}
	return 0
}

// Render issues draw requests for every live entity, then every billboard
// in depth order.
func (s *Scene) Render(sink render.Sink, cam render.Camera) {
	for _, e := range s.entities {
		sink.DrawModel(e.Transform(), e.Binding)
		if e.CastsShadow() {
			sink.DrawShadow(e.ShadowTransform(), e.Binding)
		}
	}
	for _, p := range s.particles {
		sink.DrawBillboard(p.Quad(cam))
	}
}
