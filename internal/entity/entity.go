// Package entity defines the scene objects. There is a single Entity type;
// its Kind selects a capability set and the capabilities decide which steps
// of the tick apply to it.
package entity

import (
	"fmt"
	"math"

	"github.com/ErikKalkoken/go-set"
	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/dustyard/internal/input"
	"chosenoffset.com/dustyard/internal/kinematics"
	"chosenoffset.com/dustyard/internal/render"
)

// Kind is the variant of an entity.
type Kind int

const (
	KindGround Kind = iota
	KindStatic
	KindMovable
	KindBouncer
	KindControllable
)

func (k Kind) String() string {
	switch k {
	case KindGround:
		return "ground"
	case KindStatic:
		return "static"
	case KindMovable:
		return "movable"
	case KindBouncer:
		return "bouncer"
	case KindControllable:
		return "controllable"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Capability is one behaviour an entity may take part in.
type Capability int

const (
	Integrates Capability = iota
	Controllable
	Bouncy
	Static
)

// Capabilities returns the capability set of a kind.
func Capabilities(k Kind) set.Set[Capability] {
	switch k {
	case KindMovable:
		return set.Of(Integrates)
	case KindBouncer:
		return set.Of(Integrates, Bouncy)
	case KindControllable:
		return set.Of(Integrates, Controllable)
	default:
		return set.Of(Static)
	}
}

// ID identifies an entity for the lifetime of a scene.
type ID uint64

// Entity is a simulated scene object.
type Entity struct {
	ID          ID
	Kind        Kind
	Caps        set.Set[Capability]
	Body        kinematics.Body
	Binding     render.Binding
	Restitution float64
	// Drive is the current control command. Controllable entities rewrite
	// it every tick; other kinds keep the one they were created with.
	Drive kinematics.Drive
}

// New creates an entity from a profile.
func New(id ID, p Profile) *Entity {
	body := kinematics.NewBody(p.Position)
	if p.Scale != (mgl64.Vec3{}) {
		body.Scale = p.Scale
	}
	body.Velocity = p.Velocity
	return &Entity{
		ID:          id,
		Kind:        p.Kind,
		Caps:        Capabilities(p.Kind),
		Body:        body,
		Binding:     p.Binding,
		Restitution: p.Restitution,
		Drive:       kinematics.Drive{AngularVelocity: p.AngularVelocity},
	}
}

// Has reports whether the entity has a capability.
func (e *Entity) Has(c Capability) bool {
	return e.Caps.Contains(c)
}

// Control updates the drive of a controllable entity from the key snapshot.
func (e *Entity) Control(in input.Snapshot, thrust float64) {
	if !e.Has(Controllable) {
		return
	}
	e.Drive = Control(in, e.Body.Angle, thrust)
}

// Integrate advances the body of an integrating entity by dt seconds.
func (e *Entity) Integrate(dt float64, p kinematics.Params) kinematics.Step {
	if !e.Has(Integrates) {
		return kinematics.Step{}
	}
	step := e.Body.Integrate(dt, e.Drive, p)
	if e.Has(Bouncy) {
		e.Body.Bounce(e.Restitution)
	}
	return step
}

// Position is the current world position.
func (e *Entity) Position() mgl64.Vec3 {
	return e.Body.Position
}

// Transform is the model transform for drawing.
func (e *Entity) Transform() render.Transform {
	return render.Transform{
		Position: e.Body.Position,
		Angle:    e.Body.Angle,
		Axis:     e.Body.Axis,
		Scale:    e.Body.Scale,
	}
}

// CastsShadow reports whether a ground shadow is drawn for the entity.
func (e *Entity) CastsShadow() bool {
	return e.Kind != KindGround && e.Body.Position.Y() > -1
}

// ShadowTransform flattens the model onto the ground just above y=0. The
// shadow shrinks as the entity rises.
func (e *Entity) ShadowTransform() render.Transform {
	p, s := e.Body.Position, e.Body.Scale
	shrink := p.Y() / 200
	return render.Transform{
		Position: mgl64.Vec3{p.X(), 0.1, p.Z()},
		Angle:    e.Body.Angle,
		Axis:     e.Body.Axis,
		Scale:    mgl64.Vec3{s.X() - shrink, 0, s.Z() - shrink},
	}
}

// Control maps the key snapshot to a drive command. It reads nothing but its
// arguments. Opposing keys held together cancel out.
func Control(in input.Snapshot, angleDeg, thrust float64) kinematics.Drive {
	var d kinematics.Drive

	left, right := in.Pressed(input.KeyTurnLeft), in.Pressed(input.KeyTurnRight)
	switch {
	case left && !right:
		d.AngularVelocity = 1
	case right && !left:
		d.AngularVelocity = -1
	}

	theta := mgl64.DegToRad(angleDeg)
	cos, sin := math.Cos(theta)*thrust, math.Sin(theta)*thrust
	fwd, back := in.Pressed(input.KeyForward), in.Pressed(input.KeyBackward)
	switch {
	case fwd && !back:
		d.Acceleration = mgl64.Vec3{-cos, -thrust, sin}
	case back && !fwd:
		d.Acceleration = mgl64.Vec3{cos, -thrust, -sin}
	}
	return d
}
