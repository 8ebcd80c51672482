// Package kinematics provides the body state shared by every dynamic entity
// and the explicit Euler step that advances it.
package kinematics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Params holds the world constants used by Integrate.
type Params struct {
	Gravity          mgl64.Vec3
	Damping          float64 // velocity retained per second
	GroundHalfExtent float64 // ground square spans (-half, half) on x and z
	TurnRate         float64 // degrees per second
}

// DefaultParams returns the constants of the truck yard scene.
func DefaultParams() Params {
	return Params{
		Gravity:          mgl64.Vec3{0, -9.81, 0},
		Damping:          0.8,
		GroundHalfExtent: 100,
		TurnRate:         100,
	}
}

// Drive is what an entity asks of its body for one tick.
type Drive struct {
	Acceleration    mgl64.Vec3
	AngularVelocity float64 // +1 turns left, -1 turns right, anything else holds
}

// Body is the position, velocity and orientation of an entity.
type Body struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Angle    float64 // degrees around Axis
	Axis     mgl64.Vec3
	Scale    mgl64.Vec3
	// OnGround is true while the body is inside a ground-contact episode.
	OnGround bool
}

// NewBody returns an unscaled body at rest, oriented around +y.
func NewBody(position mgl64.Vec3) Body {
	return Body{
		Position: position,
		Axis:     mgl64.Vec3{0, 1, 0},
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// Step reports what happened during one Integrate call.
type Step struct {
	// Contact is true on the first tick of a ground-contact episode.
	Contact bool
	// At is where the body was when contact was detected.
	At mgl64.Vec3
	// Sanitized is true when non-finite state had to be discarded.
	Sanitized bool
}

// InGroundSquare reports whether a point lies strictly inside the ground square.
func InGroundSquare(p mgl64.Vec3, half float64) bool {
	return p.X() < half && p.X() > -half && p.Z() < half && p.Z() > -half
}

// Integrate advances the body by dt seconds.
func (b *Body) Integrate(dt float64, d Drive, p Params) Step {
	var step Step
	prev := b.Position

	b.Velocity = b.Velocity.Add(p.Gravity.Mul(dt))
	b.Velocity = b.Velocity.Add(d.Acceleration.Mul(dt))
	b.Velocity = b.Velocity.Mul(math.Pow(p.Damping, dt))

	if b.Position.Y() < 0 && InGroundSquare(b.Position, p.GroundHalfExtent) {
		if !b.OnGround {
			b.OnGround = true
			step.Contact = true
			step.At = b.Position
		}
		b.Velocity[1] = 0
	} else {
		b.OnGround = false
	}

	b.Position = b.Position.Add(b.Velocity.Mul(dt))

	if b.Velocity.X() != 0 || b.Velocity.Y() != 0 {
		switch d.AngularVelocity {
		case 1:
			b.Angle += p.TurnRate * dt
		case -1:
			b.Angle -= p.TurnRate * dt
		}
	}

	if !finite(b.Velocity) {
		b.Velocity = mgl64.Vec3{}
		step.Sanitized = true
	}
	if !finite(b.Position) {
		b.Position = prev
		step.Sanitized = true
	}
	if math.IsNaN(b.Angle) || math.IsInf(b.Angle, 0) {
		b.Angle = 0
		step.Sanitized = true
	}
	return step
}

// Bounce reflects vertical velocity below the ground plane.
func (b *Body) Bounce(restitution float64) {
	if b.Position.Y() < 0 {
		b.Velocity[1] *= -restitution
	}
}

// Radians returns the orientation angle in radians.
func (b *Body) Radians() float64 {
	return mgl64.DegToRad(b.Angle)
}

func finite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
