package kinematics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noGravity() Params {
	p := DefaultParams()
	p.Gravity = mgl64.Vec3{}
	return p
}

func TestNewBody(t *testing.T) {
	b := NewBody(mgl64.Vec3{1, 2, 3})
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, b.Position)
	assert.Equal(t, mgl64.Vec3{}, b.Velocity)
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, b.Axis)
	assert.Equal(t, mgl64.Vec3{1, 1, 1}, b.Scale)
	assert.False(t, b.OnGround)
}

func TestIntegrateFreeFall(t *testing.T) {
	b := NewBody(mgl64.Vec3{0, 10, 0})
	dt := 0.1

	step := b.Integrate(dt, Drive{}, DefaultParams())

	wantVY := -9.81 * dt * math.Pow(0.8, dt)
	assert.False(t, step.Contact)
	assert.InDelta(t, wantVY, b.Velocity.Y(), 1e-12)
	assert.InDelta(t, 10+wantVY*dt, b.Position.Y(), 1e-12)
	assert.Equal(t, 0.0, b.Position.X())
}

func TestIntegrateDampingIsBounded(t *testing.T) {
	b := NewBody(mgl64.Vec3{0, 50, 0})
	d := Drive{Acceleration: mgl64.Vec3{10, 0, 0}}
	p := noGravity()

	for range 3000 {
		b.Integrate(0.01, d, p)
	}

	// Continuous steady state is a / -ln(damping).
	terminal := 10 / -math.Log(0.8)
	assert.InDelta(t, terminal, b.Velocity.X(), 0.5)

	before := b.Velocity.X()
	for range 500 {
		b.Integrate(0.01, d, p)
	}
	assert.InDelta(t, before, b.Velocity.X(), 0.1)
	assert.LessOrEqual(t, b.Velocity.X(), terminal)
}

func TestIntegrateGroundContactFiresOncePerEpisode(t *testing.T) {
	b := NewBody(mgl64.Vec3{0, -1, 0})
	p := DefaultParams()

	step := b.Integrate(0.01, Drive{}, p)
	require.True(t, step.Contact)
	assert.Equal(t, mgl64.Vec3{0, -1, 0}, step.At)
	assert.True(t, b.OnGround)
	assert.Equal(t, 0.0, b.Velocity.Y())

	for range 10 {
		step = b.Integrate(0.01, Drive{}, p)
		assert.False(t, step.Contact)
		assert.True(t, b.OnGround)
	}

	b.Position[1] = 5
	step = b.Integrate(0.01, Drive{}, p)
	assert.False(t, step.Contact)
	assert.False(t, b.OnGround, "leaving the ground ends the episode")

	b.Position[1] = -1
	step = b.Integrate(0.01, Drive{}, p)
	assert.True(t, step.Contact)
}

func TestIntegrateOutsideGroundSquareKeepsFalling(t *testing.T) {
	tests := []struct {
		name string
		pos  mgl64.Vec3
	}{
		{"past x", mgl64.Vec3{150, -1, 0}},
		{"on x edge", mgl64.Vec3{100, -1, 0}},
		{"on negative z edge", mgl64.Vec3{0, -1, -100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBody(tt.pos)
			step := b.Integrate(0.1, Drive{}, DefaultParams())
			assert.False(t, step.Contact)
			assert.False(t, b.OnGround)
			assert.Less(t, b.Velocity.Y(), 0.0)
			assert.Less(t, b.Position.Y(), tt.pos.Y())
		})
	}
}

func TestIntegrateTurning(t *testing.T) {
	tests := []struct {
		name     string
		velocity mgl64.Vec3
		angular  float64
		want     float64
	}{
		{"left while moving", mgl64.Vec3{1, 0, 0}, 1, 10},
		{"right while moving", mgl64.Vec3{1, 0, 0}, -1, -10},
		{"hold while moving", mgl64.Vec3{1, 0, 0}, 0, 0},
		{"partial flag does not turn", mgl64.Vec3{1, 0, 0}, 0.1, 0},
		{"left at rest", mgl64.Vec3{}, 1, 0},
		{"only z motion does not turn", mgl64.Vec3{0, 0, 3}, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBody(mgl64.Vec3{0, 50, 0})
			b.Velocity = tt.velocity
			b.Integrate(0.1, Drive{AngularVelocity: tt.angular}, noGravity())
			assert.InDelta(t, tt.want, b.Angle, 1e-9)
		})
	}
}

func TestIntegrateDiscardsNonFiniteState(t *testing.T) {
	b := NewBody(mgl64.Vec3{1, 2, 3})
	d := Drive{Acceleration: mgl64.Vec3{math.NaN(), 0, 0}}

	step := b.Integrate(0.1, d, DefaultParams())

	assert.True(t, step.Sanitized)
	assert.Equal(t, mgl64.Vec3{}, b.Velocity)
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, b.Position)
}

func TestBounce(t *testing.T) {
	b := NewBody(mgl64.Vec3{150, -1, 0})
	b.Velocity = mgl64.Vec3{0, -4, 0}
	b.Bounce(0.5)
	assert.Equal(t, 2.0, b.Velocity.Y())

	b.Position[1] = 1
	b.Bounce(0.5)
	assert.Equal(t, 2.0, b.Velocity.Y())
}

func TestRadians(t *testing.T) {
	b := NewBody(mgl64.Vec3{})
	b.Angle = 180
	assert.InDelta(t, math.Pi, b.Radians(), 1e-12)
}
