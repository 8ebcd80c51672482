package entity

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"chosenoffset.com/dustyard/internal/input"
	"chosenoffset.com/dustyard/internal/kinematics"
	"chosenoffset.com/dustyard/internal/render"
)

func keys(codes ...input.Code) input.Snapshot {
	var s input.Snapshot
	for _, c := range codes {
		s.Press(c)
	}
	return s
}

func TestCapabilities(t *testing.T) {
	tests := []struct {
		kind Kind
		has  []Capability
		not  []Capability
	}{
		{KindGround, []Capability{Static}, []Capability{Integrates, Controllable, Bouncy}},
		{KindStatic, []Capability{Static}, []Capability{Integrates}},
		{KindMovable, []Capability{Integrates}, []Capability{Controllable, Bouncy, Static}},
		{KindBouncer, []Capability{Integrates, Bouncy}, []Capability{Controllable}},
		{KindControllable, []Capability{Integrates, Controllable}, []Capability{Bouncy, Static}},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			e := New(1, Profile{Kind: tt.kind})
			for _, c := range tt.has {
				assert.True(t, e.Has(c), "capability %d", c)
			}
			for _, c := range tt.not {
				assert.False(t, e.Has(c), "capability %d", c)
			}
		})
	}
}

func TestControlTurning(t *testing.T) {
	tests := []struct {
		name string
		in   input.Snapshot
		want float64
	}{
		{"none", keys(), 0},
		{"left", keys(input.KeyTurnLeft), 1},
		{"right", keys(input.KeyTurnRight), -1},
		{"both", keys(input.KeyTurnLeft, input.KeyTurnRight), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Control(tt.in, 0, 10)
			assert.Equal(t, tt.want, d.AngularVelocity)
		})
	}
}

func TestControlThrust(t *testing.T) {
	tests := []struct {
		name  string
		in    input.Snapshot
		angle float64
		want  mgl64.Vec3
	}{
		{"none", keys(), 0, mgl64.Vec3{}},
		{"forward at zero", keys(input.KeyForward), 0, mgl64.Vec3{-10, -10, 0}},
		{"backward at zero", keys(input.KeyBackward), 0, mgl64.Vec3{10, -10, 0}},
		{"forward at 90", keys(input.KeyForward), 90, mgl64.Vec3{0, -10, 10}},
		{"backward at 90", keys(input.KeyBackward), 90, mgl64.Vec3{0, -10, -10}},
		{"both", keys(input.KeyForward, input.KeyBackward), 0, mgl64.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Control(tt.in, tt.angle, 10)
			assert.InDeltaSlice(t, tt.want[:], d.Acceleration[:], 1e-9)
		})
	}
}

func TestControlIgnoresNonControllable(t *testing.T) {
	e := New(1, DecorProfile(mgl64.Vec3{0, 200, 0}))
	e.Control(keys(input.KeyForward, input.KeyTurnLeft), 10)
	assert.Equal(t, kinematics.Drive{AngularVelocity: 0.1}, e.Drive)
}

func TestControllableUsesCurrentHeading(t *testing.T) {
	e := New(1, TruckProfile(100))
	e.Body.Angle = 180
	e.Control(keys(input.KeyForward), 10)
	assert.InDelta(t, 10, e.Drive.Acceleration.X(), 1e-9)
	assert.InDelta(t, 0, e.Drive.Acceleration.Z(), 1e-9)
}

func TestIntegrateSkipsStatic(t *testing.T) {
	e := New(1, GroundProfile())
	step := e.Integrate(1, kinematics.DefaultParams())
	assert.Equal(t, kinematics.Step{}, step)
	assert.Equal(t, mgl64.Vec3{}, e.Position())
	assert.Equal(t, mgl64.Vec3{}, e.Body.Velocity)
}

func TestBouncerRebounds(t *testing.T) {
	e := New(1, BouncerProfile(mgl64.Vec3{150, -1, 0}, 0.5))
	e.Integrate(0.1, kinematics.DefaultParams())
	assert.Greater(t, e.Body.Velocity.Y(), 0.0)
}

func TestTruckProfile(t *testing.T) {
	e := New(1, TruckProfile(100))
	assert.Equal(t, KindControllable, e.Kind)
	assert.Equal(t, mgl64.Vec3{0, 100, 0}, e.Position())
	assert.Equal(t, mgl64.Vec3{2, 2, 2}, e.Body.Scale)
	assert.Equal(t, render.BindingTruck, e.Binding)
}

func TestShadow(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		y       float64
		want    bool
	}{
		{"ground never", GroundProfile(), 5, false},
		{"above ground", DecorProfile(mgl64.Vec3{}), 10, true},
		{"slightly below", DecorProfile(mgl64.Vec3{}), -0.5, true},
		{"at cutoff", DecorProfile(mgl64.Vec3{}), -1, false},
		{"far below", DecorProfile(mgl64.Vec3{}), -5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(1, tt.profile)
			e.Body.Position[1] = tt.y
			assert.Equal(t, tt.want, e.CastsShadow())
		})
	}
}

func TestShadowTransform(t *testing.T) {
	e := New(1, TruckProfile(100))
	e.Body.Position = mgl64.Vec3{3, 20, -4}
	e.Body.Angle = 45

	st := e.ShadowTransform()

	assert.Equal(t, mgl64.Vec3{3, 0.1, -4}, st.Position)
	assert.Equal(t, 45.0, st.Angle)
	assert.InDeltaSlice(t, []float64{1.9, 0, 1.9}, st.Scale[:], 1e-12)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "controllable", KindControllable.String())
	assert.Equal(t, "kind(42)", Kind(42).String())
}
