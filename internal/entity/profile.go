package entity

import (
	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/dustyard/internal/render"
)

// Profile describes how to build an entity.
type Profile struct {
	Kind            Kind
	Binding         render.Binding
	Position        mgl64.Vec3
	Velocity        mgl64.Vec3
	Scale           mgl64.Vec3
	AngularVelocity float64
	Restitution     float64
}

// GroundProfile is the ground plane at the origin.
func GroundProfile() Profile {
	return Profile{Kind: KindGround, Binding: render.BindingGround}
}

// TruckProfile is the player vehicle, dropped from height.
func TruckProfile(height float64) Profile {
	return Profile{
		Kind:            KindControllable,
		Binding:         render.BindingTruck,
		Position:        mgl64.Vec3{0, height, 0},
		Scale:           mgl64.Vec3{2, 2, 2},
		AngularVelocity: 0.1,
	}
}

// DecorProfile is a falling tree at the given position.
func DecorProfile(pos mgl64.Vec3) Profile {
	return Profile{
		Kind:            KindMovable,
		Binding:         render.BindingTree,
		Position:        pos,
		AngularVelocity: 0.1,
	}
}

// BouncerProfile is a movable that rebounds off the ground plane.
func BouncerProfile(pos mgl64.Vec3, restitution float64) Profile {
	return Profile{
		Kind:        KindBouncer,
		Binding:     render.BindingTree,
		Position:    pos,
		Restitution: restitution,
	}
}
