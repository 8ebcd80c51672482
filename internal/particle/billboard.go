// Package particle implements camera-facing billboards: static decals that
// never change and kinetic dust that drifts, grows and fades until culled.
package particle

import (
	"cmp"
	"math/rand/v2"
	"slices"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/dustyard/internal/render"
)

const (
	// InitialSize is the half-extent of a new billboard.
	InitialSize = 7.0
	// DepthEpsilon is the projection gap beyond which one billboard is
	// strictly nearer than another.
	DepthEpsilon = 0.01
)

// Rule is the fixed per-tick motion of kinetic billboards.
type Rule struct {
	Growth float64 // size added per tick
	Fade   float64 // opacity removed per tick
	Drag   float64 // vertical velocity removed per tick
	// ClampOpacity keeps opacity in [0, 1]. When false opacity keeps
	// falling below zero, the legacy behaviour.
	ClampOpacity bool
}

// DefaultRule returns the dust motion rule.
func DefaultRule() Rule {
	return Rule{
		Growth:       0.01,
		Fade:         0.1,
		Drag:         0.01,
		ClampOpacity: true,
	}
}

// Billboard is one camera-facing quad.
type Billboard struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Size     float64
	Opacity  float64
	Age      int
	Kinetic  bool
	Binding  render.Binding
}

// NewStatic returns a decal that never moves.
func NewStatic(pos mgl64.Vec3, b render.Binding) Billboard {
	return Billboard{
		Position: pos,
		Size:     InitialSize,
		Opacity:  1,
		Binding:  b,
	}
}

// NewKinetic returns a particle that follows Rule each tick.
func NewKinetic(pos, vel mgl64.Vec3, b render.Binding) Billboard {
	p := NewStatic(pos, b)
	p.Velocity = vel
	p.Kinetic = true
	return p
}

// Step applies the motion rule once. Static billboards are left untouched.
func (p *Billboard) Step(dt float64, r Rule) {
	if !p.Kinetic {
		return
	}
	p.Position = p.Position.Add(p.Velocity.Mul(dt))
	p.Age++
	p.Size += r.Growth
	p.Opacity -= r.Fade
	if r.ClampOpacity {
		p.Opacity = min(max(p.Opacity, 0), 1)
	}
	p.Velocity[1] -= r.Drag
}

// Color is the tint the billboard is drawn with.
func (p Billboard) Color() render.Color {
	if !p.Kinetic {
		return render.White
	}
	return render.Color{B: p.Opacity, A: p.Opacity}
}

// Quad builds the draw request for the given camera.
func (p Billboard) Quad(cam render.Camera) render.Quad {
	return render.Quad{
		Position: p.Position,
		Right:    cam.Right,
		Up:       cam.Up,
		Size:     p.Size,
		Color:    p.Color(),
		Binding:  p.Binding,
	}
}

// Depth is the projection of the billboard onto the camera forward axis.
func Depth(p Billboard, forward mgl64.Vec3) float64 {
	return p.Position.Dot(forward)
}

// SortByDepth orders billboards by descending projection onto forward, so
// that blending them in slice order is back to front for the scene camera.
// Billboards whose projections differ by more than DepthEpsilon always keep
// the larger projection first; the order among equal projections is stable.
func SortByDepth(ps []Billboard, forward mgl64.Vec3) {
	slices.SortStableFunc(ps, func(a, b Billboard) int {
		return cmp.Compare(Depth(b, forward), Depth(a, forward))
	})
}

// Burst spawns n dust particles around a ground contact point. Each starts
// half a unit below the point on every axis with an integer velocity in
// [-speed, speed-1] per axis.
func Burst(rng *rand.Rand, at mgl64.Vec3, n, speed int, b render.Binding) []Billboard {
	if n <= 0 || speed <= 0 {
		return nil
	}
	origin := at.Sub(mgl64.Vec3{0.5, 0.5, 0.5})
	out := make([]Billboard, 0, n)
	for range n {
		vel := mgl64.Vec3{
			float64(rng.IntN(2*speed) - speed),
			float64(rng.IntN(2*speed) - speed),
			float64(rng.IntN(2*speed) - speed),
		}
		out = append(out, NewKinetic(origin, vel, b))
	}
	return out
}

// Field scatters n static decals over the integer grid (-spread, spread)
// at the given height.
func Field(rng *rand.Rand, n, spread int, height float64, b render.Binding) []Billboard {
	if n <= 0 || spread <= 0 {
		return nil
	}
	out := make([]Billboard, 0, n)
	for range n {
		pos := mgl64.Vec3{
			float64(rng.IntN(2*spread) - spread),
			height,
			float64(rng.IntN(2*spread) - spread),
		}
		out = append(out, NewStatic(pos, b))
	}
	return out
}
