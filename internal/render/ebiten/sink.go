package ebiten

import (
	"image/color"
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"chosenoffset.com/dustyard/internal/render"
)

// footprint is the half size on x and z of each model at scale 1.
var footprint = map[render.Binding][2]float64{
	render.BindingGround: {100, 100},
	render.BindingTruck:  {2, 1},
	render.BindingTree:   {1.5, 1.5},
}

var tint = map[render.Binding]render.Color{
	render.BindingGround: {R: 0.55, G: 0.45, B: 0.3, A: 1},
	render.BindingTruck:  {R: 0.8, G: 0.2, B: 0.15, A: 1},
	render.BindingTree:   {R: 0.1, G: 0.45, B: 0.15, A: 1},
	render.BindingGrass:  {R: 0.35, G: 0.7, B: 0.25, A: 1},
	render.BindingDust:   {R: 1, G: 1, B: 1, A: 1},
}

var shadowColor = render.Color{A: 0.35}

var whitePixel = sync.OnceValue(func() *ebiten.Image {
	img := ebiten.NewImage(1, 1)
	img.Fill(color.White)
	return img
})

// sceneSink draws the scene from above: models and shadows as rotated
// boxes, billboards as blended discs.
type sceneSink struct {
	dst *ebiten.Image
	vp  render.Viewport
}

func (s *sceneSink) DrawModel(t render.Transform, b render.Binding) {
	s.drawBox(t, b, tintOf(b))
	if b == render.BindingTruck {
		s.drawHeading(t)
	}
}

func (s *sceneSink) DrawShadow(t render.Transform, b render.Binding) {
	s.drawBox(t, b, shadowColor)
}

func (s *sceneSink) DrawBillboard(q render.Quad) {
	c := tintOf(q.Binding)
	c = render.Color{R: c.R * q.Color.R, G: c.G * q.Color.G, B: c.B * q.Color.B, A: c.A * q.Color.A}
	r := q.Size * s.vp.PixelsPerUnit / 4
	if r <= 0 || c.A <= 0 {
		return
	}
	x, y := s.vp.ToScreen(q.Position)
	vector.DrawFilledCircle(s.dst, float32(x), float32(y), float32(r), toNRGBA(c), true)
}

func (s *sceneSink) drawBox(t render.Transform, b render.Binding, c render.Color) {
	half, ok := footprint[b]
	if !ok {
		half = [2]float64{1, 1}
	}
	w := 2 * half[0] * t.Scale.X() * s.vp.PixelsPerUnit
	h := 2 * half[1] * t.Scale.Z() * s.vp.PixelsPerUnit
	if w <= 0 || h <= 0 {
		return
	}
	x, y := s.vp.ToScreen(t.Position)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-0.5, -0.5)
	op.GeoM.Scale(w, h)
	op.GeoM.Rotate(yaw(t))
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(toNRGBA(c))
	s.dst.DrawImage(whitePixel(), op)
}

// drawHeading strokes the direction the forward key pushes the truck.
func (s *sceneSink) drawHeading(t render.Transform) {
	theta := yaw(t)
	reach := 3 * t.Scale.X()
	tip := t.Position.Add(mgl64.Vec3{-math.Cos(theta) * reach, 0, math.Sin(theta) * reach})
	x0, y0 := s.vp.ToScreen(t.Position)
	x1, y1 := s.vp.ToScreen(tip)
	vector.StrokeLine(s.dst, float32(x0), float32(y0), float32(x1), float32(y1), 2, color.White, true)
}

// yaw is the rotation about +y in radians.
func yaw(t render.Transform) float64 {
	return mgl64.DegToRad(t.Angle) * t.Axis.Y()
}

func tintOf(b render.Binding) render.Color {
	if c, ok := tint[b]; ok {
		return c
	}
	return render.White
}

// toNRGBA clamps each channel to [0, 1]. Faded dust may carry a negative
// opacity when clamping is switched off in the simulation.
func toNRGBA(c render.Color) color.NRGBA {
	return color.NRGBA{
		R: channel(c.R),
		G: channel(c.G),
		B: channel(c.B),
		A: channel(c.A),
	}
}

func channel(v float64) uint8 {
	return uint8(math.Round(mgl64.Clamp(v, 0, 1) * 255))
}
