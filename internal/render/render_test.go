package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestViewportToScreen(t *testing.T) {
	vp := Viewport{Camera: TopDownCamera(170), PixelsPerUnit: 2, Width: 800, Height: 600}

	tests := []struct {
		name  string
		p     mgl64.Vec3
		wantX float64
		wantY float64
	}{
		{"origin is centre", mgl64.Vec3{0, 0, 0}, 400, 300},
		{"height is ignored", mgl64.Vec3{0, 90, 0}, 400, 300},
		{"plus x is right", mgl64.Vec3{10, 0, 0}, 420, 300},
		{"plus z is up", mgl64.Vec3{0, 0, 10}, 400, 280},
		{"minus z is down", mgl64.Vec3{-5, 0, -25}, 390, 350},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := vp.ToScreen(tt.p)
			assert.Equal(t, tt.wantX, x)
			assert.Equal(t, tt.wantY, y)
		})
	}
}

func TestViewportFollowsEye(t *testing.T) {
	cam := TopDownCamera(170)
	cam.Eye = mgl64.Vec3{10, 170, -10}
	vp := Viewport{Camera: cam, PixelsPerUnit: 1, Width: 100, Height: 100}

	x, y := vp.ToScreen(mgl64.Vec3{10, 0, -10})
	assert.Equal(t, 50.0, x)
	assert.Equal(t, 50.0, y)
}

func TestTopDownCameraBasis(t *testing.T) {
	cam := TopDownCamera(50)
	assert.Equal(t, mgl64.Vec3{0, 50, 0}, cam.Eye)
	assert.Equal(t, 0.0, cam.Forward.Dot(cam.Right))
	assert.Equal(t, 0.0, cam.Forward.Dot(cam.Up))
	assert.Equal(t, 0.0, cam.Right.Dot(cam.Up))
}
