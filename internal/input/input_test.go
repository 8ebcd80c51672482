package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshotPressRelease(t *testing.T) {
	var s Snapshot
	assert.False(t, s.Pressed(KeyForward))

	s.Press(KeyForward)
	assert.True(t, s.Pressed(KeyForward))
	assert.False(t, s.Pressed(KeyBackward))

	s.Release(KeyForward)
	assert.False(t, s.Pressed(KeyForward))
}

func TestSnapshotIgnoresUnknownCodes(t *testing.T) {
	tests := []struct {
		name string
		code Code
	}{
		{"negative", -1},
		{"table size", TableSize},
		{"far out", 4096},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Snapshot
			assert.NotPanics(t, func() {
				s.Press(tt.code)
				s.Set(tt.code, true)
				s.Release(tt.code)
			})
			assert.False(t, s.Pressed(tt.code))
			assert.Equal(t, Snapshot{}, s)
		})
	}
}

func TestSnapshotIsValue(t *testing.T) {
	var s Snapshot
	s.Press(KeyEscape)

	copied := s
	s.Release(KeyEscape)

	assert.True(t, copied.Pressed(KeyEscape))
	assert.False(t, s.Pressed(KeyEscape))
}

func TestSnapshotAny(t *testing.T) {
	var s Snapshot
	assert.False(t, s.Any(KeyTurnLeft, KeyTurnRight))

	s.Set(KeyTurnRight, true)
	assert.True(t, s.Any(KeyTurnLeft, KeyTurnRight))
	assert.False(t, s.Any())
}
