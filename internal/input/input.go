// Package input holds the per-frame keyboard snapshot the simulation reads.
// The host fills a Snapshot from press and release events between ticks and
// passes it by value into the scene, so the core never sees a shared key table.
package input

// TableSize is the number of key codes a Snapshot can hold.
const TableSize = 256

// Key codes used by the scene. They match the ASCII codes the host reports.
const (
	KeyEscape Code = 27

	KeyTurnLeft  Code = 'h'
	KeyTurnRight Code = 'k'
	KeyForward   Code = 'u'
	KeyBackward  Code = 'j'

	// Host keys: restart after the session ended, and the camera fly keys.
	KeyRestart Code = 'r'

	KeyCameraForward  Code = 'w'
	KeyCameraBackward Code = 's'
	KeyCameraLeft     Code = 'a'
	KeyCameraRight    Code = 'd'
	KeyCameraDown     Code = 'q'
	KeyCameraUp       Code = 'e'
)

// Code identifies a key in the snapshot table.
type Code int

// Valid reports whether the code fits in the snapshot table.
func (c Code) Valid() bool {
	return c >= 0 && c < TableSize
}

// Snapshot is a fixed-size boolean key table. The zero value has every key released.
type Snapshot struct {
	keys [TableSize]bool
}

// Press marks a key as held. Codes outside the table are ignored.
func (s *Snapshot) Press(c Code) {
	if !c.Valid() {
		return
	}
	s.keys[c] = true
}

// Release marks a key as released. Codes outside the table are ignored.
func (s *Snapshot) Release(c Code) {
	if !c.Valid() {
		return
	}
	s.keys[c] = false
}

// Set stores the held state of a key.
func (s *Snapshot) Set(c Code, held bool) {
	if held {
		s.Press(c)
	} else {
		s.Release(c)
	}
}

// Pressed reports whether a key is held. Unknown codes are never held.
func (s Snapshot) Pressed(c Code) bool {
	if !c.Valid() {
		return false
	}
	return s.keys[c]
}

// Any reports whether at least one of the keys is held.
func (s Snapshot) Any(codes ...Code) bool {
	for _, c := range codes {
		if s.Pressed(c) {
			return true
		}
	}
	return false
}
