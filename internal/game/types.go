package game

// Mode is the screen the manager is showing.
type Mode int

const (
	ModePlaying Mode = iota
	ModeGameOver
)

func (m Mode) String() string {
	if m == ModeGameOver {
		return "game over"
	}
	return "playing"
}

// Stats are counted from scene events for the HUD.
type Stats struct {
	Dropped int // decor entities spawned
	Bursts  int // dust bursts from ground contact
	Culled  int // entities that fell off the world
}
