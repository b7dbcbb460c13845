package game

import "fmt"

// Tile is a single map square. Plane separates stacked map levels.
type Tile struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Plane int `json:"plane,omitempty"`
}

func (t Tile) String() string {
	return fmt.Sprintf("(%d,%d,%d)", t.X, t.Y, t.Plane)
}

// WithinDistance reports whether o is inside a square of radius max
// around t on the same plane. This is the interaction view check.
func (t Tile) WithinDistance(o Tile, max int) bool {
	if t.Plane != o.Plane {
		return false
	}
	dx := t.X - o.X
	if dx < 0 {
		dx = -dx
	}
	dy := t.Y - o.Y
	if dy < 0 {
		dy = -dy
	}
	return dx <= max && dy <= max
}

// StepToward returns the tile one square closer to dest, moving
// diagonally when both axes differ. Returns t unchanged when already
// at dest.
func (t Tile) StepToward(dest Tile) Tile {
	step := t
	if dest.X > t.X {
		step.X++
	} else if dest.X < t.X {
		step.X--
	}
	if dest.Y > t.Y {
		step.Y++
	} else if dest.Y < t.Y {
		step.Y--
	}
	return step
}
