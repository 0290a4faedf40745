package entity

// Position is a grid coordinate.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Distance is the Manhattan distance between p and q.
func (p Position) Distance(q Position) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Occupant is anything that can stand on a grid cell.
type Occupant interface {
	Name() string
	Symbol() rune
	Position() (Position, bool)
}
