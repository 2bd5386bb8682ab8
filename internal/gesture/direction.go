package gesture

import (
	"fmt"
	"strings"
)

// Direction names the edges a resize handle moves. Corners combine two
// edges.
type Direction uint8

const (
	North Direction = 1 << iota
	South
	East
	West

	NorthEast = North | East
	NorthWest = North | West
	SouthEast = South | East
	SouthWest = South | West
)

// AllDirections lists every handle in clockwise order from north.
var AllDirections = []Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

// Has reports whether d includes every edge in o.
func (d Direction) Has(o Direction) bool { return o != 0 && d&o == o }

// Horizontal reports whether d moves the east or west edge.
func (d Direction) Horizontal() bool { return d&(East|West) != 0 }

// Vertical reports whether d moves the north or south edge.
func (d Direction) Vertical() bool { return d&(North|South) != 0 }

func (d Direction) String() string {
	var b strings.Builder
	if d.Has(North) {
		b.WriteByte('N')
	}
	if d.Has(South) {
		b.WriteByte('S')
	}
	if d.Has(East) {
		b.WriteByte('E')
	}
	if d.Has(West) {
		b.WriteByte('W')
	}
	if b.Len() == 0 {
		return "none"
	}
	return b.String()
}

// ParseDirection parses names like "se" or "W".
func ParseDirection(s string) (Direction, error) {
	var d Direction
	for _, r := range strings.ToUpper(strings.TrimSpace(s)) {
		switch r {
		case 'N':
			d |= North
		case 'S':
			d |= South
		case 'E':
			d |= East
		case 'W':
			d |= West
		default:
			return 0, fmt.Errorf("invalid direction %q", s)
		}
	}
	if d == 0 || d.Has(North|South) || d.Has(East|West) {
		return 0, fmt.Errorf("invalid direction %q", s)
	}
	return d, nil
}
