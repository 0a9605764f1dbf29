package board

import "fmt"

// Coord is a 0-based (row, col) grid position.
type Coord struct{ Row, Col int }

func (a Coord) Add(b Coord) Coord { return Coord{a.Row + b.Row, a.Col + b.Col} }
func (a Coord) Sub(b Coord) Coord { return Coord{a.Row - b.Row, a.Col - b.Col} }
func (a Coord) IsZero() bool      { return a.Row == 0 && a.Col == 0 }

// Manhattan returns |dRow| + |dCol| between a and b.
func (a Coord) Manhattan(b Coord) int {
	dr := a.Row - b.Row
	if dr < 0 {
		dr = -dr
	}
	dc := a.Col - b.Col
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

func (a Coord) String() string { return fmt.Sprintf("(%d,%d)", a.Row, a.Col) }
