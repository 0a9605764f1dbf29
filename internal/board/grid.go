package board

// DefaultSize is the side of the square battlefield.
const DefaultSize = 8

// Grid is the battlefield: a square matrix of optional unit references.
type Grid struct {
	size  int
	cells [][]*Unit
}

func NewGrid(size int) *Grid {
	if size <= 0 {
		size = DefaultSize
	}
	cells := make([][]*Unit, size)
	for r := range cells {
		cells[r] = make([]*Unit, size)
	}
	return &Grid{size: size, cells: cells}
}

func (g *Grid) Size() int { return g.size }

func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.size && c.Col >= 0 && c.Col < g.size
}

// At returns the occupant of c. Out-of-bounds cells are reported empty.
func (g *Grid) At(c Coord) (*Unit, bool) {
	if !g.InBounds(c) {
		return nil, false
	}
	u := g.cells[c.Row][c.Col]
	return u, u != nil
}

func (g *Grid) Occupied(c Coord) bool {
	_, ok := g.At(c)
	return ok
}

// Place puts u on an empty in-bounds cell.
func (g *Grid) Place(c Coord, u *Unit) bool {
	if u == nil || !g.InBounds(c) || g.cells[c.Row][c.Col] != nil {
		return false
	}
	g.cells[c.Row][c.Col] = u
	return true
}

// Clear empties c and returns the previous occupant.
func (g *Grid) Clear(c Coord) *Unit {
	if !g.InBounds(c) {
		return nil
	}
	u := g.cells[c.Row][c.Col]
	g.cells[c.Row][c.Col] = nil
	return u
}

// Cells walks the grid row-major, empty cells included. Returning false stops.
func (g *Grid) Cells(fn func(c Coord, u *Unit) bool) {
	for r := 0; r < g.size; r++ {
		for col := 0; col < g.size; col++ {
			if !fn(Coord{r, col}, g.cells[r][col]) {
				return
			}
		}
	}
}

// Count returns how many units of f are on the grid.
func (g *Grid) Count(f Faction) int {
	n := 0
	g.Cells(func(_ Coord, u *Unit) bool {
		if u != nil && u.Faction == f {
			n++
		}
		return true
	})
	return n
}
