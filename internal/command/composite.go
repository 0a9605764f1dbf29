package command

import (
	"iter"
	"slices"

	"tactics/internal/board"
)

const (
	rootGroup  = 1
	firstSquad = 2
)

// Composite is one faction's command tree. Group numbers are unique inside it
// and always the smallest free positive number when allocated.
type Composite struct {
	faction board.Faction
	root    *Node
	used    map[int]bool
}

// New builds the starting tree for f: army 1, squad 2, and a soldier under
// squad 2 for every unit of f on the grid, in row-major order.
func New(f board.Faction, g *board.Grid) *Composite {
	c := &Composite{
		faction: f,
		root:    newRoot(GroupLabel(rootGroup)),
		used:    map[int]bool{rootGroup: true, firstSquad: true},
	}
	squad, _ := c.root.addChild(GroupLabel(firstSquad))
	g.Cells(func(at board.Coord, u *board.Unit) bool {
		if u != nil && u.Faction == f {
			squad.addChild(CellLabel(at))
		}
		return true
	})
	return c
}

func (c *Composite) Faction() board.Faction { return c.faction }
func (c *Composite) Root() *Node            { return c.root }

func (c *Composite) FindNode(l Label) *Node   { return c.root.find(l) }
func (c *Composite) FindParent(l Label) *Node { return c.root.findParent(l) }

// Size is the number of soldiers in the tree.
func (c *Composite) Size() int { return len(c.root.Leaves()) }

// AddGroup creates an empty group under group parentID and returns its number.
func (c *Composite) AddGroup(parentID int) (int, bool) {
	parent := c.root.find(GroupLabel(parentID))
	if parent == nil || parent.depth >= MaxDepth-1 {
		return 0, false
	}
	id := c.nextID()
	if _, ok := parent.addChild(GroupLabel(id)); !ok {
		return 0, false
	}
	c.used[id] = true
	return id, true
}

func (c *Composite) nextID() int {
	id := 1
	for c.used[id] {
		id++
	}
	return id
}

// Remove detaches a soldier or an empty group. The army root is never removed.
func (c *Composite) Remove(l Label) bool {
	parent := c.root.findParent(l)
	if parent == nil || !parent.RemoveChild(l) {
		return false
	}
	if id, ok := l.GroupID(); ok {
		delete(c.used, id)
	}
	return true
}

// SwitchChild moves the soldier standing on cell under squad groupID.
// Nothing changes unless both ends are valid.
func (c *Composite) SwitchChild(cell board.Coord, groupID int) bool {
	l := CellLabel(cell)
	parent := c.root.findParent(l)
	target := c.root.find(GroupLabel(groupID))
	if parent == nil || target == nil || target.depth != MaxDepth-1 {
		return false
	}
	if parent == target {
		return true
	}
	idx := parent.childIndex(l)
	leaf := parent.children[idx]
	parent.children = append(parent.children[:idx], parent.children[idx+1:]...)
	target.children = append(target.children, leaf)
	return true
}

// ResetMoved clears the moved flag of every soldier.
func (c *Composite) ResetMoved() { c.root.resetMoved() }

// GroupIDs lists the allocated group numbers in ascending order.
func (c *Composite) GroupIDs() []int {
	ids := make([]int, 0, len(c.used))
	for id := range c.used {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ChildSummary describes one child in a GroupRow.
type ChildSummary struct {
	Label Label
	Moved bool
}

// GroupRow is one group of the tree as seen by a breadth-first walk.
type GroupRow struct {
	Label    Label
	Depth    int
	Children []ChildSummary
}

// Groups walks the groups breadth-first from the root. Children of each row
// are sorted by label. The sequence can be ranged over more than once.
func (c *Composite) Groups() iter.Seq[GroupRow] {
	return func(yield func(GroupRow) bool) {
		queue := []*Node{c.root}
		for len(queue) > 0 {
			n := queue[0]
			queue = queue[1:]
			row := GroupRow{Label: n.label, Depth: n.depth}
			for _, ch := range n.children {
				row.Children = append(row.Children, ChildSummary{Label: ch.label, Moved: ch.moved})
				if ch.label.IsGroup() {
					queue = append(queue, ch)
				}
			}
			slices.SortFunc(row.Children, func(a, b ChildSummary) int {
				return a.Label.Compare(b.Label)
			})
			if !yield(row) {
				return
			}
		}
	}
}
