package command

import "tactics/internal/board"

// MaxDepth is the depth of soldier leaves: army (1) -> squad (2) -> soldier (3).
const MaxDepth = 3

// Node is one echelon of the command tree. Children are owned; there are no
// parent links, parents are found by searching from the root.
type Node struct {
	depth    int
	label    Label
	children []*Node
	moved    bool
}

func newRoot(l Label) *Node { return &Node{depth: 1, label: l} }

func (n *Node) Depth() int   { return n.depth }
func (n *Node) Label() Label { return n.label }
func (n *Node) IsLeaf() bool { return n.label.IsCell() }
func (n *Node) Moved() bool  { return n.moved }

// Children returns a copy of the child list in insertion order.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// AddChild appends a child one level deeper. Group children may only hang
// above the squad level, soldier children only directly under a squad.
func (n *Node) AddChild(l Label) bool {
	_, ok := n.addChild(l)
	return ok
}

func (n *Node) addChild(l Label) (*Node, bool) {
	switch {
	case l.IsGroup():
		if n.depth >= MaxDepth-1 {
			return nil, false
		}
	case l.IsCell():
		if n.depth != MaxDepth-1 {
			return nil, false
		}
	default:
		return nil, false
	}
	child := &Node{depth: n.depth + 1, label: l}
	n.children = append(n.children, child)
	return child, true
}

// RemoveChild detaches the direct child named l. A child that still has
// children of its own is kept.
func (n *Node) RemoveChild(l Label) bool {
	idx := n.childIndex(l)
	if idx < 0 || len(n.children[idx].children) > 0 {
		return false
	}
	n.children = append(n.children[:idx], n.children[idx+1:]...)
	return true
}

func (n *Node) childIndex(l Label) int {
	for i, c := range n.children {
		if c.label == l {
			return i
		}
	}
	return -1
}

// find is a depth-first search over n and its descendants.
func (n *Node) find(l Label) *Node {
	if n.label == l {
		return n
	}
	for _, c := range n.children {
		if got := c.find(l); got != nil {
			return got
		}
	}
	return nil
}

// findParent returns the node whose direct child is named l.
func (n *Node) findParent(l Label) *Node {
	for _, c := range n.children {
		if c.label == l {
			return n
		}
		if got := c.findParent(l); got != nil {
			return got
		}
	}
	return nil
}

// Leaves collects the soldier nodes under n breadth-first. A leaf returns itself.
func (n *Node) Leaves() []*Node {
	var out []*Node
	queue := []*Node{n}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.IsLeaf() {
			out = append(out, cur)
			continue
		}
		queue = append(queue, cur.children...)
	}
	return out
}

// Relocate rebinds a soldier to the cell it was moved to and flags it as moved
// for the current iteration.
func (n *Node) Relocate(c board.Coord) bool {
	if !n.IsLeaf() {
		return false
	}
	n.label = CellLabel(c)
	n.moved = true
	return true
}

// MarkMoved flags every soldier under n.
func (n *Node) MarkMoved() {
	for _, leaf := range n.Leaves() {
		leaf.moved = true
	}
}

func (n *Node) resetMoved() {
	for _, leaf := range n.Leaves() {
		leaf.moved = false
	}
}
