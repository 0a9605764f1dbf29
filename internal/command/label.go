package command

import (
	"cmp"
	"fmt"

	"tactics/internal/board"
)

type labelKind uint8

const (
	kindNone labelKind = iota
	kindGroup
	kindCell
)

// Label names a tree node: either a group by its number or a soldier by the
// grid cell it stands on. The zero Label names nothing.
type Label struct {
	kind labelKind
	id   int
	cell board.Coord
}

func GroupLabel(id int) Label             { return Label{kind: kindGroup, id: id} }
func CellLabel(c board.Coord) Label       { return Label{kind: kindCell, cell: c} }
func (l Label) IsGroup() bool             { return l.kind == kindGroup }
func (l Label) IsCell() bool              { return l.kind == kindCell }
func (l Label) GroupID() (int, bool)      { return l.id, l.kind == kindGroup }
func (l Label) Cell() (board.Coord, bool) { return l.cell, l.kind == kindCell }

// Compare orders groups before cells, groups by number and cells row-major.
func (l Label) Compare(o Label) int {
	if c := cmp.Compare(l.kind, o.kind); c != 0 {
		return c
	}
	if l.kind == kindGroup {
		return cmp.Compare(l.id, o.id)
	}
	if c := cmp.Compare(l.cell.Row, o.cell.Row); c != 0 {
		return c
	}
	return cmp.Compare(l.cell.Col, o.cell.Col)
}

func (l Label) String() string {
	switch l.kind {
	case kindGroup:
		return fmt.Sprintf("group %d", l.id)
	case kindCell:
		return l.cell.String()
	}
	return "none"
}
