package render

import (
	"strings"
	"testing"

	"tactics/internal/board"
	"tactics/internal/command"
)

func unit(f board.Faction, r board.Role) *board.Unit {
	return board.NewUnit(1, 1, f, r, nil, nil)
}

func TestBoard(t *testing.T) {
	g := board.NewGrid(3)
	g.Place(board.Coord{Row: 0, Col: 0}, unit(board.Attacking, board.Leader))
	g.Place(board.Coord{Row: 1, Col: 2}, unit(board.Defending, board.Shooter))
	g.Place(board.Coord{Row: 2, Col: 1}, unit(board.Attacking, board.Infantry))

	var sb strings.Builder
	if err := Board(&sb, g); err != nil {
		t.Fatal(err)
	}
	want := "Current board:\n9 x x\nx x 2\nx 7 x\n\n" + legend + "\n"
	if sb.String() != want {
		t.Fatalf("got\n%s\nwant\n%s", sb.String(), want)
	}
}

func TestArmy(t *testing.T) {
	g := board.NewGrid(8)
	g.Place(board.Coord{Row: 3, Col: 3}, unit(board.Defending, board.Infantry))
	g.Place(board.Coord{Row: 0, Col: 4}, unit(board.Defending, board.Leader))
	comp := command.New(board.Defending, g)
	id, _ := comp.AddGroup(1)
	comp.FindNode(command.CellLabel(board.Coord{Row: 3, Col: 3})).MarkMoved()

	var sb strings.Builder
	if err := Army(&sb, comp, []string{"Army", "Squad", "Soldier"}); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"Structure № 1 Army.",
		"Children: Squad 2; Squad 3;",
		"Structure № 2 Squad.",
		"Children: Soldier 1, 5; Soldier 4, 4;*",
		"Structure № 3 Squad.",
		"Children:",
		"",
	}, "\n")
	if id != 3 || sb.String() != want {
		t.Fatalf("got\n%s\nwant\n%s", sb.String(), want)
	}
}
