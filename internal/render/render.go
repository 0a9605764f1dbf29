// Package render prints the battlefield and command trees for the text UI.
// Cells are shown 1-based, the way players type them.
package render

import (
	"bufio"
	"fmt"
	"io"

	"tactics/internal/board"
	"tactics/internal/command"
)

var glyphs = map[board.Faction]map[board.Role]byte{
	board.Defending: {board.Infantry: '1', board.Shooter: '2', board.Leader: '3'},
	board.Attacking: {board.Infantry: '7', board.Shooter: '8', board.Leader: '9'},
}

const legend = `x - empty
1 - defending infantry
2 - defending shooter
3 - defending leader
7 - attacking infantry
8 - attacking shooter
9 - attacking leader
`

func glyph(u *board.Unit) byte {
	if u == nil {
		return 'x'
	}
	if g, ok := glyphs[u.Faction][u.Role]; ok {
		return g
	}
	return '?'
}

// Board writes the grid one row per line followed by the legend.
func Board(w io.Writer, g *board.Grid) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("Current board:\n")
	g.Cells(func(c board.Coord, u *board.Unit) bool {
		bw.WriteByte(glyph(u))
		if c.Col == g.Size()-1 {
			bw.WriteByte('\n')
		} else {
			bw.WriteByte(' ')
		}
		return true
	})
	bw.WriteString("\n" + legend + "\n")
	return bw.Flush()
}

func levelName(names []string, depth int) string {
	if depth >= 1 && depth <= len(names) {
		return names[depth-1]
	}
	return fmt.Sprintf("Level %d", depth)
}

// Army writes one block per group, breadth-first. Soldiers that already moved
// this phase are marked with '*'.
func Army(w io.Writer, comp *command.Composite, levelNames []string) error {
	bw := bufio.NewWriter(w)
	for row := range comp.Groups() {
		id, _ := row.Label.GroupID()
		fmt.Fprintf(bw, "Structure № %d %s.\n", id, levelName(levelNames, row.Depth))
		bw.WriteString("Children:")
		for _, ch := range row.Children {
			bw.WriteString(" " + levelName(levelNames, row.Depth+1) + " ")
			if id, ok := ch.Label.GroupID(); ok {
				fmt.Fprintf(bw, "%d;", id)
				continue
			}
			c, _ := ch.Label.Cell()
			fmt.Fprintf(bw, "%d, %d;", c.Row+1, c.Col+1)
			if ch.Moved {
				bw.WriteByte('*')
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
