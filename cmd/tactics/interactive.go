package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"

	"tactics/internal/board"
	"tactics/internal/catalog"
	"tactics/internal/command"
	"tactics/internal/config"
	"tactics/internal/game"
	"tactics/internal/render"
	"tactics/internal/util"
)

var (
	errBadNumber = errors.New("please enter whole numbers")
	errOutput    = errors.New("write output")
)

// console plays one game over a text stream. Every command is a line of
// whitespace separated integers; cells are 1-based.
type console struct {
	in     *bufio.Scanner
	out    io.Writer
	s      *game.Session
	cat    *catalog.Catalog
	levels []string
}

func runInteractive(r io.Reader, w io.Writer, settings *config.Settings, cat *catalog.Catalog, log *zap.SugaredLogger, random bool) error {
	in := bufio.NewScanner(r)
	in.Split(bufio.ScanWords)
	c := &console{in: in, out: w, s: game.NewSession(settings, cat, log), cat: cat, levels: settings.LevelNames}

	fmt.Fprintln(w, "Welcome to the game.")
	fmt.Fprintln(w)
	if random {
		if err := randomDeploy(c.s, util.New(settings.Seed)); err != nil {
			return err
		}
	}
	if err := c.board(); err != nil {
		return err
	}
	return c.loop()
}

func (c *console) board() error {
	if err := render.Board(c.out, c.s.Grid()); err != nil {
		return fmt.Errorf("%w: %v", errOutput, err)
	}
	return nil
}

func (c *console) army(f board.Faction) error {
	if err := render.Army(c.out, c.s.Composite(f), c.levels); err != nil {
		return fmt.Errorf("%w: %v", errOutput, err)
	}
	return nil
}

func (c *console) loop() error {
	for !c.s.Over() {
		var err error
		switch c.s.State().Phase {
		case game.PhasePlace:
			err = c.place()
		case game.PhaseEdit:
			err = c.edit()
		case game.PhaseMove:
			err = c.move()
		case game.PhaseAttack:
			err = c.attack()
		}
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			fmt.Fprintln(c.out, "Input closed, leaving the game.")
			return nil
		case errors.Is(err, errOutput):
			return err
		default:
			fmt.Fprintln(c.out, err)
		}
	}
	winner, _ := c.s.Winner()
	fmt.Fprintln(c.out, "Game over!")
	fmt.Fprintf(c.out, "%s team won!\n", side(winner))
	return nil
}

func side(f board.Faction) string {
	if f == board.Attacking {
		return "Attacking"
	}
	return "Defending"
}

func (c *console) stats(f board.Faction, r board.Role) string {
	st, ok := c.cat.Stats(f, r)
	if !ok {
		return "unavailable"
	}
	return fmt.Sprintf("health %d, damage %d", st.Health, st.Damage)
}

func (c *console) ints(n int) ([]int, error) {
	out := make([]int, 0, n)
	for len(out) < n {
		if !c.in.Scan() {
			if err := c.in.Err(); err != nil {
				return nil, err
			}
			return nil, io.EOF
		}
		v, err := strconv.Atoi(c.in.Text())
		if err != nil {
			return nil, errBadNumber
		}
		out = append(out, v)
	}
	return out, nil
}

func (c *console) cell() (board.Coord, error) {
	v, err := c.ints(2)
	if err != nil {
		return board.Coord{}, err
	}
	return userCell(v[0], v[1]), nil
}

func (c *console) place() error {
	st := c.s.State()
	size := c.s.Grid().Size()
	role := board.Leader
	if c.s.NeedsLeader() {
		fmt.Fprintf(c.out, "%s player, enter the row and column of your leader, between 1 and %d.\n", side(st.Faction), size)
	} else {
		fmt.Fprintf(c.out, "%d left. Enter 1 to place infantry (%s) or 2 to place a shooter (%s).\n",
			c.s.SoldiersLeft(), c.stats(st.Faction, board.Infantry), c.stats(st.Faction, board.Shooter))
		v, err := c.ints(1)
		if err != nil {
			return err
		}
		switch v[0] {
		case 1:
			role = board.Infantry
		case 2:
			role = board.Shooter
		default:
			return errors.New("this type is unavailable, try again")
		}
		fmt.Fprintf(c.out, "%s player, enter the row and column for the %s, between 1 and %d.\n", side(st.Faction), role, size)
	}
	at, err := c.cell()
	if err != nil {
		return err
	}
	if err := c.s.Deploy(role, at); err != nil {
		return err
	}
	return c.board()
}

func (c *console) edit() error {
	f := c.s.State().Faction
	fmt.Fprintf(c.out, "%s player can change the army.\n\n", side(f))
	if err := c.army(f); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Enter 1 to add a group, 2 to change a soldier's squad, 3 to remove an empty group, 4 to finish.")
	v, err := c.ints(1)
	if err != nil {
		return err
	}
	switch v[0] {
	case 1:
		fmt.Fprintln(c.out, "Enter the number of the parent structure.")
		p, err := c.ints(1)
		if err != nil {
			return err
		}
		id, err := c.s.AddGroup(p[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Structure %d created.\n", id)
	case 2:
		fmt.Fprintln(c.out, "Enter the squad number, then the soldier's row and column.")
		g, err := c.ints(1)
		if err != nil {
			return err
		}
		at, err := c.cell()
		if err != nil {
			return err
		}
		return c.s.SwitchChild(at, g[0])
	case 3:
		fmt.Fprintln(c.out, "Enter the number of the structure to remove.")
		g, err := c.ints(1)
		if err != nil {
			return err
		}
		return c.s.RemoveGroup(g[0])
	case 4:
		return c.s.EndEdit()
	default:
		return errors.New("incorrect command entered")
	}
	return nil
}

func (c *console) move() error {
	f := c.s.State().Faction
	fmt.Fprintf(c.out, "%s player move.\n\n", side(f))
	if err := c.board(); err != nil {
		return err
	}
	if err := c.army(f); err != nil {
		return err
	}
	fmt.Fprint(c.out, "Still to move:")
	for _, at := range c.s.Unmoved() {
		fmt.Fprintf(c.out, " (%d, %d)", at.Row+1, at.Col+1)
	}
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "Enter 0 and a structure number to move a structure, or a soldier's row and column.")
	v, err := c.ints(2)
	if err != nil {
		return err
	}
	target := command.GroupLabel(v[1])
	if v[0] != 0 {
		target = command.CellLabel(userCell(v[0], v[1]))
	}
	fmt.Fprintln(c.out, "Enter the vertical and horizontal offset; 0 0 keeps it in place.")
	d, err := c.ints(2)
	if err != nil {
		return err
	}
	if d[0] == 0 && d[1] == 0 {
		return c.s.Hold(target)
	}
	return c.s.Move(target, board.Coord{Row: d[0], Col: d[1]})
}

func (c *console) attack() error {
	from, ok := c.s.Attacker()
	if !ok {
		return nil
	}
	if err := c.board(); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Current attacking unit's position %d %d.\n", from.Row+1, from.Col+1)
	fmt.Fprintf(c.out, "Enter the row and column of the unit to attack, between 1 and %d.\n", c.s.Grid().Size())
	at, err := c.cell()
	if err != nil {
		return err
	}
	res, err := c.s.Attack(at)
	if err != nil {
		return err
	}
	if res.Killed {
		fmt.Fprintln(c.out, "Target destroyed.")
	} else {
		fmt.Fprintf(c.out, "Hit for %d, %d health left.\n", res.Damage, res.Health)
	}
	return nil
}
