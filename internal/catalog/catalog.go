// Package catalog turns unit definitions into live units. Movement and attack
// ranges are expr programs evaluated against a RangeEnv.
package catalog

import (
	"errors"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"go.uber.org/zap"

	"tactics/internal/board"
	"tactics/internal/config"
)

var (
	ErrUnknownUnit   = errors.New("unknown unit")
	ErrDuplicateUnit = errors.New("duplicate unit definition")
	ErrBadRange      = errors.New("bad range expression")
)

// RangeEnv is what a range expression sees: the Manhattan distance and the
// signed row/column offsets from the acting unit to the target cell.
type RangeEnv struct {
	Dist int
	DRow int
	DCol int
}

func envFor(from, to board.Coord) RangeEnv {
	d := to.Sub(from)
	return RangeEnv{Dist: from.Manhattan(to), DRow: d.Row, DCol: d.Col}
}

type Stats struct {
	Faction board.Faction
	Role    board.Role
	Health  int
	Damage  int
	Move    string
	Attack  string
}

type kind struct {
	faction board.Faction
	role    board.Role
}

type template struct {
	stats  Stats
	move   *vm.Program
	attack *vm.Program
}

type Catalog struct {
	byKind map[kind]template
	log    *zap.SugaredLogger
}

func New(cfg *config.UnitsConfig, log *zap.SugaredLogger) (*Catalog, error) {
	if cfg == nil {
		cfg = config.DefaultUnits()
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	c := &Catalog{byKind: map[kind]template{}, log: log}
	for _, def := range cfg.Units {
		f, err := board.ParseFaction(def.Faction)
		if err != nil {
			return nil, err
		}
		r, err := board.ParseRole(def.Role)
		if err != nil {
			return nil, err
		}
		k := kind{f, r}
		if _, dup := c.byKind[k]; dup {
			return nil, fmt.Errorf("%w: %s %s", ErrDuplicateUnit, f, r)
		}
		move, err := compileRange(def.Move)
		if err != nil {
			return nil, fmt.Errorf("%s %s move: %w", f, r, err)
		}
		attack, err := compileRange(def.Attack)
		if err != nil {
			return nil, fmt.Errorf("%s %s attack: %w", f, r, err)
		}
		c.byKind[k] = template{
			stats:  Stats{Faction: f, Role: r, Health: def.Health, Damage: def.Damage, Move: def.Move, Attack: def.Attack},
			move:   move,
			attack: attack,
		}
	}
	log.Debugw("unit catalog ready", "kinds", len(c.byKind))
	return c, nil
}

// sampleEnv is a one-step sideways move, used to trial-run every program.
var sampleEnv = RangeEnv{Dist: 1, DRow: 0, DCol: 1}

func compileRange(src string) (*vm.Program, error) {
	p, err := expr.Compile(src, expr.Env(RangeEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrBadRange, src, err)
	}
	if _, err := vm.Run(p, sampleEnv); err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrBadRange, src, err)
	}
	return p, nil
}

// predicate treats a failing evaluation as out of range and logs it.
func (c *Catalog) predicate(p *vm.Program, f board.Faction, r board.Role, what string) board.RangeFunc {
	return func(from, to board.Coord) bool {
		env := envFor(from, to)
		out, err := vm.Run(p, env)
		if err != nil {
			c.log.Warnw("range expression failed",
				"faction", f.String(), "role", r.String(), "range", what,
				"dist", env.Dist, "drow", env.DRow, "dcol", env.DCol, "error", err)
			return false
		}
		ok, _ := out.(bool)
		return ok
	}
}

// Stats returns the definition of a faction/role pair.
func (c *Catalog) Stats(f board.Faction, r board.Role) (Stats, bool) {
	t, ok := c.byKind[kind{f, r}]
	return t.stats, ok
}

// NewUnit creates a fresh unit with full health.
func (c *Catalog) NewUnit(f board.Faction, r board.Role) (*board.Unit, error) {
	t, ok := c.byKind[kind{f, r}]
	if !ok {
		return nil, fmt.Errorf("%w: %s %s", ErrUnknownUnit, f, r)
	}
	u := board.NewUnit(t.stats.Health, t.stats.Damage, f, r, c.predicate(t.move, f, r, "move"), c.predicate(t.attack, f, r, "attack"))
	if r == board.Leader {
		c.log.Infow("new leader created", "faction", f.String())
	} else {
		c.log.Debugw("unit created", "faction", f.String(), "role", r.String())
	}
	return u, nil
}
