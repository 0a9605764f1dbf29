// Package game drives a two-player match: it owns the grid and both command
// trees and walks the phase cycle, rejecting commands the state does not allow.
package game

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tactics/internal/board"
	"tactics/internal/catalog"
	"tactics/internal/combat"
	"tactics/internal/command"
	"tactics/internal/config"
)

type Session struct {
	id      string
	log     *zap.SugaredLogger
	grid    *board.Grid
	engine  *combat.Engine
	catalog *catalog.Catalog
	armies  map[board.Faction]*command.Composite

	state   State
	round   int
	winner  board.Faction
	leaders map[board.Faction]bool
	quota   map[board.Faction]int
	cursor  int // row-major index where the attack scan resumes
	events  []combat.Event
}

func NewSession(cfg *config.Settings, cat *catalog.Catalog, log *zap.SugaredLogger) *Session {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	s := &Session{
		id:      uuid.New().String(),
		grid:    board.NewGrid(cfg.BoardSize),
		catalog: cat,
		armies:  map[board.Faction]*command.Composite{},
		state:   initialState,
		leaders: map[board.Faction]bool{},
		quota: map[board.Faction]int{
			board.Attacking: cfg.AttackingUnits,
			board.Defending: cfg.DefendingUnits,
		},
	}
	s.log = log.With("session", s.id)
	s.engine = combat.NewEngine(s.grid, s.record)
	s.log.Infow("session created", "board", s.grid.Size(),
		"attacking", cfg.AttackingUnits, "defending", cfg.DefendingUnits)
	return s
}

func (s *Session) record(ev combat.Event) {
	s.events = append(s.events, ev)
	s.log.Debugw("event", "turn", ev.Turn, "type", ev.Type, "payload", ev.Payload)
}

func (s *Session) ID() string        { return s.id }
func (s *Session) State() State      { return s.state }
func (s *Session) Round() int        { return s.round }
func (s *Session) Grid() *board.Grid { return s.grid }
func (s *Session) Over() bool        { return s.state.Phase == PhaseOver }

// Composite returns f's command tree; nil until placement is finished.
func (s *Session) Composite(f board.Faction) *command.Composite { return s.armies[f] }

// Winner reports the winning side once the game is over.
func (s *Session) Winner() (board.Faction, bool) {
	return s.winner, s.Over()
}

// Events returns a copy of the game log.
func (s *Session) Events() []combat.Event {
	out := make([]combat.Event, len(s.events))
	copy(out, s.events)
	return out
}

func (s *Session) expect(p Phase) error {
	if s.state.Phase == PhaseOver {
		return ErrGameOver
	}
	if s.state.Phase != p {
		return fmt.Errorf("%w: %s during %s", ErrWrongPhase, p, s.state)
	}
	return nil
}

func (s *Session) current() *command.Composite { return s.armies[s.state.Faction] }

// advance leaves the current state, then skips states that need no input.
func (s *Session) advance() {
	s.leave()
	for {
		prev := s.state
		s.state = s.state.Next()
		s.enter(prev)
		switch {
		case s.state.Phase == PhaseMove && s.engine.AllMoved(s.current().Root()):
			s.leave()
		case s.state.Phase == PhaseAttack && !s.hasAttacker():
			s.leave()
		default:
			return
		}
	}
}

func (s *Session) leave() {
	if comp := s.current(); comp != nil {
		comp.ResetMoved()
	}
}

func (s *Session) enter(prev State) {
	if prev.Phase == PhasePlace && s.state.Phase == PhaseEdit {
		s.armies[board.Attacking] = command.New(board.Attacking, s.grid)
		s.armies[board.Defending] = command.New(board.Defending, s.grid)
	}
	if s.state.Phase == PhaseEdit && s.state.Faction == board.Attacking {
		s.round++
		s.engine.Turn = s.round
	}
	if s.state.Phase == PhaseAttack {
		s.cursor = 0
	}
	s.log.Infow("phase", "state", s.state.String(), "round", s.round)
}

// NeedsLeader reports whether the side placing now still has to put down
// its leader. Leaders are always placed first.
func (s *Session) NeedsLeader() bool {
	return s.state.Phase == PhasePlace && !s.leaders[s.state.Faction]
}

// SoldiersLeft is how many non-leader units the side placing now may still put down.
func (s *Session) SoldiersLeft() int {
	if s.state.Phase != PhasePlace {
		return 0
	}
	return s.quota[s.state.Faction]
}

// CanPlace reports whether c is free for deployment.
func (s *Session) CanPlace(c board.Coord) bool { return s.engine.CanPlace(c) }

// Deploy puts a new unit of the side placing now on c.
func (s *Session) Deploy(role board.Role, c board.Coord) error {
	if err := s.expect(PhasePlace); err != nil {
		return err
	}
	f := s.state.Faction
	switch {
	case !s.leaders[f] && role != board.Leader:
		return fmt.Errorf("%w: %s must place the leader first", ErrPlacement, f)
	case s.leaders[f] && role == board.Leader:
		return fmt.Errorf("%w: %s already has a leader", ErrPlacement, f)
	case !s.engine.CanPlace(c):
		return fmt.Errorf("%w: cell %v is unavailable", ErrPlacement, c)
	}
	u, err := s.catalog.NewUnit(f, role)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPlacement, err)
	}
	s.engine.Place(c, u)
	if role == board.Leader {
		s.leaders[f] = true
	} else {
		s.quota[f]--
	}
	if s.leaders[f] && s.quota[f] <= 0 {
		s.advance()
	}
	return nil
}

// AddGroup creates a new group under parent in the editing side's tree.
func (s *Session) AddGroup(parent int) (int, error) {
	if err := s.expect(PhaseEdit); err != nil {
		return 0, err
	}
	id, ok := s.current().AddGroup(parent)
	if !ok {
		return 0, fmt.Errorf("%w: cannot add a group under %d", ErrInvalidEdit, parent)
	}
	s.log.Debugw("group added", "faction", s.state.Faction.String(), "parent", parent, "group", id)
	return id, nil
}

// SwitchChild puts the soldier on cell under squad group.
func (s *Session) SwitchChild(cell board.Coord, group int) error {
	if err := s.expect(PhaseEdit); err != nil {
		return err
	}
	if !s.current().SwitchChild(cell, group) {
		return fmt.Errorf("%w: cannot move soldier %v to group %d", ErrInvalidEdit, cell, group)
	}
	return nil
}

// RemoveGroup deletes an empty group.
func (s *Session) RemoveGroup(id int) error {
	if err := s.expect(PhaseEdit); err != nil {
		return err
	}
	if !s.current().Remove(command.GroupLabel(id)) {
		return fmt.Errorf("%w: group %d is missing, the army or not empty", ErrInvalidEdit, id)
	}
	return nil
}

func (s *Session) EndEdit() error {
	if err := s.expect(PhaseEdit); err != nil {
		return err
	}
	s.advance()
	return nil
}

// Move shifts the node l of the moving side by offset. Only nodes none of
// whose soldiers moved yet may be ordered.
func (s *Session) Move(l command.Label, offset board.Coord) error {
	if err := s.expect(PhaseMove); err != nil {
		return err
	}
	comp := s.current()
	n := comp.FindNode(l)
	if n == nil || !s.engine.AllUnmoved(n) {
		return fmt.Errorf("%w: %v is unknown or already moved", ErrInvalidMove, l)
	}
	if !s.engine.MoveSubtree(comp, l, offset) {
		return fmt.Errorf("%w: %v cannot move by %v", ErrInvalidMove, l, offset)
	}
	s.afterMove()
	return nil
}

// Hold keeps an unmoved node in place for this move phase.
func (s *Session) Hold(l command.Label) error {
	if err := s.expect(PhaseMove); err != nil {
		return err
	}
	if !s.engine.Hold(s.current(), l) {
		return fmt.Errorf("%w: %v is unknown or already moved", ErrInvalidMove, l)
	}
	s.afterMove()
	return nil
}

func (s *Session) afterMove() {
	if s.engine.AllMoved(s.current().Root()) {
		s.advance()
	}
}

// Unmoved lists the moving side's soldiers that still owe a move.
func (s *Session) Unmoved() []board.Coord {
	if s.state.Phase != PhaseMove {
		return nil
	}
	return s.engine.UnmovedLeaves(s.current().Root())
}

func (s *Session) cellIndex(c board.Coord) int { return c.Row*s.grid.Size() + c.Col }

// Attacker returns the next unit of the attacking side, in row-major order,
// that has a target in reach.
func (s *Session) Attacker() (board.Coord, bool) {
	if s.state.Phase != PhaseAttack {
		return board.Coord{}, false
	}
	var found board.Coord
	ok := false
	s.grid.Cells(func(c board.Coord, u *board.Unit) bool {
		if s.cellIndex(c) < s.cursor || u == nil || u.Faction != s.state.Faction {
			return true
		}
		if s.engine.CanAttackFrom(c) {
			found, ok = c, true
			return false
		}
		return true
	})
	return found, ok
}

func (s *Session) hasAttacker() bool {
	_, ok := s.Attacker()
	return ok
}

// Attack strikes target with the current attacker.
func (s *Session) Attack(target board.Coord) (combat.AttackResult, error) {
	if err := s.expect(PhaseAttack); err != nil {
		return combat.AttackResult{}, err
	}
	from, ok := s.Attacker()
	if !ok {
		return combat.AttackResult{}, fmt.Errorf("%w: no unit can attack", ErrWrongPhase)
	}
	res := s.engine.Attack(from, target, s.armies[s.state.Faction.Opponent()])
	if !res.Hit {
		return res, fmt.Errorf("%w: %v cannot hit %v", ErrInvalidTarget, from, target)
	}
	s.cursor = s.cellIndex(from) + 1
	if res.GameOver {
		s.winner = res.Winner
		s.state = State{Faction: res.Winner, Phase: PhaseOver}
		s.log.Infow("game over", "winner", res.Winner.String(), "round", s.round)
		return res, nil
	}
	if !s.hasAttacker() {
		s.advance()
	}
	return res, nil
}
