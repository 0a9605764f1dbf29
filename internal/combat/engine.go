package combat

import (
	"encoding/json"

	"tactics/internal/board"
	"tactics/internal/command"
)

// Engine applies placement, movement and attacks to a grid. It owns no state
// besides the grid it was given; command trees are passed per call.
type Engine struct {
	Turn int
	Emit func(Event)

	grid *board.Grid
}

func NewEngine(g *board.Grid, emit func(Event)) *Engine {
	if emit == nil {
		emit = func(Event) {}
	}
	return &Engine{grid: g, Emit: emit}
}

func (e *Engine) Grid() *board.Grid { return e.grid }

func (e *Engine) emit(typ string, payload map[string]any) {
	e.Emit(Event{Turn: e.Turn, Type: typ, Payload: payload})
}

// CanPlace reports whether a new unit may be put on c.
func (e *Engine) CanPlace(c board.Coord) bool {
	return e.grid.InBounds(c) && !e.grid.Occupied(c)
}

func (e *Engine) Place(c board.Coord, u *board.Unit) bool {
	if u == nil || !e.grid.Place(c, u) {
		return false
	}
	e.emit(EventPlace, map[string]any{
		"faction": u.Faction.String(),
		"role":    u.Role.String(),
		"at":      coordPayload(c),
	})
	return true
}

func (e *Engine) CanMoveSingle(from, to board.Coord) bool {
	if !e.grid.InBounds(from) || !e.grid.InBounds(to) || from == to {
		return false
	}
	u, ok := e.grid.At(from)
	if !ok || e.grid.Occupied(to) {
		return false
	}
	return u.CanMoveTo(from, to)
}

func (e *Engine) CanAttackSingle(from, to board.Coord) bool {
	if !e.grid.InBounds(from) || !e.grid.InBounds(to) || from == to {
		return false
	}
	attacker, ok := e.grid.At(from)
	if !ok {
		return false
	}
	target, ok := e.grid.At(to)
	if !ok || target.Faction == attacker.Faction {
		return false
	}
	return attacker.CanAttack(from, to)
}

// CanAttackFrom reports whether the unit on c has any legal target.
func (e *Engine) CanAttackFrom(c board.Coord) bool {
	found := false
	e.grid.Cells(func(to board.Coord, u *board.Unit) bool {
		found = u != nil && e.CanAttackSingle(c, to)
		return !found
	})
	return found
}

// CanMoveSubtree reports whether every soldier under the node named l can be
// shifted by offset at once. Soldiers may land on cells the group vacates,
// never on each other.
func (e *Engine) CanMoveSubtree(comp *command.Composite, l command.Label, offset board.Coord) bool {
	if comp == nil || offset.IsZero() {
		return false
	}
	n := comp.FindNode(l)
	if n == nil {
		return false
	}
	leaves := n.Leaves()
	if len(leaves) == 0 {
		return false
	}
	moving := make(map[board.Coord]bool, len(leaves))
	for _, leaf := range leaves {
		c, _ := leaf.Label().Cell()
		moving[c] = true
	}
	landed := make(map[board.Coord]bool, len(leaves))
	for _, leaf := range leaves {
		from, _ := leaf.Label().Cell()
		to := from.Add(offset)
		if !e.grid.InBounds(to) || landed[to] {
			return false
		}
		u, ok := e.grid.At(from)
		if !ok || !u.CanMoveTo(from, to) {
			return false
		}
		if e.grid.Occupied(to) && !moving[to] {
			return false
		}
		landed[to] = true
	}
	return true
}

// MoveSubtree shifts the node named l by offset. All source cells are cleared
// before any destination is written. Returns false and changes nothing when
// the move is illegal.
func (e *Engine) MoveSubtree(comp *command.Composite, l command.Label, offset board.Coord) bool {
	if !e.CanMoveSubtree(comp, l, offset) {
		return false
	}
	type landing struct {
		at   board.Coord
		unit *board.Unit
	}
	leaves := comp.FindNode(l).Leaves()
	pending := make([]landing, 0, len(leaves))
	for _, leaf := range leaves {
		from, _ := leaf.Label().Cell()
		to := from.Add(offset)
		pending = append(pending, landing{at: to, unit: e.grid.Clear(from)})
		leaf.Relocate(to)
	}
	for _, p := range pending {
		e.grid.Place(p.at, p.unit)
	}
	e.emit(EventMove, map[string]any{
		"faction": comp.Faction().String(),
		"node":    l.String(),
		"offset":  coordPayload(offset),
		"units":   len(pending),
	})
	return true
}

// Hold lets a whole unmoved node stand still for this iteration.
func (e *Engine) Hold(comp *command.Composite, l command.Label) bool {
	if comp == nil {
		return false
	}
	n := comp.FindNode(l)
	if n == nil || len(n.Leaves()) == 0 || !e.AllUnmoved(n) {
		return false
	}
	n.MarkMoved()
	e.emit(EventHold, map[string]any{
		"faction": comp.Faction().String(),
		"node":    l.String(),
	})
	return true
}

// Attack resolves one strike from the unit on from against the unit on to.
// A killed unit leaves both the grid and enemy's command tree. Killing a
// leader or the last enemy soldier ends the game.
func (e *Engine) Attack(from, to board.Coord, enemy *command.Composite) AttackResult {
	if !e.CanAttackSingle(from, to) {
		return AttackResult{}
	}
	attacker, _ := e.grid.At(from)
	target, _ := e.grid.At(to)
	target.TakeDamage(attacker.Damage)

	res := AttackResult{Hit: true, Damage: attacker.Damage, Health: target.Health}
	e.emit(EventAttack, map[string]any{
		"faction": attacker.Faction.String(),
		"from":    coordPayload(from),
		"to":      coordPayload(to),
		"damage":  attacker.Damage,
		"health":  target.Health,
	})
	if !target.Dead() {
		return res
	}

	res.Killed = true
	e.grid.Clear(to)
	leaf := command.CellLabel(to)
	if enemy != nil {
		if parent := enemy.FindParent(leaf); parent != nil {
			parent.RemoveChild(leaf)
		}
	}
	e.emit(EventKill, map[string]any{
		"faction": target.Faction.String(),
		"role":    target.Role.String(),
		"at":      coordPayload(to),
	})

	if target.Role == board.Leader || (enemy != nil && enemy.Size() == 0) {
		res.GameOver = true
		res.Winner = attacker.Faction
		e.emit(EventGameOver, map[string]any{
			"winner": attacker.Faction.String(),
			"reason": gameOverReason(target),
		})
	}
	return res
}

func gameOverReason(killed *board.Unit) string {
	if killed.Role == board.Leader {
		return "leader killed"
	}
	return "army destroyed"
}

// AllMoved is true when no soldier under n is still waiting to move.
func (e *Engine) AllMoved(n *command.Node) bool {
	for _, leaf := range n.Leaves() {
		if !leaf.Moved() {
			return false
		}
	}
	return true
}

// AllUnmoved is true when no soldier under n has moved yet.
func (e *Engine) AllUnmoved(n *command.Node) bool {
	for _, leaf := range n.Leaves() {
		if leaf.Moved() {
			return false
		}
	}
	return true
}

// UnmovedLeaves lists the cells of soldiers under n that still have to move.
func (e *Engine) UnmovedLeaves(n *command.Node) []board.Coord {
	var out []board.Coord
	for _, leaf := range n.Leaves() {
		if leaf.Moved() {
			continue
		}
		c, _ := leaf.Label().Cell()
		out = append(out, c)
	}
	return out
}

func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
