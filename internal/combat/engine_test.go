package combat

import (
	"testing"

	"tactics/internal/board"
	"tactics/internal/catalog"
	"tactics/internal/command"
	"tactics/internal/config"
)

type placement struct {
	at   board.Coord
	f    board.Faction
	role board.Role
}

func at(r, c int) board.Coord { return board.Coord{Row: r, Col: c} }

func setup(t *testing.T, units ...placement) (*Engine, *[]Event) {
	t.Helper()
	cat, err := catalog.New(config.DefaultUnits(), nil)
	if err != nil {
		t.Fatal(err)
	}
	var events []Event
	e := NewEngine(board.NewGrid(board.DefaultSize), func(ev Event) { events = append(events, ev) })
	for _, p := range units {
		u, err := cat.NewUnit(p.f, p.role)
		if err != nil {
			t.Fatal(err)
		}
		if !e.Place(p.at, u) {
			t.Fatalf("place %v", p.at)
		}
	}
	return e, &events
}

// the six-unit layout used by the range tables
func skirmish(t *testing.T) *Engine {
	e, _ := setup(t,
		placement{at(0, 1), board.Attacking, board.Leader},
		placement{at(0, 2), board.Attacking, board.Infantry},
		placement{at(0, 3), board.Attacking, board.Shooter},
		placement{at(1, 2), board.Defending, board.Leader},
		placement{at(1, 3), board.Defending, board.Infantry},
		placement{at(4, 3), board.Defending, board.Shooter},
	)
	return e
}

func TestCanMoveSingle(t *testing.T) {
	e := skirmish(t)
	cases := []struct {
		from, to board.Coord
		want     bool
	}{
		{at(0, 1), at(0, 0), true},
		{at(0, 1), at(0, 2), false},
		{at(0, 1), at(1, 0), true},
		{at(0, 1), at(1, 1), true},
		{at(0, 1), at(4, 3), false},
		{at(0, 1), at(0, 3), false},

		{at(0, 2), at(0, 3), false},
		{at(0, 2), at(0, 2), false},
		{at(0, 2), at(1, 2), false},
		{at(0, 2), at(1, 1), true},

		{at(0, 3), at(0, 4), true},
		{at(0, 3), at(1, 4), false},
		{at(0, 3), at(1, 3), false},
		{at(0, 3), at(0, 0), false},

		{at(1, 2), at(1, 1), true},
		{at(1, 2), at(2, 2), true},
		{at(1, 2), at(1, 3), false},
		{at(1, 2), at(4, 3), false},

		{at(1, 3), at(1, 4), true},
		{at(1, 3), at(2, 2), true},
		{at(1, 3), at(0, 3), false},

		{at(4, 3), at(4, 2), true},
		{at(4, 3), at(4, 3), false},
		{at(4, 3), at(0, 3), false},

		{at(5, 5), at(5, 6), false},
		{at(0, 1), at(-1, 1), false},
	}
	for _, tc := range cases {
		if got := e.CanMoveSingle(tc.from, tc.to); got != tc.want {
			t.Errorf("CanMoveSingle(%v, %v) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestCanAttackSingle(t *testing.T) {
	e := skirmish(t)
	cases := []struct {
		from, to board.Coord
		want     bool
	}{
		{at(0, 1), at(0, 0), false},
		{at(0, 1), at(0, 2), false},
		{at(0, 1), at(1, 2), true},
		{at(0, 1), at(1, 3), true},
		{at(0, 1), at(4, 3), false},

		{at(0, 2), at(1, 2), true},
		{at(0, 2), at(1, 3), false},
		{at(0, 2), at(0, 1), false},

		{at(0, 3), at(1, 2), true},
		{at(0, 3), at(1, 3), true},
		{at(0, 3), at(4, 3), true},
		{at(0, 3), at(0, 1), false},

		{at(1, 2), at(0, 2), false},
		{at(1, 2), at(0, 1), false},

		{at(1, 3), at(0, 3), true},
		{at(1, 3), at(0, 2), false},
		{at(1, 3), at(1, 2), false},

		{at(4, 3), at(0, 3), true},
		{at(4, 3), at(1, 2), false},
		{at(4, 3), at(4, 2), false},
	}
	for _, tc := range cases {
		if got := e.CanAttackSingle(tc.from, tc.to); got != tc.want {
			t.Errorf("CanAttackSingle(%v, %v) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestCanAttackFrom(t *testing.T) {
	e := skirmish(t)
	for c, want := range map[board.Coord]bool{
		at(0, 1): true,
		at(0, 2): true,
		at(1, 2): false,
		at(4, 3): true,
		at(6, 6): false,
	} {
		if got := e.CanAttackFrom(c); got != want {
			t.Errorf("CanAttackFrom(%v) = %v, want %v", c, got, want)
		}
	}
}

func TestAttackDamagesAndKills(t *testing.T) {
	e, events := setup(t,
		placement{at(3, 3), board.Attacking, board.Leader},
		placement{at(3, 2), board.Defending, board.Shooter},
		placement{at(6, 6), board.Defending, board.Infantry},
	)
	enemy := command.New(board.Defending, e.Grid())

	res := e.Attack(at(3, 3), at(3, 2), enemy)
	if !res.Hit || !res.Killed || res.Health != -1 || res.Damage != 2 {
		t.Fatalf("result = %+v", res)
	}
	if res.GameOver {
		t.Fatal("game over with a soldier left")
	}
	if e.Grid().Occupied(at(3, 2)) {
		t.Fatal("dead unit left on grid")
	}
	if enemy.FindNode(command.CellLabel(at(3, 2))) != nil || enemy.Size() != 1 {
		t.Fatal("dead unit left in command tree")
	}
	if n := len(*events); (*events)[n-1].Type != EventKill || (*events)[n-2].Type != EventAttack {
		t.Fatalf("events = %+v", (*events)[n-2:])
	}
}

func TestAttackWoundsWithoutKilling(t *testing.T) {
	e, _ := setup(t,
		placement{at(2, 2), board.Defending, board.Shooter},
		placement{at(2, 4), board.Attacking, board.Leader},
	)
	res := e.Attack(at(2, 2), at(2, 4), command.New(board.Attacking, e.Grid()))
	if !res.Hit || res.Killed || res.Health != 4 {
		t.Fatalf("result = %+v", res)
	}
	if u, ok := e.Grid().At(at(2, 4)); !ok || u.Health != 4 {
		t.Fatal("wounded leader should stay with 4 health")
	}
}

func TestAttackRejected(t *testing.T) {
	e, events := setup(t,
		placement{at(0, 0), board.Attacking, board.Infantry},
		placement{at(0, 1), board.Attacking, board.Shooter},
		placement{at(5, 5), board.Defending, board.Infantry},
	)
	before := len(*events)
	for _, to := range []board.Coord{at(0, 1), at(5, 5), at(0, 0), at(3, 3)} {
		if res := e.Attack(at(0, 0), to, nil); res != (AttackResult{}) {
			t.Errorf("attack on %v = %+v", to, res)
		}
	}
	if len(*events) != before {
		t.Fatal("rejected attacks emitted events")
	}
	if u, _ := e.Grid().At(at(0, 1)); u.Health != 1 {
		t.Fatal("friendly unit damaged")
	}
}

func TestKillingLeaderEndsGame(t *testing.T) {
	e, events := setup(t,
		placement{at(0, 1), board.Attacking, board.Leader},
		placement{at(1, 2), board.Defending, board.Leader},
		placement{at(4, 3), board.Defending, board.Shooter},
	)
	enemy := command.New(board.Defending, e.Grid())
	res := e.Attack(at(0, 1), at(1, 2), enemy)
	if !res.GameOver || res.Winner != board.Attacking {
		t.Fatalf("result = %+v", res)
	}
	if e.Grid().Occupied(at(1, 2)) || enemy.Size() != 1 {
		t.Fatal("leader not removed")
	}
	last := (*events)[len(*events)-1]
	if last.Type != EventGameOver || last.Payload["winner"] != "attacking" || last.Payload["reason"] != "leader killed" {
		t.Fatalf("last event = %+v", last)
	}
}

func TestKillingAttackingLeaderEndsGame(t *testing.T) {
	e, events := setup(t,
		placement{at(0, 0), board.Attacking, board.Shooter},
		placement{at(3, 3), board.Attacking, board.Leader},
		placement{at(3, 4), board.Defending, board.Infantry},
	)
	leader, _ := e.Grid().At(at(3, 3))
	leader.TakeDamage(5)
	enemy := command.New(board.Attacking, e.Grid())

	res := e.Attack(at(3, 4), at(3, 3), enemy)
	if !res.Killed || !res.GameOver || res.Winner != board.Defending {
		t.Fatalf("result = %+v", res)
	}
	if e.Grid().Occupied(at(3, 3)) {
		t.Fatal("leader left on the grid")
	}
	if enemy.FindNode(command.CellLabel(at(3, 3))) != nil || enemy.Size() != 1 {
		t.Fatalf("leader still commanded, size = %d", enemy.Size())
	}
	last := (*events)[len(*events)-1]
	if last.Type != EventGameOver || last.Payload["winner"] != "defending" || last.Payload["reason"] != "leader killed" {
		t.Fatalf("last event = %+v", last)
	}
}

func TestEmptyingArmyEndsGame(t *testing.T) {
	e, _ := setup(t,
		placement{at(3, 3), board.Defending, board.Infantry},
		placement{at(3, 4), board.Attacking, board.Shooter},
	)
	enemy := command.New(board.Attacking, e.Grid())
	res := e.Attack(at(3, 3), at(3, 4), enemy)
	if !res.GameOver || res.Winner != board.Defending || enemy.Size() != 0 {
		t.Fatalf("result = %+v size=%d", res, enemy.Size())
	}
}

func moveFixture(t *testing.T) (*Engine, *command.Composite) {
	e, _ := setup(t,
		placement{at(2, 3), board.Attacking, board.Leader},
		placement{at(3, 2), board.Defending, board.Shooter},
		placement{at(3, 3), board.Defending, board.Infantry},
	)
	return e, command.New(board.Defending, e.Grid())
}

func TestCanMoveSubtree(t *testing.T) {
	e, comp := moveFixture(t)
	cases := []struct {
		name   string
		label  command.Label
		offset board.Coord
		want   bool
	}{
		{"squad down", command.GroupLabel(2), at(1, 0), true},
		{"squad right through itself", command.GroupLabel(2), at(0, 1), true},
		{"army down", command.GroupLabel(1), at(1, 0), true},
		{"squad diagonal too far for shooter", command.GroupLabel(2), at(1, 1), false},
		{"shooter diagonal", command.CellLabel(at(3, 2)), at(1, 1), false},
		{"infantry diagonal", command.CellLabel(at(3, 3)), at(1, 1), true},
		{"squad up into enemy", command.GroupLabel(2), at(-1, 0), false},
		{"zero offset", command.GroupLabel(2), at(0, 0), false},
		{"missing group", command.GroupLabel(9), at(1, 0), false},
		{"enemy cell", command.CellLabel(at(2, 3)), at(0, 1), false},
		{"off board", command.GroupLabel(2), at(0, -3), false},
	}
	for _, tc := range cases {
		if got := e.CanMoveSubtree(comp, tc.label, tc.offset); got != tc.want {
			t.Errorf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}

func TestMoveSubtreeTranslatesRigidly(t *testing.T) {
	e, comp := moveFixture(t)
	squad := command.GroupLabel(2)
	leader, _ := e.Grid().At(at(2, 3))

	if !e.MoveSubtree(comp, squad, at(1, 0)) {
		t.Fatal("move down")
	}
	assertLeaves(t, e, comp, at(4, 2), at(4, 3))

	comp.ResetMoved()
	if !e.MoveSubtree(comp, squad, at(0, 1)) {
		t.Fatal("move right")
	}
	assertLeaves(t, e, comp, at(4, 3), at(4, 4))

	comp.ResetMoved()
	if e.MoveSubtree(comp, squad, at(1, 1)) {
		t.Fatal("illegal move applied")
	}
	assertLeaves(t, e, comp, at(4, 3), at(4, 4))

	if u, ok := e.Grid().At(at(2, 3)); !ok || u != leader {
		t.Fatal("unit outside the moving set disturbed")
	}
	if e.Grid().Count(board.Defending) != 2 {
		t.Fatal("unit lost in move")
	}
}

func TestMoveSubtreeMarksMoved(t *testing.T) {
	e, comp := moveFixture(t)
	root := comp.Root()
	if !e.AllUnmoved(root) || e.AllMoved(root) {
		t.Fatal("fresh tree should be all unmoved")
	}
	if !e.MoveSubtree(comp, command.CellLabel(at(3, 3)), at(1, 1)) {
		t.Fatal("move infantry")
	}
	if e.AllUnmoved(root) || e.AllMoved(root) {
		t.Fatal("half-moved tree")
	}
	if got := e.UnmovedLeaves(root); len(got) != 1 || got[0] != at(3, 2) {
		t.Fatalf("unmoved = %v", got)
	}
	if !e.AllMoved(comp.FindNode(command.CellLabel(at(4, 4)))) {
		t.Fatal("moved leaf should be found at its new cell")
	}
	if !e.Hold(comp, command.CellLabel(at(3, 2))) {
		t.Fatal("hold shooter")
	}
	if !e.AllMoved(root) {
		t.Fatal("all soldiers should be done")
	}
	if e.Hold(comp, command.GroupLabel(2)) {
		t.Fatal("hold on a moved group")
	}
}

func TestAllMovedVacuous(t *testing.T) {
	e, _ := setup(t)
	comp := command.New(board.Attacking, e.Grid())
	if !e.AllMoved(comp.Root()) || !e.AllUnmoved(comp.Root()) {
		t.Fatal("empty tree should be both all moved and all unmoved")
	}
	if e.MoveSubtree(comp, command.GroupLabel(2), at(1, 0)) || e.Hold(comp, command.GroupLabel(2)) {
		t.Fatal("empty group moved")
	}
}

func TestCanPlace(t *testing.T) {
	e, events := setup(t, placement{at(0, 0), board.Defending, board.Leader})
	if e.CanPlace(at(0, 0)) || e.CanPlace(at(8, 0)) || !e.CanPlace(at(7, 7)) {
		t.Fatal("CanPlace")
	}
	if e.Place(at(0, 0), board.NewUnit(1, 1, board.Attacking, board.Infantry, nil, nil)) {
		t.Fatal("placed on an occupied cell")
	}
	if len(*events) != 1 || (*events)[0].Type != EventPlace {
		t.Fatalf("events = %+v", *events)
	}
}

func assertLeaves(t *testing.T, e *Engine, comp *command.Composite, want ...board.Coord) {
	t.Helper()
	leaves := comp.Root().Leaves()
	if len(leaves) != len(want) {
		t.Fatalf("leaves = %d, want %d", len(leaves), len(want))
	}
	for i, leaf := range leaves {
		c, _ := leaf.Label().Cell()
		if c != want[i] {
			t.Errorf("leaf %d at %v, want %v", i, c, want[i])
		}
		if u, ok := e.Grid().At(c); !ok || u.Faction != comp.Faction() {
			t.Errorf("leaf %v not backed by a unit", c)
		}
	}
}
