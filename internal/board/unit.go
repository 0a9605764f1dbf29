package board

import (
	"fmt"
	"strings"
)

type Faction int

const (
	Defending Faction = iota
	Attacking
)

func (f Faction) String() string {
	switch f {
	case Attacking:
		return "attacking"
	case Defending:
		return "defending"
	}
	return fmt.Sprintf("faction(%d)", int(f))
}

// Opponent returns the other side.
func (f Faction) Opponent() Faction {
	if f == Attacking {
		return Defending
	}
	return Attacking
}

func ParseFaction(s string) (Faction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "attacking", "a":
		return Attacking, nil
	case "defending", "d":
		return Defending, nil
	}
	return 0, fmt.Errorf("unknown faction %q", s)
}

type Role int

const (
	Leader Role = iota
	Infantry
	Shooter
)

func (r Role) String() string {
	switch r {
	case Leader:
		return "leader"
	case Infantry:
		return "infantry"
	case Shooter:
		return "shooter"
	}
	return fmt.Sprintf("role(%d)", int(r))
}

func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "leader":
		return Leader, nil
	case "infantry":
		return Infantry, nil
	case "shooter":
		return Shooter, nil
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

// RangeFunc decides whether a unit standing on from may act on to.
type RangeFunc func(from, to Coord) bool

// Unit is a single occupant of the grid. The range predicates are fixed at
// creation; only Health changes afterwards.
type Unit struct {
	Health  int
	Damage  int
	Faction Faction
	Role    Role

	move   RangeFunc
	attack RangeFunc
}

func NewUnit(health, damage int, faction Faction, role Role, move, attack RangeFunc) *Unit {
	return &Unit{Health: health, Damage: damage, Faction: faction, Role: role, move: move, attack: attack}
}

func (u *Unit) CanMoveTo(from, to Coord) bool {
	return u.move != nil && u.move(from, to)
}

func (u *Unit) CanAttack(from, to Coord) bool {
	return u.attack != nil && u.attack(from, to)
}

func (u *Unit) TakeDamage(n int) { u.Health -= n }
func (u *Unit) Dead() bool       { return u.Health <= 0 }

func (u *Unit) String() string {
	return fmt.Sprintf("%s %s hp=%d dmg=%d", u.Faction, u.Role, u.Health, u.Damage)
}
