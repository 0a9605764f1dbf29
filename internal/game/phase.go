package game

import (
	"fmt"

	"tactics/internal/board"
)

type Phase int

const (
	PhasePlace Phase = iota
	PhaseEdit
	PhaseMove
	PhaseAttack
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhasePlace:
		return "place"
	case PhaseEdit:
		return "edit"
	case PhaseMove:
		return "move"
	case PhaseAttack:
		return "attack"
	case PhaseOver:
		return "over"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// State is whose turn it is and what they may do.
type State struct {
	Faction board.Faction
	Phase   Phase
}

func (s State) String() string {
	if s.Phase == PhaseOver {
		return "over"
	}
	return s.Faction.String() + " " + s.Phase.String()
}

var initialState = State{board.Attacking, PhasePlace}

// transitions is the turn cycle. Placement happens once; afterwards every
// round is edit, move and attack, attacking side first in each phase.
var transitions = map[State]State{
	{board.Attacking, PhasePlace}:  {board.Defending, PhasePlace},
	{board.Defending, PhasePlace}:  {board.Attacking, PhaseEdit},
	{board.Attacking, PhaseEdit}:   {board.Defending, PhaseEdit},
	{board.Defending, PhaseEdit}:   {board.Attacking, PhaseMove},
	{board.Attacking, PhaseMove}:   {board.Defending, PhaseMove},
	{board.Defending, PhaseMove}:   {board.Attacking, PhaseAttack},
	{board.Attacking, PhaseAttack}: {board.Defending, PhaseAttack},
	{board.Defending, PhaseAttack}: {board.Attacking, PhaseEdit},
}

// Next returns the state that follows s. Over is terminal.
func (s State) Next() State {
	if s.Phase == PhaseOver {
		return s
	}
	return transitions[s]
}
