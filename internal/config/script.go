package config

import "fmt"

// Order kinds understood by the replay runner.
const (
	OrderAddGroup = "add_group"
	OrderSwitch   = "switch"
	OrderRemove   = "remove"
	OrderEndEdit  = "end_edit"
	OrderMove     = "move"
	OrderHold     = "hold"
	OrderAttack   = "attack"
)

// Script is a recorded game: placements first, then orders in turn order.
// Coordinates are 1-based like the interactive prompts.
type Script struct {
	Deploy []Placement `yaml:"deploy"`
	Orders []Order     `yaml:"orders"`
}

type Placement struct {
	Faction string `yaml:"faction"`
	Role    string `yaml:"role"`
	Row     int    `yaml:"row"`
	Col     int    `yaml:"col"`
}

// Order is one player command. Group names a structure (parent for
// add_group, target for switch). Move and hold act on Group when it is set,
// otherwise on the soldier at Row/Col.
type Order struct {
	Kind  string `yaml:"kind"`
	Group int    `yaml:"group"`
	Row   int    `yaml:"row"`
	Col   int    `yaml:"col"`
	DRow  int    `yaml:"drow"`
	DCol  int    `yaml:"dcol"`
}

func LoadScript(path string) (*Script, error) {
	var s Script
	if err := loadYAML(path, &s); err != nil {
		return nil, err
	}
	for i, o := range s.Orders {
		switch o.Kind {
		case OrderAddGroup, OrderSwitch, OrderRemove, OrderEndEdit, OrderMove, OrderHold, OrderAttack:
		default:
			return nil, fmt.Errorf("%s: order %d %q: %w", path, i+1, o.Kind, ErrUnknownOrder)
		}
	}
	return &s, nil
}
