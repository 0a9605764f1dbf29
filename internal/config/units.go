package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnitsConfig is the unit catalog file. Range expressions see Dist (Manhattan
// distance), DRow and DCol (signed offsets from the acting unit).
type UnitsConfig struct {
	Units []UnitDef `yaml:"units"`
}

type UnitDef struct {
	Faction string `yaml:"faction"`
	Role    string `yaml:"role"`
	Health  int    `yaml:"health"`
	Damage  int    `yaml:"damage"`
	Move    string `yaml:"move"`
	Attack  string `yaml:"attack"`
}

const never = "false"

// UnmarshalYAML defaults an omitted health to 1.
func (d *UnitDef) UnmarshalYAML(n *yaml.Node) error {
	type plain UnitDef
	p := plain{Health: 1}
	if err := n.Decode(&p); err != nil {
		return err
	}
	*d = UnitDef(p)
	return nil
}

// DefaultUnits is the built-in roster used when no units file is configured.
func DefaultUnits() *UnitsConfig {
	return &UnitsConfig{Units: []UnitDef{
		{Faction: "attacking", Role: "leader", Health: 6, Damage: 2, Move: "Dist >= 1 && Dist <= 2", Attack: "Dist >= 1 && Dist <= 4"},
		{Faction: "attacking", Role: "infantry", Health: 2, Damage: 2, Move: "Dist >= 1 && Dist <= 2", Attack: "Dist == 1"},
		{Faction: "attacking", Role: "shooter", Health: 1, Damage: 1, Move: "Dist == 1", Attack: "Dist >= 1 && Dist <= 4"},
		{Faction: "defending", Role: "leader", Health: 1, Damage: 0, Move: "Dist == 1", Attack: never},
		{Faction: "defending", Role: "infantry", Health: 1, Damage: 2, Move: "Dist >= 1 && Dist <= 2", Attack: "Dist == 1"},
		{Faction: "defending", Role: "shooter", Health: 1, Damage: 2, Move: "Dist == 1", Attack: "Dist >= 1 && Dist <= 4"},
	}}
}

// LoadUnits reads a units file. An empty path selects DefaultUnits.
func LoadUnits(path string) (*UnitsConfig, error) {
	if path == "" {
		return DefaultUnits(), nil
	}
	var uc UnitsConfig
	if err := loadYAML(path, &uc); err != nil {
		return nil, err
	}
	if len(uc.Units) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoUnits)
	}
	for i := range uc.Units {
		d := &uc.Units[i]
		if d.Move == "" {
			d.Move = never
		}
		if d.Attack == "" {
			d.Attack = never
		}
		if d.Health <= 0 {
			return nil, fmt.Errorf("%s: unit %d (%s %s): health %d: %w", path, i+1, d.Faction, d.Role, d.Health, ErrBadUnit)
		}
	}
	return &uc, nil
}
