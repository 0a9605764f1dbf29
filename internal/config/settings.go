package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// TreeDepth is the number of echelons named by Settings.LevelNames.
const TreeDepth = 3

type Settings struct {
	BoardSize      int      `mapstructure:"board_size"`
	AttackingUnits int      `mapstructure:"attacking_units"`
	DefendingUnits int      `mapstructure:"defending_units"`
	LevelNames     []string `mapstructure:"level_names"`
	UnitsFile      string   `mapstructure:"units_file"`
	LogLevel       string   `mapstructure:"log_level"`
	Seed           int64    `mapstructure:"seed"`
}

// flagKeys maps command-line flag names onto setting keys.
var flagKeys = map[string]string{
	"board-size":      "board_size",
	"attacking-units": "attacking_units",
	"defending-units": "defending_units",
	"units":           "units_file",
	"log-level":       "log_level",
	"seed":            "seed",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("board_size", 8)
	v.SetDefault("attacking_units", 3)
	v.SetDefault("defending_units", 3)
	v.SetDefault("level_names", []string{"Army", "Squad", "Soldier"})
	v.SetDefault("units_file", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("seed", 0)
}

// LoadSettings resolves settings from, lowest first: defaults, the optional
// config file at path, TACTICS_* environment variables and changed flags.
func LoadSettings(path string, flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("TACTICS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) Validate() error {
	if s.BoardSize < 2 {
		return fmt.Errorf("%w: board_size %d", ErrInvalidSetting, s.BoardSize)
	}
	if s.AttackingUnits < 0 || s.DefendingUnits < 0 {
		return fmt.Errorf("%w: unit counts %d/%d", ErrInvalidSetting, s.AttackingUnits, s.DefendingUnits)
	}
	// each side also fields a leader
	if total := s.AttackingUnits + s.DefendingUnits + 2; total > s.BoardSize*s.BoardSize {
		return fmt.Errorf("%w: %d units do not fit a %dx%d board", ErrInvalidSetting, total, s.BoardSize, s.BoardSize)
	}
	if len(s.LevelNames) != TreeDepth {
		return fmt.Errorf("%w: level_names wants %d names, got %d", ErrInvalidSetting, TreeDepth, len(s.LevelNames))
	}
	return nil
}
