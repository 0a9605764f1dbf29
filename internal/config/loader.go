package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	ErrNoUnits        = errors.New("units file defines no units")
	ErrUnknownOrder   = errors.New("unknown order kind")
	ErrInvalidSetting = errors.New("invalid setting")
	ErrBadUnit        = errors.New("invalid unit definition")
)

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
