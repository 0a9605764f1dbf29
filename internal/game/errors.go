package game

import "errors"

var (
	ErrWrongPhase    = errors.New("not allowed in the current phase")
	ErrGameOver      = errors.New("game is over")
	ErrPlacement     = errors.New("invalid placement")
	ErrInvalidEdit   = errors.New("invalid composite edit")
	ErrInvalidMove   = errors.New("invalid move")
	ErrInvalidTarget = errors.New("invalid attack target")
)
