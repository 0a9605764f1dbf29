package main

import (
	"errors"
	"math/rand"

	"tactics/internal/board"
	"tactics/internal/catalog"
	"tactics/internal/game"
	"tactics/internal/util"
)

// randomDeploy finishes the placement phase with random cells and a random
// mix of infantry and shooters. Leaders still come first.
func randomDeploy(s *game.Session, rng *rand.Rand) error {
	n := s.Grid().Size()
	for s.State().Phase == game.PhasePlace {
		role := board.Leader
		if !s.NeedsLeader() {
			role = board.Infantry
			if rng.Intn(2) == 1 {
				role = board.Shooter
			}
		}
		err := s.Deploy(role, util.Cell(rng, n))
		if err == nil || (errors.Is(err, game.ErrPlacement) && !errors.Is(err, catalog.ErrUnknownUnit)) {
			continue
		}
		return err
	}
	return nil
}
