package util

import (
	"math/rand"
	"time"

	"tactics/internal/board"
)

// New returns a generator for seed. Seed 0 draws one from the clock, so only
// explicitly seeded runs repeat.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Cell picks a uniformly random cell of a size x size board.
func Cell(rng *rand.Rand, size int) board.Coord {
	return board.Coord{Row: rng.Intn(size), Col: rng.Intn(size)}
}
