package combat

import "tactics/internal/board"

// Event types recorded in the game log.
const (
	EventPlace    = "Place"
	EventMove     = "Move"
	EventHold     = "Hold"
	EventAttack   = "Attack"
	EventKill     = "Kill"
	EventGameOver = "GameOver"
)

type Event struct {
	Turn    int            `json:"turn"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

// AttackResult reports what one attack did. A zero value means the attack was
// rejected and nothing changed.
type AttackResult struct {
	Hit      bool
	Damage   int
	Health   int
	Killed   bool
	GameOver bool
	Winner   board.Faction
}

func coordPayload(c board.Coord) []int { return []int{c.Row, c.Col} }
