package main

import (
	"fmt"
	"math/rand"
	"os"
	"sync"

	"go.uber.org/zap"

	"tactics/internal/board"
	"tactics/internal/catalog"
	"tactics/internal/combat"
	"tactics/internal/command"
	"tactics/internal/config"
	"tactics/internal/game"
	"tactics/internal/util"
)

type replayResult struct {
	Script  string         `json:"script"`
	Session string         `json:"session"`
	State   string         `json:"state"`
	Winner  string         `json:"winner,omitempty"`
	Rounds  int            `json:"rounds"`
	Error   string         `json:"error,omitempty"`
	Events  []combat.Event `json:"events,omitempty"`
}

func runScripts(settings *config.Settings, cat *catalog.Catalog, log *zap.SugaredLogger, opts options) error {
	if len(opts.scripts) == 1 {
		res := replayFile(opts.scripts[0], settings, settings.Seed, cat, log, opts.randomDeploy)
		if err := writeJSON(opts.out, res); err != nil {
			return err
		}
		if res.Error != "" {
			return fmt.Errorf("%s: %s", res.Script, res.Error)
		}
		return nil
	}

	results := make([]replayResult, len(opts.scripts))
	var wg sync.WaitGroup
	workers := 8
	jobs := make(chan int, len(opts.scripts))
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				seed := settings.Seed + int64(i)*7919
				res := replayFile(opts.scripts[i], settings, seed, cat, log, opts.randomDeploy)
				res.Events = nil
				results[i] = res
			}
		}()
	}
	for i := range opts.scripts {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	wins := map[string]int{}
	failed := 0
	for _, r := range results {
		switch {
		case r.Error != "":
			failed++
		case r.Winner != "":
			wins[r.Winner]++
		default:
			wins["unfinished"]++
		}
	}
	summary := map[string]any{
		"runs":    len(results),
		"failed":  failed,
		"wins":    wins,
		"results": results,
	}
	if err := writeJSON(opts.out, summary); err != nil {
		return err
	}
	log.Infow("batch replay finished", "runs", len(results), "failed", failed)
	return nil
}

func writeJSON(path string, v any) error {
	b := combat.MarshalPretty(v)
	if path == "" {
		_, err := os.Stdout.Write(append(b, '\n'))
		return err
	}
	return os.WriteFile(path, b, 0644)
}

func replayFile(path string, settings *config.Settings, seed int64, cat *catalog.Catalog, log *zap.SugaredLogger, random bool) replayResult {
	res := replayResult{Script: path}
	sc, err := config.LoadScript(path)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	s := game.NewSession(settings, cat, log.With("script", path))
	res.Session = s.ID()
	var rng *rand.Rand
	if random {
		rng = util.New(seed)
	}
	if err := replay(s, sc, rng); err != nil {
		res.Error = err.Error()
	}
	res.State = s.State().String()
	res.Rounds = s.Round()
	if w, ok := s.Winner(); ok {
		res.Winner = w.String()
	}
	res.Events = s.Events()
	return res
}

// replay applies a script to a fresh session. Deployments must follow the
// placing order; a non-nil rng places whatever the script left out. Orders
// stop being read once the game is over.
func replay(s *game.Session, sc *config.Script, rng *rand.Rand) error {
	for i, p := range sc.Deploy {
		f, err := board.ParseFaction(p.Faction)
		if err != nil {
			return fmt.Errorf("deploy %d: %w", i+1, err)
		}
		role, err := board.ParseRole(p.Role)
		if err != nil {
			return fmt.Errorf("deploy %d: %w", i+1, err)
		}
		if st := s.State(); st.Phase != game.PhasePlace || st.Faction != f {
			return fmt.Errorf("deploy %d: %s cannot place during %s: %w", i+1, f, st, game.ErrWrongPhase)
		}
		if err := s.Deploy(role, userCell(p.Row, p.Col)); err != nil {
			return fmt.Errorf("deploy %d: %w", i+1, err)
		}
	}
	if rng != nil {
		if err := randomDeploy(s, rng); err != nil {
			return err
		}
	}
	for i, o := range sc.Orders {
		if s.Over() {
			break
		}
		if err := apply(s, o); err != nil {
			return fmt.Errorf("order %d (%s): %w", i+1, o.Kind, err)
		}
	}
	return nil
}

func apply(s *game.Session, o config.Order) error {
	switch o.Kind {
	case config.OrderAddGroup:
		_, err := s.AddGroup(o.Group)
		return err
	case config.OrderSwitch:
		return s.SwitchChild(userCell(o.Row, o.Col), o.Group)
	case config.OrderRemove:
		return s.RemoveGroup(o.Group)
	case config.OrderEndEdit:
		return s.EndEdit()
	case config.OrderMove:
		return s.Move(orderTarget(o), board.Coord{Row: o.DRow, Col: o.DCol})
	case config.OrderHold:
		return s.Hold(orderTarget(o))
	case config.OrderAttack:
		_, err := s.Attack(userCell(o.Row, o.Col))
		return err
	}
	return fmt.Errorf("%w: %q", config.ErrUnknownOrder, o.Kind)
}

func orderTarget(o config.Order) command.Label {
	if o.Group > 0 {
		return command.GroupLabel(o.Group)
	}
	return command.CellLabel(userCell(o.Row, o.Col))
}

// userCell converts 1-based player coordinates.
func userCell(row, col int) board.Coord { return board.Coord{Row: row - 1, Col: col - 1} }
