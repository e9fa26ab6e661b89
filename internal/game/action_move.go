// internal/game/action_move.go
package game

import (
	"fmt"

	"github.com/jason-s-yu/cattledrive/internal/player"
)

type moveAction struct {
	from, to, steps int
	fixed           bool
}

// validateMove checks a move. Distance moves take the explicit step count, or
// target minus origin when none is given, and the target must be reachable within
// that many forward hops. A fixed one-step move needs a building at the origin that
// grants it and an adjacent target.
func validateMove(s *State, p *player.State, f fields) (executor, error) {
	target, err := f.getInt("target_location")
	if err != nil {
		return nil, err
	}
	if _, ok := s.Board.Node(target); !ok {
		return nil, invalid("location %d does not exist", target)
	}
	fixed, err := f.getBool("fixed_one_step")
	if err != nil {
		return nil, err
	}

	if fixed {
		if !s.Board.GrantsFixedStep(p.Position) {
			return nil, invalid("no building at location %d grants a fixed one-step move", p.Position)
		}
		if !s.Board.IsAdjacent(p.Position, target) {
			return nil, invalid("fixed one-step move must target a location adjacent to %d", p.Position)
		}
		return moveAction{from: p.Position, to: target, steps: 1, fixed: true}, nil
	}

	steps, _, err := f.optionalInt("steps", target-p.Position)
	if err != nil {
		return nil, err
	}
	if steps <= 0 {
		return nil, invalid("invalid step count %d", steps)
	}
	if _, ok := s.Board.Distance(p.Position, target, steps); !ok {
		return nil, invalid("location %d is not reachable from %d in %d steps", target, p.Position, steps)
	}
	return moveAction{from: p.Position, to: target, steps: steps}, nil
}

func (a moveAction) execute(s *State, p *player.State) (string, map[string]interface{}) {
	p.MoveTo(a.to)
	msg := fmt.Sprintf("moved %d steps", a.steps)
	if a.fixed {
		msg = "moved one step using a building"
	}
	return msg, map[string]interface{}{
		"from_position":     a.from,
		"to_position":       a.to,
		"steps_used":        a.steps,
		"is_fixed_one_step": a.fixed,
	}
}
