// internal/game/flow.go
package game

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jason-s-yu/cattledrive/internal/models"
)

// ErrInvalidTransition is returned by flow calls that do not apply in the current
// phase. The state is left unchanged.
var ErrInvalidTransition = errors.New("invalid phase transition")

func (s *State) transitionError(call string) error {
	return fmt.Errorf("%w: %s during %s", ErrInvalidTransition, call, s.Phase)
}

// Start leaves setup: every player is dealt their starting deck from the cattle deck
// and draws a hand up to their hand limit.
func (s *State) Start() error {
	if s.Phase != models.PhaseSetup {
		return s.transitionError("start")
	}
	if len(s.Players) == 0 {
		return fmt.Errorf("%w: no players seated", ErrInvalidTransition)
	}
	for _, p := range s.Players {
		p.Cards.AddToDrawPile(s.Decks.Draw(models.CategoryCattle, s.rules.StartingDeck)...)
		p.Cards.Draw(p.Stats.HandLimit, s.rng)
	}
	s.Phase = models.PhasePlayerTurn
	s.CurrentPlayerIndex = 0
	s.Round = 1
	s.commit(uuid.Nil, "game_start", map[string]interface{}{"players": len(s.Players)})
	s.log.WithField("players", len(s.Players)).Info("game started")
	return nil
}

// EndTurn passes play to the next player. Wrapping past the last player starts a new
// round and moves the labor market conveyor one cell. The incoming player's
// abilities are refreshed and their hand topped up.
func (s *State) EndTurn() error {
	if s.Phase != models.PhasePlayerTurn {
		return s.transitionError("end turn")
	}
	prev := s.CurrentPlayer()
	next := s.CurrentPlayerIndex + 1
	data := map[string]interface{}{"player_id": prev.ID.String()}
	if next >= len(s.Players) {
		next = 0
		s.Round++
		data["refilled"] = s.refillLabor()
	}
	s.CurrentPlayerIndex = next

	p := s.CurrentPlayer()
	p.ResetAbilities()
	if short := p.Stats.HandLimit - len(p.Cards.Hand); short > 0 {
		p.Cards.Draw(short, s.rng)
	}
	data["next_player_id"] = p.ID.String()
	data["round"] = s.Round
	s.commit(prev.ID, "end_turn", data)
	return nil
}

// refillLabor advances the labor market by one cell, reshuffling spent worker cards
// back in if the worker deck has run dry.
func (s *State) refillLabor() bool {
	if s.Labor.Refill(s.Decks) {
		return true
	}
	if s.Labor.Cursor >= s.Labor.Capacity() {
		return false
	}
	s.Decks.Reshuffle(s.rules.Labor.WorkerCategory)
	return s.Labor.Refill(s.Decks)
}

// BeginCattleSale moves from player turns to the cattle sale.
func (s *State) BeginCattleSale() error {
	if s.Phase != models.PhasePlayerTurn {
		return s.transitionError("begin cattle sale")
	}
	s.Phase = models.PhaseCattleSale
	s.commit(uuid.Nil, "phase_change", map[string]interface{}{"phase": string(s.Phase)})
	return nil
}

// Finish ends the game after the cattle sale.
func (s *State) Finish() error {
	if s.Phase != models.PhaseCattleSale {
		return s.transitionError("finish")
	}
	s.Phase = models.PhaseEndGame
	s.commit(uuid.Nil, "game_end", map[string]interface{}{"scores": s.Scores()})
	s.log.Info("game finished")
	return nil
}

// NextPhase advances to whatever phase follows the current one.
func (s *State) NextPhase() error {
	switch s.Phase {
	case models.PhaseSetup:
		return s.Start()
	case models.PhasePlayerTurn:
		return s.BeginCattleSale()
	case models.PhaseCattleSale:
		return s.Finish()
	}
	return s.transitionError("next phase")
}

// Scores maps player id to victory points.
func (s *State) Scores() map[string]int {
	out := make(map[string]int, len(s.Players))
	for _, p := range s.Players {
		out[p.ID.String()] = p.Stats.VictoryPoints
	}
	return out
}
