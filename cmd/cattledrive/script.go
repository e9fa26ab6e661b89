// cmd/cattledrive/script.go
package main

import (
	"github.com/jason-s-yu/cattledrive/internal/game"
	"github.com/jason-s-yu/cattledrive/internal/models"
	"github.com/jason-s-yu/cattledrive/internal/player"
	"github.com/sirupsen/logrus"
)

// playRound gives every seated player one scripted turn: cash in the gold ability,
// ride forward, hire the first affordable worker, buy the cheapest cattle card, then
// pass. Rejected actions are logged and skipped.
func playRound(s *game.State, log *logrus.Entry) []models.ActionResult {
	var results []models.ActionResult
	for range s.Players {
		p := s.CurrentPlayer()
		for _, req := range scriptFor(s, p) {
			res := s.Apply(req)
			results = append(results, res)
			entry := log.WithFields(logrus.Fields{"player": p.DisplayName, "action": req.Kind})
			if res.Success {
				entry.Info(res.Message)
			} else {
				entry.WithField("reason", res.Message).Warn("action rejected")
			}
		}
		if err := s.EndTurn(); err != nil {
			log.WithError(err).Error("end turn failed")
			break
		}
	}
	return results
}

func scriptFor(s *game.State, p *player.State) []models.ActionRequest {
	id := p.ID.String()
	reqs := []models.ActionRequest{
		{Kind: models.ActionUseAbility, Fields: map[string]interface{}{"player_id": id, "ability": string(models.AbilityGold1)}},
	}
	if next := s.Board.AvailablePaths(p.Position); len(next) > 0 {
		reqs = append(reqs, models.ActionRequest{Kind: models.ActionMove, Fields: map[string]interface{}{"player_id": id, "target_location": next[0]}})
	}
	if row, col, ok := firstWorker(s); ok {
		reqs = append(reqs, models.ActionRequest{Kind: models.ActionHireWorker, Fields: map[string]interface{}{"player_id": id, "row": row, "col": col}})
	}
	if c, ok := cheapestCattle(s); ok {
		reqs = append(reqs, models.ActionRequest{Kind: models.ActionBuyCattle, Fields: map[string]interface{}{"player_id": id, "card_id": c.ID.String()}})
	}
	return reqs
}

func firstWorker(s *game.State) (int, int, bool) {
	for r := 0; r < s.Labor.Rows; r++ {
		for c := 0; c < s.Labor.Columns; c++ {
			if s.Labor.Worker(r, c) != models.WorkerNone {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

func cheapestCattle(s *game.State) (models.Card, bool) {
	if len(s.CattleMarket) == 0 {
		return models.Card{}, false
	}
	best := s.CattleMarket[0]
	for _, c := range s.CattleMarket[1:] {
		if c.Cost < best.Cost {
			best = c
		}
	}
	return best, true
}
