// internal/game/action_market.go
package game

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jason-s-yu/cattledrive/internal/models"
	"github.com/jason-s-yu/cattledrive/internal/player"
)

// DoubleValueAbility doubles a cattle card's sale value.
const DoubleValueAbility = "double_value"

type hireAction struct {
	row, col int
	worker   models.WorkerType
	price    int
}

func validateHireWorker(s *State, p *player.State, f fields) (executor, error) {
	row, err := f.getInt("row")
	if err != nil {
		return nil, err
	}
	col, err := f.getInt("col")
	if err != nil {
		return nil, err
	}
	w := s.Labor.Worker(row, col)
	if w == models.WorkerNone {
		return nil, invalid("no worker available at row %d, column %d", row, col)
	}
	price := s.Labor.Price(row)
	if p.Resources.Money < price {
		return nil, invalid("insufficient money: worker costs %d, have %d", price, p.Resources.Money)
	}
	return hireAction{row: row, col: col, worker: w, price: price}, nil
}

func (a hireAction) execute(s *State, p *player.State) (string, map[string]interface{}) {
	s.Labor.Hire(a.row, a.col)
	p.Resources.Money -= a.price
	p.Resources.AddWorker(a.worker, 1)
	p.Stats.WorkersHired++
	return fmt.Sprintf("hired a %s", a.worker), map[string]interface{}{
		"worker_type": string(a.worker),
		"cost":        a.price,
		"new_money":   p.Resources.Money,
	}
}

type buyCattleAction struct {
	card  models.Card
	index int
}

func validateBuyCattle(s *State, p *player.State, f fields) (executor, error) {
	id, err := f.getUUID("card_id")
	if err != nil {
		return nil, err
	}
	i := models.CardIndex(s.CattleMarket, id)
	if i < 0 {
		return nil, invalid("card %s is not in the cattle market", id)
	}
	c := s.CattleMarket[i]
	if p.Resources.Money < c.Cost {
		return nil, invalid("insufficient money: card costs %d, have %d", c.Cost, p.Resources.Money)
	}
	return buyCattleAction{card: c, index: i}, nil
}

func (a buyCattleAction) execute(s *State, p *player.State) (string, map[string]interface{}) {
	p.Resources.Money -= a.card.Cost
	p.Cards.AddToHand(a.card)
	s.removeFromCattleMarket(a.index)
	s.replenishCattleMarket(a.index)
	return "bought cattle", map[string]interface{}{
		"card_id":   a.card.ID.String(),
		"cost":      a.card.Cost,
		"new_money": p.Resources.Money,
	}
}

func (s *State) removeFromCattleMarket(i int) {
	s.CattleMarket = append(s.CattleMarket[:i:i], s.CattleMarket[i+1:]...)
}

// replenishCattleMarket refills slot i with one cattle draw. An empty deck leaves the
// market one card short.
func (s *State) replenishCattleMarket(i int) {
	drawn := s.Decks.Draw(models.CategoryCattle, 1)
	if len(drawn) == 0 {
		return
	}
	if i > len(s.CattleMarket) {
		i = len(s.CattleMarket)
	}
	market := make([]models.Card, 0, len(s.CattleMarket)+1)
	market = append(market, s.CattleMarket[:i]...)
	market = append(market, drawn[0])
	s.CattleMarket = append(market, s.CattleMarket[i:]...)
}

type sellCattleAction struct {
	id    uuid.UUID
	value int
}

func validateSellCattle(s *State, p *player.State, f fields) (executor, error) {
	id, err := f.getUUID("card_id")
	if err != nil {
		return nil, err
	}
	c, ok := p.Cards.FindInHand(id)
	if !ok {
		return nil, invalid("card %s is not in hand", id)
	}
	if c.Category != models.CategoryCattle {
		return nil, invalid("only cattle cards can be sold")
	}
	value := c.BaseValue
	if c.SpecialAbility == DoubleValueAbility {
		value *= 2
	}
	return sellCattleAction{id: id, value: value}, nil
}

func (a sellCattleAction) execute(s *State, p *player.State) (string, map[string]interface{}) {
	c, _ := p.Cards.RemoveFromHand(a.id)
	s.Decks.Discard(models.CategoryCattle, c)
	p.Resources.Money += a.value
	p.Stats.VictoryPoints += a.value
	p.Stats.CattleSold++
	return "sold cattle", map[string]interface{}{
		"card_id":            a.id.String(),
		"value":              a.value,
		"new_money":          p.Resources.Money,
		"new_victory_points": p.Stats.VictoryPoints,
	}
}

type takeFutureAction struct {
	row, col int
	card     models.Card
}

func validateTakeFutureCard(s *State, p *player.State, f fields) (executor, error) {
	row, err := f.getInt("row")
	if err != nil {
		return nil, err
	}
	col, err := f.getInt("col")
	if err != nil {
		return nil, err
	}
	c := s.Future.Card(row, col)
	if c == nil {
		return nil, invalid("no card at future area row %d, column %d", row, col)
	}
	if p.Resources.Money < c.Cost {
		return nil, invalid("insufficient money: card costs %d, have %d", c.Cost, p.Resources.Money)
	}
	return takeFutureAction{row: row, col: col, card: *c}, nil
}

func (a takeFutureAction) execute(s *State, p *player.State) (string, map[string]interface{}) {
	taken := s.Future.TakeCard(a.row, a.col, s.Decks)
	p.Resources.Money -= taken.Cost
	p.Cards.Acquire(*taken)
	return fmt.Sprintf("took %s", taken.Name), map[string]interface{}{
		"card_id":   taken.ID.String(),
		"card_type": string(taken.Category),
		"cost":      taken.Cost,
		"new_money": p.Resources.Money,
	}
}
