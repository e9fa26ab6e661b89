// internal/game/action_ability.go
package game

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jason-s-yu/cattledrive/internal/models"
	"github.com/jason-s-yu/cattledrive/internal/player"
)

// Card special abilities usable through use_ability.
const (
	CardAbilityDoubleMove = "double_move"
	CardAbilityExtraBuild = "extra_build"
	CardAbilityDrawCard   = "draw_card"
)

// abilityAction spends an auxiliary ability. Only the fields its effect needs are set.
type abilityAction struct {
	kind    models.AbilityKind
	target  int
	discard []uuid.UUID
}

// cardAbilityAction plays a hand card for its special ability; the card is then
// discarded to the player's personal pile.
type cardAbilityAction struct {
	card models.Card
}

func validateUseAbility(s *State, p *player.State, f fields) (executor, error) {
	switch {
	case f.has("ability"):
		return validateAuxiliaryAbility(s, p, f)
	case f.has("card_id"):
		return validateCardAbility(s, p, f)
	}
	return nil, invalid("use_ability needs an ability or a card_id")
}

func validateAuxiliaryAbility(s *State, p *player.State, f fields) (executor, error) {
	name, err := f.getString("ability")
	if err != nil {
		return nil, err
	}
	kind := models.AbilityKind(name)
	if p.Ability(kind) == nil {
		return nil, invalid("unknown ability %s", name)
	}
	if !p.CanUse(kind) {
		return nil, invalid("ability %s is not available", name)
	}
	a := abilityAction{kind: kind}

	switch kind {
	case models.AbilityForward1, models.AbilityForward2, models.AbilityReverse1, models.AbilityReverse2:
		target, err := f.getInt("target_location")
		if err != nil {
			return nil, err
		}
		limit := 1
		if kind == models.AbilityForward2 || kind == models.AbilityReverse2 {
			limit = 2
		}
		search := s.Board.Distance
		if kind == models.AbilityReverse1 || kind == models.AbilityReverse2 {
			search = s.Board.ReverseDistance
		}
		if d, ok := search(p.Position, target, limit); !ok || d == 0 {
			return nil, invalid("location %d is not within %d steps", target, limit)
		}
		a.target = target

	case models.AbilityDrop1, models.AbilityDrop2:
		limit := 1
		if kind == models.AbilityDrop2 {
			limit = 2
		}
		ids, err := cardIDs(f, "card_ids")
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 || len(ids) > limit {
			return nil, invalid("%s discards 1 to %d cards, got %d", kind, limit, len(ids))
		}
		seen := map[uuid.UUID]bool{}
		for _, id := range ids {
			if _, ok := p.Cards.FindInHand(id); !ok || seen[id] {
				return nil, invalid("card %s is not in hand", id)
			}
			seen[id] = true
		}
		a.discard = ids
	}
	return a, nil
}

func cardIDs(f fields, key string) ([]uuid.UUID, error) {
	raw, ok := f[key]
	if !ok || raw == nil {
		return nil, invalid("missing field %s", key)
	}
	var items []interface{}
	switch v := raw.(type) {
	case []interface{}:
		items = v
	case []string:
		for _, s := range v {
			items = append(items, s)
		}
	case []uuid.UUID:
		for _, id := range v {
			items = append(items, id)
		}
	default:
		return nil, invalid("field %s must be a list of card ids", key)
	}
	out := make([]uuid.UUID, 0, len(items))
	for i, item := range items {
		id, err := fields{"id": item}.getUUID("id")
		if err != nil {
			return nil, invalid("field %s[%d] is not a valid id", key, i)
		}
		out = append(out, id)
	}
	return out, nil
}

func (a abilityAction) execute(s *State, p *player.State) (string, map[string]interface{}) {
	p.UseAbility(a.kind)
	data := map[string]interface{}{"ability_used": string(a.kind)}

	switch a.kind {
	case models.AbilityGold1:
		p.Resources.Money++
	case models.AbilityGold2:
		p.Resources.Money += 2
	case models.AbilityDraw1, models.AbilityDraw2:
		n := 1
		if a.kind == models.AbilityDraw2 {
			n = 2
		}
		data["cards_drawn"] = len(p.Cards.Draw(n, s.rng))
	case models.AbilityForward1, models.AbilityForward2, models.AbilityReverse1, models.AbilityReverse2:
		data["from_position"] = p.Position
		p.MoveTo(a.target)
		data["to_position"] = a.target
	case models.AbilityDrop1, models.AbilityDrop2:
		for _, id := range a.discard {
			p.Cards.Discard(id)
		}
		data["cards_discarded"] = len(a.discard)
	case models.AbilitySpeed1:
		p.Stats.MoveSpeed++
	case models.AbilitySpeed2:
		p.Stats.MoveSpeed += 2
	case models.AbilityCardCapacity1, models.AbilityCardCapacity2:
		p.Stats.HandLimit++
	case models.AbilityHonorLimit1:
		p.Stats.HonorLimit++
	case models.AbilityHonorLimit2:
		p.Stats.HonorLimit += 2
	}
	data["new_money"] = p.Resources.Money
	return fmt.Sprintf("used %s", a.kind), data
}

func validateCardAbility(s *State, p *player.State, f fields) (executor, error) {
	id, err := f.getUUID("card_id")
	if err != nil {
		return nil, err
	}
	c, ok := p.Cards.FindInHand(id)
	if !ok {
		return nil, invalid("card %s is not in hand", id)
	}
	switch c.SpecialAbility {
	case "":
		return nil, invalid("card %s has no special ability", c.Name)
	case CardAbilityDoubleMove, CardAbilityExtraBuild:
	case CardAbilityDrawCard:
		if len(s.CattleMarket) == 0 {
			return nil, invalid("cattle market is empty")
		}
	default:
		return nil, invalid("unknown card ability %s", c.SpecialAbility)
	}
	return cardAbilityAction{card: c}, nil
}

func (a cardAbilityAction) execute(s *State, p *player.State) (string, map[string]interface{}) {
	data := map[string]interface{}{
		"card_id":      a.card.ID.String(),
		"ability_used": a.card.SpecialAbility,
	}
	var msg string
	switch a.card.SpecialAbility {
	case CardAbilityDoubleMove:
		p.Resources.Cowboys++
		msg = "used double move, gained a cowboy"
	case CardAbilityExtraBuild:
		p.Resources.Money += 2
		msg = "used extra build, gained 2 money"
	case CardAbilityDrawCard:
		last := len(s.CattleMarket) - 1
		drawn := s.CattleMarket[last]
		s.removeFromCattleMarket(last)
		s.replenishCattleMarket(last)
		p.Cards.AddToHand(drawn)
		data["drawn_card_id"] = drawn.ID.String()
		msg = "drew " + drawn.Name + " from the cattle market"
	}
	p.Cards.Discard(a.card.ID)
	data["new_money"] = p.Resources.Money
	return msg, data
}
