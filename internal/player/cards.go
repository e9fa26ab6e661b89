// internal/player/cards.go
package player

import (
	"math/rand"

	"github.com/google/uuid"
	"github.com/jason-s-yu/cattledrive/internal/models"
)

// CardManager holds a player's personal piles. It owns every card in them.
type CardManager struct {
	DrawPile         []models.Card `json:"draw_pile"`
	Hand             []models.Card `json:"hand_cards"`
	DiscardPile      []models.Card `json:"discard_pile"`
	PlayedObjectives []models.Card `json:"played_objectives"`
	Acquired         []models.Card `json:"acquired_cards"`
}

// NewCardManager returns a manager with all piles allocated.
func NewCardManager() CardManager {
	return CardManager{
		DrawPile:         []models.Card{},
		Hand:             []models.Card{},
		DiscardPile:      []models.Card{},
		PlayedObjectives: []models.Card{},
		Acquired:         []models.Card{},
	}
}

// Draw moves up to n cards from the draw pile into the hand. When the draw pile is
// exhausted the personal discard pile is shuffled in to replace it.
func (cm *CardManager) Draw(n int, rng *rand.Rand) []models.Card {
	drawn := []models.Card{}
	for i := 0; i < n; i++ {
		if len(cm.DrawPile) == 0 {
			cm.reshuffleDiscard(rng)
		}
		if len(cm.DrawPile) == 0 {
			break
		}
		c := cm.DrawPile[0]
		cm.DrawPile = cm.DrawPile[1:]
		cm.Hand = append(cm.Hand, c)
		drawn = append(drawn, c)
	}
	return drawn
}

func (cm *CardManager) reshuffleDiscard(rng *rand.Rand) {
	if len(cm.DiscardPile) == 0 {
		return
	}
	pile := cm.DiscardPile
	if rng != nil {
		rng.Shuffle(len(pile), func(i, j int) { pile[i], pile[j] = pile[j], pile[i] })
	}
	cm.DrawPile = append(cm.DrawPile, pile...)
	cm.DiscardPile = []models.Card{}
}

// AddToDrawPile puts cards at the bottom of the draw pile.
func (cm *CardManager) AddToDrawPile(cards ...models.Card) {
	cm.DrawPile = append(cm.DrawPile, cards...)
}

// AddToHand puts a card straight into the hand.
func (cm *CardManager) AddToHand(c models.Card) {
	cm.Hand = append(cm.Hand, c)
}

// FindInHand returns the hand card with the given id.
func (cm *CardManager) FindInHand(id uuid.UUID) (models.Card, bool) {
	i := models.CardIndex(cm.Hand, id)
	if i < 0 {
		return models.Card{}, false
	}
	return cm.Hand[i], true
}

// RemoveFromHand takes the card out of the hand and returns it.
func (cm *CardManager) RemoveFromHand(id uuid.UUID) (models.Card, bool) {
	i := models.CardIndex(cm.Hand, id)
	if i < 0 {
		return models.Card{}, false
	}
	c := cm.Hand[i]
	cm.Hand = append(cm.Hand[:i:i], cm.Hand[i+1:]...)
	return c, true
}

// Discard moves a hand card to the personal discard pile.
func (cm *CardManager) Discard(id uuid.UUID) bool {
	c, ok := cm.RemoveFromHand(id)
	if !ok {
		return false
	}
	cm.DiscardPile = append(cm.DiscardPile, c)
	return true
}

// PlayObjective moves a mission card from the hand to the played objectives.
func (cm *CardManager) PlayObjective(id uuid.UUID) bool {
	c, ok := cm.FindInHand(id)
	if !ok || c.Category != models.CategoryMission {
		return false
	}
	cm.RemoveFromHand(id)
	cm.PlayedObjectives = append(cm.PlayedObjectives, c)
	return true
}

// Acquire records a card the player has gained outside the hand, such as a station
// flag or a future-area card.
func (cm *CardManager) Acquire(c models.Card) {
	cm.Acquired = append(cm.Acquired, c)
}

// AcquiredByCategory lists acquired cards of one category.
func (cm *CardManager) AcquiredByCategory(cat models.Category) []models.Card {
	out := []models.Card{}
	for _, c := range cm.Acquired {
		if c.Category == cat {
			out = append(out, c)
		}
	}
	return out
}

// Counts reports the size of each pile.
func (cm *CardManager) Counts() map[string]int {
	return map[string]int{
		"draw_pile":         len(cm.DrawPile),
		"hand_cards":        len(cm.Hand),
		"discard_pile":      len(cm.DiscardPile),
		"played_objectives": len(cm.PlayedObjectives),
		"acquired_cards":    len(cm.Acquired),
	}
}

// All returns every card the manager holds, across all piles.
func (cm *CardManager) All() []models.Card {
	out := make([]models.Card, 0, len(cm.DrawPile)+len(cm.Hand)+len(cm.DiscardPile)+len(cm.PlayedObjectives)+len(cm.Acquired))
	out = append(out, cm.DrawPile...)
	out = append(out, cm.Hand...)
	out = append(out, cm.DiscardPile...)
	out = append(out, cm.PlayedObjectives...)
	return append(out, cm.Acquired...)
}

// Clone deep-copies the piles.
func (cm CardManager) Clone() CardManager {
	cp := func(in []models.Card) []models.Card { return append([]models.Card{}, in...) }
	return CardManager{
		DrawPile:         cp(cm.DrawPile),
		Hand:             cp(cm.Hand),
		DiscardPile:      cp(cm.DiscardPile),
		PlayedObjectives: cp(cm.PlayedObjectives),
		Acquired:         cp(cm.Acquired),
	}
}
