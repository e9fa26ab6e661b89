// internal/deck/deck.go
package deck

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/jason-s-yu/cattledrive/internal/models"
	"github.com/sirupsen/logrus"
)

// Deck holds the undrawn and discarded cards of one category.
// Cards drawn from a deck are owned by the caller until discarded back.
type Deck struct {
	Category  models.Category
	cards     []models.Card
	discarded []models.Card
	rng       *rand.Rand
	log       *logrus.Entry
}

// New expands every prototype of cfg into concrete cards and shuffles them.
func New(cfg Config, rng *rand.Rand) (*Deck, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d := newEmpty(cfg.Category, rng)
	d.cards = make([]models.Card, 0, cfg.TotalCount)
	for _, p := range cfg.Prototypes {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("%s_card", cfg.Category)
		}
		for i := 0; i < p.copies(); i++ {
			d.cards = append(d.cards, models.Card{
				ID:             uuid.New(),
				Category:       cfg.Category,
				Name:           name,
				Description:    p.Description,
				BaseValue:      p.BaseValue,
				Cost:           p.Cost,
				SpecialAbility: p.SpecialAbility,
				Metadata:       copyMetadata(p.Metadata),
			})
		}
	}
	d.shuffle()
	d.log.WithField("cards", len(d.cards)).Debug("deck initialized")
	return d, nil
}

// Restore rebuilds a deck from previously serialized piles without shuffling.
func Restore(category models.Category, cards, discarded []models.Card, rng *rand.Rand) *Deck {
	d := newEmpty(category, rng)
	d.cards = append([]models.Card{}, cards...)
	d.discarded = append([]models.Card{}, discarded...)
	return d
}

func newEmpty(category models.Category, rng *rand.Rand) *Deck {
	if rng == nil {
		rng = NewRand()
	}
	return &Deck{
		Category:  category,
		cards:     []models.Card{},
		discarded: []models.Card{},
		rng:       rng,
		log:       logrus.WithFields(logrus.Fields{"component": "deck", "category": category}),
	}
}

// Draw removes up to n cards from the top of the draw pile. A short result means the
// pile ran out; Draw never reshuffles the discard pile on its own.
func (d *Deck) Draw(n int) []models.Card {
	if n <= 0 {
		return []models.Card{}
	}
	if n > len(d.cards) {
		d.log.WithFields(logrus.Fields{"requested": n, "available": len(d.cards)}).Warn("deck short on cards")
		n = len(d.cards)
	}
	drawn := make([]models.Card, n)
	copy(drawn, d.cards[:n])
	d.cards = d.cards[n:]
	return drawn
}

// Discard appends cards to the discard pile.
func (d *Deck) Discard(cards ...models.Card) {
	d.discarded = append(d.discarded, cards...)
}

// ReshuffleDiscarded moves the discard pile back into the draw pile and shuffles.
func (d *Deck) ReshuffleDiscarded() {
	if len(d.discarded) == 0 {
		return
	}
	d.cards = append(d.cards, d.discarded...)
	d.discarded = []models.Card{}
	d.shuffle()
	d.log.WithField("cards", len(d.cards)).Debug("reshuffled discard pile")
}

// Remaining is the size of the draw pile.
func (d *Deck) Remaining() int { return len(d.cards) }

// DiscardedCount is the size of the discard pile.
func (d *Deck) DiscardedCount() int { return len(d.discarded) }

// Cards returns a copy of the draw pile in draw order.
func (d *Deck) Cards() []models.Card { return append([]models.Card{}, d.cards...) }

// Discarded returns a copy of the discard pile.
func (d *Deck) Discarded() []models.Card { return append([]models.Card{}, d.discarded...) }

func (d *Deck) shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

func copyMetadata(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
