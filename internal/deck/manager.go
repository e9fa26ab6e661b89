// internal/deck/manager.go
package deck

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/jason-s-yu/cattledrive/internal/models"
	"github.com/sirupsen/logrus"
)

// Status summarises one deck. Total only counts cards the deck currently holds;
// cards out in hands, on the board or in a market are tracked by their holders.
type Status struct {
	Remaining int `json:"remaining"`
	Discarded int `json:"discarded"`
	Total     int `json:"total"`
}

// Manager owns one deck per category and routes calls by category.
type Manager struct {
	decks map[models.Category]*Deck
	rng   *rand.Rand
	log   *logrus.Entry
}

// NewRand returns a time-seeded source, used whenever the caller supplies none.
func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// NewManager builds every configured deck. Any inconsistent config aborts construction
// with an error wrapping ErrConfigMismatch.
func NewManager(configs []Config, rng *rand.Rand) (*Manager, error) {
	m := newManager(rng)
	for _, cfg := range configs {
		if _, dup := m.decks[cfg.Category]; dup {
			return nil, fmt.Errorf("%w: deck %q configured twice", ErrConfigMismatch, cfg.Category)
		}
		d, err := New(cfg, m.rng)
		if err != nil {
			return nil, err
		}
		m.decks[cfg.Category] = d
	}
	m.log.WithField("decks", len(m.decks)).Info("all decks initialized")
	return m, nil
}

// RestoreManager assembles a manager from restored decks.
func RestoreManager(decks []*Deck, rng *rand.Rand) *Manager {
	m := newManager(rng)
	for _, d := range decks {
		d.rng = m.rng
		m.decks[d.Category] = d
	}
	return m
}

func newManager(rng *rand.Rand) *Manager {
	if rng == nil {
		rng = NewRand()
	}
	return &Manager{
		decks: make(map[models.Category]*Deck),
		rng:   rng,
		log:   logrus.WithField("component", "deck_manager"),
	}
}

// Deck returns the deck for a category, or nil.
func (m *Manager) Deck(category models.Category) *Deck {
	return m.decks[category]
}

// Categories returns the configured categories in sorted order.
func (m *Manager) Categories() []models.Category {
	out := make([]models.Category, 0, len(m.decks))
	for c := range m.decks {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Draw draws up to n cards from the category's deck. Unknown categories yield nothing.
func (m *Manager) Draw(category models.Category, n int) []models.Card {
	d := m.decks[category]
	if d == nil {
		m.log.WithField("category", category).Warn("draw from unknown deck")
		return []models.Card{}
	}
	return d.Draw(n)
}

// Discard puts cards on the category's discard pile.
func (m *Manager) Discard(category models.Category, cards ...models.Card) {
	d := m.decks[category]
	if d == nil {
		m.log.WithField("category", category).Warn("discard to unknown deck")
		return
	}
	d.Discard(cards...)
}

// Reshuffle shuffles the category's discard pile back into its draw pile.
func (m *Manager) Reshuffle(category models.Category) {
	d := m.decks[category]
	if d == nil {
		m.log.WithField("category", category).Warn("reshuffle of unknown deck")
		return
	}
	d.ReshuffleDiscarded()
}

// Status reports remaining/discarded/total per category.
func (m *Manager) Status() map[models.Category]Status {
	out := make(map[models.Category]Status, len(m.decks))
	for c, d := range m.decks {
		out[c] = Status{
			Remaining: d.Remaining(),
			Discarded: d.DiscardedCount(),
			Total:     d.Remaining() + d.DiscardedCount(),
		}
	}
	return out
}
