// internal/deck/config.go
package deck

import (
	"errors"
	"fmt"

	"github.com/jason-s-yu/cattledrive/internal/models"
)

// ErrConfigMismatch is returned when a deck configuration is not self-consistent.
var ErrConfigMismatch = errors.New("deck config mismatch")

// Prototype describes one kind of card and how many copies of it a deck holds.
type Prototype struct {
	Name           string                 `yaml:"name" json:"name"`
	Description    string                 `yaml:"description" json:"description"`
	BaseValue      int                    `yaml:"base_value" json:"base_value"`
	Cost           int                    `yaml:"cost" json:"cost"`
	SpecialAbility string                 `yaml:"special_ability" json:"special_ability,omitempty"`
	Metadata       map[string]interface{} `yaml:"metadata" json:"metadata,omitempty"`
	Count          int                    `yaml:"count" json:"count"`
}

// copies returns the replication count; an unset count means a single copy.
func (p Prototype) copies() int {
	if p.Count == 0 {
		return 1
	}
	return p.Count
}

// Config is the static composition of one deck.
type Config struct {
	Category   models.Category `yaml:"card_type" json:"card_type"`
	TotalCount int             `yaml:"total_count" json:"total_count"`
	Prototypes []Prototype     `yaml:"card_prototypes" json:"card_prototypes"`
}

// Validate checks that the prototype counts add up to the declared total.
func (c Config) Validate() error {
	if len(c.Prototypes) == 0 {
		return fmt.Errorf("%w: deck %q has no prototypes", ErrConfigMismatch, c.Category)
	}
	sum := 0
	for _, p := range c.Prototypes {
		if p.Count < 0 {
			return fmt.Errorf("%w: deck %q prototype %q has negative count %d", ErrConfigMismatch, c.Category, p.Name, p.Count)
		}
		sum += p.copies()
	}
	if sum != c.TotalCount {
		return fmt.Errorf("%w: deck %q declares %d cards but prototypes sum to %d", ErrConfigMismatch, c.Category, c.TotalCount, sum)
	}
	return nil
}
