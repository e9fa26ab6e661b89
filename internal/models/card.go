// internal/models/card.go
package models

import "github.com/google/uuid"

// Card is a single physical card. Cards are passed by value and never mutated after
// creation; whichever container holds a Card owns it.
type Card struct {
	ID             uuid.UUID              `json:"card_id"`
	Category       Category               `json:"card_type"`
	Name           string                 `json:"name"`
	Description    string                 `json:"description"`
	BaseValue      int                    `json:"base_value"`
	Cost           int                    `json:"cost"`
	SpecialAbility string                 `json:"special_ability,omitempty"`
	Metadata       map[string]interface{} `json:"metadata"`
}

// MetaString returns a string metadata value, or "" when missing or not a string.
func (c Card) MetaString(key string) string {
	if c.Metadata == nil {
		return ""
	}
	s, _ := c.Metadata[key].(string)
	return s
}

// CardIndex returns the index of the card with the given id, or -1.
func CardIndex(cards []Card, id uuid.UUID) int {
	for i, c := range cards {
		if c.ID == id {
			return i
		}
	}
	return -1
}
