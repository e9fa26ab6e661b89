// internal/player/abilities.go
package player

import "github.com/jason-s-yu/cattledrive/internal/models"

// Ability is the state of one auxiliary ability. Locked abilities are never usable.
// A used ability stays spent until ResetAbilities at the start of the owner's turn.
type Ability struct {
	Kind        models.AbilityKind `json:"ability_type"`
	Description string             `json:"description"`
	Unlocked    bool               `json:"unlocked"`
	Usable      bool               `json:"is_usable"`
	UsedCount   int                `json:"used_count"`
	MaxUses     int                `json:"max_uses"` // 0 means unlimited
}

func (a Ability) underMax() bool {
	return a.MaxUses == 0 || a.UsedCount < a.MaxUses
}

type abilityDef struct {
	kind        models.AbilityKind
	description string
	maxUses     int
}

// abilityOrder fixes the order abilities are listed and serialized in. The permanent
// upgrades can be used once per game.
var abilityOrder = []abilityDef{
	{models.AbilityGold1, "gain 1 money", 0},
	{models.AbilityGold2, "gain 2 money", 0},
	{models.AbilityDraw1, "draw 1 card", 0},
	{models.AbilityDraw2, "draw 2 cards", 0},
	{models.AbilityReverse1, "move back 1 step", 0},
	{models.AbilityReverse2, "move back up to 2 steps", 0},
	{models.AbilityForward1, "move forward 1 step", 0},
	{models.AbilityForward2, "move forward up to 2 steps", 0},
	{models.AbilityDrop1, "discard 1 card", 0},
	{models.AbilityDrop2, "discard 2 cards", 0},
	{models.AbilitySpeed1, "speed +1", 1},
	{models.AbilitySpeed2, "speed +2", 1},
	{models.AbilityCardCapacity1, "hand limit +1", 1},
	{models.AbilityCardCapacity2, "hand limit +1", 1},
	{models.AbilityHonorLimit1, "honor limit +1", 1},
	{models.AbilityHonorLimit2, "honor limit +2", 1},
}

// AbilityKinds lists every auxiliary ability in canonical order.
func AbilityKinds() []models.AbilityKind {
	out := make([]models.AbilityKind, len(abilityOrder))
	for i, d := range abilityOrder {
		out[i] = d.kind
	}
	return out
}

// DefaultAbilities returns the sixteen abilities with gold_1 and draw_1 unlocked.
func DefaultAbilities() []Ability {
	out := make([]Ability, len(abilityOrder))
	for i, d := range abilityOrder {
		starter := d.kind == models.AbilityGold1 || d.kind == models.AbilityDraw1
		out[i] = Ability{Kind: d.kind, Description: d.description, Unlocked: starter, Usable: starter, MaxUses: d.maxUses}
	}
	return out
}

// Ability returns a pointer to the named ability, or nil.
func (s *State) Ability(kind models.AbilityKind) *Ability {
	for i := range s.Abilities {
		if s.Abilities[i].Kind == kind {
			return &s.Abilities[i]
		}
	}
	return nil
}

// CanUse reports whether the ability is unlocked and not yet spent.
func (s *State) CanUse(kind models.AbilityKind) bool {
	a := s.Ability(kind)
	return a != nil && a.Unlocked && a.Usable
}

// UseAbility spends the ability. It reports false if the ability cannot be used.
func (s *State) UseAbility(kind models.AbilityKind) bool {
	if !s.CanUse(kind) {
		return false
	}
	a := s.Ability(kind)
	a.UsedCount++
	a.Usable = false
	return true
}

// UnlockAbility makes an ability available. Unlocking twice is harmless.
func (s *State) UnlockAbility(kind models.AbilityKind) bool {
	a := s.Ability(kind)
	if a == nil {
		return false
	}
	if !a.Unlocked {
		a.Unlocked = true
		a.Usable = a.underMax()
	}
	return true
}

// ResetAbilities re-enables every unlocked ability still under its use limit.
func (s *State) ResetAbilities() {
	for i := range s.Abilities {
		a := &s.Abilities[i]
		if a.Unlocked && a.underMax() {
			a.Usable = true
		}
	}
}
