// internal/player/player.go
package player

import (
	"github.com/google/uuid"
	"github.com/jason-s-yu/cattledrive/internal/models"
)

// Default per-player limits.
const (
	DefaultMoveSpeed  = 3
	DefaultHandLimit  = 4
	DefaultHonorLimit = 3
)

// Stats tracks a player's progress.
type Stats struct {
	VictoryPoints  int `json:"victory_points"`
	StationsBuilt  int `json:"stations_built"`
	BuildingsBuilt int `json:"buildings_built_count"`
	CattleSold     int `json:"cattle_sold_count"`
	WorkersHired   int `json:"workers_hired_count"`
	MoveSpeed      int `json:"move_speed"`
	HandLimit      int `json:"hand_limit"`
	HonorLimit     int `json:"honor_limit"`
}

// State is one seated player.
type State struct {
	ID               uuid.UUID          `json:"player_id"`
	UserID           string             `json:"user_id"`
	Color            models.PlayerColor `json:"player_color"`
	DisplayName      string             `json:"display_name"`
	Position         int                `json:"position"`
	PreviousPosition *int               `json:"previous_position"`
	Resources        ResourceSet        `json:"resources"`
	Cards            CardManager        `json:"card_manager"`
	Stats            Stats              `json:"stats"`
	Abilities        []Ability          `json:"auxiliary_abilities"`
}

// New seats a player at position start with the given starting resources.
func New(userID, name string, color models.PlayerColor, start int, res ResourceSet) *State {
	return &State{
		ID:          uuid.New(),
		UserID:      userID,
		Color:       color,
		DisplayName: name,
		Position:    start,
		Resources:   res,
		Cards:       NewCardManager(),
		Stats: Stats{
			MoveSpeed:  DefaultMoveSpeed,
			HandLimit:  DefaultHandLimit,
			HonorLimit: DefaultHonorLimit,
		},
		Abilities: DefaultAbilities(),
	}
}

// MoveTo records the previous position and moves the player.
func (s *State) MoveTo(node int) {
	prev := s.Position
	s.PreviousPosition = &prev
	s.Position = node
}

// Summary reports pile sizes and the category spread of acquired cards.
func (s *State) Summary() map[string]interface{} {
	types := map[models.Category]int{}
	for _, c := range s.Cards.Acquired {
		types[c.Category]++
	}
	return map[string]interface{}{
		"card_counts":         s.Cards.Counts(),
		"acquired_card_types": types,
		"played_objectives":   len(s.Cards.PlayedObjectives),
		"total_workers":       s.Resources.TotalWorkers(),
		"victory_points":      s.Stats.VictoryPoints,
		"unlocked_abilities":  s.unlockedCount(),
	}
}

func (s *State) unlockedCount() int {
	n := 0
	for _, a := range s.Abilities {
		if a.Unlocked {
			n++
		}
	}
	return n
}

// Clone deep-copies the player.
func (s *State) Clone() *State {
	c := *s
	if s.PreviousPosition != nil {
		p := *s.PreviousPosition
		c.PreviousPosition = &p
	}
	c.Cards = s.Cards.Clone()
	c.Abilities = append([]Ability{}, s.Abilities...)
	return &c
}
