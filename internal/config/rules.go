// internal/config/rules.go
package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/jason-s-yu/cattledrive/internal/board"
	"github.com/jason-s-yu/cattledrive/internal/deck"
	"github.com/jason-s-yu/cattledrive/internal/market"
	"github.com/jason-s-yu/cattledrive/internal/models"
	"github.com/jason-s-yu/cattledrive/internal/player"
	"gopkg.in/yaml.v3"
)

//go:embed default_rules.yaml
var defaultRulesYAML []byte

// Rules is the static content of a game: decks, board, buildings and markets.
// A Rules value is read-only once a session has been built from it.
type Rules struct {
	Version           string              `yaml:"version" json:"version"`
	MaxPlayers        int                 `yaml:"max_players" json:"max_players"`
	StartingResources player.ResourceSet  `yaml:"starting_resources" json:"starting_resources"`
	StartingDeck      int                 `yaml:"starting_deck" json:"starting_deck"`
	CattleMarketSize  int                 `yaml:"cattle_market_size" json:"cattle_market_size"`
	Decks             []deck.Config       `yaml:"decks" json:"decks"`
	Layout            board.Layout        `yaml:"layout" json:"layout"`
	Buildings         board.BuildingTable `yaml:"buildings" json:"buildings"`
	Labor             market.LaborConfig  `yaml:"labor_market" json:"labor_market"`
	FutureColumns     []models.Category   `yaml:"future_columns" json:"future_columns"`
}

// DefaultRules returns the embedded standard rules.
func DefaultRules() (Rules, error) {
	return ParseRules(defaultRulesYAML)
}

// MustDefaultRules is DefaultRules for callers that cannot recover, such as tests.
func MustDefaultRules() Rules {
	r, err := DefaultRules()
	if err != nil {
		panic(err)
	}
	return r
}

// LoadRules reads a YAML rules file. An empty path yields the embedded defaults.
func LoadRules(path string) (Rules, error) {
	if path == "" {
		return DefaultRules()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read rules %s: %w", path, err)
	}
	return ParseRules(b)
}

// ParseRules decodes YAML rules, fills unset sections with defaults and validates
// the result.
func ParseRules(b []byte) (Rules, error) {
	var r Rules
	if err := yaml.Unmarshal(b, &r); err != nil {
		return Rules{}, fmt.Errorf("decode rules: %w", err)
	}
	r.ApplyDefaults()
	if err := r.Validate(); err != nil {
		return Rules{}, err
	}
	return r, nil
}

// ApplyDefaults fills zero-valued sections.
func (r *Rules) ApplyDefaults() {
	if r.MaxPlayers == 0 {
		r.MaxPlayers = 4
	}
	if r.CattleMarketSize == 0 {
		r.CattleMarketSize = 6
	}
	if r.Layout.NodeCount == 0 {
		r.Layout = board.DefaultLayout()
	}
	if len(r.Buildings) == 0 {
		r.Buildings = board.DefaultBuildingTable()
	}
	if r.Labor.Rows == 0 || r.Labor.Columns == 0 {
		r.Labor = market.DefaultLaborConfig()
	}
	if r.Labor.WorkerCategory == "" {
		r.Labor.WorkerCategory = models.CategoryActionB
	}
	if len(r.FutureColumns) == 0 {
		r.FutureColumns = market.DefaultFutureColumns()
	}
}

// Validate checks the rules can build a session.
func (r Rules) Validate() error {
	if r.MaxPlayers < 1 || r.MaxPlayers > len(models.SeatColors) {
		return fmt.Errorf("rules: max_players must be between 1 and %d, got %d", len(models.SeatColors), r.MaxPlayers)
	}
	for _, d := range r.Decks {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	if err := r.Layout.Validate(); err != nil {
		return err
	}
	if r.Labor.InitialFill > r.Labor.Rows*r.Labor.Columns {
		return fmt.Errorf("rules: labor market initial fill %d exceeds %d cells", r.Labor.InitialFill, r.Labor.Rows*r.Labor.Columns)
	}
	return nil
}

// Deck returns the configuration of one category.
func (r Rules) Deck(cat models.Category) (deck.Config, bool) {
	for _, d := range r.Decks {
		if d.Category == cat {
			return d, true
		}
	}
	return deck.Config{}, false
}
