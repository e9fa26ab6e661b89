// internal/board/buildings.go
package board

import "github.com/jason-s-yu/cattledrive/internal/models"

// ActionUseBuilding is appended to every node that carries a building.
const ActionUseBuilding = "use_building"

// DefaultBuildingCost is charged for building kinds missing from the table.
const DefaultBuildingCost = 2

// Bonus is what a player receives for completing a building.
type Bonus struct {
	Money         int `yaml:"money" json:"money,omitempty"`
	VictoryPoints int `yaml:"victory_points" json:"victory_points,omitempty"`
	Cowboys       int `yaml:"cowboys" json:"cowboys,omitempty"`
	Certificates  int `yaml:"certificates" json:"certificates,omitempty"`
}

// BuildingSpec is the static configuration of one building kind.
type BuildingSpec struct {
	Cost             int                `yaml:"cost" json:"cost"`
	BuildersRequired int                `yaml:"builders_required" json:"builders_required"`
	Bonus            Bonus              `yaml:"bonus" json:"bonus"`
	Actions          []string           `yaml:"actions" json:"actions"`
	GrantsFixedStep  bool               `yaml:"grants_fixed_step" json:"grants_fixed_step"`
	UnlocksAbility   models.AbilityKind `yaml:"unlocks_ability" json:"unlocks_ability,omitempty"`
}

// BuildingTable maps building kinds to their configuration. It is built once at
// startup and treated as read-only afterwards.
type BuildingTable map[models.BuildingKind]BuildingSpec

// Spec returns the configuration for kind. Unknown kinds get the default cost and no
// extra actions; ok reports whether kind was found.
func (t BuildingTable) Spec(kind models.BuildingKind) (spec BuildingSpec, ok bool) {
	spec, ok = t[kind]
	if !ok {
		return BuildingSpec{Cost: DefaultBuildingCost}, false
	}
	return spec, true
}

// DefaultBuildingTable is the standard set of buildings.
func DefaultBuildingTable() BuildingTable {
	return BuildingTable{
		models.BuildingStation: {
			Cost: 3, BuildersRequired: 1,
			Bonus:           Bonus{VictoryPoints: 1},
			Actions:         []string{"move", "build"},
			GrantsFixedStep: true,
		},
		models.BuildingRanch: {
			Cost:    2,
			Bonus:   Bonus{Cowboys: 1},
			Actions: []string{"buy_cattle", "hire_worker"},
		},
		models.BuildingHazard: {
			Cost:    1,
			Bonus:   Bonus{Certificates: 1},
			Actions: []string{"pay_toll"},
		},
		models.BuildingTelegraph: {
			Cost: 4, BuildersRequired: 1,
			Bonus:   Bonus{Money: 2},
			Actions: []string{"trade"},
		},
		models.BuildingChurch: {
			Cost:           3,
			Bonus:          Bonus{VictoryPoints: 2},
			Actions:        []string{"bless"},
			UnlocksAbility: models.AbilityGold2,
		},
		models.BuildingBank: {
			Cost: 4, BuildersRequired: 2,
			Bonus:   Bonus{Money: 1, VictoryPoints: 1},
			Actions: []string{"loan"},
		},
		models.BuildingHotel: {
			Cost:            3,
			Actions:         []string{"rest"},
			GrantsFixedStep: true,
			UnlocksAbility:  models.AbilityDraw2,
		},
	}
}
