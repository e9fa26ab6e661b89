// internal/game/action_build.go
package game

import (
	"fmt"

	"github.com/jason-s-yu/cattledrive/internal/board"
	"github.com/jason-s-yu/cattledrive/internal/models"
	"github.com/jason-s-yu/cattledrive/internal/player"
)

type buildAction struct {
	location int
	kind     models.BuildingKind
	spec     board.BuildingSpec
	replace  bool
}

func validateBuild(s *State, p *player.State, f fields) (executor, error) {
	loc, err := f.getInt("location_id")
	if err != nil {
		return nil, err
	}
	kindName, err := f.getString("building_type")
	if err != nil {
		return nil, err
	}
	kind := models.BuildingKind(kindName)

	node, ok := s.Board.Node(loc)
	if !ok {
		return nil, invalid("location %d does not exist", loc)
	}
	replace := false
	if !s.Board.IsBuildable(loc) {
		if node.Building == models.BuildingNone || node.OwnerID != p.ID {
			return nil, invalid("location %d is not buildable", loc)
		}
		replace = true
	}

	spec, _ := s.Board.Table().Spec(kind)
	if p.Resources.Money < spec.Cost {
		return nil, invalid("insufficient money: %s costs %d, have %d", kind, spec.Cost, p.Resources.Money)
	}
	if p.Resources.Builders < spec.BuildersRequired {
		return nil, invalid("insufficient builders: %s needs %d, have %d", kind, spec.BuildersRequired, p.Resources.Builders)
	}
	return buildAction{location: loc, kind: kind, spec: spec, replace: replace}, nil
}

func (a buildAction) execute(s *State, p *player.State) (string, map[string]interface{}) {
	p.Resources.Money -= a.spec.Cost
	if a.replace {
		s.Board.ReplaceBuilding(a.location, a.kind, p.ID)
	} else {
		s.Board.PlaceBuilding(a.location, a.kind, p.ID)
	}

	p.Stats.BuildingsBuilt++
	b := a.spec.Bonus
	p.Resources.Money += b.Money
	p.Resources.Cowboys += b.Cowboys
	p.Resources.Certificates += b.Certificates
	p.Stats.VictoryPoints += b.VictoryPoints

	data := map[string]interface{}{
		"location_id":     a.location,
		"building_type":   string(a.kind),
		"cost":            a.spec.Cost,
		"new_money":       p.Resources.Money,
		"buildings_built": p.Stats.BuildingsBuilt,
	}
	if a.kind == models.BuildingStation {
		p.Stats.StationsBuilt++
		// a station earns its station master flag while any remain
		if flags := s.Decks.Draw(models.CategoryStationFlag, 1); len(flags) == 1 {
			p.Cards.Acquire(flags[0])
			data["station_flag"] = flags[0].ID.String()
		}
	}
	if a.spec.UnlocksAbility != "" && p.UnlockAbility(a.spec.UnlocksAbility) {
		data["unlocked_ability"] = string(a.spec.UnlocksAbility)
	}
	return fmt.Sprintf("built %s at %d", a.kind, a.location), data
}
