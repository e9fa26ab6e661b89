// internal/board/build.go
package board

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jason-s-yu/cattledrive/internal/models"
	"github.com/sirupsen/logrus"
)

// CardSource is the part of the deck manager the board needs during setup.
type CardSource interface {
	Draw(category models.Category, n int) []models.Card
}

// buildingNames maps building card names, English or Chinese, to building kinds.
var buildingNames = map[string]models.BuildingKind{
	"station":   models.BuildingStation,
	"ranch":     models.BuildingRanch,
	"hazard":    models.BuildingHazard,
	"telegraph": models.BuildingTelegraph,
	"church":    models.BuildingChurch,
	"bank":      models.BuildingBank,
	"hotel":     models.BuildingHotel,
	"车站":        models.BuildingStation,
	"牧场":        models.BuildingRanch,
	"危险建筑":      models.BuildingHazard,
	"电报站":       models.BuildingTelegraph,
	"教堂":        models.BuildingChurch,
	"银行":        models.BuildingBank,
	"酒店":        models.BuildingHotel,
}

// BuildingKindForCard resolves the building a card represents: the building_kind
// metadata wins, then the card name.
func BuildingKindForCard(c models.Card) models.BuildingKind {
	if k := c.MetaString("building_kind"); k != "" {
		return models.BuildingKind(k)
	}
	if k, ok := buildingNames[strings.ToLower(strings.TrimSpace(c.Name))]; ok {
		return k
	}
	return models.BuildingKind(strings.ToLower(strings.ReplaceAll(strings.TrimSpace(c.Name), " ", "_")))
}

// Build runs the layout script: allocate nodes, lay the spine, add branch detours,
// tag special nodes, then draw building cards and place them on their slots.
func Build(layout Layout, table BuildingTable, cards CardSource) (*Graph, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	g := NewGraph(layout.NodeCount, table)

	for i := 0; i+1 < len(layout.Spine); i++ {
		g.Connect(layout.Spine[i], layout.Spine[i+1])
	}
	detour := make(map[int]string)
	for _, b := range layout.Branches {
		path := append(append([]int{b.From}, b.Via...), b.To)
		for i := 0; i+1 < len(path); i++ {
			g.Connect(path[i], path[i+1])
		}
		for i, id := range b.Via {
			detour[id] = fmt.Sprintf("%s %d", strings.ReplaceAll(b.Name, "_", " "), i+1)
		}
	}

	for _, n := range g.Nodes() {
		switch {
		case n.ID == layout.Start:
			n.Kind = models.LocationStart
			n.Name = "Start"
		case n.ID == layout.Terminus:
			n.Kind = models.LocationTerminus
			n.Name = "Kansas City"
		case len(n.Next) > 1:
			n.Kind = models.LocationBranch
			n.Name = fmt.Sprintf("Fork %d", n.ID)
		case detour[n.ID] != "":
			n.Name = detour[n.ID]
		default:
			n.Name = fmt.Sprintf("Trail %d", n.ID)
		}
		n.Actions = locationActions(n.Kind)
	}

	if cards != nil {
		for _, slot := range layout.BuildingSlots {
			drawn := cards.Draw(slot.Category, len(slot.Nodes))
			if len(drawn) < len(slot.Nodes) {
				g.log.WithFields(logrus.Fields{
					"category": slot.Category, "slots": len(slot.Nodes), "cards": len(drawn),
				}).Warn("not enough cards to fill building slots")
			}
			for i, card := range drawn {
				id := slot.Nodes[i]
				if !g.PlaceBuilding(id, BuildingKindForCard(card), uuid.Nil) {
					return nil, fmt.Errorf("layout: slot node %d is not buildable", id)
				}
				c := card
				g.nodes[id].Card = &c
			}
		}
	}
	return g, nil
}
