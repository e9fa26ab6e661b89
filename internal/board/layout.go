// internal/board/layout.go
package board

import (
	"fmt"

	"github.com/jason-s-yu/cattledrive/internal/models"
)

// Branch is a named detour that leaves the spine at From, runs through Via and
// rejoins the spine at To.
type Branch struct {
	Name string `yaml:"name" json:"name"`
	From int    `yaml:"from" json:"from"`
	Via  []int  `yaml:"via" json:"via"`
	To   int    `yaml:"to" json:"to"`
}

// Slot places cards of one category onto a fixed set of nodes at setup.
type Slot struct {
	Category models.Category `yaml:"category" json:"category"`
	Nodes    []int           `yaml:"nodes" json:"nodes"`
}

// Layout is the procedural script that builds a board. It is pure data.
type Layout struct {
	NodeCount     int      `yaml:"node_count" json:"node_count"`
	Spine         []int    `yaml:"spine" json:"spine"`
	Branches      []Branch `yaml:"branches" json:"branches"`
	Start         int      `yaml:"start" json:"start"`
	Terminus      int      `yaml:"terminus" json:"terminus"`
	BuildingSlots []Slot   `yaml:"building_slots" json:"building_slots"`
}

// DefaultLayout is a 30-node spine with four detours and seven public building slots.
func DefaultLayout() Layout {
	spine := make([]int, 30)
	for i := range spine {
		spine[i] = i
	}
	return Layout{
		NodeCount: 37,
		Spine:     spine,
		Branches: []Branch{
			{Name: "river_ford", From: 5, Via: []int{30, 31}, To: 8},
			{Name: "canyon_pass", From: 10, Via: []int{32}, To: 12},
			{Name: "mesa_trail", From: 15, Via: []int{33, 34}, To: 18},
			{Name: "prairie_cut", From: 20, Via: []int{35, 36}, To: 23},
		},
		Start:    0,
		Terminus: 29,
		BuildingSlots: []Slot{
			{Category: models.CategoryPublicBuilding, Nodes: []int{1, 3, 9, 13, 17, 22, 26}},
		},
	}
}

// Validate checks that every id referenced by the layout lies within NodeCount.
func (l Layout) Validate() error {
	in := func(id int) bool { return id >= 0 && id < l.NodeCount }
	if l.NodeCount <= 0 {
		return fmt.Errorf("layout: node count must be positive, got %d", l.NodeCount)
	}
	if len(l.Spine) < 2 {
		return fmt.Errorf("layout: spine needs at least two nodes")
	}
	for _, id := range l.Spine {
		if !in(id) {
			return fmt.Errorf("layout: spine node %d out of range", id)
		}
	}
	for _, b := range l.Branches {
		for _, id := range append([]int{b.From, b.To}, b.Via...) {
			if !in(id) {
				return fmt.Errorf("layout: branch %q node %d out of range", b.Name, id)
			}
		}
	}
	if !in(l.Start) || !in(l.Terminus) {
		return fmt.Errorf("layout: start %d or terminus %d out of range", l.Start, l.Terminus)
	}
	for _, s := range l.BuildingSlots {
		for _, id := range s.Nodes {
			if !in(id) {
				return fmt.Errorf("layout: %s slot node %d out of range", s.Category, id)
			}
		}
	}
	return nil
}
