// internal/board/graph.go
package board

import (
	"sort"

	"github.com/google/uuid"
	"github.com/jason-s-yu/cattledrive/internal/models"
	"github.com/sirupsen/logrus"
)

// Node is one position on the board.
type Node struct {
	ID       int                 `json:"node_id"`
	Name     string              `json:"name"`
	Kind     models.LocationKind `json:"location_type"`
	Building models.BuildingKind `json:"building_type,omitempty"`
	// OwnerID is uuid.Nil for neutral buildings placed during setup.
	OwnerID uuid.UUID    `json:"owner_id"`
	Card    *models.Card `json:"card,omitempty"` // building card placed here at setup, if any
	Next    []int        `json:"next_nodes"`
	Prev    []int        `json:"previous_nodes"`
	Actions []string     `json:"actions"`
}

func (n *Node) addNext(id int) bool {
	for _, x := range n.Next {
		if x == id {
			return false
		}
	}
	n.Next = append(n.Next, id)
	return true
}

func (n *Node) addPrev(id int) {
	for _, x := range n.Prev {
		if x == id {
			return
		}
	}
	n.Prev = append(n.Prev, id)
}

// HasAction reports whether the node offers the given action tag.
func (n *Node) HasAction(action string) bool {
	for _, a := range n.Actions {
		if a == action {
			return true
		}
	}
	return false
}

// Graph is the directed board graph. It exclusively owns its nodes.
type Graph struct {
	nodes map[int]*Node
	table BuildingTable
	log   *logrus.Entry
}

// NewGraph allocates count empty, unconnected nodes of the generic buildable kind.
func NewGraph(count int, table BuildingTable) *Graph {
	g := newGraph(table)
	for i := 0; i < count; i++ {
		g.nodes[i] = &Node{ID: i, Kind: models.LocationNormal, Next: []int{}, Prev: []int{}, Actions: []string{}}
	}
	return g
}

// Restore rebuilds a graph from serialized nodes.
func Restore(nodes []Node, table BuildingTable) *Graph {
	g := newGraph(table)
	for i := range nodes {
		n := nodes[i]
		n.Next = append([]int{}, n.Next...)
		n.Prev = append([]int{}, n.Prev...)
		n.Actions = append([]string{}, n.Actions...)
		if n.Card != nil {
			c := *n.Card
			n.Card = &c
		}
		g.nodes[n.ID] = &n
	}
	return g
}

func newGraph(table BuildingTable) *Graph {
	if table == nil {
		table = DefaultBuildingTable()
	}
	return &Graph{
		nodes: make(map[int]*Node),
		table: table,
		log:   logrus.WithField("component", "board"),
	}
}

// Table returns the building table the graph was built with.
func (g *Graph) Table() BuildingTable { return g.table }

// Len is the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Node returns the node with the given id.
func (g *Graph) Node(id int) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes ordered by id.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Connect adds the directed edge a->b and its mirror predecessor entry. Adding an
// existing edge has no effect; unknown endpoints are ignored.
func (g *Graph) Connect(a, b int) {
	from, okA := g.nodes[a]
	to, okB := g.nodes[b]
	if !okA || !okB {
		g.log.WithFields(logrus.Fields{"from": a, "to": b}).Warn("connect with unknown node")
		return
	}
	if from.addNext(b) {
		to.addPrev(a)
	}
}

// AvailablePaths returns a copy of the successors of id.
func (g *Graph) AvailablePaths(id int) []int {
	n, ok := g.nodes[id]
	if !ok {
		return []int{}
	}
	return append([]int{}, n.Next...)
}

// Predecessors returns a copy of the predecessors of id.
func (g *Graph) Predecessors(id int) []int {
	n, ok := g.nodes[id]
	if !ok {
		return []int{}
	}
	return append([]int{}, n.Prev...)
}

// IsAdjacent reports whether b is a direct successor of a.
func (g *Graph) IsAdjacent(a, b int) bool {
	for _, id := range g.AvailablePaths(a) {
		if id == b {
			return true
		}
	}
	return false
}

// IsBuildable reports whether id is a generic buildable node with no building yet.
func (g *Graph) IsBuildable(id int) bool {
	n, ok := g.nodes[id]
	return ok && n.Kind == models.LocationNormal && n.Building == models.BuildingNone
}

// PlaceBuilding puts a building on a buildable node and adds its action tags. A missing
// or unbuildable node is logged and left untouched; check IsBuildable first.
func (g *Graph) PlaceBuilding(id int, kind models.BuildingKind, owner uuid.UUID) bool {
	if !g.IsBuildable(id) {
		g.log.WithFields(logrus.Fields{"node": id, "building": kind}).Warn("node is not buildable")
		return false
	}
	g.setBuilding(g.nodes[id], kind, owner)
	return true
}

// ReplaceBuilding swaps the building on a node already owned by owner.
func (g *Graph) ReplaceBuilding(id int, kind models.BuildingKind, owner uuid.UUID) bool {
	n, ok := g.nodes[id]
	if !ok || n.Building == models.BuildingNone || owner == uuid.Nil || n.OwnerID != owner {
		g.log.WithFields(logrus.Fields{"node": id, "building": kind}).Warn("node has no building owned by player")
		return false
	}
	g.setBuilding(n, kind, owner)
	return true
}

func (g *Graph) setBuilding(n *Node, kind models.BuildingKind, owner uuid.UUID) {
	spec, _ := g.table.Spec(kind)
	n.Building = kind
	n.OwnerID = owner
	n.Actions = append(locationActions(n.Kind), spec.Actions...)
	n.Actions = append(n.Actions, ActionUseBuilding)
}

// GrantsFixedStep reports whether the building on id allows a fixed one-step move.
func (g *Graph) GrantsFixedStep(id int) bool {
	n, ok := g.nodes[id]
	if !ok || n.Building == models.BuildingNone {
		return false
	}
	spec, _ := g.table.Spec(n.Building)
	return spec.GrantsFixedStep
}

// Distance returns the number of forward hops from -> to, searching no deeper than limit.
func (g *Graph) Distance(from, to, limit int) (int, bool) {
	return g.search(from, to, limit, func(n *Node) []int { return n.Next })
}

// ReverseDistance is Distance along predecessor edges.
func (g *Graph) ReverseDistance(from, to, limit int) (int, bool) {
	return g.search(from, to, limit, func(n *Node) []int { return n.Prev })
}

func (g *Graph) search(from, to, limit int, edges func(*Node) []int) (int, bool) {
	if _, ok := g.nodes[from]; !ok {
		return 0, false
	}
	if _, ok := g.nodes[to]; !ok {
		return 0, false
	}
	if from == to {
		return 0, true
	}
	depth := map[int]int{from: 0}
	queue := []int{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if depth[cur] >= limit {
			continue
		}
		for _, next := range edges(g.nodes[cur]) {
			if _, seen := depth[next]; seen {
				continue
			}
			depth[next] = depth[cur] + 1
			if next == to {
				return depth[next], true
			}
			queue = append(queue, next)
		}
	}
	return 0, false
}

// Snapshot returns deep copies of all nodes ordered by id.
func (g *Graph) Snapshot() []Node {
	nodes := g.Nodes()
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		c := *n
		c.Next = append([]int{}, n.Next...)
		c.Prev = append([]int{}, n.Prev...)
		c.Actions = append([]string{}, n.Actions...)
		if n.Card != nil {
			card := *n.Card
			c.Card = &card
		}
		out[i] = c
	}
	return out
}

// locationActions are the action tags a node offers by virtue of its kind.
func locationActions(kind models.LocationKind) []string {
	switch kind {
	case models.LocationStart:
		return []string{"depart"}
	case models.LocationTerminus:
		return []string{"deliver", "sell_cattle"}
	case models.LocationBranch:
		return []string{"choose_path"}
	default:
		return []string{}
	}
}
