// internal/models/enums.go
package models

// Category partitions cards into decks.
type Category string

const (
	CategoryCattle         Category = "cattle"
	CategoryActionA        Category = "action_a"
	CategoryActionB        Category = "action_b" // worker cards
	CategoryActionC        Category = "action_c"
	CategoryMission        Category = "mission"
	CategoryPublicBuilding Category = "public_building"
	CategoryStationFlag    Category = "station_flag"
)

// Phase is the coarse game-flow stage gating which actions are legal.
type Phase string

const (
	PhaseSetup      Phase = "setup"
	PhasePlayerTurn Phase = "player_turn"
	PhaseCattleSale Phase = "cattle_sale"
	PhaseEndGame    Phase = "end_game"
)

// PlayerColor is a seat color; each seat in a session has a distinct one.
type PlayerColor string

const (
	ColorRed    PlayerColor = "red"
	ColorBlue   PlayerColor = "blue"
	ColorGreen  PlayerColor = "green"
	ColorYellow PlayerColor = "yellow"
	ColorPurple PlayerColor = "purple"
	ColorOrange PlayerColor = "orange"
)

// SeatColors lists colors in the order they are handed out to joining players.
var SeatColors = []PlayerColor{ColorRed, ColorBlue, ColorGreen, ColorYellow, ColorPurple, ColorOrange}

// WorkerType is the kind of worker a player can hire from the labor market.
type WorkerType string

const (
	WorkerNone    WorkerType = ""
	WorkerCowboy  WorkerType = "cowboy"
	WorkerBuilder WorkerType = "builder"
	WorkerDriver  WorkerType = "driver"
)

// WorkerTypes is the fixed set of hireable worker types.
var WorkerTypes = []WorkerType{WorkerCowboy, WorkerBuilder, WorkerDriver}

// LocationKind tags a board node.
type LocationKind string

const (
	LocationStart    LocationKind = "start"
	LocationTerminus LocationKind = "terminus"
	LocationBranch   LocationKind = "branch"
	LocationNormal   LocationKind = "normal" // the generic buildable kind
)

// BuildingKind names a building that can stand on a board node.
type BuildingKind string

const (
	BuildingNone      BuildingKind = ""
	BuildingStation   BuildingKind = "station"
	BuildingRanch     BuildingKind = "ranch"
	BuildingHazard    BuildingKind = "hazard"
	BuildingTelegraph BuildingKind = "telegraph"
	BuildingChurch    BuildingKind = "church"
	BuildingBank      BuildingKind = "bank"
	BuildingHotel     BuildingKind = "hotel"
)

// AbilityKind identifies one of the auxiliary one-shot abilities a player owns.
type AbilityKind string

const (
	AbilityGold1         AbilityKind = "gold_1"
	AbilityGold2         AbilityKind = "gold_2"
	AbilityDraw1         AbilityKind = "draw_1"
	AbilityDraw2         AbilityKind = "draw_2"
	AbilityReverse1      AbilityKind = "reverse_1"
	AbilityReverse2      AbilityKind = "reverse_2"
	AbilityForward1      AbilityKind = "forward_1"
	AbilityForward2      AbilityKind = "forward_2"
	AbilityDrop1         AbilityKind = "drop_1"
	AbilityDrop2         AbilityKind = "drop_2"
	AbilitySpeed1        AbilityKind = "speed_1"
	AbilitySpeed2        AbilityKind = "speed_2"
	AbilityCardCapacity1 AbilityKind = "card_capacity_1"
	AbilityCardCapacity2 AbilityKind = "card_capacity_2"
	AbilityHonorLimit1   AbilityKind = "honor_limit_1"
	AbilityHonorLimit2   AbilityKind = "honor_limit_2"
)
