// internal/game/snapshot.go
package game

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/cattledrive/internal/board"
	"github.com/jason-s-yu/cattledrive/internal/config"
	"github.com/jason-s-yu/cattledrive/internal/deck"
	"github.com/jason-s-yu/cattledrive/internal/market"
	"github.com/jason-s-yu/cattledrive/internal/models"
	"github.com/jason-s-yu/cattledrive/internal/player"
)

// DeckSnapshot is the draw and discard piles of one category.
type DeckSnapshot struct {
	Cards     []models.Card `json:"cards"`
	Discarded []models.Card `json:"discarded"`
}

// LaborSnapshot is the labor market grid and cursor.
type LaborSnapshot struct {
	Cells  [][]models.WorkerType `json:"cells"`
	Cursor int                   `json:"cursor"`
}

// FutureSnapshot is the future-area grid, row by row. Empty cells are null.
type FutureSnapshot struct {
	Columns []models.Category `json:"columns"`
	Grid    [][]*models.Card  `json:"grid"`
}

// Snapshot is the canonical, self-contained form of a State. Every collection has a
// fixed order so that encoding the same state always yields the same bytes.
type Snapshot struct {
	SessionID          uuid.UUID                        `json:"session_id"`
	RulesVersion       string                           `json:"rules_version"`
	Phase              models.Phase                     `json:"current_phase"`
	Round              int                              `json:"round"`
	CurrentPlayerIndex int                              `json:"current_player_index"`
	MaxPlayers         int                              `json:"max_players"`
	Version            int                              `json:"version"`
	LastUpdated        time.Time                        `json:"last_updated"`
	Players            []player.State                   `json:"players"`
	Nodes              []board.Node                     `json:"board_nodes"`
	Decks              map[models.Category]DeckSnapshot `json:"decks"`
	Labor              LaborSnapshot                    `json:"labor_market"`
	Future             FutureSnapshot                   `json:"future_area"`
	CattleMarket       []models.Card                    `json:"cattle_market"`
	History            []HistoryEntry                   `json:"action_history"`
	Rules              config.Rules                     `json:"rules"`
}

// Snapshot captures the full state. The result shares nothing with s.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		SessionID:          s.SessionID,
		RulesVersion:       s.RulesVersion,
		Phase:              s.Phase,
		Round:              s.Round,
		CurrentPlayerIndex: s.CurrentPlayerIndex,
		MaxPlayers:         s.MaxPlayers,
		Version:            s.Version,
		LastUpdated:        s.LastUpdated,
		Players:            make([]player.State, len(s.Players)),
		Nodes:              s.Board.Snapshot(),
		Decks:              make(map[models.Category]DeckSnapshot),
		CattleMarket:       append([]models.Card{}, s.CattleMarket...),
		History:            append([]HistoryEntry{}, s.History...),
		Rules:              s.rules,
	}
	for i, p := range s.Players {
		snap.Players[i] = *p.Clone()
	}
	for _, cat := range s.Decks.Categories() {
		d := s.Decks.Deck(cat)
		snap.Decks[cat] = DeckSnapshot{Cards: d.Cards(), Discarded: d.Discarded()}
	}

	snap.Labor.Cursor = s.Labor.Cursor
	snap.Labor.Cells = make([][]models.WorkerType, len(s.Labor.Cells))
	for r, row := range s.Labor.Cells {
		snap.Labor.Cells[r] = append([]models.WorkerType{}, row...)
	}

	snap.Future.Columns = append([]models.Category{}, s.Future.Columns...)
	snap.Future.Grid = make([][]*models.Card, len(s.Future.Grid))
	for r, row := range s.Future.Grid {
		snap.Future.Grid[r] = make([]*models.Card, len(row))
		for c, card := range row {
			if card != nil {
				cp := *card
				snap.Future.Grid[r][c] = &cp
			}
		}
	}
	return snap
}

// FromSnapshot rebuilds a State. Options supply the runtime collaborators that are
// not part of the snapshot, such as the random source and recorder.
func FromSnapshot(snap Snapshot, opts ...Option) (*State, error) {
	rules := snap.Rules
	rules.ApplyDefaults()
	s := newState(rules, append([]Option{WithSessionID(snap.SessionID)}, opts...)...)

	s.RulesVersion = snap.RulesVersion
	s.Phase = snap.Phase
	s.Round = snap.Round
	s.CurrentPlayerIndex = snap.CurrentPlayerIndex
	s.MaxPlayers = snap.MaxPlayers
	s.Version = snap.Version
	s.LastUpdated = snap.LastUpdated
	s.CattleMarket = append([]models.Card{}, snap.CattleMarket...)
	s.History = append([]HistoryEntry{}, snap.History...)

	s.Players = make([]*player.State, len(snap.Players))
	for i := range snap.Players {
		s.Players[i] = snap.Players[i].Clone()
	}
	if len(snap.Players) > 0 && (s.CurrentPlayerIndex < 0 || s.CurrentPlayerIndex >= len(snap.Players)) {
		return nil, fmt.Errorf("snapshot: current player index %d out of range", s.CurrentPlayerIndex)
	}

	s.Board = board.Restore(snap.Nodes, rules.Buildings)

	decks := make([]*deck.Deck, 0, len(snap.Decks))
	for cat, d := range snap.Decks {
		decks = append(decks, deck.Restore(cat, d.Cards, d.Discarded, s.rng))
	}
	s.Decks = deck.RestoreManager(decks, s.rng)

	s.Labor = market.RestoreLaborMarket(rules.Labor, snap.Labor.Cells, snap.Labor.Cursor, s.rng)

	s.Future = market.NewFutureArea(snap.Future.Columns)
	for r := 0; r < len(s.Future.Grid) && r < len(snap.Future.Grid); r++ {
		for c := 0; c < len(s.Future.Grid[r]) && c < len(snap.Future.Grid[r]); c++ {
			if card := snap.Future.Grid[r][c]; card != nil {
				cp := *card
				s.Future.Grid[r][c] = &cp
			}
		}
	}
	return s, nil
}

// MarshalJSON encodes the canonical snapshot.
func (s *State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Snapshot())
}

// Unmarshal decodes a state previously encoded with MarshalJSON.
func Unmarshal(data []byte, opts ...Option) (*State, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return FromSnapshot(snap, opts...)
}

// Clone returns an independent deep copy sharing only the random source, clock,
// recorder and logger.
func (s *State) Clone() (*State, error) {
	return FromSnapshot(s.Snapshot(), WithRand(s.rng), WithClock(s.clock), WithRecorder(s.recorder), WithLogger(s.log))
}
