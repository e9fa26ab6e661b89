// internal/game/state.go
package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/cattledrive/internal/board"
	"github.com/jason-s-yu/cattledrive/internal/config"
	"github.com/jason-s-yu/cattledrive/internal/deck"
	"github.com/jason-s-yu/cattledrive/internal/market"
	"github.com/jason-s-yu/cattledrive/internal/models"
	"github.com/jason-s-yu/cattledrive/internal/player"
	"github.com/sirupsen/logrus"
)

var (
	// ErrSessionFull is returned when seating a player beyond MaxPlayers.
	ErrSessionFull = errors.New("session is full")
	// ErrNotInSetup is returned when seating a player after the game started.
	ErrNotInSetup = errors.New("players can only join during setup")
)

// State is the authoritative state of one game session. It is not safe for
// concurrent use; see Store for serialising access.
type State struct {
	SessionID          uuid.UUID
	RulesVersion       string
	Phase              models.Phase
	Round              int
	CurrentPlayerIndex int
	Players            []*player.State
	Board              *board.Graph
	Decks              *deck.Manager
	Labor              *market.LaborMarket
	Future             *market.FutureArea
	CattleMarket       []models.Card
	MaxPlayers         int
	Version            int
	LastUpdated        time.Time
	History            []HistoryEntry

	rules    config.Rules
	rng      *rand.Rand
	clock    func() time.Time
	recorder Recorder
	log      *logrus.Entry
	handlers map[models.ActionKind]handler
}

// Option customises a State at construction.
type Option func(*State)

// WithRand injects the random source used for shuffling and worker fallbacks.
func WithRand(rng *rand.Rand) Option { return func(s *State) { s.rng = rng } }

// WithClock injects the time source used for history timestamps.
func WithClock(clock func() time.Time) Option { return func(s *State) { s.clock = clock } }

// WithRecorder publishes every accepted change to r.
func WithRecorder(r Recorder) Option { return func(s *State) { s.recorder = r } }

// WithSessionID fixes the session id instead of generating one.
func WithSessionID(id uuid.UUID) Option { return func(s *State) { s.SessionID = id } }

// WithLogger sets the base logger.
func WithLogger(l *logrus.Entry) Option { return func(s *State) { s.log = l } }

func newState(rules config.Rules, opts ...Option) *State {
	s := &State{
		SessionID:    uuid.New(),
		RulesVersion: rules.Version,
		Phase:        models.PhaseSetup,
		Round:        1,
		MaxPlayers:   rules.MaxPlayers,
		Version:      1,
		Players:      []*player.State{},
		CattleMarket: []models.Card{},
		History:      []HistoryEntry{},
		rules:        rules,
		clock:        time.Now,
		log:          logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = deck.NewRand()
	}
	s.log = s.log.WithFields(logrus.Fields{"component": "game", "game_id": s.SessionID})
	s.handlers = actionHandlers()
	return s
}

// New builds a complete session from rules: decks, board, labor market, future area
// and cattle market are all initialised here or construction fails as a whole.
func New(rules config.Rules, opts ...Option) (*State, error) {
	rules.ApplyDefaults()
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	s := newState(rules, opts...)

	decks, err := deck.NewManager(rules.Decks, s.rng)
	if err != nil {
		return nil, fmt.Errorf("build decks: %w", err)
	}
	s.Decks = decks

	g, err := board.Build(rules.Layout, rules.Buildings, decks)
	if err != nil {
		return nil, fmt.Errorf("build board: %w", err)
	}
	s.Board = g

	s.Labor = market.NewLaborMarket(rules.Labor, s.rng)
	s.Labor.InitializeFromDeck(decks)

	s.Future = market.NewFutureArea(rules.FutureColumns)
	s.Future.Initialize(decks)

	s.CattleMarket = decks.Draw(models.CategoryCattle, rules.CattleMarketSize)
	s.LastUpdated = s.clock()

	s.log.WithFields(logrus.Fields{
		"nodes":   g.Len(),
		"workers": s.Labor.Occupied(),
		"cattle":  len(s.CattleMarket),
	}).Info("session created")
	return s, nil
}

// Rules returns the rules the session was built with.
func (s *State) Rules() config.Rules { return s.rules }

// Started reports whether the game has left setup.
func (s *State) Started() bool { return s.Phase != models.PhaseSetup }

// Finished reports whether the game is over.
func (s *State) Finished() bool { return s.Phase == models.PhaseEndGame }

// CurrentPlayer returns the player whose turn it is, or nil before anyone is seated.
func (s *State) CurrentPlayer() *player.State {
	if s.CurrentPlayerIndex < 0 || s.CurrentPlayerIndex >= len(s.Players) {
		return nil
	}
	return s.Players[s.CurrentPlayerIndex]
}

// Player returns the seated player with the given id.
func (s *State) Player(id uuid.UUID) *player.State {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// AddPlayer seats a new player at the start node with the configured starting
// resources and the first free seat color.
func (s *State) AddPlayer(userID, name string) (*player.State, error) {
	if s.Phase != models.PhaseSetup {
		return nil, ErrNotInSetup
	}
	if len(s.Players) >= s.MaxPlayers {
		return nil, ErrSessionFull
	}
	color, ok := s.freeColor()
	if !ok {
		return nil, ErrSessionFull
	}
	p := player.New(userID, name, color, s.rules.Layout.Start, s.rules.StartingResources)
	s.Players = append(s.Players, p)
	s.commit(p.ID, "player_join", map[string]interface{}{
		"player_id":    p.ID.String(),
		"user_id":      userID,
		"player_color": string(color),
	})
	return p, nil
}

func (s *State) freeColor() (models.PlayerColor, bool) {
	taken := make(map[models.PlayerColor]bool, len(s.Players))
	for _, p := range s.Players {
		taken[p.Color] = true
	}
	for _, c := range models.SeatColors {
		if !taken[c] {
			return c, true
		}
	}
	return "", false
}
