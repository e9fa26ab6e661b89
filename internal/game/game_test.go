// internal/game/game_test.go
package game

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/cattledrive/internal/config"
	"github.com/jason-s-yu/cattledrive/internal/deck"
	"github.com/jason-s-yu/cattledrive/internal/models"
	"github.com/jason-s-yu/cattledrive/internal/player"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testTime }

// mockRecorder collects records instead of pushing them to Redis.
type mockRecorder struct {
	mu      sync.Mutex
	records []models.ActionRecord
}

func (m *mockRecorder) Record(_ context.Context, rec models.ActionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return nil
}

func (m *mockRecorder) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

func newTestState(t *testing.T, opts ...Option) *State {
	t.Helper()
	opts = append([]Option{WithRand(rand.New(rand.NewSource(42))), WithClock(fixedClock)}, opts...)
	s, err := New(config.MustDefaultRules(), opts...)
	require.NoError(t, err)
	return s
}

// setupTestGame seats numPlayers players and starts the game.
func setupTestGame(t *testing.T, numPlayers int) (*State, []*player.State) {
	t.Helper()
	s := newTestState(t)
	players := make([]*player.State, numPlayers)
	for i := range players {
		p, err := s.AddPlayer(uuid.NewString(), "player")
		require.NoError(t, err)
		players[i] = p
	}
	require.NoError(t, s.Start())
	return s, players
}

func act(kind models.ActionKind, p *player.State, kv ...interface{}) models.ActionRequest {
	f := map[string]interface{}{"player_id": p.ID.String()}
	for i := 0; i+1 < len(kv); i += 2 {
		f[kv[i].(string)] = kv[i+1]
	}
	return models.ActionRequest{Kind: kind, Fields: f}
}

// requireRejected checks the action failed without touching version or history.
func requireRejected(t *testing.T, s *State, req models.ActionRequest) models.ActionResult {
	t.Helper()
	version, history := s.Version, len(s.History)
	res := s.Apply(req)
	require.False(t, res.Success, "expected rejection, got %q", res.Message)
	assert.Equal(t, version, s.Version)
	assert.Len(t, s.History, history)
	return res
}

func requireAccepted(t *testing.T, s *State, req models.ActionRequest) models.ActionResult {
	t.Helper()
	version := s.Version
	res := s.Apply(req)
	require.True(t, res.Success, "expected success, got %q", res.Message)
	assert.Equal(t, version+1, s.Version)
	last := s.History[len(s.History)-1]
	assert.Equal(t, string(req.Kind), last.ActionType)
	assert.Equal(t, s.Version, last.Version)
	return res
}

func TestNewBuildsCompleteSession(t *testing.T) {
	s := newTestState(t)

	assert.Equal(t, models.PhaseSetup, s.Phase)
	assert.Equal(t, 1, s.Version)
	assert.Equal(t, 37, s.Board.Len())
	assert.Equal(t, 7, s.Labor.Occupied())
	assert.Equal(t, 7, s.Labor.Cursor)
	assert.True(t, s.Future.Full())
	assert.Len(t, s.CattleMarket, 6)
	assert.Equal(t, 0, s.Decks.Status()[models.CategoryPublicBuilding].Remaining)
}

func TestNewRejectsMismatchedDeck(t *testing.T) {
	rules := config.MustDefaultRules()
	rules.Decks[0].TotalCount++
	_, err := New(rules)
	assert.ErrorIs(t, err, deck.ErrConfigMismatch)
}

func TestAddPlayer(t *testing.T) {
	s := newTestState(t)
	seen := map[models.PlayerColor]bool{}
	for i := 0; i < s.MaxPlayers; i++ {
		p, err := s.AddPlayer("u", "p")
		require.NoError(t, err)
		assert.False(t, seen[p.Color], "color %s handed out twice", p.Color)
		seen[p.Color] = true
		assert.Equal(t, 10, p.Resources.Money)
		assert.Equal(t, 0, p.Position)
	}
	_, err := s.AddPlayer("u", "late")
	assert.ErrorIs(t, err, ErrSessionFull)

	require.NoError(t, s.Start())
	_, err = s.AddPlayer("u", "later")
	assert.ErrorIs(t, err, ErrNotInSetup)
}

func TestStartDealsHands(t *testing.T) {
	s, players := setupTestGame(t, 2)
	assert.Equal(t, models.PhasePlayerTurn, s.Phase)
	for _, p := range players {
		assert.Len(t, p.Cards.Hand, player.DefaultHandLimit)
		assert.Len(t, p.Cards.DrawPile, 3)
	}
}

func TestStartWithoutPlayers(t *testing.T) {
	s := newTestState(t)
	assert.ErrorIs(t, s.Start(), ErrInvalidTransition)
	assert.Equal(t, 1, s.Version)
}

func TestFlowTransitions(t *testing.T) {
	s, _ := setupTestGame(t, 2)

	v := s.Version
	assert.ErrorIs(t, s.Start(), ErrInvalidTransition)
	assert.ErrorIs(t, s.Finish(), ErrInvalidTransition)
	assert.Equal(t, v, s.Version)

	require.NoError(t, s.NextPhase())
	assert.Equal(t, models.PhaseCattleSale, s.Phase)
	assert.ErrorIs(t, s.EndTurn(), ErrInvalidTransition)

	require.NoError(t, s.NextPhase())
	assert.Equal(t, models.PhaseEndGame, s.Phase)
	assert.Equal(t, v+2, s.Version)
	assert.ErrorIs(t, s.NextPhase(), ErrInvalidTransition)
}

func TestEndTurnAdvancesAndRefills(t *testing.T) {
	s, players := setupTestGame(t, 2)
	cursor := s.Labor.Cursor

	require.True(t, s.Apply(act(models.ActionUseAbility, players[0], "ability", "gold_1")).Success)
	require.NoError(t, s.EndTurn())
	assert.Equal(t, players[1].ID, s.CurrentPlayer().ID)
	assert.Equal(t, 1, s.Round)
	assert.Equal(t, cursor, s.Labor.Cursor)

	require.NoError(t, s.EndTurn())
	assert.Equal(t, players[0].ID, s.CurrentPlayer().ID)
	assert.Equal(t, 2, s.Round)
	assert.Equal(t, cursor+1, s.Labor.Cursor)
	assert.True(t, players[0].CanUse(models.AbilityGold1), "abilities refresh at turn start")
}

func TestActionsDoNotAdvanceTurn(t *testing.T) {
	s, players := setupTestGame(t, 2)
	requireAccepted(t, s, act(models.ActionMove, players[0], "target_location", 1))
	assert.Equal(t, players[0].ID, s.CurrentPlayer().ID)
	assert.Equal(t, models.PhasePlayerTurn, s.Phase)
}

func TestMoveByNonCurrentPlayerRejected(t *testing.T) {
	s, players := setupTestGame(t, 2)
	res := requireRejected(t, s, act(models.ActionMove, players[1], "target_location", 2))
	assert.Equal(t, models.CodeValidationFailure, res.Code)
	assert.Contains(t, res.Message, "turn")
	assert.Equal(t, 0, players[1].Position)
}

func TestActionsRejectedOutsidePlay(t *testing.T) {
	s := newTestState(t)
	p, err := s.AddPlayer("u", "p")
	require.NoError(t, err)
	res := requireRejected(t, s, act(models.ActionMove, p, "target_location", 1))
	assert.Contains(t, res.Message, "not started")
}

func TestUnknownActionKind(t *testing.T) {
	s, players := setupTestGame(t, 1)
	res := requireRejected(t, s, act("teleport", players[0]))
	assert.Equal(t, models.CodeNotImplemented, res.Code)
}

func TestMissingOrMalformedFields(t *testing.T) {
	s, players := setupTestGame(t, 1)
	p := players[0]
	requireRejected(t, s, act(models.ActionMove, p))
	requireRejected(t, s, act(models.ActionMove, p, "target_location", "north"))
	requireRejected(t, s, act(models.ActionMove, p, "target_location", 1.5))
	requireRejected(t, s, models.ActionRequest{Kind: models.ActionMove, Fields: map[string]interface{}{"target_location": 1}})
	requireRejected(t, s, act(models.ActionBuild, p, "location_id", 2))
}

func TestMoveDistance(t *testing.T) {
	s, players := setupTestGame(t, 1)
	p := players[0]

	res := requireAccepted(t, s, act(models.ActionMove, p, "target_location", float64(2)))
	assert.Equal(t, 2, p.Position)
	require.NotNil(t, p.PreviousPosition)
	assert.Equal(t, 0, *p.PreviousPosition)
	assert.Equal(t, 2, res.Data["steps_used"])

	// explicit steps too small for the distance
	requireRejected(t, s, act(models.ActionMove, p, "target_location", 5, "steps", 1))
	// moving backwards implies a negative step count
	requireRejected(t, s, act(models.ActionMove, p, "target_location", 1))
	// missing node
	requireRejected(t, s, act(models.ActionMove, p, "target_location", 500))

	// detour node reached through the branch at 5
	requireAccepted(t, s, act(models.ActionMove, p, "target_location", 30, "steps", 4))
	assert.Equal(t, 30, p.Position)
}

func TestFixedOneStepMove(t *testing.T) {
	s, players := setupTestGame(t, 1)
	p := players[0]

	requireRejected(t, s, act(models.ActionMove, p, "target_location", 1, "fixed_one_step", true))

	require.True(t, s.Board.PlaceBuilding(2, models.BuildingStation, p.ID))
	p.Position = 2
	requireRejected(t, s, act(models.ActionMove, p, "target_location", 4, "fixed_one_step", true))
	res := requireAccepted(t, s, act(models.ActionMove, p, "target_location", 3, "fixed_one_step", true))
	assert.Equal(t, true, res.Data["is_fixed_one_step"])
	assert.Equal(t, 3, p.Position)
}

func TestBuild(t *testing.T) {
	s, players := setupTestGame(t, 1)
	p := players[0]

	res := requireAccepted(t, s, act(models.ActionBuild, p, "location_id", 2, "building_type", "station"))
	assert.Equal(t, 7, p.Resources.Money)
	assert.Equal(t, 1, p.Stats.VictoryPoints)
	assert.Equal(t, 1, p.Stats.StationsBuilt)
	assert.Len(t, p.Cards.AcquiredByCategory(models.CategoryStationFlag), 1)
	assert.NotEmpty(t, res.Data["station_flag"])

	node, _ := s.Board.Node(2)
	assert.Equal(t, p.ID, node.OwnerID)
	assert.Equal(t, models.BuildingStation, node.Building)

	// upgrading a building the player owns
	requireAccepted(t, s, act(models.ActionBuild, p, "location_id", 2, "building_type", "ranch"))
	assert.Equal(t, 2, p.Resources.Cowboys)
	assert.Equal(t, 2, p.Stats.BuildingsBuilt)

	// public building slot owned by nobody
	requireRejected(t, s, act(models.ActionBuild, p, "location_id", 1, "building_type", "ranch"))
	// start node is not buildable
	requireRejected(t, s, act(models.ActionBuild, p, "location_id", 0, "building_type", "ranch"))
}

func TestBuildRequiresResources(t *testing.T) {
	s, players := setupTestGame(t, 1)
	p := players[0]

	p.Resources.Builders = 1
	res := requireRejected(t, s, act(models.ActionBuild, p, "location_id", 2, "building_type", "bank"))
	assert.Contains(t, res.Message, "builders")

	p.Resources.Money = 1
	res = requireRejected(t, s, act(models.ActionBuild, p, "location_id", 2, "building_type", "station"))
	assert.Contains(t, res.Message, "money")
	assert.True(t, s.Board.IsBuildable(2))
}

func TestBuildUnknownKindUsesDefaultCost(t *testing.T) {
	s, players := setupTestGame(t, 1)
	p := players[0]
	requireAccepted(t, s, act(models.ActionBuild, p, "location_id", 4, "building_type", "saloon"))
	assert.Equal(t, 10-2, p.Resources.Money)
}

func TestBuildUnlocksAbility(t *testing.T) {
	s, players := setupTestGame(t, 1)
	p := players[0]
	require.False(t, p.CanUse(models.AbilityGold2))

	res := requireAccepted(t, s, act(models.ActionBuild, p, "location_id", 2, "building_type", "church"))
	assert.Equal(t, "gold_2", res.Data["unlocked_ability"])
	assert.True(t, p.CanUse(models.AbilityGold2))
	assert.Equal(t, 2, p.Stats.VictoryPoints)
}

func TestHireWorker(t *testing.T) {
	s, players := setupTestGame(t, 1)
	p := players[0]
	cursor := s.Labor.Cursor
	w := s.Labor.Worker(0, 0)
	before := p.Resources.Workers(w)

	requireAccepted(t, s, act(models.ActionHireWorker, p, "row", 0, "col", 0))
	assert.Equal(t, before+1, p.Resources.Workers(w))
	assert.Equal(t, 9, p.Resources.Money)
	assert.Equal(t, 1, p.Stats.WorkersHired)
	assert.Equal(t, models.WorkerNone, s.Labor.Worker(0, 0))
	assert.Equal(t, cursor, s.Labor.Cursor)

	requireRejected(t, s, act(models.ActionHireWorker, p, "row", 0, "col", 0))
	requireRejected(t, s, act(models.ActionHireWorker, p, "row", 11, "col", 3))

	p.Resources.Money = 0
	requireRejected(t, s, act(models.ActionHireWorker, p, "row", 0, "col", 1))
}

func TestBuyAndSellCattle(t *testing.T) {
	s, players := setupTestGame(t, 1)
	p := players[0]
	c := s.CattleMarket[0]
	hand := len(p.Cards.Hand)

	requireAccepted(t, s, act(models.ActionBuyCattle, p, "card_id", c.ID.String()))
	assert.Equal(t, 10-c.Cost, p.Resources.Money)
	assert.Len(t, p.Cards.Hand, hand+1)
	assert.Len(t, s.CattleMarket, 6, "market slot is replenished")
	assert.Equal(t, -1, models.CardIndex(s.CattleMarket, c.ID))

	requireRejected(t, s, act(models.ActionBuyCattle, p, "card_id", c.ID.String()))
	requireRejected(t, s, act(models.ActionBuyCattle, p, "card_id", "not-a-uuid"))

	money, discarded := p.Resources.Money, s.Decks.Status()[models.CategoryCattle].Discarded
	res := requireAccepted(t, s, act(models.ActionSellCattle, p, "card_id", c.ID))
	value := res.Data["value"].(int)
	assert.GreaterOrEqual(t, value, c.BaseValue)
	assert.Equal(t, money+value, p.Resources.Money)
	assert.Equal(t, value, p.Stats.VictoryPoints)
	assert.Equal(t, 1, p.Stats.CattleSold)
	assert.Equal(t, discarded+1, s.Decks.Status()[models.CategoryCattle].Discarded)

	requireRejected(t, s, act(models.ActionSellCattle, p, "card_id", c.ID.String()))
}

func TestBuyCattleInsufficientMoney(t *testing.T) {
	s, players := setupTestGame(t, 1)
	p := players[0]
	p.Resources.Money = 0
	c := s.CattleMarket[0]
	if c.Cost == 0 {
		t.Skip("free card drawn")
	}
	requireRejected(t, s, act(models.ActionBuyCattle, p, "card_id", c.ID.String()))
	assert.Len(t, s.CattleMarket, 6)
}

func TestSellDoubleValue(t *testing.T) {
	s, players := setupTestGame(t, 1)
	p := players[0]
	rare := models.Card{ID: uuid.New(), Category: models.CategoryCattle, BaseValue: 8, SpecialAbility: DoubleValueAbility}
	p.Cards.AddToHand(rare)

	res := requireAccepted(t, s, act(models.ActionSellCattle, p, "card_id", rare.ID.String()))
	assert.Equal(t, 16, res.Data["value"])
}

func TestCattleSaleAllowsOutOfTurnSales(t *testing.T) {
	s, players := setupTestGame(t, 2)
	require.NoError(t, s.BeginCattleSale())

	second := players[1]
	requireAccepted(t, s, act(models.ActionSellCattle, second, "card_id", second.Cards.Hand[0].ID.String()))
	requireRejected(t, s, act(models.ActionMove, players[0], "target_location", 1))
}

func TestUseAuxiliaryAbility(t *testing.T) {
	s, players := setupTestGame(t, 1)
	p := players[0]

	requireAccepted(t, s, act(models.ActionUseAbility, p, "ability", "gold_1"))
	assert.Equal(t, 11, p.Resources.Money)
	requireRejected(t, s, act(models.ActionUseAbility, p, "ability", "gold_1"))
	requireRejected(t, s, act(models.ActionUseAbility, p, "ability", "gold_2"))
	requireRejected(t, s, act(models.ActionUseAbility, p, "ability", "fly"))
	requireRejected(t, s, act(models.ActionUseAbility, p))

	hand, pile := len(p.Cards.Hand), len(p.Cards.DrawPile)
	requireAccepted(t, s, act(models.ActionUseAbility, p, "ability", "draw_1"))
	assert.Len(t, p.Cards.Hand, hand+1)
	assert.Len(t, p.Cards.DrawPile, pile-1)
}

func TestMovementAbilities(t *testing.T) {
	s, players := setupTestGame(t, 1)
	p := players[0]
	p.UnlockAbility(models.AbilityForward2)
	p.UnlockAbility(models.AbilityReverse1)

	requireRejected(t, s, act(models.ActionUseAbility, p, "ability", "forward_2", "target_location", 3))
	requireAccepted(t, s, act(models.ActionUseAbility, p, "ability", "forward_2", "target_location", 2))
	assert.Equal(t, 2, p.Position)

	requireRejected(t, s, act(models.ActionUseAbility, p, "ability", "reverse_1", "target_location", 0))
	requireAccepted(t, s, act(models.ActionUseAbility, p, "ability", "reverse_1", "target_location", 1))
	assert.Equal(t, 1, p.Position)
}

func TestDropAbility(t *testing.T) {
	s, players := setupTestGame(t, 1)
	p := players[0]
	p.UnlockAbility(models.AbilityDrop2)
	a, b, c := p.Cards.Hand[0].ID.String(), p.Cards.Hand[1].ID.String(), p.Cards.Hand[2].ID.String()

	requireRejected(t, s, act(models.ActionUseAbility, p, "ability", "drop_2", "card_ids", []interface{}{a, b, c}))
	requireRejected(t, s, act(models.ActionUseAbility, p, "ability", "drop_2", "card_ids", []interface{}{a, a}))
	requireAccepted(t, s, act(models.ActionUseAbility, p, "ability", "drop_2", "card_ids", []interface{}{a, b}))
	assert.Len(t, p.Cards.DiscardPile, 2)
	assert.Len(t, p.Cards.Hand, 2)
}

func TestUpgradeAbilitiesAreOneShot(t *testing.T) {
	s, players := setupTestGame(t, 1)
	p := players[0]
	p.UnlockAbility(models.AbilitySpeed2)

	requireAccepted(t, s, act(models.ActionUseAbility, p, "ability", "speed_2"))
	assert.Equal(t, player.DefaultMoveSpeed+2, p.Stats.MoveSpeed)
	p.ResetAbilities()
	requireRejected(t, s, act(models.ActionUseAbility, p, "ability", "speed_2"))
}

func TestUseCardAbility(t *testing.T) {
	s, players := setupTestGame(t, 1)
	p := players[0]

	build := models.Card{ID: uuid.New(), Category: models.CategoryActionC, SpecialAbility: CardAbilityExtraBuild}
	draw := models.Card{ID: uuid.New(), Category: models.CategoryActionC, SpecialAbility: CardAbilityDrawCard}
	plain := p.Cards.Hand[0]
	p.Cards.AddToHand(build)
	p.Cards.AddToHand(draw)

	requireRejected(t, s, act(models.ActionUseAbility, p, "card_id", plain.ID.String()))

	requireAccepted(t, s, act(models.ActionUseAbility, p, "card_id", build.ID.String()))
	assert.Equal(t, 12, p.Resources.Money)
	_, inHand := p.Cards.FindInHand(build.ID)
	assert.False(t, inHand, "played card leaves the hand")
	assert.Equal(t, build.ID, p.Cards.DiscardPile[0].ID)

	top := s.CattleMarket[len(s.CattleMarket)-1]
	res := requireAccepted(t, s, act(models.ActionUseAbility, p, "card_id", draw.ID.String()))
	assert.Equal(t, top.ID.String(), res.Data["drawn_card_id"])
	_, inHand = p.Cards.FindInHand(top.ID)
	assert.True(t, inHand)
}

func TestTakeFutureCard(t *testing.T) {
	s, players := setupTestGame(t, 1)
	p := players[0]
	c := *s.Future.Card(0, 1)

	requireAccepted(t, s, act(models.ActionTakeFutureCard, p, "row", 0, "col", 1))
	assert.Len(t, p.Cards.Acquired, 1)
	assert.Equal(t, c.ID, p.Cards.Acquired[0].ID)
	assert.True(t, s.Future.Full())
	assert.NotEqual(t, c.ID, s.Future.Card(0, 1).ID)

	requireRejected(t, s, act(models.ActionTakeFutureCard, p, "row", 2, "col", 0))
}

func TestVersionMonotonicity(t *testing.T) {
	s, players := setupTestGame(t, 2)
	reqs := []models.ActionRequest{
		act(models.ActionMove, players[0], "target_location", 2),
		act(models.ActionMove, players[1], "target_location", 2),
		act(models.ActionHireWorker, players[0], "row", 0, "col", 1),
		act(models.ActionHireWorker, players[0], "row", 0, "col", 1),
		act(models.ActionUseAbility, players[0], "ability", "gold_1"),
		act(models.ActionUseAbility, players[0], "ability", "gold_1"),
		act("unknown", players[0]),
	}
	for _, req := range reqs {
		before := s.Version
		res := s.Apply(req)
		if res.Success {
			assert.Equal(t, before+1, s.Version)
		} else {
			assert.Equal(t, before, s.Version)
		}
	}
}

// heldCards counts cards of each category that live outside the deck manager.
func heldCards(s *State) map[models.Category]int {
	out := map[models.Category]int{}
	add := func(cards ...models.Card) {
		for _, c := range cards {
			out[c.Category]++
		}
	}
	for _, p := range s.Players {
		add(p.Cards.All()...)
	}
	for _, n := range s.Board.Nodes() {
		if n.Card != nil {
			add(*n.Card)
		}
	}
	add(s.Future.Cards()...)
	add(s.CattleMarket...)
	return out
}

func TestCardConservation(t *testing.T) {
	s, players := setupTestGame(t, 2)
	p := players[0]
	s.Apply(act(models.ActionBuyCattle, p, "card_id", s.CattleMarket[0].ID.String()))
	s.Apply(act(models.ActionSellCattle, p, "card_id", p.Cards.Hand[0].ID.String()))
	s.Apply(act(models.ActionTakeFutureCard, p, "row", 1, "col", 2))
	s.Apply(act(models.ActionBuild, p, "location_id", 2, "building_type", "station"))
	require.NoError(t, s.EndTurn())
	require.NoError(t, s.EndTurn())

	held := heldCards(s)
	for _, cfg := range s.Rules().Decks {
		st := s.Decks.Status()[cfg.Category]
		assert.Equal(t, cfg.TotalCount, st.Total+held[cfg.Category], "category %s", cfg.Category)
	}
}

func TestSerializationIdempotent(t *testing.T) {
	s, players := setupTestGame(t, 2)
	p := players[0]
	s.Apply(act(models.ActionMove, p, "target_location", 2))
	s.Apply(act(models.ActionBuild, p, "location_id", 2, "building_type", "station"))
	s.Apply(act(models.ActionTakeFutureCard, p, "row", 0, "col", 0))
	s.Apply(act(models.ActionHireWorker, p, "row", 0, "col", 2))

	first, err := s.MarshalJSON()
	require.NoError(t, err)

	restored, err := Unmarshal(first, WithRand(rand.New(rand.NewSource(1))))
	require.NoError(t, err)
	second, err := restored.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, string(first), string(second))
	assert.Equal(t, string(first), string(second))

	// the restored game keeps playing
	assert.Equal(t, s.Version, restored.Version)
	rp := restored.Player(p.ID)
	require.NotNil(t, rp)
	assert.Equal(t, 2, rp.Position)
	requireAccepted(t, restored, act(models.ActionMove, rp, "target_location", 3))
}

func TestUnmarshalRejectsGarbage(t *testing.T) {
	_, err := Unmarshal([]byte("{not json"))
	assert.Error(t, err)
}

func TestCloneIsIndependent(t *testing.T) {
	s, players := setupTestGame(t, 1)
	c, err := s.Clone()
	require.NoError(t, err)

	requireAccepted(t, c, act(models.ActionMove, c.Player(players[0].ID), "target_location", 1))
	assert.Equal(t, 0, players[0].Position)
	assert.Equal(t, s.Version+1, c.Version)
}

func TestRecorderReceivesAcceptedChanges(t *testing.T) {
	rec := &mockRecorder{}
	s := newTestState(t, WithRecorder(rec))
	p, err := s.AddPlayer("u", "p")
	require.NoError(t, err)
	require.NoError(t, s.Start())

	s.Apply(act(models.ActionMove, p, "target_location", 1))
	s.Apply(act(models.ActionMove, p, "target_location", 999))

	assert.Eventually(t, func() bool { return rec.count() == 3 }, time.Second, 10*time.Millisecond)
	rec.mu.Lock()
	defer rec.mu.Unlock()
	for _, r := range rec.records {
		assert.Equal(t, s.SessionID, r.SessionID)
		assert.Equal(t, testTime.UnixMilli(), r.Timestamp)
	}
}

func TestStoreSerializesAccess(t *testing.T) {
	store := NewStore()
	s := newTestState(t)
	sess := store.Add(s)
	assert.Equal(t, s.SessionID, sess.ID())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Do(s.SessionID, func(st *State) error {
				st.Round++
				return nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 51, s.Round)

	assert.ErrorIs(t, store.Do(uuid.New(), func(*State) error { return nil }), ErrSessionNotFound)
	store.Delete(s.SessionID)
	_, ok := store.Get(s.SessionID)
	assert.False(t, ok)
}
