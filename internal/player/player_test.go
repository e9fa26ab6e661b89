// internal/player/player_test.go
package player

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/jason-s-yu/cattledrive/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func card(cat models.Category, name string) models.Card {
	return models.Card{ID: uuid.New(), Category: cat, Name: name}
}

func TestNewPlayerDefaults(t *testing.T) {
	p := New("u1", "Ada", models.ColorRed, 0, ResourceSet{Money: 10, Cowboys: 3})
	assert.Equal(t, 10, p.Resources.Money)
	assert.Equal(t, 3, p.Resources.Workers(models.WorkerCowboy))
	assert.Len(t, p.Abilities, 16)
	assert.Equal(t, AbilityKinds()[0], p.Abilities[0].Kind)

	for _, a := range p.Abilities {
		starter := a.Kind == models.AbilityGold1 || a.Kind == models.AbilityDraw1
		assert.Equal(t, starter, p.CanUse(a.Kind), "ability %s", a.Kind)
	}
}

func TestAbilityUseAndReset(t *testing.T) {
	p := New("u1", "Ada", models.ColorRed, 0, ResourceSet{})

	require.True(t, p.UseAbility(models.AbilityGold1))
	assert.False(t, p.UseAbility(models.AbilityGold1), "spent until reset")
	assert.False(t, p.UseAbility(models.AbilityGold2), "locked")

	p.ResetAbilities()
	assert.True(t, p.CanUse(models.AbilityGold1))
	assert.False(t, p.CanUse(models.AbilityGold2), "reset never unlocks")
	assert.Equal(t, 1, p.Ability(models.AbilityGold1).UsedCount)

	require.True(t, p.UnlockAbility(models.AbilityGold2))
	assert.True(t, p.CanUse(models.AbilityGold2))
}

func TestAbilityMaxUses(t *testing.T) {
	p := New("u1", "Ada", models.ColorRed, 0, ResourceSet{})
	p.Ability(models.AbilityDraw1).MaxUses = 1

	require.True(t, p.UseAbility(models.AbilityDraw1))
	p.ResetAbilities()
	assert.False(t, p.CanUse(models.AbilityDraw1))
}

func TestCardManagerReshufflesPersonalDiscard(t *testing.T) {
	cm := NewCardManager()
	a, b := card(models.CategoryCattle, "a"), card(models.CategoryCattle, "b")
	cm.AddToDrawPile(a)
	cm.DiscardPile = append(cm.DiscardPile, b)

	drawn := cm.Draw(2, rand.New(rand.NewSource(1)))
	require.Len(t, drawn, 2)
	assert.Equal(t, a.ID, drawn[0].ID)
	assert.Equal(t, b.ID, drawn[1].ID)
	assert.Empty(t, cm.DiscardPile)

	assert.Empty(t, cm.Draw(1, nil))
}

func TestCardManagerHandOps(t *testing.T) {
	cm := NewCardManager()
	cattle := card(models.CategoryCattle, "longhorn")
	mission := card(models.CategoryMission, "reach kansas")
	cm.AddToHand(cattle)
	cm.AddToHand(mission)

	assert.False(t, cm.PlayObjective(cattle.ID), "only missions are objectives")
	assert.True(t, cm.PlayObjective(mission.ID))
	assert.Len(t, cm.PlayedObjectives, 1)

	assert.True(t, cm.Discard(cattle.ID))
	assert.False(t, cm.Discard(cattle.ID))
	assert.Empty(t, cm.Hand)
	assert.Len(t, cm.DiscardPile, 1)

	flag := card(models.CategoryStationFlag, "flag")
	cm.Acquire(flag)
	assert.Len(t, cm.AcquiredByCategory(models.CategoryStationFlag), 1)
	assert.Empty(t, cm.AcquiredByCategory(models.CategoryMission))
	assert.Equal(t, 1, cm.Counts()["acquired_cards"])
	assert.Len(t, cm.All(), 3)
}

func TestCloneIsDeep(t *testing.T) {
	p := New("u1", "Ada", models.ColorRed, 0, ResourceSet{})
	p.MoveTo(3)
	p.Cards.AddToHand(card(models.CategoryCattle, "x"))

	c := p.Clone()
	c.Cards.Hand[0].Name = "y"
	*c.PreviousPosition = 9
	c.Abilities[0].Usable = false

	assert.Equal(t, "x", p.Cards.Hand[0].Name)
	assert.Equal(t, 0, *p.PreviousPosition)
	assert.True(t, p.Abilities[0].Usable)
}
