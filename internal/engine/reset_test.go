package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/hunter-idle/internal/types"
)

func TestResetGame(t *testing.T) {
	proc, st, _ := newTestEngine(t)
	ctx := context.Background()
	createPlayer(t, proc, "user-1")
	seedPlayer(t, st, "user-1", func(state *types.PlayerState) {
		state.Resources[types.ResourceEssence] = 50
		state.Resources[types.ResourceKnowledge] = 10
		state.Hunter.Level = 12
		state.Hunter.StatPoints = 4
		state.Buildings["essence_well"].Count = 5
		state.Research["efficient_gathering"].Researched = true
		state.Companions = []types.Companion{
			{ID: "shadow-1", Name: "Igris", OriginID: "goblin_den", Rank: "E", Level: 3},
		}
		state.DungeonsUnlocked["ice_caverns"] = true
	})
	before := loadPlayer(t, st, "user-1")

	result := proc.ResetGame(ctx, "user-1", "tx-reset")
	require.True(t, result.Success)

	// Everything returns to first-run defaults
	assert.Equal(t, 0.0, result.State.Resources[types.ResourceEssence])
	assert.Equal(t, 100.0, result.State.ResourceCaps[types.ResourceEssence])
	assert.Equal(t, 1, result.State.Hunter.Level)
	assert.Equal(t, 0, result.State.Hunter.StatPoints)
	assert.Equal(t, 0, result.State.Buildings["essence_well"].Count)
	assert.False(t, result.State.Research["efficient_gathering"])
	assert.Empty(t, result.State.Companions)
	assert.False(t, result.State.DungeonsUnlocked["ice_caverns"])
	assert.True(t, result.State.DungeonsUnlocked["goblin_den"])

	// The row identity survives: version advances, creation time is kept
	after := loadPlayer(t, st, "user-1")
	assert.Equal(t, before.Version+1, after.Version)
	assert.Equal(t, before.CreatedAt, after.CreatedAt)
}

func TestResetGameKeepsLedger(t *testing.T) {
	proc, st, _ := newTestEngine(t)
	ctx := context.Background()
	createPlayer(t, proc, "user-1")
	seedPlayer(t, st, "user-1", func(state *types.PlayerState) {
		state.Resources[types.ResourceEssence] = 10
	})

	purchase := proc.PurchaseBuilding(ctx, "user-1", "tx-1", "essence_well")
	require.True(t, purchase.Success)
	require.True(t, proc.ResetGame(ctx, "user-1", "tx-2").Success)

	// Test case 1: a pre-reset id still replays its stored outcome
	replayed := proc.PurchaseBuilding(ctx, "user-1", "tx-1", "essence_well")
	require.True(t, replayed.Success)
	assert.True(t, replayed.Replayed)
	assert.Equal(t, 1, replayed.State.Buildings["essence_well"].Count)

	// Test case 2: the replay did not touch the post-reset row
	state := loadPlayer(t, st, "user-1")
	assert.Equal(t, 0, state.Buildings["essence_well"].Count)

	// Test case 3: the reset itself is idempotent
	again := proc.ResetGame(ctx, "user-1", "tx-2")
	require.True(t, again.Success)
	assert.True(t, again.Replayed)
}
