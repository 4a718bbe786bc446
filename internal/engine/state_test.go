package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/user/hunter-idle/internal/content"
	"github.com/user/hunter-idle/internal/types"
)

func TestGetStateCreatesPlayer(t *testing.T) {
	proc, st, _ := newTestEngine(t)

	snap := createPlayer(t, proc, "user-1")

	assert.Equal(t, 0.0, snap.Resources[types.ResourceEssence])
	assert.Equal(t, 100.0, snap.ResourceCaps[types.ResourceEssence])
	assert.Equal(t, 1, snap.Hunter.Level)
	assert.Equal(t, "E", snap.Hunter.Rank)
	assert.Equal(t, 0, snap.Buildings["essence_well"].Count)
	assert.False(t, snap.Research["efficient_gathering"])
	assert.True(t, snap.DungeonsUnlocked["goblin_den"])
	assert.False(t, snap.DungeonsUnlocked["ice_caverns"])
	assert.Empty(t, snap.ActiveRuns)
	assert.Empty(t, snap.Companions)

	state := loadPlayer(t, st, "user-1")
	assert.Equal(t, int64(1), state.Version)
	assert.Equal(t, baseTime, state.CreatedAt)
}

func TestGetStateIsIdempotentForNewPlayers(t *testing.T) {
	proc, st, _ := newTestEngine(t)

	createPlayer(t, proc, "user-1")
	createPlayer(t, proc, "user-1")

	state := loadPlayer(t, st, "user-1")
	assert.Equal(t, baseTime, state.CreatedAt)
}

func TestGetStateAccruesPassiveIncome(t *testing.T) {
	proc, st, clock := newTestEngine(t)
	ctx := context.Background()
	createPlayer(t, proc, "user-1")
	seedPlayer(t, st, "user-1", func(state *types.PlayerState) {
		state.Resources[types.ResourceEssence] = 10
	})
	require.True(t, proc.PurchaseBuilding(ctx, "user-1", "tx-1", "essence_well").Success)

	clock.Advance(60 * time.Second)
	snap, err := proc.GetState(ctx, "user-1")
	require.NoError(t, err)

	assert.InDelta(t, 30.0, snap.Resources[types.ResourceEssence], 1e-9)
	assert.Equal(t, baseTime.Add(60*time.Second), snap.LastUpdate)

	// The accrual is persisted: a second read does not double-count
	snap, err = proc.GetState(ctx, "user-1")
	require.NoError(t, err)
	assert.InDelta(t, 30.0, snap.Resources[types.ResourceEssence], 1e-9)
}

func TestGetStateClampsOfflineGains(t *testing.T) {
	proc, st, clock := newTestEngine(t)
	ctx := context.Background()
	createPlayer(t, proc, "user-1")
	seedPlayer(t, st, "user-1", func(state *types.PlayerState) {
		state.Resources[types.ResourceEssence] = 10
	})
	require.True(t, proc.PurchaseBuilding(ctx, "user-1", "tx-1", "essence_well").Success)

	// Ten minutes of production is 300 essence; one well caps essence at 200
	clock.Advance(10 * time.Minute)
	snap, err := proc.GetState(ctx, "user-1")
	require.NoError(t, err)
	assert.InDelta(t, 200.0, snap.Resources[types.ResourceEssence], 1e-9)
}

func TestGetStateMigratesAgainstNewCatalog(t *testing.T) {
	proc, st, clock := newTestEngine(t)
	ctx := context.Background()
	createPlayer(t, proc, "user-1")
	seedPlayer(t, st, "user-1", func(state *types.PlayerState) {
		state.ActiveRuns = append(state.ActiveRuns, types.DungeonRun{
			RunID:     "stale-run",
			DungeonID: "retired_dungeon",
			StartTime: baseTime,
			EndTime:   baseTime.Add(time.Minute),
		})
	})

	// A later deploy ships an extra building and drops a dungeon
	catalog := content.DefaultCatalog()
	catalog.Buildings["observatory"] = content.BuildingDef{
		ID:             "observatory",
		Name:           "Observatory",
		Produces:       types.ResourceKnowledge,
		RatePerSecond:  0.2,
		BaseCost:       types.ResourceMap{types.ResourceGold: 120},
		CostMultiplier: 1.2,
	}
	upgraded := NewProcessor(st, catalog, zap.NewNop())
	upgraded.SetClock(clock.Now)

	snap, err := upgraded.GetState(ctx, "user-1")
	require.NoError(t, err)

	// Test case 1: the new definition appears at count zero
	assert.Contains(t, snap.Buildings, "observatory")
	assert.Equal(t, 0, snap.Buildings["observatory"].Count)

	// Test case 2: runs referencing removed content are pruned
	assert.Empty(t, snap.ActiveRuns)
}
