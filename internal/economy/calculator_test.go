package economy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/user/hunter-idle/internal/content"
	"github.com/user/hunter-idle/internal/types"
)

func researched(ids ...string) map[string]*types.ResearchState {
	out := make(map[string]*types.ResearchState)
	for _, id := range ids {
		out[id] = &types.ResearchState{Researched: true}
	}
	return out
}

func TestGatherAmount(t *testing.T) {
	catalog := content.DefaultCatalog()
	def := catalog.Gathers[types.ResourceEssence]

	// Test case 1: no stats, no research
	amount := GatherAmount(def, types.StatBlock{}, CollectModifiers(catalog, nil))
	assert.Equal(t, 1.0, amount)

	// Test case 2: strength scales the amount by 1% per point
	amount = GatherAmount(def, types.StatBlock{Strength: 20}, CollectModifiers(catalog, nil))
	assert.InDelta(t, 1.2, amount, 1e-9)

	// Test case 3: gathering research multiplies on top
	mods := CollectModifiers(catalog, researched("efficient_gathering"))
	amount = GatherAmount(def, types.StatBlock{Strength: 20}, mods)
	assert.InDelta(t, 1.5, amount, 1e-9)
}

func TestGatherXP(t *testing.T) {
	catalog := content.DefaultCatalog()
	def := catalog.Gathers[types.ResourceEssence]

	assert.Equal(t, 2.0, GatherXP(def, types.StatBlock{}))
	assert.InDelta(t, 2.4, GatherXP(def, types.StatBlock{Strength: 20}), 1e-9)
}

func TestBuildingCost(t *testing.T) {
	catalog := content.DefaultCatalog()
	def := catalog.Buildings["essence_well"]

	// Geometric progression: floor(10 * 1.15^count)
	assert.Equal(t, 10.0, BuildingCost(def, 0)[types.ResourceEssence])
	assert.Equal(t, 11.0, BuildingCost(def, 1)[types.ResourceEssence])
	assert.Equal(t, 13.0, BuildingCost(def, 2)[types.ResourceEssence])
	assert.Equal(t, 15.0, BuildingCost(def, 3)[types.ResourceEssence])
}

func TestBulkBuildingCost(t *testing.T) {
	catalog := content.DefaultCatalog()
	def := catalog.Buildings["essence_well"]

	// Test case 1: buying 3 from count 0 costs the series sum 10+11+13
	total := BulkBuildingCost(def, 0, 3)
	assert.Equal(t, 34.0, total[types.ResourceEssence])

	// Test case 2: bulk cost always equals the sum of single costs
	for start := 0; start < 5; start++ {
		for qty := 1; qty <= 10; qty++ {
			want := 0.0
			for i := 0; i < qty; i++ {
				want += BuildingCost(def, start+i)[types.ResourceEssence]
			}
			got := BulkBuildingCost(def, start, qty)[types.ResourceEssence]
			assert.Equal(t, want, got, "start=%d qty=%d", start, qty)
		}
	}
}

func TestResourceCapsOrderOfOperations(t *testing.T) {
	catalog := content.DefaultCatalog()
	buildings := map[string]*types.BuildingState{
		"essence_well": {Count: 2},
	}

	// Test case 1: additive building contributions only
	mods := CollectModifiers(catalog, nil)
	caps := ResourceCaps(catalog, buildings, mods, 1, nil)
	assert.Equal(t, 300.0, caps[types.ResourceEssence]) // 100 base + 2*100

	// Test case 2: research additive lands before research multiplicative
	mods = CollectModifiers(catalog, researched("expanded_storage", "essence_overflow"))
	caps = ResourceCaps(catalog, buildings, mods, 1, nil)
	assert.InDelta(t, 750.0, caps[types.ResourceEssence], 1e-9) // (300+200)*1.5

	// Test case 3: the transcendence level multiplier is applied last
	mods = CollectModifiers(catalog, researched(
		"expanded_storage", "essence_overflow",
		"efficient_gathering", "automated_wells", "global_logistics", "transcendence"))
	caps = ResourceCaps(catalog, buildings, mods, 10, nil)
	assert.InDelta(t, 900.0, caps[types.ResourceEssence], 1e-9) // 750 * (1 + 0.02*10)
}

func TestResourceCapsEquipment(t *testing.T) {
	catalog := content.DefaultCatalog()
	blade := catalog.Artifacts["hunter_blade"]
	mods := CollectModifiers(catalog, nil)

	// An upgraded equipped item scales its contribution
	caps := ResourceCaps(catalog, nil, mods, 1, []EquippedItem{{Def: blade, Upgrades: 2}})
	assert.InDelta(t, 175.0, caps[types.ResourceEssence], 1e-9) // 100 + 50*(1+0.25*2)
}

func TestPassiveAccrualOfflineGains(t *testing.T) {
	catalog := content.DefaultCatalog()
	buildings := map[string]*types.BuildingState{
		"essence_well": {Count: 1},
	}
	mods := CollectModifiers(catalog, nil)
	caps := ResourceCaps(catalog, buildings, mods, 1, nil) // essence cap 200
	resources := types.ResourceMap{}

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// Test case 1: a 100 second gap yields exactly rate * elapsed
	acc := PassiveAccrual(resources, caps, buildings, catalog, mods, types.StatBlock{}, from, from.Add(100*time.Second))
	assert.InDelta(t, 50.0, acc.Gains[types.ResourceEssence], 1e-9)

	// Test case 2: a 10 minute gap is clamped at the cap
	acc = PassiveAccrual(resources, caps, buildings, catalog, mods, types.StatBlock{}, from, from.Add(10*time.Minute))
	assert.InDelta(t, 200.0, acc.Gains[types.ResourceEssence], 1e-9)

	// Test case 3: a non-positive gap accrues nothing
	acc = PassiveAccrual(resources, caps, buildings, catalog, mods, types.StatBlock{}, from, from)
	assert.Empty(t, acc.Gains)
}

func TestPassiveAccrualMultipliers(t *testing.T) {
	catalog := content.DefaultCatalog()
	buildings := map[string]*types.BuildingState{
		"essence_well": {Count: 1},
	}
	caps := types.ResourceMap{types.ResourceEssence: 1e9}
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// Research production and global multipliers stack with the sense bonus
	mods := CollectModifiers(catalog, researched("efficient_gathering", "automated_wells", "global_logistics"))
	acc := PassiveAccrual(types.ResourceMap{}, caps, buildings, catalog, mods, types.StatBlock{Sense: 10}, from, from.Add(100*time.Second))
	// 0.5 * 1.5 * 1.25 * 1.05 * 100
	assert.InDelta(t, 98.4375, acc.Gains[types.ResourceEssence], 1e-9)
}

func TestPassiveAccrualXP(t *testing.T) {
	catalog := content.DefaultCatalog()
	buildings := map[string]*types.BuildingState{
		"training_grounds": {Count: 2},
	}
	mods := CollectModifiers(catalog, nil)
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	acc := PassiveAccrual(types.ResourceMap{}, types.ResourceMap{}, buildings, catalog, mods, types.StatBlock{}, from, from.Add(50*time.Second))
	assert.InDelta(t, 20.0, acc.XPGain, 1e-9) // 0.2 * 2 * 50
	assert.Empty(t, acc.Gains)
}

func TestMissingResources(t *testing.T) {
	have := types.ResourceMap{types.ResourceEssence: 5, types.ResourceGold: 100}
	cost := types.ResourceMap{types.ResourceEssence: 10.2, types.ResourceGold: 50}

	// Shortfalls are rounded up to whole units for presentation
	missing := MissingResources(have, cost)
	assert.Equal(t, types.ResourceMap{types.ResourceEssence: 6}, missing)

	// Affordable costs yield nil
	assert.Nil(t, MissingResources(have, types.ResourceMap{types.ResourceGold: 100}))
}

func TestItemUpgradeCost(t *testing.T) {
	catalog := content.DefaultCatalog()
	blade := catalog.Artifacts["hunter_blade"]

	assert.Equal(t, 50.0, ItemUpgradeCost(blade, 0)[types.ResourceGold])
	assert.Equal(t, 75.0, ItemUpgradeCost(blade, 1)[types.ResourceGold])
	assert.Equal(t, 112.0, ItemUpgradeCost(blade, 2)[types.ResourceGold])
}
