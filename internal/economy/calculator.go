// Package economy holds the pure calculation core of the game: gather
// amounts, building costs, resource caps, passive accrual and hunter
// progression. Everything here is deterministic and side-effect free; the
// same functions back both the server engine and client-side prediction so
// the formulas exist exactly once.
package economy

import (
	"math"
	"time"

	"github.com/user/hunter-idle/internal/content"
	"github.com/user/hunter-idle/internal/types"
)

// Modifiers are the combined effects of every researched entry. Collect once
// per transaction and refresh after a research purchase.
type Modifiers struct {
	Gather        map[string]float64
	Production    map[string]float64
	Global        float64
	CapAdd        types.ResourceMap
	CapMult       map[string]float64
	Necromancer   bool
	Transcendence bool
}

// CollectModifiers folds the effects of all researched entries into one set.
func CollectModifiers(catalog *content.Catalog, research map[string]*types.ResearchState) Modifiers {
	mods := Modifiers{
		Gather:     make(map[string]float64),
		Production: make(map[string]float64),
		Global:     1.0,
		CapAdd:     make(types.ResourceMap),
		CapMult:    make(map[string]float64),
	}

	for id, state := range research {
		if state == nil || !state.Researched {
			continue
		}
		def, ok := catalog.ResearchEntry(id)
		if !ok {
			continue
		}
		for resource, mult := range def.Effects.GatherMultiplier {
			mods.Gather[resource] = multOrInit(mods.Gather[resource], mult)
		}
		for resource, mult := range def.Effects.ProductionMultiplier {
			mods.Production[resource] = multOrInit(mods.Production[resource], mult)
		}
		if def.Effects.GlobalProduction > 0 {
			mods.Global *= def.Effects.GlobalProduction
		}
		for resource, add := range def.Effects.CapAdd {
			mods.CapAdd[resource] += add
		}
		for resource, mult := range def.Effects.CapMultiplier {
			mods.CapMult[resource] = multOrInit(mods.CapMult[resource], mult)
		}
		if def.Effects.UnlocksNecromancer {
			mods.Necromancer = true
		}
		if def.Effects.UnlocksTranscendence {
			mods.Transcendence = true
		}
	}

	return mods
}

func multOrInit(current, mult float64) float64 {
	if current == 0 {
		return mult
	}
	return current * mult
}

func (m Modifiers) gatherMult(resource string) float64 {
	if mult, ok := m.Gather[resource]; ok {
		return mult
	}
	return 1.0
}

func (m Modifiers) productionMult(resource string) float64 {
	if mult, ok := m.Production[resource]; ok {
		return mult
	}
	return 1.0
}

func (m Modifiers) capMult(resource string) float64 {
	if mult, ok := m.CapMult[resource]; ok {
		return mult
	}
	return 1.0
}

// GatherAmount computes the server-side amount for one manual gather of the
// given resource. Client-supplied amounts are ignored by design.
func GatherAmount(def content.GatherDef, stats types.StatBlock, mods Modifiers) float64 {
	statBonus := 1.0 + float64(stats.Get(def.Stat))/100.0
	return def.BaseAmount * statBonus * mods.gatherMult(def.Resource)
}

// GatherXP computes the hunter XP granted by one manual gather.
func GatherXP(def content.GatherDef, stats types.StatBlock) float64 {
	statBonus := 1.0 + float64(stats.Get(def.Stat))/100.0
	return def.BaseXP * statBonus
}

// BuildingCost computes the cost of the next unit of a building at the given
// owned count: floor(base * multiplier^count) per cost resource.
func BuildingCost(def content.BuildingDef, count int) types.ResourceMap {
	cost := make(types.ResourceMap, len(def.BaseCost))
	scale := math.Pow(def.CostMultiplier, float64(count))
	for resource, base := range def.BaseCost {
		cost[resource] = math.Floor(base * scale)
	}
	return cost
}

// BulkBuildingCost computes the total cost of buying quantity units starting
// at the given count. It is the sum of the geometric series from count to
// count+quantity-1, not quantity times the cost at count.
func BulkBuildingCost(def content.BuildingDef, count, quantity int) types.ResourceMap {
	total := make(types.ResourceMap, len(def.BaseCost))
	for i := 0; i < quantity; i++ {
		for resource, amount := range BuildingCost(def, count+i) {
			total[resource] += amount
		}
	}
	return total
}

// EquippedItem pairs an equipped artifact definition with the item's upgrade
// count, for cap computation.
type EquippedItem struct {
	Def      content.ArtifactDef
	Upgrades int
}

// ItemUpgradeCost computes the cost of the next upgrade on an item with the
// given number of applied upgrades.
func ItemUpgradeCost(def content.ArtifactDef, upgrades int) types.ResourceMap {
	cost := make(types.ResourceMap, len(def.UpgradeCost))
	scale := math.Pow(def.UpgradeCostMultiplier, float64(upgrades))
	for resource, base := range def.UpgradeCost {
		cost[resource] = math.Floor(base * scale)
	}
	return cost
}

// ResourceCaps derives the cap for every resource. Order of operations is
// significant and fixed: additive contributions (buildings, equipment,
// research cap adds) first, then research multipliers, then the
// transcendence level multiplier.
func ResourceCaps(catalog *content.Catalog, buildings map[string]*types.BuildingState, mods Modifiers, hunterLevel int, equipped []EquippedItem) types.ResourceMap {
	caps := catalog.BaseCaps.Clone()

	for id, state := range buildings {
		if state == nil || state.Count == 0 {
			continue
		}
		def, ok := catalog.Building(id)
		if !ok {
			continue
		}
		for resource, contribution := range def.CapContribution {
			caps[resource] += contribution * float64(state.Count)
		}
	}

	for _, item := range equipped {
		upgradeScale := 1.0 + item.Def.CapPerUpgrade*float64(item.Upgrades)
		for resource, contribution := range item.Def.CapContribution {
			caps[resource] += contribution * upgradeScale
		}
	}

	for resource, add := range mods.CapAdd {
		caps[resource] += add
	}

	for resource := range caps {
		caps[resource] *= mods.capMult(resource)
	}

	if mods.Transcendence {
		levelMult := 1.0 + catalog.TranscendenceCapBonus*float64(hunterLevel)
		for resource := range caps {
			caps[resource] *= levelMult
		}
	}

	return caps
}

// Accrual is the result of integrating passive income over an elapsed
// duration. Gains are post-clamp deltas, never raw production.
type Accrual struct {
	Gains  types.ResourceMap
	XPGain float64
}

// PassiveAccrual integrates building production over (to - from), applies
// research and stat multipliers, and clamps every gain so resources never
// exceed their caps. A non-positive elapsed duration accrues nothing.
func PassiveAccrual(resources, caps types.ResourceMap, buildings map[string]*types.BuildingState, catalog *content.Catalog, mods Modifiers, stats types.StatBlock, from, to time.Time) Accrual {
	acc := Accrual{Gains: make(types.ResourceMap)}

	elapsed := to.Sub(from).Seconds()
	if elapsed <= 0 {
		return acc
	}

	senseBonus := 1.0 + float64(stats.Sense)/200.0

	for id, state := range buildings {
		if state == nil || state.Count == 0 {
			continue
		}
		def, ok := catalog.Building(id)
		if !ok {
			continue
		}
		count := float64(state.Count)
		if def.Produces != "" && def.RatePerSecond > 0 {
			rate := def.RatePerSecond * count * mods.productionMult(def.Produces) * mods.Global * senseBonus
			acc.Gains[def.Produces] += rate * elapsed
		}
		if def.XPPerSecond > 0 {
			acc.XPGain += def.XPPerSecond * count * mods.Global * senseBonus * elapsed
		}
	}

	for resource, gain := range acc.Gains {
		room := caps.Get(resource) - resources.Get(resource)
		if room < 0 {
			room = 0
		}
		if gain > room {
			acc.Gains[resource] = room
		}
	}

	return acc
}

// ClampResource returns value clamped to [0, cap].
func ClampResource(value, cap float64) float64 {
	if value < 0 {
		return 0
	}
	if value > cap {
		return cap
	}
	return value
}

// MissingResources returns the per-resource shortfall of have against cost,
// or nil when the cost is affordable. Shortfalls are rounded up to whole
// units for presentation; internal math stays fractional.
func MissingResources(have, cost types.ResourceMap) types.ResourceMap {
	var missing types.ResourceMap
	for resource, amount := range cost {
		shortfall := amount - have.Get(resource)
		if shortfall > 0 {
			if missing == nil {
				missing = make(types.ResourceMap)
			}
			missing[resource] = math.Ceil(shortfall)
		}
	}
	return missing
}

// Deduct subtracts cost from resources in place.
func Deduct(resources, cost types.ResourceMap) {
	for resource, amount := range cost {
		resources[resource] -= amount
		if resources[resource] < 0 {
			resources[resource] = 0
		}
	}
}

// AddCapped adds gains to resources in place, clamping each at its cap.
func AddCapped(resources, gains, caps types.ResourceMap) {
	for resource, gain := range gains {
		resources[resource] = ClampResource(resources[resource]+gain, caps.Get(resource))
	}
}
