package engine

import (
	"github.com/user/hunter-idle/internal/types"
)

// Overrides carries authoritative post-transaction values for fields a
// mutation just changed. It is a typed partial-update structure: each action
// family sets only the fields it touched, and the snapshot builder prefers
// them over the row so clients never see pre-transaction values.
type Overrides struct {
	Resources    types.ResourceMap
	ResourceCaps types.ResourceMap
	Hunter       *types.Hunter
	Buildings    map[string]*types.BuildingState
	Research     map[string]*types.ResearchState
	Equipment    *types.Equipment
	ActiveRuns   []types.DungeonRun
	Companions   []types.Companion
}

// BuildSnapshot converts the internal row into the externally-visible state
// shape, applying any overrides produced by a transaction.
func BuildSnapshot(state *types.PlayerState, overrides *Overrides) *types.StateSnapshot {
	snap := &types.StateSnapshot{
		Resources:        state.Resources.Clone(),
		ResourceCaps:     state.ResourceCaps.Clone(),
		Hunter:           state.Hunter,
		Buildings:        make(map[string]types.BuildingState, len(state.Buildings)),
		Research:         make(map[string]bool, len(state.Research)),
		Equipment:        cloneEquipment(state.Equipment),
		DungeonsUnlocked: make(map[string]bool, len(state.DungeonsUnlocked)),
		ActiveRuns:       cloneRuns(state.ActiveRuns),
		Companions:       append([]types.Companion(nil), state.Companions...),
		LastUpdate:       state.LastUpdate,
	}
	for id, b := range state.Buildings {
		if b != nil {
			snap.Buildings[id] = *b
		}
	}
	for id, r := range state.Research {
		if r != nil {
			snap.Research[id] = r.Researched
		}
	}
	for id, unlocked := range state.DungeonsUnlocked {
		snap.DungeonsUnlocked[id] = unlocked
	}

	if overrides == nil {
		return snap
	}
	if overrides.Resources != nil {
		snap.Resources = overrides.Resources.Clone()
	}
	if overrides.ResourceCaps != nil {
		snap.ResourceCaps = overrides.ResourceCaps.Clone()
	}
	if overrides.Hunter != nil {
		snap.Hunter = *overrides.Hunter
	}
	if overrides.Buildings != nil {
		snap.Buildings = make(map[string]types.BuildingState, len(overrides.Buildings))
		for id, b := range overrides.Buildings {
			if b != nil {
				snap.Buildings[id] = *b
			}
		}
	}
	if overrides.Research != nil {
		snap.Research = make(map[string]bool, len(overrides.Research))
		for id, r := range overrides.Research {
			if r != nil {
				snap.Research[id] = r.Researched
			}
		}
	}
	if overrides.Equipment != nil {
		snap.Equipment = cloneEquipment(*overrides.Equipment)
	}
	if overrides.ActiveRuns != nil {
		snap.ActiveRuns = cloneRuns(overrides.ActiveRuns)
	}
	if overrides.Companions != nil {
		snap.Companions = append([]types.Companion(nil), overrides.Companions...)
	}
	return snap
}

func cloneEquipment(eq types.Equipment) types.Equipment {
	out := types.Equipment{
		Slots:     make(map[string]string, len(eq.Slots)),
		Inventory: make([]types.Item, len(eq.Inventory)),
	}
	for slot, itemID := range eq.Slots {
		out.Slots[slot] = itemID
	}
	for i, item := range eq.Inventory {
		copied := item
		copied.Upgrades = append([]types.ItemUpgrade(nil), item.Upgrades...)
		out.Inventory[i] = copied
	}
	return out
}

func cloneRuns(runs []types.DungeonRun) []types.DungeonRun {
	out := make([]types.DungeonRun, len(runs))
	for i, run := range runs {
		copied := run
		copied.PartyMemberIDs = append([]string(nil), run.PartyMemberIDs...)
		out[i] = copied
	}
	return out
}
