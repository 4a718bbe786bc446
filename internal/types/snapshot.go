package types

import "time"

// StateSnapshot is the externally-visible representation of a player row. It
// always reflects accrued resource values, never stale pre-accrual ones.
type StateSnapshot struct {
	Resources        ResourceMap              `json:"resources"`
	ResourceCaps     ResourceMap              `json:"resourceCaps"`
	Hunter           Hunter                   `json:"hunter"`
	Buildings        map[string]BuildingState `json:"buildings"`
	Research         map[string]bool          `json:"research"`
	Equipment        Equipment                `json:"equipment"`
	DungeonsUnlocked map[string]bool          `json:"dungeonsUnlocked"`
	ActiveRuns       []DungeonRun             `json:"activeRuns"`
	Companions       []Companion              `json:"companions"`
	LastUpdate       time.Time                `json:"lastUpdate"`
}

// Clone returns a deep copy of the snapshot.
func (s *StateSnapshot) Clone() *StateSnapshot {
	out := *s
	out.Resources = s.Resources.Clone()
	out.ResourceCaps = s.ResourceCaps.Clone()
	out.Buildings = make(map[string]BuildingState, len(s.Buildings))
	for id, b := range s.Buildings {
		out.Buildings[id] = b
	}
	out.Research = make(map[string]bool, len(s.Research))
	for id, researched := range s.Research {
		out.Research[id] = researched
	}
	out.Equipment.Slots = make(map[string]string, len(s.Equipment.Slots))
	for slot, itemID := range s.Equipment.Slots {
		out.Equipment.Slots[slot] = itemID
	}
	out.Equipment.Inventory = make([]Item, len(s.Equipment.Inventory))
	for i, item := range s.Equipment.Inventory {
		copied := item
		copied.Upgrades = append([]ItemUpgrade(nil), item.Upgrades...)
		out.Equipment.Inventory[i] = copied
	}
	out.DungeonsUnlocked = make(map[string]bool, len(s.DungeonsUnlocked))
	for id, unlocked := range s.DungeonsUnlocked {
		out.DungeonsUnlocked[id] = unlocked
	}
	out.ActiveRuns = make([]DungeonRun, len(s.ActiveRuns))
	for i, run := range s.ActiveRuns {
		copied := run
		copied.PartyMemberIDs = append([]string(nil), run.PartyMemberIDs...)
		out.ActiveRuns[i] = copied
	}
	out.Companions = append([]Companion(nil), s.Companions...)
	return &out
}
