package types

import (
	"encoding/json"
	"time"
)

// Resource kinds tracked per player. Every quantity is a non-negative float
// capped independently; see ResourceCaps on PlayerState.
const (
	ResourceEssence    = "essence"
	ResourceCrystals   = "crystals"
	ResourceGold       = "gold"
	ResourceSouls      = "souls"
	ResourceAttraction = "attraction"
	ResourceGems       = "gems"
	ResourceKnowledge  = "knowledge"
)

// ResourceKinds returns every known resource kind in a stable order.
func ResourceKinds() []string {
	return []string{
		ResourceEssence,
		ResourceCrystals,
		ResourceGold,
		ResourceSouls,
		ResourceAttraction,
		ResourceGems,
		ResourceKnowledge,
	}
}

// KnownResource reports whether kind names a tracked resource.
func KnownResource(kind string) bool {
	for _, k := range ResourceKinds() {
		if k == kind {
			return true
		}
	}
	return false
}

// ResourceMap holds named quantities keyed by resource kind.
type ResourceMap map[string]float64

// Clone returns a copy of the map.
func (m ResourceMap) Clone() ResourceMap {
	out := make(ResourceMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Get returns the quantity for kind, zero when absent.
func (m ResourceMap) Get(kind string) float64 {
	return m[kind]
}

// Hunter stat names.
const (
	StatStrength     = "strength"
	StatAgility      = "agility"
	StatIntelligence = "intelligence"
	StatVitality     = "vitality"
	StatSense        = "sense"
	StatAuthority    = "authority"
)

// StatNames returns every hunter stat name in a stable order.
func StatNames() []string {
	return []string{
		StatStrength,
		StatAgility,
		StatIntelligence,
		StatVitality,
		StatSense,
		StatAuthority,
	}
}

// StatBlock holds the six hunter stats.
type StatBlock struct {
	Strength     int `json:"strength"`
	Agility      int `json:"agility"`
	Intelligence int `json:"intelligence"`
	Vitality     int `json:"vitality"`
	Sense        int `json:"sense"`
	Authority    int `json:"authority"`
}

// Get returns the value of the named stat, zero for unknown names.
func (s StatBlock) Get(name string) int {
	switch name {
	case StatStrength:
		return s.Strength
	case StatAgility:
		return s.Agility
	case StatIntelligence:
		return s.Intelligence
	case StatVitality:
		return s.Vitality
	case StatSense:
		return s.Sense
	case StatAuthority:
		return s.Authority
	}
	return 0
}

// Add adds delta to the named stat. Returns false for unknown names.
func (s *StatBlock) Add(name string, delta int) bool {
	switch name {
	case StatStrength:
		s.Strength += delta
	case StatAgility:
		s.Agility += delta
	case StatIntelligence:
		s.Intelligence += delta
	case StatVitality:
		s.Vitality += delta
	case StatSense:
		s.Sense += delta
	case StatAuthority:
		s.Authority += delta
	default:
		return false
	}
	return true
}

// Hunter represents the player character's progression state.
type Hunter struct {
	Level         int       `json:"level"`
	XP            float64   `json:"xp"`
	XPToNextLevel float64   `json:"xp_to_next_level"`
	Rank          string    `json:"rank"`
	StatPoints    int       `json:"stat_points"`
	HP            float64   `json:"hp"`
	MaxHP         float64   `json:"max_hp"`
	Mana          float64   `json:"mana"`
	MaxMana       float64   `json:"max_mana"`
	Stats         StatBlock `json:"stats"`
}

// BuildingState tracks how many of a building the player owns. Count is
// monotonically non-decreasing except on a full reset.
type BuildingState struct {
	Count int `json:"count"`
}

// ResearchState tracks whether a research entry has been purchased.
// Researched is monotone: once true it never reverts short of a full reset.
type ResearchState struct {
	Researched bool `json:"researched"`
}

// ItemUpgrade is one applied upgrade on a crafted item. The list on an item
// is append-only and bounded by the artifact's tier maximum.
type ItemUpgrade struct {
	AppliedAt time.Time `json:"applied_at"`
}

// Item is a crafted piece of equipment in the player's inventory.
type Item struct {
	ID         string        `json:"id"`
	ArtifactID string        `json:"artifact_id"`
	Slot       string        `json:"slot"`
	Tier       int           `json:"tier"`
	Upgrades   []ItemUpgrade `json:"upgrades"`
	CraftedAt  time.Time     `json:"crafted_at"`
}

// Equipment holds the equipped-by-slot mapping plus the crafted inventory.
type Equipment struct {
	Slots     map[string]string `json:"slots"` // slot name -> item id
	Inventory []Item            `json:"inventory"`
}

// DungeonRun is one active timed dungeon expedition.
type DungeonRun struct {
	RunID          string    `json:"run_id"`
	DungeonID      string    `json:"dungeon_id"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	PartyMemberIDs []string  `json:"party_member_ids"`
}

// OriginRecruited marks a nameless companion hired with attraction, as
// opposed to a named shadow extracted from a specific dungeon.
const OriginRecruited = "recruited"

// Companion is an ally or shadow unit owned by the player.
type Companion struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	OriginID string  `json:"origin_id"`
	Rank     string  `json:"rank"`
	Level    int     `json:"level"`
	XP       float64 `json:"xp"`
}

// Named reports whether the companion originates from a dungeon. Only named
// companions may lead a dungeon party.
func (c Companion) Named() bool {
	return c.OriginID != OriginRecruited
}

// PlayerState is the single authoritative row per player. It is owned
// exclusively by the engine and updated via whole-row replace guarded by
// Version.
type PlayerState struct {
	UserID           string                    `json:"user_id"`
	Version          int64                     `json:"version"`
	Resources        ResourceMap               `json:"resources"`
	ResourceCaps     ResourceMap               `json:"resource_caps"`
	Hunter           Hunter                    `json:"hunter"`
	Buildings        map[string]*BuildingState `json:"buildings"`
	Research         map[string]*ResearchState `json:"research"`
	Equipment        Equipment                 `json:"equipment"`
	DungeonsUnlocked map[string]bool           `json:"dungeons_unlocked"`
	ActiveRuns       []DungeonRun              `json:"active_runs"`
	Companions       []Companion               `json:"companions"`
	LastUpdate       time.Time                 `json:"last_update"`
	CreatedAt        time.Time                 `json:"created_at"`
}

// Clone returns a deep copy of the row.
func (p *PlayerState) Clone() *PlayerState {
	out := *p
	out.Resources = p.Resources.Clone()
	out.ResourceCaps = p.ResourceCaps.Clone()
	out.Buildings = make(map[string]*BuildingState, len(p.Buildings))
	for id, b := range p.Buildings {
		copied := *b
		out.Buildings[id] = &copied
	}
	out.Research = make(map[string]*ResearchState, len(p.Research))
	for id, r := range p.Research {
		copied := *r
		out.Research[id] = &copied
	}
	out.Equipment.Slots = make(map[string]string, len(p.Equipment.Slots))
	for slot, itemID := range p.Equipment.Slots {
		out.Equipment.Slots[slot] = itemID
	}
	out.Equipment.Inventory = make([]Item, len(p.Equipment.Inventory))
	for i, item := range p.Equipment.Inventory {
		copied := item
		copied.Upgrades = append([]ItemUpgrade(nil), item.Upgrades...)
		out.Equipment.Inventory[i] = copied
	}
	out.DungeonsUnlocked = make(map[string]bool, len(p.DungeonsUnlocked))
	for id, unlocked := range p.DungeonsUnlocked {
		out.DungeonsUnlocked[id] = unlocked
	}
	out.ActiveRuns = make([]DungeonRun, len(p.ActiveRuns))
	for i, run := range p.ActiveRuns {
		copied := run
		copied.PartyMemberIDs = append([]string(nil), run.PartyMemberIDs...)
		out.ActiveRuns[i] = copied
	}
	out.Companions = append([]Companion(nil), p.Companions...)
	return &out
}

// TransactionRecord is one entry in the append-only audit/idempotency log.
// ClientTransactionID is unique per user at the storage layer; a retried
// identifier replays the stored StateAfter instead of re-applying anything.
type TransactionRecord struct {
	UserID              string          `json:"user_id"`
	ClientTransactionID string          `json:"client_transaction_id"`
	Type                string          `json:"type"`
	Payload             json.RawMessage `json:"payload"`
	StateAfter          json.RawMessage `json:"state_after"`
	CreatedAt           time.Time       `json:"created_at"`
}
