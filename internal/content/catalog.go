package content

import (
	"github.com/user/hunter-idle/internal/types"
)

// GatherDef describes a manually gatherable resource. The server always
// recomputes gather amounts from this table; clients only name the resource.
type GatherDef struct {
	Resource   string  `json:"resource"`
	BaseAmount float64 `json:"base_amount"`
	Stat       string  `json:"stat"`
	BaseXP     float64 `json:"base_xp"`
}

// BuildingDef describes a purchasable production building. Costs follow a
// geometric progression: cost_n = floor(base * multiplier^count) per resource.
type BuildingDef struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Produces        string            `json:"produces"` // empty for pure XP buildings
	RatePerSecond   float64           `json:"rate_per_second"`
	XPPerSecond     float64           `json:"xp_per_second"`
	BaseCost        types.ResourceMap `json:"base_cost"`
	CostMultiplier  float64           `json:"cost_multiplier"`
	CapContribution types.ResourceMap `json:"cap_contribution"`
	UnlockLevel     int               `json:"unlock_level"`
}

// ResearchEffects are the modifiers a researched entry applies.
type ResearchEffects struct {
	GatherMultiplier     map[string]float64 `json:"gather_multiplier,omitempty"`
	ProductionMultiplier map[string]float64 `json:"production_multiplier,omitempty"`
	GlobalProduction     float64            `json:"global_production,omitempty"`
	CapAdd               types.ResourceMap  `json:"cap_add,omitempty"`
	CapMultiplier        map[string]float64 `json:"cap_multiplier,omitempty"`
	UnlocksNecromancer   bool               `json:"unlocks_necromancer,omitempty"`
	UnlocksTranscendence bool               `json:"unlocks_transcendence,omitempty"`
}

// ResearchDef describes one node in the research tree. Cost is paid in
// knowledge; all prerequisites must be researched first.
type ResearchDef struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Cost          float64         `json:"cost"`
	Prerequisites []string        `json:"prerequisites,omitempty"`
	Effects       ResearchEffects `json:"effects"`
}

// DungeonDef describes one dungeon in the shared catalog. Unlocking is
// one-way, triggered by hunter level.
type DungeonDef struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	UnlockLevel     int               `json:"unlock_level"`
	DurationSeconds float64           `json:"duration_seconds"`
	Rewards         types.ResourceMap `json:"rewards"`
	XPReward        float64           `json:"xp_reward"`
	ShadowSoulCost  float64           `json:"shadow_soul_cost"`
}

// ArtifactDef describes a craftable piece of equipment. Upgrade costs grow
// geometrically in the item's upgrade count.
type ArtifactDef struct {
	ID                    string            `json:"id"`
	Name                  string            `json:"name"`
	Slot                  string            `json:"slot"`
	Tier                  int               `json:"tier"`
	UnlockLevel           int               `json:"unlock_level"`
	Cost                  types.ResourceMap `json:"cost"`
	CapContribution       types.ResourceMap `json:"cap_contribution"`
	MaxUpgrades           int               `json:"max_upgrades"`
	UpgradeCost           types.ResourceMap `json:"upgrade_cost"`
	UpgradeCostMultiplier float64           `json:"upgrade_cost_multiplier"`
	CapPerUpgrade         float64           `json:"cap_per_upgrade"` // fraction of CapContribution added per upgrade
}

// Catalog is the static content consumed by the engine. It is data, not
// logic: the engine never mutates it.
type Catalog struct {
	Gathers           map[string]GatherDef   `json:"gathers"`
	Buildings         map[string]BuildingDef `json:"buildings"`
	Research          map[string]ResearchDef `json:"research"`
	Dungeons          map[string]DungeonDef  `json:"dungeons"`
	Artifacts         map[string]ArtifactDef `json:"artifacts"`
	RecruitCosts      map[string]float64     `json:"recruit_costs"` // rank -> attraction cost
	BaseCaps          types.ResourceMap      `json:"base_caps"`
	StartingResources types.ResourceMap      `json:"starting_resources"`

	// Progression tuning.
	BaseXPToNext           float64 `json:"base_xp_to_next"`
	XPCurve                float64 `json:"xp_curve"`
	StatPointsPerLevel     int     `json:"stat_points_per_level"`
	TranscendenceCapBonus  float64 `json:"transcendence_cap_bonus"` // cap multiplier gained per hunter level once transcendence is researched
	BulkPurchaseLimit      int     `json:"bulk_purchase_limit"`
	CompanionXPPerLevel    float64 `json:"companion_xp_per_level"`
}

// Gather returns the gather definition for a resource kind.
func (c *Catalog) Gather(resource string) (GatherDef, bool) {
	def, ok := c.Gathers[resource]
	return def, ok
}

// Building returns the building definition for an id.
func (c *Catalog) Building(id string) (BuildingDef, bool) {
	def, ok := c.Buildings[id]
	return def, ok
}

// ResearchEntry returns the research definition for an id.
func (c *Catalog) ResearchEntry(id string) (ResearchDef, bool) {
	def, ok := c.Research[id]
	return def, ok
}

// Dungeon returns the dungeon definition for an id.
func (c *Catalog) Dungeon(id string) (DungeonDef, bool) {
	def, ok := c.Dungeons[id]
	return def, ok
}

// Artifact returns the artifact definition for an id.
func (c *Catalog) Artifact(id string) (ArtifactDef, bool) {
	def, ok := c.Artifacts[id]
	return def, ok
}

// RecruitCost returns the attraction cost for recruiting at the given rank.
func (c *Catalog) RecruitCost(rank string) (float64, bool) {
	cost, ok := c.RecruitCosts[rank]
	return cost, ok
}
