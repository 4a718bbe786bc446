package content

import "github.com/user/hunter-idle/internal/types"

// DefaultCatalog returns the built-in content tables. The server uses these
// when no content directory is configured; tests rely on the exact numbers.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Gathers: map[string]GatherDef{
			types.ResourceEssence: {
				Resource:   types.ResourceEssence,
				BaseAmount: 1.0,
				Stat:       types.StatStrength,
				BaseXP:     2.0,
			},
			types.ResourceCrystals: {
				Resource:   types.ResourceCrystals,
				BaseAmount: 0.5,
				Stat:       types.StatSense,
				BaseXP:     2.0,
			},
			types.ResourceGold: {
				Resource:   types.ResourceGold,
				BaseAmount: 0.75,
				Stat:       types.StatAgility,
				BaseXP:     2.0,
			},
			types.ResourceKnowledge: {
				Resource:   types.ResourceKnowledge,
				BaseAmount: 0.25,
				Stat:       types.StatIntelligence,
				BaseXP:     3.0,
			},
		},
		Buildings: map[string]BuildingDef{
			"essence_well": {
				ID:              "essence_well",
				Name:            "Essence Well",
				Produces:        types.ResourceEssence,
				RatePerSecond:   0.5,
				BaseCost:        types.ResourceMap{types.ResourceEssence: 10},
				CostMultiplier:  1.15,
				CapContribution: types.ResourceMap{types.ResourceEssence: 100},
			},
			"gold_vault": {
				ID:              "gold_vault",
				Name:            "Gold Vault",
				Produces:        types.ResourceGold,
				RatePerSecond:   0.3,
				BaseCost:        types.ResourceMap{types.ResourceEssence: 25},
				CostMultiplier:  1.15,
				CapContribution: types.ResourceMap{types.ResourceGold: 200},
			},
			"crystal_mine": {
				ID:              "crystal_mine",
				Name:            "Crystal Mine",
				Produces:        types.ResourceCrystals,
				RatePerSecond:   0.2,
				BaseCost:        types.ResourceMap{types.ResourceEssence: 50, types.ResourceGold: 10},
				CostMultiplier:  1.18,
				CapContribution: types.ResourceMap{types.ResourceCrystals: 50},
				UnlockLevel:     3,
			},
			"library": {
				ID:              "library",
				Name:            "Library",
				Produces:        types.ResourceKnowledge,
				RatePerSecond:   0.1,
				BaseCost:        types.ResourceMap{types.ResourceEssence: 60},
				CostMultiplier:  1.16,
				CapContribution: types.ResourceMap{types.ResourceKnowledge: 60},
				UnlockLevel:     2,
			},
			"tavern": {
				ID:              "tavern",
				Name:            "Hunter Tavern",
				Produces:        types.ResourceAttraction,
				RatePerSecond:   0.1,
				BaseCost:        types.ResourceMap{types.ResourceGold: 40},
				CostMultiplier:  1.17,
				CapContribution: types.ResourceMap{types.ResourceAttraction: 40},
				UnlockLevel:     5,
			},
			"soul_altar": {
				ID:              "soul_altar",
				Name:            "Soul Altar",
				Produces:        types.ResourceSouls,
				RatePerSecond:   0.05,
				BaseCost:        types.ResourceMap{types.ResourceCrystals: 30},
				CostMultiplier:  1.2,
				CapContribution: types.ResourceMap{types.ResourceSouls: 25},
				UnlockLevel:     10,
			},
			"gem_polisher": {
				ID:              "gem_polisher",
				Name:            "Gem Polisher",
				Produces:        types.ResourceGems,
				RatePerSecond:   0.01,
				BaseCost:        types.ResourceMap{types.ResourceGold: 200, types.ResourceCrystals: 50},
				CostMultiplier:  1.25,
				CapContribution: types.ResourceMap{types.ResourceGems: 10},
				UnlockLevel:     20,
			},
			"training_grounds": {
				ID:             "training_grounds",
				Name:           "Training Grounds",
				XPPerSecond:    0.2,
				BaseCost:       types.ResourceMap{types.ResourceGold: 75},
				CostMultiplier: 1.2,
				UnlockLevel:    4,
			},
		},
		Research: map[string]ResearchDef{
			"efficient_gathering": {
				ID:   "efficient_gathering",
				Name: "Efficient Gathering",
				Cost: 10,
				Effects: ResearchEffects{
					GatherMultiplier: map[string]float64{
						types.ResourceEssence:   1.25,
						types.ResourceCrystals:  1.25,
						types.ResourceGold:      1.25,
						types.ResourceKnowledge: 1.25,
					},
				},
			},
			"essence_overflow": {
				ID:   "essence_overflow",
				Name: "Essence Overflow",
				Cost: 25,
				Effects: ResearchEffects{
					CapMultiplier: map[string]float64{types.ResourceEssence: 1.5},
				},
			},
			"expanded_storage": {
				ID:   "expanded_storage",
				Name: "Expanded Storage",
				Cost: 30,
				Effects: ResearchEffects{
					CapAdd: types.ResourceMap{
						types.ResourceEssence:  200,
						types.ResourceGold:     200,
						types.ResourceCrystals: 100,
					},
				},
			},
			"automated_wells": {
				ID:            "automated_wells",
				Name:          "Automated Wells",
				Cost:          40,
				Prerequisites: []string{"efficient_gathering"},
				Effects: ResearchEffects{
					ProductionMultiplier: map[string]float64{types.ResourceEssence: 1.5},
				},
			},
			"global_logistics": {
				ID:            "global_logistics",
				Name:          "Global Logistics",
				Cost:          80,
				Prerequisites: []string{"automated_wells"},
				Effects: ResearchEffects{
					GlobalProduction: 1.25,
				},
			},
			"necromancy": {
				ID:   "necromancy",
				Name: "Necromancy",
				Cost: 100,
				Effects: ResearchEffects{
					UnlocksNecromancer: true,
				},
			},
			"transcendence": {
				ID:            "transcendence",
				Name:          "Transcendence",
				Cost:          500,
				Prerequisites: []string{"global_logistics"},
				Effects: ResearchEffects{
					UnlocksTranscendence: true,
				},
			},
		},
		Dungeons: map[string]DungeonDef{
			"goblin_den": {
				ID:              "goblin_den",
				Name:            "Goblin Den",
				UnlockLevel:     1,
				DurationSeconds: 300,
				Rewards:         types.ResourceMap{types.ResourceGold: 50, types.ResourceSouls: 2},
				XPReward:        40,
				ShadowSoulCost:  10,
			},
			"ice_caverns": {
				ID:              "ice_caverns",
				Name:            "Ice Caverns",
				UnlockLevel:     10,
				DurationSeconds: 900,
				Rewards:         types.ResourceMap{types.ResourceCrystals: 80, types.ResourceSouls: 5},
				XPReward:        120,
				ShadowSoulCost:  25,
			},
			"demon_citadel": {
				ID:              "demon_citadel",
				Name:            "Demon Citadel",
				UnlockLevel:     25,
				DurationSeconds: 3600,
				Rewards:         types.ResourceMap{types.ResourceGems: 3, types.ResourceSouls: 20, types.ResourceGold: 500},
				XPReward:        600,
				ShadowSoulCost:  60,
			},
		},
		Artifacts: map[string]ArtifactDef{
			"hunter_blade": {
				ID:                    "hunter_blade",
				Name:                  "Hunter Blade",
				Slot:                  "weapon",
				Tier:                  1,
				UnlockLevel:           1,
				Cost:                  types.ResourceMap{types.ResourceGold: 100, types.ResourceCrystals: 10},
				CapContribution:       types.ResourceMap{types.ResourceEssence: 50},
				MaxUpgrades:           3,
				UpgradeCost:           types.ResourceMap{types.ResourceGold: 50},
				UpgradeCostMultiplier: 1.5,
				CapPerUpgrade:         0.25,
			},
			"soul_pendant": {
				ID:                    "soul_pendant",
				Name:                  "Soul Pendant",
				Slot:                  "amulet",
				Tier:                  2,
				UnlockLevel:           12,
				Cost:                  types.ResourceMap{types.ResourceSouls: 15, types.ResourceGold: 250},
				CapContribution:       types.ResourceMap{types.ResourceSouls: 20},
				MaxUpgrades:           5,
				UpgradeCost:           types.ResourceMap{types.ResourceSouls: 5},
				UpgradeCostMultiplier: 1.4,
				CapPerUpgrade:         0.25,
			},
		},
		RecruitCosts: map[string]float64{
			"E": 10,
			"D": 25,
			"C": 60,
			"B": 150,
			"A": 400,
			"S": 1000,
		},
		BaseCaps: types.ResourceMap{
			types.ResourceEssence:    100,
			types.ResourceCrystals:   50,
			types.ResourceGold:       150,
			types.ResourceSouls:      10,
			types.ResourceAttraction: 25,
			types.ResourceGems:       5,
			types.ResourceKnowledge:  50,
		},
		StartingResources: types.ResourceMap{},

		BaseXPToNext:          100,
		XPCurve:               1.15,
		StatPointsPerLevel:    3,
		TranscendenceCapBonus: 0.02,
		BulkPurchaseLimit:     100,
		CompanionXPPerLevel:   100,
	}
}
