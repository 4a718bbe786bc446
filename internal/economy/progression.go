package economy

import (
	"math"

	"github.com/user/hunter-idle/internal/content"
	"github.com/user/hunter-idle/internal/types"
)

// XPToNext returns the XP required to advance from the given level.
func XPToNext(catalog *content.Catalog, level int) float64 {
	return math.Floor(catalog.BaseXPToNext * math.Pow(catalog.XPCurve, float64(level-1)))
}

// RankForLevel maps a hunter level to its rank letter.
func RankForLevel(level int) string {
	switch {
	case level < 10:
		return "E"
	case level < 20:
		return "D"
	case level < 30:
		return "C"
	case level < 40:
		return "B"
	case level < 50:
		return "A"
	}
	return "S"
}

// MaxHP derives the hunter's hit point ceiling from level and vitality.
func MaxHP(level, vitality int) float64 {
	return 100 + 10*float64(vitality) + 5*float64(level-1)
}

// MaxMana derives the hunter's mana ceiling from intelligence.
func MaxMana(intelligence int) float64 {
	return 50 + 10*float64(intelligence)
}

// NewHunter returns a fresh level-one hunter.
func NewHunter(catalog *content.Catalog) types.Hunter {
	h := types.Hunter{
		Level:         1,
		XPToNextLevel: XPToNext(catalog, 1),
		Rank:          RankForLevel(1),
	}
	h.MaxHP = MaxHP(h.Level, h.Stats.Vitality)
	h.HP = h.MaxHP
	h.MaxMana = MaxMana(h.Stats.Intelligence)
	h.Mana = h.MaxMana
	return h
}

// ApplyXP adds an XP delta to the hunter and resolves any level-ups. A single
// large delta (a long offline gap) may advance several levels in one call;
// each level grants stat points, recomputes the XP curve and rank, and
// refills HP and mana.
func ApplyXP(catalog *content.Catalog, hunter types.Hunter, delta float64) types.Hunter {
	if delta <= 0 {
		return hunter
	}

	hunter.XP += delta
	for hunter.XP >= hunter.XPToNextLevel {
		hunter.XP -= hunter.XPToNextLevel
		hunter.Level++
		hunter.StatPoints += catalog.StatPointsPerLevel
		hunter.XPToNextLevel = XPToNext(catalog, hunter.Level)
		hunter.Rank = RankForLevel(hunter.Level)
		hunter.MaxHP = MaxHP(hunter.Level, hunter.Stats.Vitality)
		hunter.HP = hunter.MaxHP
		hunter.MaxMana = MaxMana(hunter.Stats.Intelligence)
		hunter.Mana = hunter.MaxMana
	}

	return hunter
}

// RefreshDerived recomputes MaxHP and MaxMana after a stat allocation,
// clamping current HP and mana into the new bounds.
func RefreshDerived(hunter types.Hunter) types.Hunter {
	hunter.MaxHP = MaxHP(hunter.Level, hunter.Stats.Vitality)
	hunter.MaxMana = MaxMana(hunter.Stats.Intelligence)
	if hunter.HP > hunter.MaxHP {
		hunter.HP = hunter.MaxHP
	}
	if hunter.Mana > hunter.MaxMana {
		hunter.Mana = hunter.MaxMana
	}
	return hunter
}

// CompanionLevel resolves a companion's level from accumulated XP: each level
// requires level * CompanionXPPerLevel additional XP.
func CompanionLevel(catalog *content.Catalog, companion types.Companion) types.Companion {
	for companion.XP >= float64(companion.Level)*catalog.CompanionXPPerLevel {
		companion.XP -= float64(companion.Level) * catalog.CompanionXPPerLevel
		companion.Level++
	}
	return companion
}
