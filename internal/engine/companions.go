package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/user/hunter-idle/internal/economy"
	"github.com/user/hunter-idle/internal/types"
)

type recruitAllyPayload struct {
	Name string `json:"name"`
	Rank string `json:"rank"`
}

type extractShadowPayload struct {
	Name      string `json:"name"`
	DungeonID string `json:"dungeon_id"`
}

// RecruitAlly hires a nameless companion for attraction. Allies cannot lead
// dungeon parties.
func (p *Processor) RecruitAlly(ctx context.Context, userID, txID, name, rank string) Result {
	return p.process(ctx, userID, txID, ActionRecruitAlly,
		recruitAllyPayload{Name: name, Rank: rank},
		func(pc *playerContext) *Error {
			if name == "" {
				return validationError("missing companion name")
			}
			cost, ok := pc.proc.catalog.RecruitCost(rank)
			if !ok {
				return validationError("invalid rank: " + rank)
			}

			price := types.ResourceMap{types.ResourceAttraction: cost}
			if missing := economy.MissingResources(pc.state.Resources, price); missing != nil {
				return unaffordableError(fmt.Sprintf("cannot afford a rank %s ally", rank), missing)
			}

			economy.Deduct(pc.state.Resources, price)
			pc.state.Companions = append(pc.state.Companions, types.Companion{
				ID:       uuid.New().String(),
				Name:     name,
				OriginID: types.OriginRecruited,
				Rank:     rank,
				Level:    1,
			})

			pc.over.Resources = pc.state.Resources
			pc.over.Companions = pc.state.Companions
			return nil
		})
}

// ExtractShadow raises a named shadow from a dungeon for souls. Requires the
// necromancer unlock. A shadow is identified by its name within its origin
// dungeon: the same name from a different dungeon is a distinct shadow.
func (p *Processor) ExtractShadow(ctx context.Context, userID, txID, name, dungeonID string) Result {
	return p.process(ctx, userID, txID, ActionExtractShadow,
		extractShadowPayload{Name: name, DungeonID: dungeonID},
		func(pc *playerContext) *Error {
			if name == "" {
				return validationError("missing shadow name")
			}
			if !pc.mods.Necromancer {
				return conflictError("necromancer not unlocked")
			}
			def, ok := pc.proc.catalog.Dungeon(dungeonID)
			if !ok {
				return notFoundError("unknown dungeon: " + dungeonID)
			}

			// Duplicate check runs before any deduction.
			for _, c := range pc.state.Companions {
				if c.Name == name && c.OriginID == dungeonID {
					return conflictError(fmt.Sprintf("%s already extracted from %s", name, def.Name))
				}
			}

			price := types.ResourceMap{types.ResourceSouls: def.ShadowSoulCost}
			if missing := economy.MissingResources(pc.state.Resources, price); missing != nil {
				return unaffordableError(fmt.Sprintf("cannot afford to extract %s", name), missing)
			}

			economy.Deduct(pc.state.Resources, price)
			pc.state.Companions = append(pc.state.Companions, types.Companion{
				ID:       uuid.New().String(),
				Name:     name,
				OriginID: dungeonID,
				Rank:     economy.RankForLevel(def.UnlockLevel),
				Level:    1,
			})

			pc.over.Resources = pc.state.Resources
			pc.over.Companions = pc.state.Companions
			return nil
		})
}
