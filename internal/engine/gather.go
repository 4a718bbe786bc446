package engine

import (
	"context"

	"github.com/user/hunter-idle/internal/economy"
)

type gatherPayload struct {
	Resource string `json:"resource"`
}

// GatherResource applies one manual gather. The amount is always recomputed
// server-side from the gather table; the request only names the resource.
func (p *Processor) GatherResource(ctx context.Context, userID, txID, resource string) Result {
	return p.process(ctx, userID, txID, ActionGatherResource, gatherPayload{Resource: resource},
		func(pc *playerContext) *Error {
			def, ok := pc.proc.catalog.Gather(resource)
			if !ok {
				return validationError("invalid resource: " + resource)
			}

			amount := economy.GatherAmount(def, pc.state.Hunter.Stats, pc.mods)
			pc.state.Resources[resource] = economy.ClampResource(
				pc.state.Resources[resource]+amount,
				pc.state.ResourceCaps.Get(resource))

			xp := economy.GatherXP(def, pc.state.Hunter.Stats)
			levelBefore := pc.state.Hunter.Level
			pc.state.Hunter = economy.ApplyXP(pc.proc.catalog, pc.state.Hunter, xp)
			if pc.state.Hunter.Level != levelBefore {
				pc.unlockDungeonsForLevel()
				pc.recomputeCaps()
			}

			pc.over.Resources = pc.state.Resources
			pc.over.Hunter = &pc.state.Hunter
			return nil
		})
}
