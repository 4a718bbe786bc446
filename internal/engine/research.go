package engine

import (
	"context"
	"fmt"

	"github.com/user/hunter-idle/internal/economy"
	"github.com/user/hunter-idle/internal/types"
)

type purchaseResearchPayload struct {
	ResearchID string `json:"research_id"`
}

// PurchaseResearch marks a research entry researched after checking its
// prerequisites and deducting its knowledge cost. Researched entries are
// immutable until a full reset.
func (p *Processor) PurchaseResearch(ctx context.Context, userID, txID, researchID string) Result {
	return p.process(ctx, userID, txID, ActionPurchaseResearch,
		purchaseResearchPayload{ResearchID: researchID},
		func(pc *playerContext) *Error {
			def, ok := pc.proc.catalog.ResearchEntry(researchID)
			if !ok {
				return notFoundError("unknown research: " + researchID)
			}

			entry := pc.state.Research[researchID]
			if entry == nil {
				entry = &types.ResearchState{}
				pc.state.Research[researchID] = entry
			}
			if entry.Researched {
				return conflictError("already researched: " + researchID)
			}
			for _, prereq := range def.Prerequisites {
				if state := pc.state.Research[prereq]; state == nil || !state.Researched {
					return conflictError(fmt.Sprintf("prerequisite not researched: %s", prereq))
				}
			}

			cost := types.ResourceMap{types.ResourceKnowledge: def.Cost}
			if missing := economy.MissingResources(pc.state.Resources, cost); missing != nil {
				return unaffordableError(fmt.Sprintf("cannot afford %s", def.Name), missing)
			}

			economy.Deduct(pc.state.Resources, cost)
			entry.Researched = true
			pc.refreshModifiers()
			pc.recomputeCaps()

			pc.over.Research = pc.state.Research
			return nil
		})
}
