package engine

import (
	"context"

	"github.com/user/hunter-idle/internal/economy"
)

type allocateStatPayload struct {
	Stat string `json:"stat"`
}

// AllocateStat spends one stat point on the named stat and recomputes the
// derived HP/mana ceilings and resource caps.
func (p *Processor) AllocateStat(ctx context.Context, userID, txID, stat string) Result {
	return p.process(ctx, userID, txID, ActionAllocateStat, allocateStatPayload{Stat: stat},
		func(pc *playerContext) *Error {
			if pc.state.Hunter.StatPoints <= 0 {
				return conflictError("no stat points available")
			}
			if !pc.state.Hunter.Stats.Add(stat, 1) {
				return validationError("invalid stat: " + stat)
			}

			pc.state.Hunter.StatPoints--
			pc.state.Hunter = economy.RefreshDerived(pc.state.Hunter)
			pc.recomputeCaps()

			pc.over.Hunter = &pc.state.Hunter
			return nil
		})
}
