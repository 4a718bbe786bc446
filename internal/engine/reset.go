package engine

import "context"

type resetPayload struct{}

// ResetGame restores every field to its initial defaults, clearing active
// runs and companions. The transaction ledger is kept: a transaction id maps
// to one outcome for the lifetime of the player, across resets.
func (p *Processor) ResetGame(ctx context.Context, userID, txID string) Result {
	return p.process(ctx, userID, txID, ActionResetGame, resetPayload{},
		func(pc *playerContext) *Error {
			fresh := pc.proc.newPlayerState(userID)
			fresh.Version = pc.state.Version
			fresh.CreatedAt = pc.state.CreatedAt
			fresh.LastUpdate = pc.now
			*pc.state = *fresh

			pc.refreshModifiers()
			pc.over = Overrides{}
			return nil
		})
}
