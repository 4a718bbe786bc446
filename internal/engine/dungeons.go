package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/user/hunter-idle/internal/economy"
	"github.com/user/hunter-idle/internal/types"
)

type startDungeonPayload struct {
	DungeonID      string   `json:"dungeon_id"`
	PartyMemberIDs []string `json:"party_member_ids,omitempty"`
}

type runPayload struct {
	RunID string `json:"run_id"`
}

// StartDungeon opens a new timed run. A companion may belong to at most one
// active run, and a non-empty party must be led by a named companion.
func (p *Processor) StartDungeon(ctx context.Context, userID, txID, dungeonID string, partyIDs []string) Result {
	return p.process(ctx, userID, txID, ActionStartDungeon,
		startDungeonPayload{DungeonID: dungeonID, PartyMemberIDs: partyIDs},
		func(pc *playerContext) *Error {
			def, ok := pc.proc.catalog.Dungeon(dungeonID)
			if !ok {
				return notFoundError("unknown dungeon: " + dungeonID)
			}
			if !pc.state.DungeonsUnlocked[dungeonID] {
				return conflictError(fmt.Sprintf("%s is locked", def.Name))
			}

			if len(partyIDs) > 0 {
				leader, found := pc.companionByID(partyIDs[0])
				if !found {
					return notFoundError("unknown companion: " + partyIDs[0])
				}
				if !leader.Named() {
					return conflictError("a nameless companion cannot lead a party")
				}
			}
			seen := make(map[string]bool, len(partyIDs))
			for _, id := range partyIDs {
				if seen[id] {
					return validationError("duplicate party member: " + id)
				}
				seen[id] = true
				if _, found := pc.companionByID(id); !found {
					return notFoundError("unknown companion: " + id)
				}
				if runID, busy := pc.companionRun(id); busy {
					return conflictError(fmt.Sprintf("companion %s is already in run %s", id, runID))
				}
			}

			run := types.DungeonRun{
				RunID:          uuid.New().String(),
				DungeonID:      dungeonID,
				StartTime:      pc.now,
				EndTime:        pc.now.Add(time.Duration(def.DurationSeconds * float64(time.Second))),
				PartyMemberIDs: append([]string(nil), partyIDs...),
			}
			pc.state.ActiveRuns = append(pc.state.ActiveRuns, run)

			pc.over.ActiveRuns = pc.state.ActiveRuns
			return nil
		})
}

// CompleteDungeon grants a finished run's rewards and removes it from the
// active set. Completion before the end time is a conflict.
func (p *Processor) CompleteDungeon(ctx context.Context, userID, txID, runID string) Result {
	return p.process(ctx, userID, txID, ActionCompleteDungeon, runPayload{RunID: runID},
		func(pc *playerContext) *Error {
			idx := pc.runIndex(runID)
			if idx < 0 {
				return notFoundError("unknown run: " + runID)
			}
			run := pc.state.ActiveRuns[idx]
			if pc.now.Before(run.EndTime) {
				remaining := run.EndTime.Sub(pc.now).Round(time.Second)
				return conflictError(fmt.Sprintf("run not yet complete, %s remaining", remaining))
			}

			def, ok := pc.proc.catalog.Dungeon(run.DungeonID)
			if !ok {
				return notFoundError("unknown dungeon: " + run.DungeonID)
			}

			economy.AddCapped(pc.state.Resources, def.Rewards, pc.state.ResourceCaps)
			levelBefore := pc.state.Hunter.Level
			pc.state.Hunter = economy.ApplyXP(pc.proc.catalog, pc.state.Hunter, def.XPReward)
			if pc.state.Hunter.Level != levelBefore {
				pc.unlockDungeonsForLevel()
				pc.recomputeCaps()
			}
			pc.grantPartyXP(run.PartyMemberIDs, def.XPReward)
			pc.removeRun(idx)

			pc.over.Resources = pc.state.Resources
			pc.over.Hunter = &pc.state.Hunter
			pc.over.ActiveRuns = pc.state.ActiveRuns
			pc.over.Companions = pc.state.Companions
			return nil
		})
}

// CancelDungeon removes an active run without rewards.
func (p *Processor) CancelDungeon(ctx context.Context, userID, txID, runID string) Result {
	return p.process(ctx, userID, txID, ActionCancelDungeon, runPayload{RunID: runID},
		func(pc *playerContext) *Error {
			idx := pc.runIndex(runID)
			if idx < 0 {
				return notFoundError("unknown run: " + runID)
			}
			pc.removeRun(idx)

			pc.over.ActiveRuns = pc.state.ActiveRuns
			return nil
		})
}

func (pc *playerContext) companionByID(id string) (types.Companion, bool) {
	for _, c := range pc.state.Companions {
		if c.ID == id {
			return c, true
		}
	}
	return types.Companion{}, false
}

// companionRun returns the run a companion is currently committed to.
func (pc *playerContext) companionRun(companionID string) (string, bool) {
	for _, run := range pc.state.ActiveRuns {
		for _, id := range run.PartyMemberIDs {
			if id == companionID {
				return run.RunID, true
			}
		}
	}
	return "", false
}

func (pc *playerContext) runIndex(runID string) int {
	for i, run := range pc.state.ActiveRuns {
		if run.RunID == runID {
			return i
		}
	}
	return -1
}

func (pc *playerContext) removeRun(idx int) {
	pc.state.ActiveRuns = append(pc.state.ActiveRuns[:idx], pc.state.ActiveRuns[idx+1:]...)
}

func (pc *playerContext) grantPartyXP(partyIDs []string, xp float64) {
	for i := range pc.state.Companions {
		for _, id := range partyIDs {
			if pc.state.Companions[i].ID == id {
				pc.state.Companions[i].XP += xp
				pc.state.Companions[i] = economy.CompanionLevel(pc.proc.catalog, pc.state.Companions[i])
			}
		}
	}
}
