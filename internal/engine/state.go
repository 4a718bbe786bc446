package engine

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/user/hunter-idle/internal/economy"
	"github.com/user/hunter-idle/internal/store"
	"github.com/user/hunter-idle/internal/types"
)

// newPlayerState builds the initial row for a first-seen user.
func (p *Processor) newPlayerState(userID string) *types.PlayerState {
	now := p.now()
	state := &types.PlayerState{
		UserID:           userID,
		Resources:        p.catalog.StartingResources.Clone(),
		Hunter:           economy.NewHunter(p.catalog),
		Buildings:        make(map[string]*types.BuildingState),
		Research:         make(map[string]*types.ResearchState),
		Equipment:        types.Equipment{Slots: make(map[string]string)},
		DungeonsUnlocked: make(map[string]bool),
		ActiveRuns:       []types.DungeonRun{},
		Companions:       []types.Companion{},
		LastUpdate:       now,
		CreatedAt:        now,
	}
	for _, kind := range types.ResourceKinds() {
		if _, ok := state.Resources[kind]; !ok {
			state.Resources[kind] = 0
		}
	}
	for id := range p.catalog.Buildings {
		state.Buildings[id] = &types.BuildingState{}
	}
	for id := range p.catalog.Research {
		state.Research[id] = &types.ResearchState{}
	}
	for id, def := range p.catalog.Dungeons {
		if state.Hunter.Level >= def.UnlockLevel {
			state.DungeonsUnlocked[id] = true
		}
	}
	mods := economy.CollectModifiers(p.catalog, state.Research)
	state.ResourceCaps = economy.ResourceCaps(p.catalog, state.Buildings, mods, state.Hunter.Level, nil)
	return state
}

// GetState loads (creating on first sight) the player's state, accrues
// passive income, runs idempotent catch-up migrations against the content
// catalog, persists, and returns the snapshot. It is a read endpoint with
// side effects, not an economic mutation, so no transaction id is involved.
func (p *Processor) GetState(ctx context.Context, userID string) (*types.StateSnapshot, error) {
	if userID == "" {
		return nil, validationError("missing user id")
	}

	unlock := p.locks.lock(userID)
	defer unlock()

	state, err := p.store.FindPlayer(ctx, userID)
	if errors.Is(err, store.ErrPlayerNotFound) {
		state = p.newPlayerState(userID)
		if err := p.store.InsertPlayer(ctx, state); err != nil {
			return nil, fmt.Errorf("failed to create player: %w", err)
		}
		p.logger.Info("player created", zap.String("user_id", userID))
		return BuildSnapshot(state, nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load player: %w", err)
	}

	pc := p.newPlayerContext(state)
	pc.migrate()
	pc.accrue()
	pc.recomputeCaps()

	if err := p.store.Commit(ctx, state, nil); err != nil {
		return nil, fmt.Errorf("failed to persist state: %w", err)
	}
	return BuildSnapshot(state, nil), nil
}

// migrate applies one-time, order-independent catch-up corrections against
// the current content catalog: populate newly-added building and research
// definitions, auto-unlock dungeons by hunter level, and prune active runs
// whose dungeon left the catalog.
func (pc *playerContext) migrate() {
	if pc.state.Equipment.Slots == nil {
		pc.state.Equipment.Slots = make(map[string]string)
	}
	if pc.state.DungeonsUnlocked == nil {
		pc.state.DungeonsUnlocked = make(map[string]bool)
	}

	for id := range pc.proc.catalog.Buildings {
		if _, ok := pc.state.Buildings[id]; !ok {
			pc.state.Buildings[id] = &types.BuildingState{}
		}
	}
	for id := range pc.proc.catalog.Research {
		if _, ok := pc.state.Research[id]; !ok {
			pc.state.Research[id] = &types.ResearchState{}
		}
	}

	pc.unlockDungeonsForLevel()

	kept := pc.state.ActiveRuns[:0]
	for _, run := range pc.state.ActiveRuns {
		if _, ok := pc.proc.catalog.Dungeon(run.DungeonID); ok {
			kept = append(kept, run)
		}
	}
	pc.state.ActiveRuns = kept
}
