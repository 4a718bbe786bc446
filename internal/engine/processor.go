// Package engine implements the authoritative game state mutation engine:
// passive accrual, per-action validation and mutation, idempotent at-most-once
// transaction application, and the externally-visible state snapshot.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/user/hunter-idle/internal/content"
	"github.com/user/hunter-idle/internal/economy"
	"github.com/user/hunter-idle/internal/store"
	"github.com/user/hunter-idle/internal/types"
)

// Action type names recorded in the transaction ledger.
const (
	ActionGatherResource       = "gatherResource"
	ActionPurchaseBuilding     = "purchaseBuilding"
	ActionPurchaseBulkBuilding = "purchaseBulkBuilding"
	ActionAllocateStat         = "allocateStat"
	ActionPurchaseResearch     = "purchaseResearch"
	ActionStartDungeon         = "startDungeon"
	ActionCompleteDungeon      = "completeDungeon"
	ActionCancelDungeon        = "cancelDungeon"
	ActionRecruitAlly          = "recruitAlly"
	ActionExtractShadow        = "extractShadow"
	ActionCraftItem            = "craftItem"
	ActionEquipItem            = "equipItem"
	ActionUpgradeItem          = "upgradeItem"
	ActionResetGame            = "resetGame"
)

// Result is the outcome of one processed transaction. Failures still carry
// the current authoritative (accrued) state so clients can resynchronize.
type Result struct {
	Success  bool
	Replayed bool
	State    *types.StateSnapshot
	Err      *Error
}

// Processor orchestrates every state-changing action end-to-end. All
// dependencies are injected; there is no global state.
type Processor struct {
	store   store.PlayerStore
	catalog *content.Catalog
	logger  *zap.Logger
	locks   *playerLocks
	now     func() time.Time
}

// NewProcessor creates a transaction processor over the given store and
// content catalog.
func NewProcessor(st store.PlayerStore, catalog *content.Catalog, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		store:   st,
		catalog: catalog,
		logger:  logger,
		locks:   newPlayerLocks(),
		now:     time.Now,
	}
}

// SetClock overrides the wall clock, for tests.
func (p *Processor) SetClock(now func() time.Time) {
	p.now = now
}

// playerContext is the in-memory scope of one transaction: the loaded row,
// the collected research modifiers, and the typed override set for the DTO.
type playerContext struct {
	proc  *Processor
	state *types.PlayerState
	mods  economy.Modifiers
	now   time.Time
	over  Overrides
}

func (p *Processor) newPlayerContext(state *types.PlayerState) *playerContext {
	pc := &playerContext{
		proc:  p,
		state: state,
		now:   p.now(),
	}
	pc.refreshModifiers()
	return pc
}

func (pc *playerContext) refreshModifiers() {
	pc.mods = economy.CollectModifiers(pc.proc.catalog, pc.state.Research)
}

func (pc *playerContext) equippedItems() []economy.EquippedItem {
	var equipped []economy.EquippedItem
	for _, itemID := range pc.state.Equipment.Slots {
		for _, item := range pc.state.Equipment.Inventory {
			if item.ID != itemID {
				continue
			}
			if def, ok := pc.proc.catalog.Artifact(item.ArtifactID); ok {
				equipped = append(equipped, economy.EquippedItem{
					Def:      def,
					Upgrades: len(item.Upgrades),
				})
			}
			break
		}
	}
	return equipped
}

// recomputeCaps refreshes the derived resource ceilings and clamps holdings
// into them. Call after anything that changes buildings, research, level or
// equipped gear.
func (pc *playerContext) recomputeCaps() {
	pc.state.ResourceCaps = economy.ResourceCaps(
		pc.proc.catalog, pc.state.Buildings, pc.mods, pc.state.Hunter.Level, pc.equippedItems())
	for resource, value := range pc.state.Resources {
		pc.state.Resources[resource] = economy.ClampResource(value, pc.state.ResourceCaps.Get(resource))
	}
	pc.over.Resources = pc.state.Resources
	pc.over.ResourceCaps = pc.state.ResourceCaps
}

// accrue applies passive income from the row's lastUpdate through now. It
// runs at the start of every transaction so elapsed time between any two
// processed actions is never lost or double-counted. lastUpdate only moves
// forward.
func (pc *playerContext) accrue() {
	if !pc.now.After(pc.state.LastUpdate) {
		return
	}
	acc := economy.PassiveAccrual(
		pc.state.Resources, pc.state.ResourceCaps, pc.state.Buildings,
		pc.proc.catalog, pc.mods, pc.state.Hunter.Stats,
		pc.state.LastUpdate, pc.now)
	economy.AddCapped(pc.state.Resources, acc.Gains, pc.state.ResourceCaps)
	if acc.XPGain > 0 {
		levelBefore := pc.state.Hunter.Level
		pc.state.Hunter = economy.ApplyXP(pc.proc.catalog, pc.state.Hunter, acc.XPGain)
		if pc.state.Hunter.Level != levelBefore {
			pc.unlockDungeonsForLevel()
			pc.recomputeCaps()
		}
	}
	pc.state.LastUpdate = pc.now
}

// unlockDungeonsForLevel flips unlock flags for dungeons the hunter's level
// now reaches. Unlocks are one-way.
func (pc *playerContext) unlockDungeonsForLevel() {
	for id, def := range pc.proc.catalog.Dungeons {
		if pc.state.Hunter.Level >= def.UnlockLevel {
			pc.state.DungeonsUnlocked[id] = true
		}
	}
}

type mutateFunc func(pc *playerContext) *Error

// process runs the shared transaction skeleton: idempotency check, load,
// accrue, mutate, persist row + ledger atomically, return the snapshot.
func (p *Processor) process(ctx context.Context, userID, txID, actionType string, payload interface{}, mutate mutateFunc) Result {
	if userID == "" {
		return Result{Err: validationError("missing user id")}
	}
	if txID == "" {
		return Result{Err: validationError("missing clientTransactionId")}
	}

	// Fast path: a retried id short-circuits before taking the lock.
	if res, done := p.replay(ctx, userID, txID); done {
		return res
	}

	unlock := p.locks.lock(userID)
	defer unlock()

	// Re-check under the lock. Per-player processing is serialized here, so
	// a duplicate that raced the fast path is guaranteed to see the winner's
	// ledger record instead of re-executing against the mutated row.
	if res, done := p.replay(ctx, userID, txID); done {
		return res
	}

	state, err := p.store.FindPlayer(ctx, userID)
	if errors.Is(err, store.ErrPlayerNotFound) {
		return Result{Err: notFoundError("player not found")}
	}
	if err != nil {
		return Result{Err: internalError("failed to load player", err)}
	}

	pc := p.newPlayerContext(state)
	pc.accrue()

	if aerr := mutate(pc); aerr != nil {
		p.logger.Warn("transaction rejected",
			zap.String("user_id", userID),
			zap.String("tx_id", txID),
			zap.String("action", actionType),
			zap.String("reason", aerr.Message))
		// Nothing is persisted on failure: the accrued snapshot returned for
		// resync is recomputed from lastUpdate on the next successful action.
		return Result{State: BuildSnapshot(state, nil), Err: aerr}
	}

	snap := BuildSnapshot(state, &pc.over)
	stateAfter, err := json.Marshal(snap)
	if err != nil {
		return Result{Err: internalError("failed to encode snapshot", err)}
	}
	payloadRaw, err := json.Marshal(payload)
	if err != nil {
		return Result{Err: internalError("failed to encode payload", err)}
	}
	record := &types.TransactionRecord{
		UserID:              userID,
		ClientTransactionID: txID,
		Type:                actionType,
		Payload:             payloadRaw,
		StateAfter:          stateAfter,
		CreatedAt:           pc.now,
	}

	if err := p.store.Commit(ctx, state, record); err != nil {
		if errors.Is(err, store.ErrDuplicateTransaction) || errors.Is(err, store.ErrVersionConflict) {
			// Someone already processed this transaction id; fetch and
			// return the stored outcome.
			if res, done := p.replay(ctx, userID, txID); done {
				return res
			}
			return Result{Err: internalError("commit conflict without ledger record", err)}
		}
		return Result{Err: internalError("failed to persist transaction", err)}
	}

	p.logger.Info("transaction applied",
		zap.String("user_id", userID),
		zap.String("tx_id", txID),
		zap.String("action", actionType))
	return Result{Success: true, State: snap}
}

// replay short-circuits a transaction whose id is already in the ledger,
// returning the stored outcome without re-executing any mutation logic.
func (p *Processor) replay(ctx context.Context, userID, txID string) (Result, bool) {
	record, err := p.store.FindTransaction(ctx, userID, txID)
	if err != nil {
		return Result{Err: internalError("failed to check transaction ledger", err)}, true
	}
	if record == nil {
		return Result{}, false
	}
	var snap types.StateSnapshot
	if err := json.Unmarshal(record.StateAfter, &snap); err != nil {
		return Result{Err: internalError("failed to decode stored snapshot", err)}, true
	}
	p.logger.Info("transaction replayed",
		zap.String("user_id", userID),
		zap.String("tx_id", txID),
		zap.String("action", record.Type))
	return Result{Success: true, Replayed: true, State: &snap}, true
}
