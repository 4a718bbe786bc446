// Package predict is the thin client-side reconciliation layer. It previews
// action outcomes locally with the same economy functions the server runs,
// tracks pending mutations by transaction id, rolls back on failure, and
// adopts the server snapshot as the source of truth on every response.
package predict

import (
	"sync"
	"time"

	"github.com/user/hunter-idle/internal/content"
	"github.com/user/hunter-idle/internal/economy"
	"github.com/user/hunter-idle/internal/types"
)

type pendingOp struct {
	txID  string
	apply func(*types.StateSnapshot)
}

// Predictor wraps the latest authoritative snapshot plus an ordered list of
// optimistic, not-yet-acknowledged mutations.
type Predictor struct {
	mu            sync.Mutex
	catalog       *content.Catalog
	authoritative *types.StateSnapshot
	pending       []pendingOp
}

// NewPredictor creates a predictor seeded with a server snapshot.
func NewPredictor(catalog *content.Catalog, snapshot *types.StateSnapshot) *Predictor {
	return &Predictor{
		catalog:       catalog,
		authoritative: snapshot.Clone(),
	}
}

// Pending returns the number of unacknowledged optimistic mutations.
func (p *Predictor) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

// State returns the predicted view: the authoritative snapshot with all
// pending mutations replayed on top and passive gains advanced to now.
func (p *Predictor) State(now time.Time) *types.StateSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view(now)
}

func (p *Predictor) view(now time.Time) *types.StateSnapshot {
	snap := p.authoritative.Clone()
	p.advance(snap, now)
	for _, op := range p.pending {
		op.apply(snap)
	}
	return snap
}

// advance previews passive accrual locally. Displayed only; the server
// recomputes authoritative gains on the next processed action.
func (p *Predictor) advance(snap *types.StateSnapshot, now time.Time) {
	if !now.After(snap.LastUpdate) {
		return
	}
	buildings := make(map[string]*types.BuildingState, len(snap.Buildings))
	for id, b := range snap.Buildings {
		copied := b
		buildings[id] = &copied
	}
	mods := p.modifiers(snap)
	acc := economy.PassiveAccrual(
		snap.Resources, snap.ResourceCaps, buildings,
		p.catalog, mods, snap.Hunter.Stats, snap.LastUpdate, now)
	economy.AddCapped(snap.Resources, acc.Gains, snap.ResourceCaps)
	snap.LastUpdate = now
}

func (p *Predictor) modifiers(snap *types.StateSnapshot) economy.Modifiers {
	research := make(map[string]*types.ResearchState, len(snap.Research))
	for id, researched := range snap.Research {
		research[id] = &types.ResearchState{Researched: researched}
	}
	return economy.CollectModifiers(p.catalog, research)
}

// PreviewGather optimistically applies one gather of the named resource.
func (p *Predictor) PreviewGather(txID, resource string) {
	p.preview(txID, func(snap *types.StateSnapshot) {
		def, ok := p.catalog.Gather(resource)
		if !ok {
			return
		}
		mods := p.modifiers(snap)
		amount := economy.GatherAmount(def, snap.Hunter.Stats, mods)
		snap.Resources[resource] = economy.ClampResource(
			snap.Resources[resource]+amount, snap.ResourceCaps.Get(resource))
	})
}

// PreviewPurchaseBuilding optimistically deducts the cost and bumps the count
// for a building purchase. An unaffordable preview is skipped; the server
// verdict arrives with the real response.
func (p *Predictor) PreviewPurchaseBuilding(txID, buildingID string, quantity int) {
	p.preview(txID, func(snap *types.StateSnapshot) {
		def, ok := p.catalog.Building(buildingID)
		if !ok {
			return
		}
		owned := snap.Buildings[buildingID]
		cost := economy.BulkBuildingCost(def, owned.Count, quantity)
		if economy.MissingResources(snap.Resources, cost) != nil {
			return
		}
		economy.Deduct(snap.Resources, cost)
		owned.Count += quantity
		snap.Buildings[buildingID] = owned
	})
}

// preview registers a generic optimistic mutation under a transaction id.
func (p *Predictor) preview(txID string, apply func(*types.StateSnapshot)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = append(p.pending, pendingOp{txID: txID, apply: apply})
}

// Confirm acknowledges a transaction with the server's post-transaction
// state. The server snapshot replaces local truth; remaining pending
// mutations are replayed on top of it.
func (p *Predictor) Confirm(txID string, server *types.StateSnapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.drop(txID)
	if server != nil {
		p.authoritative = server.Clone()
	}
}

// Fail rolls back a rejected transaction. The server's resync state, when
// provided, replaces local truth so the client stops trusting its stale
// prediction.
func (p *Predictor) Fail(txID string, server *types.StateSnapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.drop(txID)
	if server != nil {
		p.authoritative = server.Clone()
	}
}

// Resync replaces local truth wholesale and discards every pending
// prediction. Used on periodic or visibility-triggered refreshes.
func (p *Predictor) Resync(server *types.StateSnapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.authoritative = server.Clone()
	p.pending = nil
}

func (p *Predictor) drop(txID string) {
	kept := p.pending[:0]
	for _, op := range p.pending {
		if op.txID != txID {
			kept = append(kept, op)
		}
	}
	p.pending = kept
}
