package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/user/hunter-idle/internal/economy"
	"github.com/user/hunter-idle/internal/types"
)

type craftItemPayload struct {
	ArtifactID string `json:"artifact_id"`
}

type itemPayload struct {
	ItemID string `json:"item_id"`
}

// CraftItem forges a new item from an artifact definition and places it in
// the inventory.
func (p *Processor) CraftItem(ctx context.Context, userID, txID, artifactID string) Result {
	return p.process(ctx, userID, txID, ActionCraftItem, craftItemPayload{ArtifactID: artifactID},
		func(pc *playerContext) *Error {
			def, ok := pc.proc.catalog.Artifact(artifactID)
			if !ok {
				return notFoundError("unknown artifact: " + artifactID)
			}
			if pc.state.Hunter.Level < def.UnlockLevel {
				return conflictError(fmt.Sprintf("%s unlocks at level %d", def.Name, def.UnlockLevel))
			}
			if missing := economy.MissingResources(pc.state.Resources, def.Cost); missing != nil {
				return unaffordableError(fmt.Sprintf("cannot afford %s", def.Name), missing)
			}

			economy.Deduct(pc.state.Resources, def.Cost)
			pc.state.Equipment.Inventory = append(pc.state.Equipment.Inventory, types.Item{
				ID:         uuid.New().String(),
				ArtifactID: def.ID,
				Slot:       def.Slot,
				Tier:       def.Tier,
				CraftedAt:  pc.now,
			})

			pc.over.Resources = pc.state.Resources
			pc.over.Equipment = &pc.state.Equipment
			return nil
		})
}

// EquipItem places an inventory item into its slot, swapping out any current
// occupant. Equipped gear contributes to resource caps.
func (p *Processor) EquipItem(ctx context.Context, userID, txID, itemID string) Result {
	return p.process(ctx, userID, txID, ActionEquipItem, itemPayload{ItemID: itemID},
		func(pc *playerContext) *Error {
			item := pc.inventoryItem(itemID)
			if item == nil {
				return notFoundError("unknown item: " + itemID)
			}

			pc.state.Equipment.Slots[item.Slot] = item.ID
			pc.recomputeCaps()

			pc.over.Equipment = &pc.state.Equipment
			return nil
		})
}

// UpgradeItem appends one upgrade to an item, bounded by the artifact's tier
// maximum. Upgrade costs grow geometrically.
func (p *Processor) UpgradeItem(ctx context.Context, userID, txID, itemID string) Result {
	return p.process(ctx, userID, txID, ActionUpgradeItem, itemPayload{ItemID: itemID},
		func(pc *playerContext) *Error {
			item := pc.inventoryItem(itemID)
			if item == nil {
				return notFoundError("unknown item: " + itemID)
			}
			def, ok := pc.proc.catalog.Artifact(item.ArtifactID)
			if !ok {
				return notFoundError("unknown artifact: " + item.ArtifactID)
			}
			if len(item.Upgrades) >= def.MaxUpgrades {
				return conflictError(fmt.Sprintf("%s is fully upgraded", def.Name))
			}

			cost := economy.ItemUpgradeCost(def, len(item.Upgrades))
			if missing := economy.MissingResources(pc.state.Resources, cost); missing != nil {
				return unaffordableError(fmt.Sprintf("cannot afford to upgrade %s", def.Name), missing)
			}

			economy.Deduct(pc.state.Resources, cost)
			item.Upgrades = append(item.Upgrades, types.ItemUpgrade{AppliedAt: pc.now})
			if pc.state.Equipment.Slots[item.Slot] == item.ID {
				pc.recomputeCaps()
			}

			pc.over.Resources = pc.state.Resources
			pc.over.Equipment = &pc.state.Equipment
			return nil
		})
}

// inventoryItem returns a pointer into the inventory slice for in-place
// mutation, or nil when absent.
func (pc *playerContext) inventoryItem(itemID string) *types.Item {
	for i := range pc.state.Equipment.Inventory {
		if pc.state.Equipment.Inventory[i].ID == itemID {
			return &pc.state.Equipment.Inventory[i]
		}
	}
	return nil
}
