package engine

import (
	"context"
	"fmt"

	"github.com/user/hunter-idle/internal/economy"
	"github.com/user/hunter-idle/internal/types"
)

type purchaseBuildingPayload struct {
	BuildingID string `json:"building_id"`
	Quantity   int    `json:"quantity,omitempty"`
}

// PurchaseBuilding buys one unit of a building at its current geometric cost.
func (p *Processor) PurchaseBuilding(ctx context.Context, userID, txID, buildingID string) Result {
	return p.process(ctx, userID, txID, ActionPurchaseBuilding,
		purchaseBuildingPayload{BuildingID: buildingID},
		func(pc *playerContext) *Error {
			return pc.purchaseBuilding(buildingID, 1)
		})
}

// PurchaseBulkBuilding buys several units at once, charging the sum of the
// geometric cost series rather than quantity times the current cost.
func (p *Processor) PurchaseBulkBuilding(ctx context.Context, userID, txID, buildingID string, quantity int) Result {
	return p.process(ctx, userID, txID, ActionPurchaseBulkBuilding,
		purchaseBuildingPayload{BuildingID: buildingID, Quantity: quantity},
		func(pc *playerContext) *Error {
			if quantity < 1 || quantity > pc.proc.catalog.BulkPurchaseLimit {
				return validationError(fmt.Sprintf("quantity must be between 1 and %d", pc.proc.catalog.BulkPurchaseLimit))
			}
			return pc.purchaseBuilding(buildingID, quantity)
		})
}

func (pc *playerContext) purchaseBuilding(buildingID string, quantity int) *Error {
	def, ok := pc.proc.catalog.Building(buildingID)
	if !ok {
		return notFoundError("unknown building: " + buildingID)
	}
	if pc.state.Hunter.Level < def.UnlockLevel {
		return conflictError(fmt.Sprintf("%s unlocks at level %d", def.Name, def.UnlockLevel))
	}

	owned := pc.state.Buildings[buildingID]
	if owned == nil {
		owned = &types.BuildingState{}
		pc.state.Buildings[buildingID] = owned
	}

	cost := economy.BulkBuildingCost(def, owned.Count, quantity)
	if missing := economy.MissingResources(pc.state.Resources, cost); missing != nil {
		return unaffordableError(fmt.Sprintf("cannot afford %s", def.Name), missing)
	}

	economy.Deduct(pc.state.Resources, cost)
	owned.Count += quantity
	pc.recomputeCaps()

	pc.over.Buildings = pc.state.Buildings
	return nil
}
