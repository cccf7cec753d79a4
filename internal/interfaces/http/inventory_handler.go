package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ecothreads/marketplace-api/internal/application/dto"
	"github.com/ecothreads/marketplace-api/internal/application/ledger"
	"github.com/ecothreads/marketplace-api/internal/domain/entity"
	"github.com/ecothreads/marketplace-api/internal/infrastructure/cache"
)

// InventoryHandler write endpoints over the stock ledger (protected).
type InventoryHandler struct {
	appendUC  *ledger.AppendUseCase
	rebuildUC *ledger.RebuildUseCase
	summaries *cache.SummaryCache
}

// NewInventoryHandler builds the handler.
func NewInventoryHandler(appendUC *ledger.AppendUseCase, rebuildUC *ledger.RebuildUseCase, summaries *cache.SummaryCache) *InventoryHandler {
	return &InventoryHandler{appendUC: appendUC, rebuildUC: rebuildUC, summaries: summaries}
}

// ReceiveMaterial godoc
// @Summary      Record a supplier material receipt
// @Description  Appends a SUPPLIER_RECEIPT transaction to the ledger and updates
//
//	the stock snapshot atomically.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveMaterialRequest  true  "material_id, warehouse_id, quantity, unit, purchase_order_id"
// @Success      201  {object}  map[string]bool
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/materials/receive [post]
func (h *InventoryHandler) ReceiveMaterial(c *fiber.Ctx) error {
	var in dto.ReceiveMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	if err := h.appendUC.ReceiveMaterial(c.Context(), GetUserID(c), in); err != nil {
		return respondError(c, err)
	}
	h.summaries.Invalidate(c.Context())
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true})
}

// RebuildSnapshot godoc
// @Summary      Rebuild a stock snapshot from its ledger
// @Description  Replays the full transaction chain for one item/warehouse and
//
//	overwrites the snapshot with the replayed balance. Admin only.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RebuildSnapshotRequest  true  "item_type, item_id, warehouse_id"
// @Success      200  {object}  dto.RebuildSnapshotResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/rebuild [post]
func (h *InventoryHandler) RebuildSnapshot(c *fiber.Ctx) error {
	var in dto.RebuildSnapshotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	snap, repaired, err := h.rebuildUC.Rebuild(c.Context(), entity.ItemType(in.ItemType), in.ItemID, in.WarehouseID)
	if err != nil {
		return respondError(c, err)
	}
	if repaired {
		h.summaries.Invalidate(c.Context())
	}
	return c.JSON(dto.RebuildSnapshotResponse{
		ItemType:       string(snap.ItemType),
		ItemID:         snap.ItemID,
		WarehouseID:    snap.WarehouseID,
		QuantityOnHand: snap.QuantityOnHand,
		Repaired:       repaired,
	})
}
