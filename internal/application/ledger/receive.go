package ledger

import (
	"context"

	"github.com/ecothreads/marketplace-api/internal/application/dto"
	"github.com/ecothreads/marketplace-api/internal/domain"
	"github.com/ecothreads/marketplace-api/internal/domain/entity"
)

// ReceiveMaterial adapts the HTTP receive request into a SupplierReceipt append.
// Used by the handler once the auth middleware has resolved the user.
func (uc *AppendUseCase) ReceiveMaterial(ctx context.Context, userID string, in dto.ReceiveMaterialRequest) error {
	if in.Quantity.Sign() <= 0 {
		return domain.ErrInvalidInput
	}
	_, err := uc.Append(ctx, AppendInput{
		ItemType:       entity.ItemTypeMaterial,
		ItemID:         in.MaterialID,
		WarehouseID:    in.WarehouseID,
		Type:           entity.TxSupplierReceipt,
		QuantityChange: in.Quantity,
		Unit:           in.Unit,
		UnitCost:       in.UnitCost,
		ReferenceType:  entity.RefPurchaseOrder,
		ReferenceID:    in.PurchaseOrderID,
		Note:           in.Note,
		CreatedBy:      userID,
	})
	return err
}
