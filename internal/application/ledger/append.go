package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ecothreads/marketplace-api/internal/domain"
	"github.com/ecothreads/marketplace-api/internal/domain/entity"
	"github.com/ecothreads/marketplace-api/internal/domain/inventory"
	"github.com/ecothreads/marketplace-api/internal/domain/repository"
)

// AppendUseCase writes ledger entries transactionally: the snapshot row is
// locked (SELECT FOR UPDATE), the before/after chain computed, and entry plus
// snapshot committed together. Two concurrent appends on the same key can never
// read the same BeforeQty.
type AppendUseCase struct {
	txRunner TxRunner
}

// NewAppendUseCase builds the use case.
func NewAppendUseCase(txRunner TxRunner) *AppendUseCase {
	return &AppendUseCase{txRunner: txRunner}
}

// AppendInput draft for one ledger entry. BeforeQty/AfterQty are computed by
// the store, never supplied by the caller.
type AppendInput struct {
	ItemType       entity.ItemType
	ItemID         int64
	WarehouseID    int64
	Type           string
	QuantityChange decimal.Decimal
	Unit           string
	ReferenceType  string
	ReferenceID    string
	Note           string
	CreatedBy      string
	// UnitCost, when set on an inbound change, is blended into the snapshot's
	// price per unit as a weighted average.
	UnitCost *decimal.Decimal
	// ClampToZero reduces a would-be-negative change so the balance lands on
	// zero. Only corrective manual adjustments may request it.
	ClampToZero bool
}

func (in AppendInput) validate() error {
	if in.ItemID <= 0 || in.WarehouseID <= 0 {
		return domain.ErrInvalidInput
	}
	switch in.ItemType {
	case entity.ItemTypeMaterial, entity.ItemTypeProduct:
	default:
		// The designer stash has no ledger.
		return domain.ErrInvalidInput
	}
	if !entity.ValidTransactionType(in.Type) {
		return domain.ErrInvalidInput
	}
	if in.QuantityChange.IsZero() {
		return domain.ErrInvalidInput
	}
	if in.ClampToZero && in.Type != entity.TxManualAdjustment {
		return domain.ErrInvalidInput
	}
	return nil
}

// Append starts a transaction, locks the snapshot row for the key, computes the
// chained before/after quantities and commits entry and snapshot together.
// Returns ErrInsufficientStock when the change would take the balance negative
// and no clamp was requested.
func (uc *AppendUseCase) Append(ctx context.Context, in AppendInput) (*entity.LedgerEntry, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	var created *entity.LedgerEntry

	err := uc.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerRepository,
		snapshotRepo repository.SnapshotRepository,
	) error {
		// Lock the snapshot row so concurrent appends on this key serialize.
		snap, err := snapshotRepo.GetForUpdate(ctx, in.ItemType, in.ItemID, in.WarehouseID)
		if err != nil {
			return err
		}

		applied, after, err := inventory.ApplyChange(snap.QuantityOnHand, in.QuantityChange, in.ClampToZero)
		if err != nil {
			return err
		}

		entry := &entity.LedgerEntry{
			ID:             uuid.New().String(),
			ItemType:       in.ItemType,
			ItemID:         in.ItemID,
			WarehouseID:    in.WarehouseID,
			Type:           in.Type,
			QuantityChange: applied,
			BeforeQty:      snap.QuantityOnHand,
			AfterQty:       after,
			Unit:           unitOrSnapshot(in.Unit, snap.Unit),
			ReferenceType:  in.ReferenceType,
			ReferenceID:    in.ReferenceID,
			Note:           in.Note,
			CreatedAt:      now,
			CreatedBy:      in.CreatedBy,
		}
		if err := ledgerRepo.Create(ctx, entry); err != nil {
			return err
		}

		if in.UnitCost != nil && applied.Sign() > 0 {
			snap.PricePerUnit = inventory.WeightedAverageCost(
				snap.QuantityOnHand, snap.PricePerUnit, applied, *in.UnitCost,
			)
		}
		snap.QuantityOnHand = after
		snap.LastUpdated = now
		if entry.Unit != "" {
			snap.Unit = entry.Unit
		}
		if err := snapshotRepo.Upsert(ctx, snap); err != nil {
			return err
		}

		created = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func unitOrSnapshot(unit, fallback string) string {
	if unit != "" {
		return unit
	}
	return fallback
}
