package ledger

import (
	"context"
	"time"

	"github.com/ecothreads/marketplace-api/internal/domain"
	"github.com/ecothreads/marketplace-api/internal/domain/entity"
	"github.com/ecothreads/marketplace-api/internal/domain/inventory"
	"github.com/ecothreads/marketplace-api/internal/domain/repository"
	"github.com/ecothreads/marketplace-api/pkg/logger"
)

// RebuildUseCase replays the full ledger for one key and recomputes its
// snapshot from scratch. Offline operation for consistency audits and error
// recovery; the key stays locked for the duration of the replay.
type RebuildUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewRebuildUseCase builds the use case.
func NewRebuildUseCase(txRunner TxRunner, log *logger.Logger) *RebuildUseCase {
	return &RebuildUseCase{txRunner: txRunner, log: log}
}

// Rebuild replays every entry for the key in creation order from zero and
// upserts the reconstructed balance. Returns the resulting snapshot and whether
// the stored value had drifted. Fails with ErrNotFound when the key has no
// entries and ErrLedgerDiverged when the chain itself is inconsistent.
func (uc *RebuildUseCase) Rebuild(ctx context.Context, itemType entity.ItemType, itemID, warehouseID int64) (*entity.StockSnapshot, bool, error) {
	switch itemType {
	case entity.ItemTypeMaterial, entity.ItemTypeProduct:
	default:
		return nil, false, domain.ErrInvalidInput
	}
	if itemID <= 0 || warehouseID <= 0 {
		return nil, false, domain.ErrInvalidInput
	}

	var (
		snap     *entity.StockSnapshot
		repaired bool
	)
	err := uc.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerRepository,
		snapshotRepo repository.SnapshotRepository,
	) error {
		current, err := snapshotRepo.GetForUpdate(ctx, itemType, itemID, warehouseID)
		if err != nil {
			return err
		}
		entries, err := ledgerRepo.ListByKey(ctx, itemType, itemID, warehouseID)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return domain.ErrNotFound
		}

		balance, err := inventory.Replay(entries)
		if err != nil {
			return err
		}

		repaired = !current.QuantityOnHand.Equal(balance)
		if repaired {
			uc.log.Warn().
				Str("item_type", string(itemType)).
				Int64("item_id", itemID).
				Int64("warehouse_id", warehouseID).
				Str("stored", current.QuantityOnHand.String()).
				Str("replayed", balance.String()).
				Msg("snapshot drifted from ledger, repairing")
		}

		current.QuantityOnHand = balance
		current.LastUpdated = time.Now()
		if err := snapshotRepo.Upsert(ctx, current); err != nil {
			return err
		}
		snap = current
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return snap, repaired, nil
}
