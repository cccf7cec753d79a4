package repository

import (
	"context"

	"github.com/ecothreads/marketplace-api/internal/domain/entity"
)

// LedgerRepository is the persistence port for the append-only inventory ledger.
// Entries are immutable: there is no update or delete.
type LedgerRepository interface {
	Create(ctx context.Context, entry *entity.LedgerEntry) error
	// ListByKey returns every entry for one (itemType, item, warehouse) key in
	// creation order. Used by the snapshot rebuild.
	ListByKey(ctx context.Context, itemType entity.ItemType, itemID, warehouseID int64) ([]*entity.LedgerEntry, error)
}
