package repository

import (
	"context"

	"github.com/ecothreads/marketplace-api/internal/domain/entity"
)

// SnapshotRepository is the port for the materialized balance per
// (itemType, item, warehouse) key. Used inside transactions so the snapshot
// never reflects an entry that is not durably persisted.
type SnapshotRepository interface {
	// Get returns the snapshot, or a zero-quantity snapshot when the key has
	// never been written.
	Get(ctx context.Context, itemType entity.ItemType, itemID, warehouseID int64) (*entity.StockSnapshot, error)
	// GetForUpdate locks the row (SELECT FOR UPDATE) so concurrent appends on
	// the same key serialize.
	GetForUpdate(ctx context.Context, itemType entity.ItemType, itemID, warehouseID int64) (*entity.StockSnapshot, error)
	Upsert(ctx context.Context, snapshot *entity.StockSnapshot) error
}
