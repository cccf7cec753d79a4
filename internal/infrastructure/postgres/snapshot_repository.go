package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/ecothreads/marketplace-api/internal/domain/entity"
	"github.com/ecothreads/marketplace-api/internal/domain/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepo)(nil)

// SnapshotRepo persistence for the materialized balance per key (pool or tx).
type SnapshotRepo struct {
	q Querier
}

// NewSnapshotRepository builds the adapter. Pass a pool or tx (Querier).
func NewSnapshotRepository(q Querier) *SnapshotRepo {
	return &SnapshotRepo{q: q}
}

const snapshotSelect = `
	SELECT item_type, item_id, warehouse_id, quantity_on_hand, min_threshold,
	       price_per_unit, unit, last_updated
	FROM stock_snapshots
	WHERE item_type = $1 AND item_id = $2 AND warehouse_id = $3`

// Get returns the snapshot, or a zero-quantity snapshot when the key is unseen.
func (r *SnapshotRepo) Get(ctx context.Context, itemType entity.ItemType, itemID, warehouseID int64) (*entity.StockSnapshot, error) {
	s, err := r.scan(ctx, snapshotSelect, itemType, itemID, warehouseID)
	if errors.Is(err, pgx.ErrNoRows) {
		return zeroSnapshot(itemType, itemID, warehouseID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return s, nil
}

// GetForUpdate locks the snapshot row (SELECT FOR UPDATE) so concurrent ledger
// appends on the same key serialize. A SELECT FOR UPDATE that matches no row
// locks nothing, so an unseen key is first materialized as a zero row (DO
// NOTHING keeps a concurrent initializer harmless) and then locked; whichever
// transaction holds the row blocks the other until commit.
func (r *SnapshotRepo) GetForUpdate(ctx context.Context, itemType entity.ItemType, itemID, warehouseID int64) (*entity.StockSnapshot, error) {
	s, err := r.scan(ctx, snapshotSelect+` FOR UPDATE`, itemType, itemID, warehouseID)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("lock snapshot: %w", err)
	}

	seed := `
		INSERT INTO stock_snapshots (item_type, item_id, warehouse_id, quantity_on_hand,
		                             price_per_unit, unit, last_updated)
		VALUES ($1, $2, $3, 0, 0, '', now())
		ON CONFLICT (item_type, item_id, warehouse_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, seed, itemType, itemID, warehouseID); err != nil {
		return nil, fmt.Errorf("seed snapshot: %w", err)
	}

	s, err = r.scan(ctx, snapshotSelect+` FOR UPDATE`, itemType, itemID, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("lock snapshot: %w", err)
	}
	return s, nil
}

func (r *SnapshotRepo) scan(ctx context.Context, query string, itemType entity.ItemType, itemID, warehouseID int64) (*entity.StockSnapshot, error) {
	var s entity.StockSnapshot
	err := r.q.QueryRow(ctx, query, itemType, itemID, warehouseID).Scan(
		&s.ItemType, &s.ItemID, &s.WarehouseID, &s.QuantityOnHand,
		&s.MinThreshold, &s.PricePerUnit, &s.Unit, &s.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func zeroSnapshot(itemType entity.ItemType, itemID, warehouseID int64) *entity.StockSnapshot {
	return &entity.StockSnapshot{
		ItemType:       itemType,
		ItemID:         itemID,
		WarehouseID:    warehouseID,
		QuantityOnHand: decimal.Zero,
		PricePerUnit:   decimal.Zero,
	}
}

// Upsert inserts or replaces the snapshot for the key.
func (r *SnapshotRepo) Upsert(ctx context.Context, s *entity.StockSnapshot) error {
	query := `
		INSERT INTO stock_snapshots (item_type, item_id, warehouse_id, quantity_on_hand,
		                             min_threshold, price_per_unit, unit, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (item_type, item_id, warehouse_id)
		DO UPDATE SET quantity_on_hand = EXCLUDED.quantity_on_hand,
		              min_threshold    = EXCLUDED.min_threshold,
		              price_per_unit   = EXCLUDED.price_per_unit,
		              unit             = EXCLUDED.unit,
		              last_updated     = now()`
	_, err := r.q.Exec(ctx, query,
		s.ItemType, s.ItemID, s.WarehouseID, s.QuantityOnHand,
		s.MinThreshold, s.PricePerUnit, s.Unit,
	)
	if err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}
