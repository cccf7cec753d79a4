package postgres

import (
	"context"
	"fmt"

	"github.com/ecothreads/marketplace-api/internal/domain/entity"
	"github.com/ecothreads/marketplace-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

const ledgerColumns = `id, item_type, item_id, warehouse_id, transaction_type,
	quantity_change, before_qty, after_qty, unit, reference_type, reference_id,
	note, created_at, created_by`

// LedgerRepo append-only persistence for ledger entries (usable with pool or tx).
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository builds the adapter. Pass a pool or tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// Create persists one immutable ledger entry.
func (r *LedgerRepo) Create(ctx context.Context, e *entity.LedgerEntry) error {
	query := `
		INSERT INTO inventory_ledger (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	createdBy := (*string)(nil)
	if e.CreatedBy != "" {
		createdBy = &e.CreatedBy
	}
	_, err := r.q.Exec(ctx, query,
		e.ID, e.ItemType, e.ItemID, e.WarehouseID, e.Type,
		e.QuantityChange, e.BeforeQty, e.AfterQty, e.Unit,
		e.ReferenceType, e.ReferenceID, e.Note, e.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("create ledger entry: %w", err)
	}
	return nil
}

// ListByKey returns every entry for one key in creation order (replay order).
func (r *LedgerRepo) ListByKey(ctx context.Context, itemType entity.ItemType, itemID, warehouseID int64) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM inventory_ledger
		WHERE item_type = $1 AND item_id = $2 AND warehouse_id = $3
		ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, itemType, itemID, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list ledger by key: %w", err)
	}
	defer rows.Close()

	var list []*entity.LedgerEntry
	for rows.Next() {
		var e entity.LedgerEntry
		var createdBy *string
		if err := rows.Scan(
			&e.ID, &e.ItemType, &e.ItemID, &e.WarehouseID, &e.Type,
			&e.QuantityChange, &e.BeforeQty, &e.AfterQty, &e.Unit,
			&e.ReferenceType, &e.ReferenceID, &e.Note, &e.CreatedAt, &createdBy,
		); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		if createdBy != nil {
			e.CreatedBy = *createdBy
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
