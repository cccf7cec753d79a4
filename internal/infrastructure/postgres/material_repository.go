package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/ecothreads/marketplace-api/internal/domain/entity"
	"github.com/ecothreads/marketplace-api/internal/domain/repository"
)

var _ repository.MaterialInventoryRepository = (*MaterialInventoryRepo)(nil)

// MaterialInventoryRepo read-only queries over the supplier material warehouses.
type MaterialInventoryRepo struct {
	q Querier
}

// NewMaterialInventoryRepository builds the adapter.
func NewMaterialInventoryRepository(q Querier) *MaterialInventoryRepo {
	return &MaterialInventoryRepo{q: q}
}

// materialFilter translates the shared filter into WHERE conditions against
// the snapshot/ledger alias x, materials m.
func materialFilter(f repository.InventoryFilter, withItemAlias string, args []any, conds []string) ([]any, []string) {
	pos := len(args) + 1
	if f.SupplierID != nil {
		conds = append(conds, fmt.Sprintf("m.supplier_id = $%d", pos))
		args = append(args, *f.SupplierID)
		pos++
	}
	if f.MaterialTypeID != nil {
		conds = append(conds, fmt.Sprintf("m.type_id = $%d", pos))
		args = append(args, *f.MaterialTypeID)
		pos++
	}
	if f.WarehouseID != nil {
		conds = append(conds, fmt.Sprintf("%s.warehouse_id = $%d", withItemAlias, pos))
		args = append(args, *f.WarehouseID)
		pos++
	}
	if f.ItemID != nil {
		conds = append(conds, fmt.Sprintf("%s.item_id = $%d", withItemAlias, pos))
		args = append(args, *f.ItemID)
		pos++
	}
	return args, conds
}

func dateFilter(f repository.InventoryFilter, alias string, args []any, conds []string) ([]any, []string) {
	pos := len(args) + 1
	if f.From != nil {
		conds = append(conds, fmt.Sprintf("%s.created_at >= $%d", alias, pos))
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		conds = append(conds, fmt.Sprintf("%s.created_at <= $%d", alias, pos))
		args = append(args, *f.To)
		pos++
	}
	return args, conds
}

// GetSummary aggregates snapshot totals plus in/out flow over the date range.
func (r *MaterialInventoryRepo) GetSummary(ctx context.Context, f repository.InventoryFilter) (*repository.DomainSummary, error) {
	args := []any{entity.ItemTypeMaterial}
	conds := []string{"s.item_type = $1"}
	args, conds = materialFilter(f, "s", args, conds)

	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(s.quantity_on_hand), 0),
		       COALESCE(SUM(s.quantity_on_hand * COALESCE(s.price_per_unit, 0)), 0),
		       COUNT(*) FILTER (WHERE s.min_threshold IS NOT NULL AND s.quantity_on_hand <= s.min_threshold),
		       COUNT(*) FILTER (WHERE s.quantity_on_hand = 0)
		FROM stock_snapshots s
		JOIN materials m ON m.id = s.item_id
		WHERE ` + strings.Join(conds, " AND ")

	var sum repository.DomainSummary
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&sum.TotalItems, &sum.TotalOnHand, &sum.TotalValue,
		&sum.LowStockCount, &sum.StockoutCount,
	)
	if err != nil {
		return nil, fmt.Errorf("material summary: %w", err)
	}

	args = []any{entity.ItemTypeMaterial}
	conds = []string{"l.item_type = $1"}
	args, conds = materialFilter(f, "l", args, conds)
	args, conds = dateFilter(f, "l", args, conds)

	flowQuery := `
		SELECT COALESCE(SUM(CASE WHEN l.quantity_change > 0 THEN l.quantity_change ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN l.quantity_change < 0 THEN -l.quantity_change ELSE 0 END), 0)
		FROM inventory_ledger l
		JOIN materials m ON m.id = l.item_id
		WHERE ` + strings.Join(conds, " AND ")

	err = r.q.QueryRow(ctx, flowQuery, args...).Scan(&sum.IncomingQty, &sum.OutgoingQty)
	if err != nil {
		return nil, fmt.Errorf("material flow summary: %w", err)
	}
	return &sum, nil
}

// ListTransactions lists material ledger rows joined with names, newest first.
func (r *MaterialInventoryRepo) ListTransactions(ctx context.Context, f repository.InventoryFilter) ([]repository.TransactionRow, error) {
	args := []any{entity.ItemTypeMaterial}
	conds := []string{"l.item_type = $1"}
	args, conds = materialFilter(f, "l", args, conds)
	args, conds = dateFilter(f, "l", args, conds)
	if len(f.Types) > 0 {
		conds = append(conds, fmt.Sprintf("l.transaction_type = ANY($%d)", len(args)+1))
		args = append(args, f.Types)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT l.id, l.item_type, l.item_id, l.warehouse_id, l.transaction_type,
		       l.quantity_change, l.before_qty, l.after_qty, l.unit,
		       l.reference_type, l.reference_id, l.note, l.created_at, l.created_by,
		       m.name, COALESCE(w.name, '')
		FROM inventory_ledger l
		JOIN materials m  ON m.id = l.item_id
		LEFT JOIN warehouses w ON w.id = l.warehouse_id
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY l.created_at DESC
		LIMIT ` + fmt.Sprintf("$%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, f.Offset)

	return scanTransactionRows(ctx, r.q, query, args)
}

// ListLowStock materials at or below their threshold, deepest deficit first.
func (r *MaterialInventoryRepo) ListLowStock(ctx context.Context, f repository.InventoryFilter, limit int) ([]repository.LowStockRow, error) {
	args := []any{entity.ItemTypeMaterial}
	conds := []string{"s.item_type = $1", "s.min_threshold IS NOT NULL", "s.quantity_on_hand <= s.min_threshold"}
	args, conds = materialFilter(f, "s", args, conds)
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT s.item_id, m.name, s.warehouse_id, COALESCE(w.name, ''),
		       s.quantity_on_hand, s.min_threshold, s.price_per_unit, s.unit,
		       COALESCE(m.status, '')
		FROM stock_snapshots s
		JOIN materials m  ON m.id = s.item_id
		LEFT JOIN warehouses w ON w.id = s.warehouse_id
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY (s.quantity_on_hand - s.min_threshold) ASC
		LIMIT ` + fmt.Sprintf("$%d", len(args)+1)
	args = append(args, limit)

	return scanLowStockRows(ctx, r.q, query, args)
}

// ListReceipts supplier-receipt rows labeled with the supplier name.
func (r *MaterialInventoryRepo) ListReceipts(ctx context.Context, f repository.InventoryFilter) ([]repository.ActivityRow, error) {
	args := []any{entity.ItemTypeMaterial, entity.TxSupplierReceipt}
	conds := []string{"l.item_type = $1", "l.transaction_type = $2"}
	args, conds = materialFilter(f, "l", args, conds)
	args, conds = dateFilter(f, "l", args, conds)

	query := `
		SELECT l.created_at, COALESCE(sup.name, ''), l.quantity_change
		FROM inventory_ledger l
		JOIN materials m ON m.id = l.item_id
		LEFT JOIN suppliers sup ON sup.id = m.supplier_id
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY l.created_at`

	return scanActivityRows(ctx, r.q, query, args)
}

// ListMovementEvents signed quantity changes in range for the in/out/net series.
func (r *MaterialInventoryRepo) ListMovementEvents(ctx context.Context, f repository.InventoryFilter) ([]repository.ActivityRow, error) {
	args := []any{entity.ItemTypeMaterial}
	conds := []string{"l.item_type = $1"}
	args, conds = materialFilter(f, "l", args, conds)
	args, conds = dateFilter(f, "l", args, conds)

	query := `
		SELECT l.created_at, l.transaction_type, l.quantity_change
		FROM inventory_ledger l
		JOIN materials m ON m.id = l.item_id
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY l.created_at`

	return scanActivityRows(ctx, r.q, query, args)
}

// ── shared row scanners ──────────────────────────────────────────────────────

func scanTransactionRows(ctx context.Context, q Querier, query string, args []any) ([]repository.TransactionRow, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var list []repository.TransactionRow
	for rows.Next() {
		var row repository.TransactionRow
		var createdBy *string
		if err := rows.Scan(
			&row.Entry.ID, &row.Entry.ItemType, &row.Entry.ItemID, &row.Entry.WarehouseID,
			&row.Entry.Type, &row.Entry.QuantityChange, &row.Entry.BeforeQty, &row.Entry.AfterQty,
			&row.Entry.Unit, &row.Entry.ReferenceType, &row.Entry.ReferenceID, &row.Entry.Note,
			&row.Entry.CreatedAt, &createdBy, &row.ItemName, &row.WarehouseName,
		); err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		if createdBy != nil {
			row.Entry.CreatedBy = *createdBy
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

func scanLowStockRows(ctx context.Context, q Querier, query string, args []any) ([]repository.LowStockRow, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()

	var list []repository.LowStockRow
	for rows.Next() {
		var row repository.LowStockRow
		if err := rows.Scan(
			&row.ItemID, &row.ItemName, &row.WarehouseID, &row.WarehouseName,
			&row.QuantityOnHand, &row.MinThreshold, &row.PricePerUnit, &row.Unit,
			&row.NativeStatus,
		); err != nil {
			return nil, fmt.Errorf("scan low stock row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

func scanActivityRows(ctx context.Context, q Querier, query string, args []any) ([]repository.ActivityRow, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list activity rows: %w", err)
	}
	defer rows.Close()

	var list []repository.ActivityRow
	for rows.Next() {
		var row repository.ActivityRow
		if err := rows.Scan(&row.When, &row.Label, &row.Quantity); err != nil {
			return nil, fmt.Errorf("scan activity row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
