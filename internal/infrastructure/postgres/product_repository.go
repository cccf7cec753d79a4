package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/ecothreads/marketplace-api/internal/domain/entity"
	"github.com/ecothreads/marketplace-api/internal/domain/repository"
)

var _ repository.ProductInventoryRepository = (*ProductInventoryRepo)(nil)

// ProductInventoryRepo read-only queries over finished product stock.
type ProductInventoryRepo struct {
	q Querier
}

// NewProductInventoryRepository builds the adapter.
func NewProductInventoryRepository(q Querier) *ProductInventoryRepo {
	return &ProductInventoryRepo{q: q}
}

func productFilter(f repository.InventoryFilter, alias string, args []any, conds []string) ([]any, []string) {
	pos := len(args) + 1
	if f.DesignerID != nil {
		conds = append(conds, fmt.Sprintf("p.designer_id = $%d", pos))
		args = append(args, *f.DesignerID)
		pos++
	}
	if f.WarehouseID != nil {
		conds = append(conds, fmt.Sprintf("%s.warehouse_id = $%d", alias, pos))
		args = append(args, *f.WarehouseID)
		pos++
	}
	if f.ItemID != nil {
		conds = append(conds, fmt.Sprintf("%s.item_id = $%d", alias, pos))
		args = append(args, *f.ItemID)
		pos++
	}
	return args, conds
}

// GetSummary aggregates product snapshot totals plus in/out flow over the range.
func (r *ProductInventoryRepo) GetSummary(ctx context.Context, f repository.InventoryFilter) (*repository.DomainSummary, error) {
	args := []any{entity.ItemTypeProduct}
	conds := []string{"s.item_type = $1"}
	args, conds = productFilter(f, "s", args, conds)

	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(s.quantity_on_hand), 0),
		       COALESCE(SUM(s.quantity_on_hand * COALESCE(s.price_per_unit, 0)), 0),
		       COUNT(*) FILTER (WHERE s.min_threshold IS NOT NULL AND s.quantity_on_hand <= s.min_threshold),
		       COUNT(*) FILTER (WHERE s.quantity_on_hand = 0)
		FROM stock_snapshots s
		JOIN products p ON p.id = s.item_id
		WHERE ` + strings.Join(conds, " AND ")

	var sum repository.DomainSummary
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&sum.TotalItems, &sum.TotalOnHand, &sum.TotalValue,
		&sum.LowStockCount, &sum.StockoutCount,
	)
	if err != nil {
		return nil, fmt.Errorf("product summary: %w", err)
	}

	args = []any{entity.ItemTypeProduct}
	conds = []string{"l.item_type = $1"}
	args, conds = productFilter(f, "l", args, conds)
	args, conds = dateFilter(f, "l", args, conds)

	flowQuery := `
		SELECT COALESCE(SUM(CASE WHEN l.quantity_change > 0 THEN l.quantity_change ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN l.quantity_change < 0 THEN -l.quantity_change ELSE 0 END), 0)
		FROM inventory_ledger l
		JOIN products p ON p.id = l.item_id
		WHERE ` + strings.Join(conds, " AND ")

	err = r.q.QueryRow(ctx, flowQuery, args...).Scan(&sum.IncomingQty, &sum.OutgoingQty)
	if err != nil {
		return nil, fmt.Errorf("product flow summary: %w", err)
	}
	return &sum, nil
}

// ListTransactions product ledger rows joined with product names, newest first.
func (r *ProductInventoryRepo) ListTransactions(ctx context.Context, f repository.InventoryFilter) ([]repository.TransactionRow, error) {
	args := []any{entity.ItemTypeProduct}
	conds := []string{"l.item_type = $1"}
	args, conds = productFilter(f, "l", args, conds)
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
		       p.name, COALESCE(w.name, '')
		FROM inventory_ledger l
		JOIN products p   ON p.id = l.item_id
		LEFT JOIN warehouses w ON w.id = l.warehouse_id
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY l.created_at DESC
		LIMIT ` + fmt.Sprintf("$%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, f.Offset)

	return scanTransactionRows(ctx, r.q, query, args)
}

// ListLowStock products at or below their threshold, deepest deficit first.
func (r *ProductInventoryRepo) ListLowStock(ctx context.Context, f repository.InventoryFilter, limit int) ([]repository.LowStockRow, error) {
	args := []any{entity.ItemTypeProduct}
	conds := []string{"s.item_type = $1", "s.min_threshold IS NOT NULL", "s.quantity_on_hand <= s.min_threshold"}
	args, conds = productFilter(f, "s", args, conds)
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT s.item_id, p.name, s.warehouse_id, COALESCE(w.name, ''),
		       s.quantity_on_hand, s.min_threshold, s.price_per_unit, s.unit,
		       COALESCE(p.status, '')
		FROM stock_snapshots s
		JOIN products p   ON p.id = s.item_id
		LEFT JOIN warehouses w ON w.id = s.warehouse_id
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY (s.quantity_on_hand - s.min_threshold) ASC
		LIMIT ` + fmt.Sprintf("$%d", len(args)+1)
	args = append(args, limit)

	return scanLowStockRows(ctx, r.q, query, args)
}

// ListProductionEvents signed quantity changes for the production series.
// Positive rows are finished goods coming in, negative rows leaving.
func (r *ProductInventoryRepo) ListProductionEvents(ctx context.Context, f repository.InventoryFilter) ([]repository.ActivityRow, error) {
	args := []any{entity.ItemTypeProduct}
	conds := []string{"l.item_type = $1"}
	args, conds = productFilter(f, "l", args, conds)
	args, conds = dateFilter(f, "l", args, conds)

	query := `
		SELECT l.created_at, l.transaction_type, l.quantity_change
		FROM inventory_ledger l
		JOIN products p ON p.id = l.item_id
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY l.created_at`

	return scanActivityRows(ctx, r.q, query, args)
}

// ListSalesByDesign units sold per design over the range, best sellers first.
func (r *ProductInventoryRepo) ListSalesByDesign(ctx context.Context, f repository.InventoryFilter) ([]repository.DesignSalesRow, error) {
	args := []any{entity.ItemTypeProduct, entity.TxCustomerSale}
	conds := []string{"l.item_type = $1", "l.transaction_type = $2"}
	args, conds = productFilter(f, "l", args, conds)
	args, conds = dateFilter(f, "l", args, conds)
	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT p.design_id, p.design_name,
		       COALESCE(SUM(-l.quantity_change), 0) AS units_sold,
		       COUNT(*) AS orders
		FROM inventory_ledger l
		JOIN products p ON p.id = l.item_id
		WHERE ` + strings.Join(conds, " AND ") + `
		GROUP BY p.design_id, p.design_name
		ORDER BY units_sold DESC
		LIMIT ` + fmt.Sprintf("$%d", len(args)+1)
	args = append(args, limit)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sales by design: %w", err)
	}
	defer rows.Close()

	var list []repository.DesignSalesRow
	for rows.Next() {
		var row repository.DesignSalesRow
		if err := rows.Scan(&row.DesignID, &row.DesignName, &row.UnitsSold, &row.Orders); err != nil {
			return nil, fmt.Errorf("scan design sales row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
