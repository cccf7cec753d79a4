package repository

import "context"

// ProductInventoryRepository read queries over the finished-product warehouses.
// Implementations are read-only.
type ProductInventoryRepository interface {
	GetSummary(ctx context.Context, f InventoryFilter) (*DomainSummary, error)
	ListTransactions(ctx context.Context, f InventoryFilter) ([]TransactionRow, error)
	ListLowStock(ctx context.Context, f InventoryFilter, limit int) ([]LowStockRow, error)
	// ListProductionEvents returns signed product quantity changes in the range
	// (production completions positive, sales negative) for the production
	// timeline chart.
	ListProductionEvents(ctx context.Context, f InventoryFilter) ([]ActivityRow, error)
	// ListSalesByDesign groups sold units per design for the popularity breakdown.
	ListSalesByDesign(ctx context.Context, f InventoryFilter) ([]DesignSalesRow, error)
}
