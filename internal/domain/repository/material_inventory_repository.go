package repository

import "context"

// MaterialInventoryRepository read queries over the supplier material warehouses.
// Implementations are read-only.
type MaterialInventoryRepository interface {
	GetSummary(ctx context.Context, f InventoryFilter) (*DomainSummary, error)
	ListTransactions(ctx context.Context, f InventoryFilter) ([]TransactionRow, error)
	// ListLowStock returns materials at or below their threshold ordered by
	// ascending difference (deepest below threshold first).
	ListLowStock(ctx context.Context, f InventoryFilter, limit int) ([]LowStockRow, error)
	// ListReceipts returns supplier-receipt ledger rows labeled with the
	// supplier name, for the receipts-by-supplier chart.
	ListReceipts(ctx context.Context, f InventoryFilter) ([]ActivityRow, error)
	// ListMovementEvents returns signed quantity changes in the range, for the
	// daily in/out/net series.
	ListMovementEvents(ctx context.Context, f InventoryFilter) ([]ActivityRow, error)
}
