package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecothreads/marketplace-api/internal/domain/entity"
)

// InventoryFilter narrows domain inventory queries. Nil pointers mean "no filter".
type InventoryFilter struct {
	From           *time.Time
	To             *time.Time
	SupplierID     *int64
	DesignerID     *int64
	WarehouseID    *int64
	ItemID         *int64
	MaterialTypeID *int64
	Types          []string // transaction types
	Limit          int
	Offset         int
}

// DomainSummary raw aggregate produced by the DB; the adapter converts it into
// the unified summary DTO.
type DomainSummary struct {
	TotalItems    int
	TotalOnHand   decimal.Decimal
	TotalValue    decimal.Decimal
	IncomingQty   decimal.Decimal // positive changes within the range
	OutgoingQty   decimal.Decimal // absolute value of negative changes
	LowStockCount int
	StockoutCount int
}

// TransactionRow is a ledger entry joined with item and warehouse names.
type TransactionRow struct {
	Entry         entity.LedgerEntry
	ItemName      string
	WarehouseName string
}

// LowStockRow is a snapshot at or below its threshold, joined with names.
// PricePerUnit is nil when the native row has no cost; adapters substitute zero.
// NativeStatus carries the item row's free-form status string; adapters fold it
// into the closed enums.
type LowStockRow struct {
	ItemID         int64
	ItemName       string
	WarehouseID    int64
	WarehouseName  string
	QuantityOnHand decimal.Decimal
	MinThreshold   decimal.Decimal
	PricePerUnit   *decimal.Decimal
	Unit           string
	NativeStatus   string
}

// ActivityRow is one dated, labeled quantity for chart aggregation.
type ActivityRow struct {
	When     time.Time
	Label    string
	Quantity decimal.Decimal
}

// DesignSalesRow units sold per design (design-popularity breakdown).
type DesignSalesRow struct {
	DesignID   int64
	DesignName string
	UnitsSold  decimal.Decimal
	Orders     int
}
