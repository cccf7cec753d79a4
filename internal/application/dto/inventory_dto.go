package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnifiedSummaryView is the one summary shape every warehouse domain produces.
// On an "all" aggregate the numeric fields are field-wise sums across branches
// and Degraded lists any branch that failed and was zeroed.
type UnifiedSummaryView struct {
	Scope         string          `json:"scope"`
	TotalItems    int             `json:"total_items"`
	TotalOnHand   decimal.Decimal `json:"total_on_hand"`
	TotalValue    decimal.Decimal `json:"total_value"`
	IncomingQty   decimal.Decimal `json:"incoming_qty"`
	OutgoingQty   decimal.Decimal `json:"outgoing_qty"`
	LowStockCount int             `json:"low_stock_count"`
	StockoutCount int             `json:"stockout_count"`
	Degraded      []string        `json:"degraded,omitempty"` // branches zeroed after a failure
}

// UnifiedTransactionView is one stock movement in the shape shared by all
// domains, tagged with the item type so aggregate callers keep provenance.
type UnifiedTransactionView struct {
	ItemType        string          `json:"item_type"` // material | product | designer-material
	ItemID          int64           `json:"item_id"`
	ItemName        string          `json:"item_name"`
	WarehouseID     int64           `json:"warehouse_id,omitempty"`
	WarehouseName   string          `json:"warehouse_name,omitempty"`
	TransactionType string          `json:"transaction_type"`
	QuantityChange  decimal.Decimal `json:"quantity_change"`
	BeforeQty       decimal.Decimal `json:"before_qty"`
	AfterQty        decimal.Decimal `json:"after_qty"`
	Unit            string          `json:"unit"`
	ReferenceType   string          `json:"reference_type,omitempty"`
	ReferenceID     string          `json:"reference_id,omitempty"`
	Note            string          `json:"note,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// LowStockItemView is an item at or below its configured threshold.
// Difference = quantity_on_hand - min_threshold (negative or zero).
type LowStockItemView struct {
	ItemType       string          `json:"item_type"`
	ItemID         int64           `json:"item_id"`
	ItemName       string          `json:"item_name"`
	WarehouseID    int64           `json:"warehouse_id,omitempty"`
	WarehouseName  string          `json:"warehouse_name,omitempty"`
	QuantityOnHand decimal.Decimal `json:"quantity_on_hand"`
	MinThreshold   decimal.Decimal `json:"min_threshold"`
	Difference     decimal.Decimal `json:"difference"`
	PricePerUnit   decimal.Decimal `json:"price_per_unit"`
	EstimatedValue decimal.Decimal `json:"estimated_value"`
	Unit           string          `json:"unit"`
	Status         string          `json:"status"` // closed enum: in_stock | low_stock | out_of_stock
	Stockout       bool            `json:"stockout"`
}

// ActivityPoint one aggregated chart bucket.
type ActivityPoint struct {
	Label    string          `json:"label"` // date ("2006-01-02") or category
	Quantity decimal.Decimal `json:"quantity"`
	Count    int             `json:"count"`
}

// ActivitySeries an adapter's activity contribution. Kind declares whether the
// points are daily buckets or a category breakdown; chart consumers branch on it.
type ActivitySeries struct {
	ItemType string          `json:"item_type"`
	Kind     string          `json:"kind"` // daily | category
	Points   []ActivityPoint `json:"points"`
}

// MovementPoint one day of in/out/net flow for the movements chart.
type MovementPoint struct {
	Date string          `json:"date"`
	In   decimal.Decimal `json:"in"`
	Out  decimal.Decimal `json:"out"`
	Net  decimal.Decimal `json:"net"`
}

// ReceiveMaterialRequest body of POST /api/inventory/materials/receive.
type ReceiveMaterialRequest struct {
	MaterialID  int64           `json:"material_id"`
	WarehouseID int64           `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	// UnitCost blends into the snapshot's price per unit (weighted average).
	UnitCost        *decimal.Decimal `json:"unit_cost,omitempty"`
	PurchaseOrderID string           `json:"purchase_order_id"`
	Note            string           `json:"note"`
}

// RebuildSnapshotRequest body of POST /api/inventory/rebuild (consistency audit).
type RebuildSnapshotRequest struct {
	ItemType    string `json:"item_type"`
	ItemID      int64  `json:"item_id"`
	WarehouseID int64  `json:"warehouse_id"`
}

// RebuildSnapshotResponse outcome of a snapshot rebuild.
type RebuildSnapshotResponse struct {
	ItemType       string          `json:"item_type"`
	ItemID         int64           `json:"item_id"`
	WarehouseID    int64           `json:"warehouse_id"`
	QuantityOnHand decimal.Decimal `json:"quantity_on_hand"`
	Repaired       bool            `json:"repaired"` // snapshot value changed during replay
}
