package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockSnapshot is the materialized current balance for one (itemType, item, warehouse)
// key. QuantityOnHand always equals the AfterQty of the most recent ledger entry; the
// ledger is the source of truth and the snapshot a cache kept in the same transaction.
type StockSnapshot struct {
	ItemType       ItemType
	ItemID         int64
	WarehouseID    int64
	QuantityOnHand decimal.Decimal
	MinThreshold   *decimal.Decimal // nil = no threshold configured
	PricePerUnit   decimal.Decimal
	Unit           string
	LastUpdated    time.Time
}

// IsLowStock reports whether the on-hand quantity is at or below the configured
// threshold. Keys without a threshold are never low-stock.
func (s *StockSnapshot) IsLowStock() bool {
	if s.MinThreshold == nil {
		return false
	}
	return s.QuantityOnHand.LessThanOrEqual(*s.MinThreshold)
}

// IsStockout reports whether the key is completely out of stock.
func (s *StockSnapshot) IsStockout() bool {
	return s.QuantityOnHand.IsZero()
}

// Difference returns quantityOnHand - minThreshold (zero when no threshold is set).
func (s *StockSnapshot) Difference() decimal.Decimal {
	if s.MinThreshold == nil {
		return decimal.Zero
	}
	return s.QuantityOnHand.Sub(*s.MinThreshold)
}

// EstimatedValue returns quantityOnHand * pricePerUnit.
func (s *StockSnapshot) EstimatedValue() decimal.Decimal {
	return s.QuantityOnHand.Mul(s.PricePerUnit)
}
