package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemType tags which warehouse domain an item belongs to.
// Every unified DTO carries it so callers on an "all" aggregate can still
// tell provenance per row.
type ItemType string

const (
	ItemTypeMaterial         ItemType = "material"
	ItemTypeProduct          ItemType = "product"
	ItemTypeDesignerMaterial ItemType = "designer-material"
)

// TransactionType classifies a stock mutation.
const (
	TxSupplierReceipt  = "SUPPLIER_RECEIPT"  // material intake from a purchase order
	TxCustomerSale     = "CUSTOMER_SALE"     // outbound sale
	TxProductionUse    = "PRODUCTION_USE"    // material consumed by a production order
	TxManualAdjustment = "MANUAL_ADJUSTMENT" // corrective entry, may clamp to zero
	TxPurchase         = "PURCHASE"          // designer personal purchase
)

// ValidTransactionType reports whether t is one of the closed set of types.
func ValidTransactionType(t string) bool {
	switch t {
	case TxSupplierReceipt, TxCustomerSale, TxProductionUse, TxManualAdjustment, TxPurchase:
		return true
	}
	return false
}

// Reference types linking an entry to its originating document.
const (
	RefPurchaseOrder   = "PurchaseOrder"
	RefSalesOrder      = "SalesOrder"
	RefProductionOrder = "ProductionOrder"
	RefManual          = "Manual"
)

// LedgerEntry is one immutable record of a stock-quantity change.
// Entries are never updated or deleted; replaying them in creation order
// from zero reconstructs the current snapshot for the key.
type LedgerEntry struct {
	ID             string
	ItemType       ItemType
	ItemID         int64
	WarehouseID    int64
	Type           string
	QuantityChange decimal.Decimal // signed; unit-consistent
	BeforeQty      decimal.Decimal
	AfterQty       decimal.Decimal
	Unit           string
	ReferenceType  string
	ReferenceID    string
	Note           string
	CreatedAt      time.Time
	CreatedBy      string // optional user id
}
