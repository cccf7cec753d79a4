package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// StashStatus closed status set for a designer's personal material stash.
type StashStatus string

const (
	StashInStock    StashStatus = "in_stock"
	StashLowStock   StashStatus = "low_stock"
	StashOutOfStock StashStatus = "out_of_stock"
)

// NormalizeStashStatus maps a native status string to the closed enum.
func NormalizeStashStatus(s string) StashStatus {
	switch normalizeStatusKey(s) {
	case "lowstock":
		return StashLowStock
	case "outofstock", "stockout":
		return StashOutOfStock
	default:
		return StashInStock
	}
}

// ValidStashStatus reports whether s is already a member of the closed set.
func ValidStashStatus(s string) bool {
	switch StashStatus(s) {
	case StashInStock, StashLowStock, StashOutOfStock:
		return true
	}
	return false
}

// DesignerMaterialInventory is one record in a designer's personal stash.
// This domain has no ledger: the record itself is the current truth, and its
// unified "transaction" is synthesized as a single purchase from zero.
type DesignerMaterialInventory struct {
	ID           string // uuid
	DesignerID   int64
	MaterialID   int64
	MaterialName string
	Category     string
	Quantity     decimal.Decimal
	Unit         string
	PricePerUnit decimal.Decimal
	Status       StashStatus
	LastBuyDate  time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// normalizeStatusKey lowercases and strips separators so "In Stock", "in_stock"
// and "IN-STOCK" compare equal.
func normalizeStatusKey(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
	return s
}
