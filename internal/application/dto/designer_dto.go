package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DesignerMaterialDTO one record in a designer's personal material stash.
type DesignerMaterialDTO struct {
	ID           string          `json:"id"`
	DesignerID   int64           `json:"designer_id"`
	MaterialID   int64           `json:"material_id"`
	MaterialName string          `json:"material_name"`
	Category     string          `json:"category"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Status       string          `json:"status"` // in_stock | low_stock | out_of_stock
	LastBuyDate  time.Time       `json:"last_buy_date"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// SaveDesignerMaterialRequest body for create/update of a stash record.
// Status accepts native variants ("In Stock", "out_of_stock"); it is folded
// into the closed enum at the boundary.
type SaveDesignerMaterialRequest struct {
	DesignerID   int64           `json:"designer_id"`
	MaterialID   int64           `json:"material_id"`
	MaterialName string          `json:"material_name"`
	Category     string          `json:"category"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Status       string          `json:"status"`
	LastBuyDate  *time.Time      `json:"last_buy_date"`
}
