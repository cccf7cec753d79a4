package entity

// MaterialStatus closed status set for supplier materials. Native rows carry
// free-form strings ("In Stock", "out_of_stock"...); NormalizeMaterialStatus
// folds them into this set at the adapter boundary.
type MaterialStatus string

const (
	MaterialInStock    MaterialStatus = "in_stock"
	MaterialLowStock   MaterialStatus = "low_stock"
	MaterialOutOfStock MaterialStatus = "out_of_stock"
)

// NormalizeMaterialStatus maps a native status string to the closed enum.
// Unknown or empty values default to in_stock; these are best-effort dashboard
// views, not authoritative state.
func NormalizeMaterialStatus(s string) MaterialStatus {
	switch normalizeStatusKey(s) {
	case "lowstock":
		return MaterialLowStock
	case "outofstock", "stockout":
		return MaterialOutOfStock
	default:
		return MaterialInStock
	}
}
