package entity

// ProductStatus closed status set for finished products.
type ProductStatus string

const (
	ProductInStock    ProductStatus = "in_stock"
	ProductLowStock   ProductStatus = "low_stock"
	ProductOutOfStock ProductStatus = "out_of_stock"
)

// NormalizeProductStatus maps a native status string to the closed enum.
func NormalizeProductStatus(s string) ProductStatus {
	switch normalizeStatusKey(s) {
	case "lowstock":
		return ProductLowStock
	case "outofstock", "stockout":
		return ProductOutOfStock
	default:
		return ProductInStock
	}
}
