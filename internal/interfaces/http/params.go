package http

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ecothreads/marketplace-api/internal/application/dto"
	"github.com/ecothreads/marketplace-api/internal/domain"
	"github.com/ecothreads/marketplace-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// parseFilter builds the shared inventory filter from query params. Dates use
// YYYY-MM-DD ("from"/"to", with "start_date"/"end_date" kept as aliases); the
// "to" date is widened to the end of its day so a same-day range still matches
// rows created during that day. The item filter answers to the domain-specific
// names ("material_id", "product_id") as well as the generic "item_id".
func parseFilter(c *fiber.Ctx) (repository.InventoryFilter, error) {
	var f repository.InventoryFilter

	if s := firstQuery(c, "from", "start_date"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return f, domain.ErrInvalidInput
		}
		f.From = &t
	}
	if s := firstQuery(c, "to", "end_date"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return f, domain.ErrInvalidInput
		}
		end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		f.To = &end
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return f, domain.ErrInvalidInput
	}

	var err error
	if f.SupplierID, err = queryInt64(c, "supplier_id"); err != nil {
		return f, err
	}
	if f.DesignerID, err = queryInt64(c, "designer_id"); err != nil {
		return f, err
	}
	if f.WarehouseID, err = queryInt64(c, "warehouse_id"); err != nil {
		return f, err
	}
	if f.ItemID, err = queryInt64(c, "material_id", "product_id", "item_id"); err != nil {
		return f, err
	}
	if f.MaterialTypeID, err = queryInt64(c, "material_type_id"); err != nil {
		return f, err
	}

	if s := c.Query("types"); s != "" {
		for _, t := range strings.Split(s, ",") {
			if t = strings.TrimSpace(t); t != "" {
				f.Types = append(f.Types, strings.ToUpper(t))
			}
		}
	}

	f.Limit = c.QueryInt("limit", 0)
	f.Offset = c.QueryInt("offset", 0)
	return f, nil
}

func firstQuery(c *fiber.Ctx, names ...string) string {
	for _, n := range names {
		if s := c.Query(n); s != "" {
			return s
		}
	}
	return ""
}

func queryInt64(c *fiber.Ctx, names ...string) (*int64, error) {
	s := firstQuery(c, names...)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return &v, nil
}

// respondError maps domain sentinels to HTTP statuses. Anything unmapped is a
// 500 with the wrapped message.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid input"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "resource not found"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "resource already exists"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "concurrent update conflict"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "insufficient stock"})
	case errors.Is(err, domain.ErrBranchUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "BRANCH_UNAVAILABLE", Message: "analytics branches unavailable"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "access denied"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid credentials"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
