package http

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecothreads/marketplace-api/internal/domain"
	"github.com/ecothreads/marketplace-api/internal/domain/repository"
)

// filterFor runs parseFilter against a real request so fiber owns the query parsing.
func filterFor(t *testing.T, target string) (repository.InventoryFilter, error) {
	t.Helper()
	app := fiber.New()
	var got repository.InventoryFilter
	var gotErr error
	app.Get("/q", func(c *fiber.Ctx) error {
		got, gotErr = parseFilter(c)
		return c.SendStatus(fiber.StatusOK)
	})
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	return got, gotErr
}

func TestParseFilter_DocumentedParameterNames(t *testing.T) {
	f, err := filterFor(t, "/q?from=2026-03-01&to=2026-03-31&supplier_id=4&warehouse_id=2&material_id=77")

	require.NoError(t, err)
	require.NotNil(t, f.From)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *f.From)
	require.NotNil(t, f.To)
	assert.Equal(t, 31, f.To.Day(), "to date must stay inside March")
	assert.Equal(t, 23, f.To.Hour(), "to date must be widened to end of day")
	require.NotNil(t, f.SupplierID)
	assert.Equal(t, int64(4), *f.SupplierID)
	require.NotNil(t, f.WarehouseID)
	assert.Equal(t, int64(2), *f.WarehouseID)
	require.NotNil(t, f.ItemID)
	assert.Equal(t, int64(77), *f.ItemID)
}

func TestParseFilter_LegacyDateAliases(t *testing.T) {
	f, err := filterFor(t, "/q?start_date=2026-03-01&end_date=2026-03-02&item_id=5")

	require.NoError(t, err)
	require.NotNil(t, f.From)
	require.NotNil(t, f.To)
	require.NotNil(t, f.ItemID)
	assert.Equal(t, int64(5), *f.ItemID)
}

func TestParseFilter_ProductIDAlias(t *testing.T) {
	f, err := filterFor(t, "/q?product_id=12")

	require.NoError(t, err)
	require.NotNil(t, f.ItemID)
	assert.Equal(t, int64(12), *f.ItemID)
}

func TestParseFilter_ReversedRangeRejected(t *testing.T) {
	_, err := filterFor(t, "/q?from=2026-03-31&to=2026-03-01")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseFilter_NonPositiveIDRejected(t *testing.T) {
	_, err := filterFor(t, "/q?material_id=0")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
