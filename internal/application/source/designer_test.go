package source_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecothreads/marketplace-api/internal/application/source"
	"github.com/ecothreads/marketplace-api/internal/domain/entity"
	"github.com/ecothreads/marketplace-api/internal/domain/repository"
)

// stubStashRepo serves a fixed record set.
type stubStashRepo struct {
	records []*entity.DesignerMaterialInventory
}

func (r *stubStashRepo) Create(context.Context, *entity.DesignerMaterialInventory) error { return nil }
func (r *stubStashRepo) Update(context.Context, *entity.DesignerMaterialInventory) error { return nil }
func (r *stubStashRepo) Delete(context.Context, string) error                            { return nil }
func (r *stubStashRepo) GetByID(context.Context, string) (*entity.DesignerMaterialInventory, error) {
	return nil, nil
}

func (r *stubStashRepo) List(context.Context, int, int) ([]*entity.DesignerMaterialInventory, error) {
	return r.records, nil
}

func (r *stubStashRepo) ListByDesigner(_ context.Context, designerID int64) ([]*entity.DesignerMaterialInventory, error) {
	var out []*entity.DesignerMaterialInventory
	for _, rec := range r.records {
		if rec.DesignerID == designerID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func stashRecord(id string, designerID int64, name, category string, qty int64, status entity.StashStatus, bought time.Time) *entity.DesignerMaterialInventory {
	return &entity.DesignerMaterialInventory{
		ID:           id,
		DesignerID:   designerID,
		MaterialID:   designerID*100 + qty,
		MaterialName: name,
		Category:     category,
		Quantity:     decimal.NewFromInt(qty),
		Unit:         "m",
		PricePerUnit: decimal.NewFromInt(4),
		Status:       status,
		LastBuyDate:  bought,
		CreatedAt:    bought,
	}
}

func TestDesignerStash_TransactionsSynthesizedFromZero(t *testing.T) {
	bought := time.Date(2026, time.May, 12, 0, 0, 0, 0, time.UTC)
	repo := &stubStashRepo{records: []*entity.DesignerMaterialInventory{
		stashRecord("rec-1", 1, "organic cotton", "cotton", 30, entity.StashInStock, bought),
	}}
	src := source.NewDesignerStashSource(repo)

	views, err := src.Transactions(context.Background(), repository.InventoryFilter{})

	require.NoError(t, err)
	require.Len(t, views, 1)
	tx := views[0]
	assert.Equal(t, entity.TxPurchase, tx.TransactionType)
	assert.True(t, tx.BeforeQty.IsZero(), "the stash has no history, every purchase starts from zero")
	assert.True(t, decimal.NewFromInt(30).Equal(tx.AfterQty))
	assert.Equal(t, entity.RefManual, tx.ReferenceType)
	assert.Equal(t, "rec-1", tx.ReferenceID)
	assert.Equal(t, bought, tx.CreatedAt)
}

func TestDesignerStash_TransactionsFilteredByDateRange(t *testing.T) {
	repo := &stubStashRepo{records: []*entity.DesignerMaterialInventory{
		stashRecord("rec-1", 1, "cotton", "cotton", 10, entity.StashInStock, time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)),
		stashRecord("rec-2", 1, "denim", "denim", 20, entity.StashInStock, time.Date(2026, time.June, 5, 0, 0, 0, 0, time.UTC)),
	}}
	src := source.NewDesignerStashSource(repo)

	from := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	views, err := src.Transactions(context.Background(), repository.InventoryFilter{From: &from})

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "denim", views[0].ItemName)
}

func TestDesignerStash_LowStockUsesStatusAndZeroQuantity(t *testing.T) {
	now := time.Now()
	repo := &stubStashRepo{records: []*entity.DesignerMaterialInventory{
		stashRecord("rec-1", 1, "cotton", "cotton", 30, entity.StashInStock, now),
		stashRecord("rec-2", 1, "denim", "denim", 3, entity.StashLowStock, now),
		stashRecord("rec-3", 1, "hemp", "hemp", 0, entity.StashOutOfStock, now),
	}}
	src := source.NewDesignerStashSource(repo)

	views, err := src.LowStock(context.Background(), repository.InventoryFilter{}, 10)

	require.NoError(t, err)
	require.Len(t, views, 2, "healthy in-stock records are excluded")
	assert.Equal(t, "denim", views[0].ItemName)
	assert.False(t, views[0].Stockout)
	assert.True(t, views[0].MinThreshold.IsZero(), "the stash has no thresholds, zero is substituted")
	assert.Equal(t, "hemp", views[1].ItemName)
	assert.True(t, views[1].Stockout)
}

func TestDesignerStash_ActivityIsCategoryBreakdown(t *testing.T) {
	now := time.Now()
	repo := &stubStashRepo{records: []*entity.DesignerMaterialInventory{
		stashRecord("rec-1", 1, "organic cotton", "cotton", 30, entity.StashInStock, now),
		stashRecord("rec-2", 1, "cotton jersey", "cotton", 10, entity.StashInStock, now),
		stashRecord("rec-3", 2, "raw denim", "denim", 15, entity.StashInStock, now),
	}}
	src := source.NewDesignerStashSource(repo)

	series, err := src.Activity(context.Background(), repository.InventoryFilter{})

	require.NoError(t, err)
	assert.Equal(t, "category", series.Kind)
	require.Len(t, series.Points, 2)
	assert.Equal(t, "cotton", series.Points[0].Label)
	assert.True(t, decimal.NewFromInt(40).Equal(series.Points[0].Quantity))
	assert.Equal(t, "denim", series.Points[1].Label)
}

func TestDesignerStash_SummaryCountsFlags(t *testing.T) {
	now := time.Now()
	repo := &stubStashRepo{records: []*entity.DesignerMaterialInventory{
		stashRecord("rec-1", 1, "cotton", "cotton", 30, entity.StashInStock, now),
		stashRecord("rec-2", 1, "denim", "denim", 3, entity.StashLowStock, now),
		stashRecord("rec-3", 2, "hemp", "hemp", 0, entity.StashOutOfStock, now),
	}}
	src := source.NewDesignerStashSource(repo)

	view, err := src.Summary(context.Background(), repository.InventoryFilter{})

	require.NoError(t, err)
	assert.Equal(t, 3, view.TotalItems)
	assert.True(t, decimal.NewFromInt(33).Equal(view.TotalOnHand))
	assert.True(t, decimal.NewFromInt(132).Equal(view.TotalValue))
	assert.Equal(t, 2, view.LowStockCount)
	assert.Equal(t, 1, view.StockoutCount)
}

func TestDesignerStash_DesignerFilterRestrictsRecords(t *testing.T) {
	now := time.Now()
	repo := &stubStashRepo{records: []*entity.DesignerMaterialInventory{
		stashRecord("rec-1", 1, "cotton", "cotton", 30, entity.StashInStock, now),
		stashRecord("rec-2", 2, "denim", "denim", 15, entity.StashInStock, now),
	}}
	src := source.NewDesignerStashSource(repo)

	designerID := int64(2)
	views, err := src.Transactions(context.Background(), repository.InventoryFilter{DesignerID: &designerID})

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "denim", views[0].ItemName)
}
