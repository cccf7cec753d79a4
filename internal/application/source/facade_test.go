package source_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecothreads/marketplace-api/internal/application/dto"
	"github.com/ecothreads/marketplace-api/internal/application/source"
	"github.com/ecothreads/marketplace-api/internal/domain"
	"github.com/ecothreads/marketplace-api/internal/domain/entity"
	"github.com/ecothreads/marketplace-api/internal/domain/repository"
	"github.com/ecothreads/marketplace-api/pkg/logger"
)

// stubSource is a scripted InventorySource: fixed results, optional error,
// optional delay (to trip the per-branch timeout).
type stubSource struct {
	itemType     entity.ItemType
	summary      *dto.UnifiedSummaryView
	transactions []dto.UnifiedTransactionView
	lowStock     []dto.LowStockItemView
	activity     *dto.ActivitySeries
	err          error
	delay        time.Duration
}

func (s *stubSource) ItemType() entity.ItemType { return s.itemType }

func (s *stubSource) wait(ctx context.Context) error {
	if s.delay == 0 {
		return s.err
	}
	select {
	case <-time.After(s.delay):
		return s.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *stubSource) Summary(ctx context.Context, _ repository.InventoryFilter) (*dto.UnifiedSummaryView, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.summary, nil
}

func (s *stubSource) Transactions(ctx context.Context, _ repository.InventoryFilter) ([]dto.UnifiedTransactionView, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.transactions, nil
}

func (s *stubSource) LowStock(ctx context.Context, _ repository.InventoryFilter, _ int) ([]dto.LowStockItemView, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.lowStock, nil
}

func (s *stubSource) Activity(ctx context.Context, _ repository.InventoryFilter) (*dto.ActivitySeries, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.activity, nil
}

func summaryOf(scope string, items int, onHand, value int64) *dto.UnifiedSummaryView {
	return &dto.UnifiedSummaryView{
		Scope:         scope,
		TotalItems:    items,
		TotalOnHand:   decimal.NewFromInt(onHand),
		TotalValue:    decimal.NewFromInt(value),
		IncomingQty:   decimal.NewFromInt(onHand / 10),
		OutgoingQty:   decimal.NewFromInt(onHand / 20),
		LowStockCount: 1,
		StockoutCount: 0,
	}
}

func newTestFacade(material, product, designer source.InventorySource, timeout time.Duration) *source.Facade {
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	return source.NewFacade(material, product, designer, timeout, log)
}

func healthySources() (*stubSource, *stubSource, *stubSource) {
	material := &stubSource{
		itemType: entity.ItemTypeMaterial,
		summary:  summaryOf("material", 10, 1000, 5000),
		activity: &dto.ActivitySeries{ItemType: "material", Kind: "daily"},
	}
	product := &stubSource{
		itemType: entity.ItemTypeProduct,
		summary:  summaryOf("product", 20, 2000, 9000),
		activity: &dto.ActivitySeries{ItemType: "product", Kind: "daily"},
	}
	designer := &stubSource{
		itemType: entity.ItemTypeDesignerMaterial,
		summary:  summaryOf("designer-material", 5, 300, 800),
		activity: &dto.ActivitySeries{ItemType: "designer-material", Kind: "category"},
	}
	return material, product, designer
}

// ──────────────────────────────────────────────────────────────────────────────
// Summary
// ──────────────────────────────────────────────────────────────────────────────

func TestFacadeSummary_AllScope_FieldWiseSum(t *testing.T) {
	material, product, designer := healthySources()
	f := newTestFacade(material, product, designer, time.Second)

	view, err := f.Summary(context.Background(), source.ScopeAll, repository.InventoryFilter{})

	require.NoError(t, err)
	assert.Equal(t, "all", view.Scope)
	assert.Equal(t, 35, view.TotalItems)
	assert.True(t, decimal.NewFromInt(3300).Equal(view.TotalOnHand))
	assert.True(t, decimal.NewFromInt(14800).Equal(view.TotalValue))
	assert.Equal(t, 3, view.LowStockCount)
	assert.Empty(t, view.Degraded)
}

func TestFacadeSummary_FailedBranchZeroedAndListed(t *testing.T) {
	material, product, designer := healthySources()
	product.err = errors.New("connection refused")
	f := newTestFacade(material, product, designer, time.Second)

	view, err := f.Summary(context.Background(), source.ScopeAll, repository.InventoryFilter{})

	require.NoError(t, err, "a single failed branch must not fail the aggregate")
	assert.Equal(t, 15, view.TotalItems, "only material and designer contribute")
	assert.True(t, decimal.NewFromInt(1300).Equal(view.TotalOnHand))
	assert.Equal(t, []string{"product"}, view.Degraded)
}

func TestFacadeSummary_AllBranchesFailed(t *testing.T) {
	material, product, designer := healthySources()
	material.err = errors.New("down")
	product.err = errors.New("down")
	designer.err = errors.New("down")
	f := newTestFacade(material, product, designer, time.Second)

	_, err := f.Summary(context.Background(), source.ScopeAll, repository.InventoryFilter{})

	assert.ErrorIs(t, err, domain.ErrBranchUnavailable)
}

func TestFacadeSummary_SingleScope_PropagatesError(t *testing.T) {
	material, product, designer := healthySources()
	boom := errors.New("query failed")
	product.err = boom
	f := newTestFacade(material, product, designer, time.Second)

	_, err := f.Summary(context.Background(), source.ScopeProduct, repository.InventoryFilter{})

	assert.ErrorIs(t, err, boom, "single-scope queries have no fallback and surface the error")
}

func TestFacadeSummary_SlowBranchTimesOutAndDegrades(t *testing.T) {
	material, product, designer := healthySources()
	designer.delay = 300 * time.Millisecond
	f := newTestFacade(material, product, designer, 30*time.Millisecond)

	start := time.Now()
	view, err := f.Summary(context.Background(), source.ScopeAll, repository.InventoryFilter{})

	require.NoError(t, err)
	assert.Less(t, time.Since(start), 250*time.Millisecond, "the aggregate must not wait for the slow branch")
	assert.Equal(t, []string{"designer-material"}, view.Degraded)
	assert.Equal(t, 30, view.TotalItems)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transactions / LowStock merging
// ──────────────────────────────────────────────────────────────────────────────

func TestFacadeTransactions_MergedNewestFirst(t *testing.T) {
	material, product, designer := healthySources()
	now := time.Now()
	material.transactions = []dto.UnifiedTransactionView{
		{ItemType: "material", CreatedAt: now.Add(-2 * time.Hour)},
	}
	product.transactions = []dto.UnifiedTransactionView{
		{ItemType: "product", CreatedAt: now.Add(-1 * time.Hour)},
	}
	designer.transactions = []dto.UnifiedTransactionView{
		{ItemType: "designer-material", CreatedAt: now.Add(-3 * time.Hour)},
	}
	f := newTestFacade(material, product, designer, time.Second)

	views, degraded, err := f.Transactions(context.Background(), source.ScopeAll, repository.InventoryFilter{})

	require.NoError(t, err)
	assert.Empty(t, degraded)
	require.Len(t, views, 3)
	assert.Equal(t, "product", views[0].ItemType)
	assert.Equal(t, "material", views[1].ItemType)
	assert.Equal(t, "designer-material", views[2].ItemType)
}

func TestFacadeTransactions_LimitAppliedAfterMerge(t *testing.T) {
	material, product, designer := healthySources()
	now := time.Now()
	for i := 0; i < 5; i++ {
		material.transactions = append(material.transactions, dto.UnifiedTransactionView{
			ItemType: "material", CreatedAt: now.Add(-time.Duration(i) * time.Minute),
		})
	}
	f := newTestFacade(material, product, designer, time.Second)

	views, _, err := f.Transactions(context.Background(), source.ScopeAll, repository.InventoryFilter{Limit: 3})

	require.NoError(t, err)
	assert.Len(t, views, 3)
}

func TestFacadeLowStock_SortedByDeficitDepth(t *testing.T) {
	material, product, designer := healthySources()
	material.lowStock = []dto.LowStockItemView{
		{ItemType: "material", ItemName: "hemp", Difference: decimal.NewFromInt(-2)},
	}
	product.lowStock = []dto.LowStockItemView{
		{ItemType: "product", ItemName: "jacket", Difference: decimal.NewFromInt(-9)},
	}
	f := newTestFacade(material, product, designer, time.Second)

	views, degraded, err := f.LowStock(context.Background(), source.ScopeAll, repository.InventoryFilter{}, 10)

	require.NoError(t, err)
	assert.Empty(t, degraded)
	require.Len(t, views, 2)
	assert.Equal(t, "jacket", views[0].ItemName, "deepest deficit first")
}

// ──────────────────────────────────────────────────────────────────────────────
// Activity
// ──────────────────────────────────────────────────────────────────────────────

func TestFacadeActivity_PreservesPerBranchKind(t *testing.T) {
	material, product, designer := healthySources()
	f := newTestFacade(material, product, designer, time.Second)

	series, degraded, err := f.Activity(context.Background(), source.ScopeAll, repository.InventoryFilter{})

	require.NoError(t, err)
	assert.Empty(t, degraded)
	require.Len(t, series, 3)
	assert.Equal(t, "daily", series[0].Kind)
	assert.Equal(t, "daily", series[1].Kind)
	assert.Equal(t, "category", series[2].Kind, "the stash keeps its category breakdown")
}

// ──────────────────────────────────────────────────────────────────────────────
// ParseScope
// ──────────────────────────────────────────────────────────────────────────────

func TestParseScope(t *testing.T) {
	for _, valid := range []string{"material", "product", "designer-material", "all"} {
		scope, err := source.ParseScope(valid)
		require.NoError(t, err)
		assert.Equal(t, source.Scope(valid), scope)
	}

	scope, err := source.ParseScope("")
	require.NoError(t, err)
	assert.Equal(t, source.ScopeAll, scope, "empty scope defaults to all")

	_, err = source.ParseScope("warehouse")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
