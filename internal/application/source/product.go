package source

import (
	"context"
	"fmt"

	"github.com/ecothreads/marketplace-api/internal/application/dto"
	"github.com/ecothreads/marketplace-api/internal/domain/entity"
	"github.com/ecothreads/marketplace-api/internal/domain/inventory"
	"github.com/ecothreads/marketplace-api/internal/domain/repository"
)

var _ InventorySource = (*ProductSource)(nil)

// ProductSource adapts the finished-product warehouses to the unified read API.
type ProductSource struct {
	repo repository.ProductInventoryRepository
}

// NewProductSource builds the adapter.
func NewProductSource(repo repository.ProductInventoryRepository) *ProductSource {
	return &ProductSource{repo: repo}
}

func (s *ProductSource) ItemType() entity.ItemType { return entity.ItemTypeProduct }

func (s *ProductSource) Summary(ctx context.Context, f repository.InventoryFilter) (*dto.UnifiedSummaryView, error) {
	sum, err := s.repo.GetSummary(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("product summary: %w", err)
	}
	return summaryView(string(ScopeProduct), sum), nil
}

func (s *ProductSource) Transactions(ctx context.Context, f repository.InventoryFilter) ([]dto.UnifiedTransactionView, error) {
	rows, err := s.repo.ListTransactions(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("product transactions: %w", err)
	}
	return transactionViews(entity.ItemTypeProduct, rows), nil
}

func (s *ProductSource) LowStock(ctx context.Context, f repository.InventoryFilter, limit int) ([]dto.LowStockItemView, error) {
	rows, err := s.repo.ListLowStock(ctx, f, limit)
	if err != nil {
		return nil, fmt.Errorf("product low stock: %w", err)
	}
	return lowStockViews(entity.ItemTypeProduct, rows), nil
}

// Activity buckets production completions by calendar date (production timeline).
// Sales show up as negative events and are excluded from the produced series.
func (s *ProductSource) Activity(ctx context.Context, f repository.InventoryFilter) (*dto.ActivitySeries, error) {
	rows, err := s.repo.ListProductionEvents(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("product activity: %w", err)
	}
	produced := make([]repository.ActivityRow, 0, len(rows))
	for _, r := range rows {
		if r.Quantity.Sign() > 0 {
			produced = append(produced, r)
		}
	}
	from, to := rangeOrDefault(f)
	points := inventory.BucketByDate(activityEvents(produced), from, to)
	return &dto.ActivitySeries{
		ItemType: string(entity.ItemTypeProduct),
		Kind:     string(inventory.SeriesDaily),
		Points:   activityPoints(points),
	}, nil
}

// DesignPopularity groups sold units per design (pie-style breakdown).
// Product-specific; not part of the facade capability set.
func (s *ProductSource) DesignPopularity(ctx context.Context, f repository.InventoryFilter) ([]dto.ActivityPoint, error) {
	rows, err := s.repo.ListSalesByDesign(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("design popularity: %w", err)
	}
	points := make([]dto.ActivityPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, dto.ActivityPoint{
			Label:    r.DesignName,
			Quantity: r.UnitsSold,
			Count:    r.Orders,
		})
	}
	return points, nil
}
