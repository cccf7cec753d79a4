package source

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecothreads/marketplace-api/internal/application/dto"
	"github.com/ecothreads/marketplace-api/internal/domain/entity"
	"github.com/ecothreads/marketplace-api/internal/domain/inventory"
	"github.com/ecothreads/marketplace-api/internal/domain/repository"
)

var _ InventorySource = (*MaterialSource)(nil)

// MaterialSource adapts the supplier material warehouses to the unified read API.
type MaterialSource struct {
	repo repository.MaterialInventoryRepository
}

// NewMaterialSource builds the adapter.
func NewMaterialSource(repo repository.MaterialInventoryRepository) *MaterialSource {
	return &MaterialSource{repo: repo}
}

func (s *MaterialSource) ItemType() entity.ItemType { return entity.ItemTypeMaterial }

// Summary aggregates on-hand quantity, inventory value and low-stock counts
// over the material warehouses.
func (s *MaterialSource) Summary(ctx context.Context, f repository.InventoryFilter) (*dto.UnifiedSummaryView, error) {
	sum, err := s.repo.GetSummary(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("material summary: %w", err)
	}
	return summaryView(string(ScopeMaterial), sum), nil
}

// Transactions lists material ledger entries as unified transaction views,
// newest first.
func (s *MaterialSource) Transactions(ctx context.Context, f repository.InventoryFilter) ([]dto.UnifiedTransactionView, error) {
	rows, err := s.repo.ListTransactions(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("material transactions: %w", err)
	}
	return transactionViews(entity.ItemTypeMaterial, rows), nil
}

// LowStock lists materials at or below their threshold, deepest deficit first.
func (s *MaterialSource) LowStock(ctx context.Context, f repository.InventoryFilter, limit int) ([]dto.LowStockItemView, error) {
	rows, err := s.repo.ListLowStock(ctx, f, limit)
	if err != nil {
		return nil, fmt.Errorf("material low stock: %w", err)
	}
	return lowStockViews(entity.ItemTypeMaterial, rows), nil
}

// Activity buckets supplier receipts by calendar date (receipts-by-supplier chart).
func (s *MaterialSource) Activity(ctx context.Context, f repository.InventoryFilter) (*dto.ActivitySeries, error) {
	rows, err := s.repo.ListReceipts(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("material activity: %w", err)
	}
	from, to := rangeOrDefault(f)
	points := inventory.BucketByDate(activityEvents(rows), from, to)
	return &dto.ActivitySeries{
		ItemType: string(entity.ItemTypeMaterial),
		Kind:     string(inventory.SeriesDaily),
		Points:   activityPoints(points),
	}, nil
}

// ReceiptsBySupplier buckets received quantities by supplier name over the
// range. Material-specific; not part of the facade capability set.
func (s *MaterialSource) ReceiptsBySupplier(ctx context.Context, f repository.InventoryFilter) ([]dto.ActivityPoint, error) {
	rows, err := s.repo.ListReceipts(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("material receipts by supplier: %w", err)
	}
	points := inventory.BucketByCategory(activityEvents(rows))
	return activityPoints(points), nil
}

// Movements returns the daily in/out/net series for the movements chart.
// Material-specific; not part of the facade capability set.
func (s *MaterialSource) Movements(ctx context.Context, f repository.InventoryFilter) ([]dto.MovementPoint, error) {
	rows, err := s.repo.ListMovementEvents(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("material movements: %w", err)
	}
	from, to := rangeOrDefault(f)
	points := inventory.BucketMovements(activityEvents(rows), from, to)
	out := make([]dto.MovementPoint, 0, len(points))
	for _, p := range points {
		out = append(out, dto.MovementPoint{Date: p.Date, In: p.In, Out: p.Out, Net: p.Net})
	}
	return out, nil
}

// ── shared mapping helpers ───────────────────────────────────────────────────

func summaryView(scope string, sum *repository.DomainSummary) *dto.UnifiedSummaryView {
	return &dto.UnifiedSummaryView{
		Scope:         scope,
		TotalItems:    sum.TotalItems,
		TotalOnHand:   sum.TotalOnHand,
		TotalValue:    sum.TotalValue,
		IncomingQty:   sum.IncomingQty,
		OutgoingQty:   sum.OutgoingQty,
		LowStockCount: sum.LowStockCount,
		StockoutCount: sum.StockoutCount,
	}
}

func transactionViews(it entity.ItemType, rows []repository.TransactionRow) []dto.UnifiedTransactionView {
	views := make([]dto.UnifiedTransactionView, 0, len(rows))
	for _, r := range rows {
		views = append(views, dto.UnifiedTransactionView{
			ItemType:        string(it),
			ItemID:          r.Entry.ItemID,
			ItemName:        r.ItemName,
			WarehouseID:     r.Entry.WarehouseID,
			WarehouseName:   r.WarehouseName,
			TransactionType: r.Entry.Type,
			QuantityChange:  r.Entry.QuantityChange,
			BeforeQty:       r.Entry.BeforeQty,
			AfterQty:        r.Entry.AfterQty,
			Unit:            r.Entry.Unit,
			ReferenceType:   r.Entry.ReferenceType,
			ReferenceID:     r.Entry.ReferenceID,
			Note:            r.Entry.Note,
			CreatedAt:       r.Entry.CreatedAt,
		})
	}
	return views
}

func lowStockViews(it entity.ItemType, rows []repository.LowStockRow) []dto.LowStockItemView {
	views := make([]dto.LowStockItemView, 0, len(rows))
	for _, r := range rows {
		price := decimal.Zero
		if r.PricePerUnit != nil {
			price = *r.PricePerUnit
		}
		views = append(views, dto.LowStockItemView{
			ItemType:       string(it),
			ItemID:         r.ItemID,
			ItemName:       r.ItemName,
			WarehouseID:    r.WarehouseID,
			WarehouseName:  r.WarehouseName,
			QuantityOnHand: r.QuantityOnHand,
			MinThreshold:   r.MinThreshold,
			Difference:     r.QuantityOnHand.Sub(r.MinThreshold),
			PricePerUnit:   price,
			EstimatedValue: r.QuantityOnHand.Mul(price),
			Unit:           r.Unit,
			Status:         normalizedStatus(it, r.NativeStatus),
			Stockout:       r.QuantityOnHand.IsZero(),
		})
	}
	return views
}

// normalizedStatus folds a native free-form status string into the domain's
// closed enum; each item type owns its own status set.
func normalizedStatus(it entity.ItemType, native string) string {
	switch it {
	case entity.ItemTypeMaterial:
		return string(entity.NormalizeMaterialStatus(native))
	case entity.ItemTypeProduct:
		return string(entity.NormalizeProductStatus(native))
	default:
		return native
	}
}

func activityEvents(rows []repository.ActivityRow) []inventory.Event {
	events := make([]inventory.Event, 0, len(rows))
	for _, r := range rows {
		events = append(events, inventory.Event{When: r.When, Label: r.Label, Quantity: r.Quantity})
	}
	return events
}

func activityPoints(points []inventory.Point) []dto.ActivityPoint {
	out := make([]dto.ActivityPoint, 0, len(points))
	for _, p := range points {
		out = append(out, dto.ActivityPoint{Label: p.Label, Quantity: p.Quantity, Count: p.Count})
	}
	return out
}

// rangeOrDefault widens a partial date range: open ends default to the last 30
// days so a chart query without bounds still has a window.
func rangeOrDefault(f repository.InventoryFilter) (time.Time, time.Time) {
	now := time.Now()
	to := now
	if f.To != nil {
		to = *f.To
	}
	from := to.AddDate(0, 0, -30)
	if f.From != nil {
		from = *f.From
	}
	return from, to
}
