package source

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecothreads/marketplace-api/internal/application/dto"
	"github.com/ecothreads/marketplace-api/internal/domain/entity"
	"github.com/ecothreads/marketplace-api/internal/domain/inventory"
	"github.com/ecothreads/marketplace-api/internal/domain/repository"
)

var _ InventorySource = (*DesignerStashSource)(nil)

// listAllLimit upper bound when scanning the whole stash table for aggregates.
const listAllLimit = 10000

// DesignerStashSource adapts designers' personal material stashes to the
// unified read API. This domain has no ledger: every unified transaction is
// synthesized from the current record as a single purchase from zero.
type DesignerStashSource struct {
	repo repository.DesignerMaterialRepository
}

// NewDesignerStashSource builds the adapter.
func NewDesignerStashSource(repo repository.DesignerMaterialRepository) *DesignerStashSource {
	return &DesignerStashSource{repo: repo}
}

func (s *DesignerStashSource) ItemType() entity.ItemType { return entity.ItemTypeDesignerMaterial }

func (s *DesignerStashSource) list(ctx context.Context, f repository.InventoryFilter) ([]*entity.DesignerMaterialInventory, error) {
	if f.DesignerID != nil {
		return s.repo.ListByDesigner(ctx, *f.DesignerID)
	}
	return s.repo.List(ctx, listAllLimit, 0)
}

// Summary aggregates the stash records in memory; the table is small compared
// to the warehouse ledgers.
func (s *DesignerStashSource) Summary(ctx context.Context, f repository.InventoryFilter) (*dto.UnifiedSummaryView, error) {
	records, err := s.list(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("designer stash summary: %w", err)
	}

	view := &dto.UnifiedSummaryView{
		Scope:       string(ScopeDesignerMaterial),
		TotalOnHand: decimal.Zero,
		TotalValue:  decimal.Zero,
		IncomingQty: decimal.Zero,
		OutgoingQty: decimal.Zero,
	}
	from, to := rangeOrDefault(f)
	for _, rec := range records {
		view.TotalItems++
		view.TotalOnHand = view.TotalOnHand.Add(rec.Quantity)
		view.TotalValue = view.TotalValue.Add(rec.Quantity.Mul(rec.PricePerUnit))
		if rec.Status != entity.StashInStock || rec.Quantity.IsZero() {
			view.LowStockCount++
		}
		if rec.Quantity.IsZero() {
			view.StockoutCount++
		}
		// Purchases inside the window count as incoming; the stash has no outflow.
		when := purchaseDate(rec)
		if !when.Before(from) && !when.After(to) {
			view.IncomingQty = view.IncomingQty.Add(rec.Quantity)
		}
	}
	return view, nil
}

// Transactions synthesizes one Purchase entry per stash record, beforeQty=0.
func (s *DesignerStashSource) Transactions(ctx context.Context, f repository.InventoryFilter) ([]dto.UnifiedTransactionView, error) {
	records, err := s.list(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("designer stash transactions: %w", err)
	}

	views := make([]dto.UnifiedTransactionView, 0, len(records))
	for _, rec := range records {
		when := purchaseDate(rec)
		if f.From != nil && when.Before(*f.From) {
			continue
		}
		if f.To != nil && when.After(*f.To) {
			continue
		}
		views = append(views, dto.UnifiedTransactionView{
			ItemType:        string(entity.ItemTypeDesignerMaterial),
			ItemID:          rec.MaterialID,
			ItemName:        rec.MaterialName,
			TransactionType: entity.TxPurchase,
			QuantityChange:  rec.Quantity,
			BeforeQty:       decimal.Zero,
			AfterQty:        rec.Quantity,
			Unit:            rec.Unit,
			ReferenceType:   entity.RefManual,
			ReferenceID:     rec.ID,
			CreatedAt:       when,
		})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].CreatedAt.After(views[j].CreatedAt) })
	if f.Limit > 0 && len(views) > f.Limit {
		views = views[:f.Limit]
	}
	return views, nil
}

// LowStock lists stash records flagged below stock or fully depleted. The
// stash has no configured thresholds, so difference is zero (at threshold)
// and only the stockout flag differentiates severity.
func (s *DesignerStashSource) LowStock(ctx context.Context, f repository.InventoryFilter, limit int) ([]dto.LowStockItemView, error) {
	records, err := s.list(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("designer stash low stock: %w", err)
	}

	views := make([]dto.LowStockItemView, 0)
	for _, rec := range records {
		if rec.Status == entity.StashInStock && !rec.Quantity.IsZero() {
			continue
		}
		views = append(views, dto.LowStockItemView{
			ItemType:       string(entity.ItemTypeDesignerMaterial),
			ItemID:         rec.MaterialID,
			ItemName:       rec.MaterialName,
			QuantityOnHand: rec.Quantity,
			MinThreshold:   decimal.Zero,
			Difference:     decimal.Zero,
			PricePerUnit:   rec.PricePerUnit,
			EstimatedValue: rec.Quantity.Mul(rec.PricePerUnit),
			Unit:           rec.Unit,
			Status:         string(rec.Status),
			Stockout:       rec.Quantity.IsZero(),
		})
		if limit > 0 && len(views) >= limit {
			break
		}
	}
	return views, nil
}

// Activity groups stash quantities per material category. There is no per-day
// ledger in this domain, so the series is a category breakdown, not a timeline;
// chart consumers branch on the declared kind.
func (s *DesignerStashSource) Activity(ctx context.Context, f repository.InventoryFilter) (*dto.ActivitySeries, error) {
	records, err := s.list(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("designer stash activity: %w", err)
	}

	events := make([]inventory.Event, 0, len(records))
	for _, rec := range records {
		label := rec.Category
		if label == "" {
			label = rec.MaterialName
		}
		events = append(events, inventory.Event{
			When:     purchaseDate(rec),
			Label:    label,
			Quantity: rec.Quantity,
		})
	}
	points := inventory.BucketByCategory(events)
	return &dto.ActivitySeries{
		ItemType: string(entity.ItemTypeDesignerMaterial),
		Kind:     string(inventory.SeriesCategory),
		Points:   activityPoints(points),
	}, nil
}

func purchaseDate(rec *entity.DesignerMaterialInventory) time.Time {
	if !rec.LastBuyDate.IsZero() {
		return rec.LastBuyDate
	}
	return rec.CreatedAt
}
