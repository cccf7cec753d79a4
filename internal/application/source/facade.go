package source

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecothreads/marketplace-api/internal/application/dto"
	"github.com/ecothreads/marketplace-api/internal/domain"
	"github.com/ecothreads/marketplace-api/internal/domain/repository"
	"github.com/ecothreads/marketplace-api/pkg/logger"
)

// Facade unifies the three warehouse domains behind one read API. Aggregate
// ("all") queries fan out to every adapter concurrently with a per-branch
// timeout; a failing branch is logged and zeroed, never fatal, so one broken
// domain cannot blank the whole dashboard. Single-domain queries propagate
// their branch's error as-is since there is no partial result to fall back to.
type Facade struct {
	sources map[Scope]InventorySource
	timeout time.Duration
	log     *logger.Logger
}

// NewFacade builds the facade over the three domain adapters.
func NewFacade(material, product, designer InventorySource, timeout time.Duration, log *logger.Logger) *Facade {
	return &Facade{
		sources: map[Scope]InventorySource{
			ScopeMaterial:         material,
			ScopeProduct:          product,
			ScopeDesignerMaterial: designer,
		},
		timeout: timeout,
		log:     log,
	}
}

// branchScopes aggregate fan-out order (deterministic for merged output).
var branchScopes = []Scope{ScopeMaterial, ScopeProduct, ScopeDesignerMaterial}

// branchResult outcome of one adapter call during fan-out.
type branchResult[T any] struct {
	scope Scope
	value T
	err   error
}

// fanOut invokes call for every branch concurrently, each under its own
// timeout context, and collects the results in branch order.
func fanOut[T any](ctx context.Context, f *Facade, call func(ctx context.Context, src InventorySource) (T, error)) []branchResult[T] {
	ch := make(chan branchResult[T], len(branchScopes))
	for _, scope := range branchScopes {
		go func(scope Scope, src InventorySource) {
			branchCtx, cancel := context.WithTimeout(ctx, f.timeout)
			defer cancel()
			v, err := call(branchCtx, src)
			ch <- branchResult[T]{scope: scope, value: v, err: err}
		}(scope, f.sources[scope])
	}

	byScope := make(map[Scope]branchResult[T], len(branchScopes))
	for range branchScopes {
		res := <-ch
		byScope[res.scope] = res
	}

	ordered := make([]branchResult[T], 0, len(branchScopes))
	for _, scope := range branchScopes {
		res := byScope[scope]
		if res.err != nil {
			f.log.Error().Err(res.err).Str("branch", string(scope)).Msg("analytics branch failed, substituting zero values")
		}
		ordered = append(ordered, res)
	}
	return ordered
}

// Summary returns the summary for one scope, or the field-wise sum across all
// branches for scope "all" (failed branches zeroed and listed in Degraded).
func (f *Facade) Summary(ctx context.Context, scope Scope, filter repository.InventoryFilter) (*dto.UnifiedSummaryView, error) {
	if scope != ScopeAll {
		src, err := f.source(scope)
		if err != nil {
			return nil, err
		}
		return src.Summary(ctx, filter)
	}

	results := fanOut(ctx, f, func(ctx context.Context, src InventorySource) (*dto.UnifiedSummaryView, error) {
		return src.Summary(ctx, filter)
	})

	merged := &dto.UnifiedSummaryView{
		Scope:       string(ScopeAll),
		TotalOnHand: decimal.Zero,
		TotalValue:  decimal.Zero,
		IncomingQty: decimal.Zero,
		OutgoingQty: decimal.Zero,
	}
	failed := 0
	for _, res := range results {
		if res.err != nil {
			failed++
			merged.Degraded = append(merged.Degraded, string(res.scope))
			continue
		}
		v := res.value
		merged.TotalItems += v.TotalItems
		merged.TotalOnHand = merged.TotalOnHand.Add(v.TotalOnHand)
		merged.TotalValue = merged.TotalValue.Add(v.TotalValue)
		merged.IncomingQty = merged.IncomingQty.Add(v.IncomingQty)
		merged.OutgoingQty = merged.OutgoingQty.Add(v.OutgoingQty)
		merged.LowStockCount += v.LowStockCount
		merged.StockoutCount += v.StockoutCount
	}
	if failed == len(results) {
		return nil, fmt.Errorf("all branches failed: %w", domain.ErrBranchUnavailable)
	}
	return merged, nil
}

// Transactions returns transactions for one scope, or the concatenation across
// branches re-sorted by creation time descending for scope "all". The second
// return value lists degraded branches.
func (f *Facade) Transactions(ctx context.Context, scope Scope, filter repository.InventoryFilter) ([]dto.UnifiedTransactionView, []string, error) {
	if scope != ScopeAll {
		src, err := f.source(scope)
		if err != nil {
			return nil, nil, err
		}
		views, err := src.Transactions(ctx, filter)
		return views, nil, err
	}

	results := fanOut(ctx, f, func(ctx context.Context, src InventorySource) ([]dto.UnifiedTransactionView, error) {
		return src.Transactions(ctx, filter)
	})

	var merged []dto.UnifiedTransactionView
	var degraded []string
	failed := 0
	for _, res := range results {
		if res.err != nil {
			failed++
			degraded = append(degraded, string(res.scope))
			continue
		}
		merged = append(merged, res.value...)
	}
	if failed == len(results) {
		return nil, degraded, fmt.Errorf("all branches failed: %w", domain.ErrBranchUnavailable)
	}
	sort.SliceStable(merged, func(i, j int) bool { return merged[i].CreatedAt.After(merged[j].CreatedAt) })
	if filter.Limit > 0 && len(merged) > filter.Limit {
		merged = merged[:filter.Limit]
	}
	return merged, degraded, nil
}

// LowStock returns low-stock items for one scope, or the concatenation across
// branches re-sorted by ascending difference and truncated to limit for "all".
func (f *Facade) LowStock(ctx context.Context, scope Scope, filter repository.InventoryFilter, limit int) ([]dto.LowStockItemView, []string, error) {
	if scope != ScopeAll {
		src, err := f.source(scope)
		if err != nil {
			return nil, nil, err
		}
		views, err := src.LowStock(ctx, filter, limit)
		return views, nil, err
	}

	results := fanOut(ctx, f, func(ctx context.Context, src InventorySource) ([]dto.LowStockItemView, error) {
		return src.LowStock(ctx, filter, limit)
	})

	var merged []dto.LowStockItemView
	var degraded []string
	failed := 0
	for _, res := range results {
		if res.err != nil {
			failed++
			degraded = append(degraded, string(res.scope))
			continue
		}
		merged = append(merged, res.value...)
	}
	if failed == len(results) {
		return nil, degraded, fmt.Errorf("all branches failed: %w", domain.ErrBranchUnavailable)
	}
	sort.SliceStable(merged, func(i, j int) bool { return merged[i].Difference.LessThan(merged[j].Difference) })
	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, degraded, nil
}

// Activity returns one series per requested branch. Series keep their declared
// kind (daily vs category); the chart layer branches on it rather than the
// facade forcing one shape.
func (f *Facade) Activity(ctx context.Context, scope Scope, filter repository.InventoryFilter) ([]dto.ActivitySeries, []string, error) {
	if scope != ScopeAll {
		src, err := f.source(scope)
		if err != nil {
			return nil, nil, err
		}
		series, err := src.Activity(ctx, filter)
		if err != nil {
			return nil, nil, err
		}
		return []dto.ActivitySeries{*series}, nil, nil
	}

	results := fanOut(ctx, f, func(ctx context.Context, src InventorySource) (*dto.ActivitySeries, error) {
		return src.Activity(ctx, filter)
	})

	var merged []dto.ActivitySeries
	var degraded []string
	failed := 0
	for _, res := range results {
		if res.err != nil {
			failed++
			degraded = append(degraded, string(res.scope))
			continue
		}
		merged = append(merged, *res.value)
	}
	if failed == len(results) {
		return nil, degraded, fmt.Errorf("all branches failed: %w", domain.ErrBranchUnavailable)
	}
	return merged, degraded, nil
}

func (f *Facade) source(scope Scope) (InventorySource, error) {
	src, ok := f.sources[scope]
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	return src, nil
}
