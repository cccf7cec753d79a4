package source

import (
	"context"

	"github.com/ecothreads/marketplace-api/internal/application/dto"
	"github.com/ecothreads/marketplace-api/internal/domain"
	"github.com/ecothreads/marketplace-api/internal/domain/entity"
	"github.com/ecothreads/marketplace-api/internal/domain/repository"
)

// Scope is the caller-selected subset of warehouse domains to query.
type Scope string

const (
	ScopeMaterial         Scope = "material"
	ScopeProduct          Scope = "product"
	ScopeDesignerMaterial Scope = "designer-material"
	ScopeAll              Scope = "all"
)

// ParseScope validates a scope query parameter. Empty defaults to "all".
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeMaterial, ScopeProduct, ScopeDesignerMaterial, ScopeAll:
		return Scope(s), nil
	case "":
		return ScopeAll, nil
	}
	return "", domain.ErrInvalidInput
}

// InventorySource is the capability set every warehouse domain exposes to the
// aggregation facade. Each implementation owns the mapping from its native
// records to the unified DTO shapes and substitutes zero defaults for missing
// native fields; these are best-effort dashboard views.
type InventorySource interface {
	ItemType() entity.ItemType
	Summary(ctx context.Context, f repository.InventoryFilter) (*dto.UnifiedSummaryView, error)
	Transactions(ctx context.Context, f repository.InventoryFilter) ([]dto.UnifiedTransactionView, error)
	LowStock(ctx context.Context, f repository.InventoryFilter, limit int) ([]dto.LowStockItemView, error)
	Activity(ctx context.Context, f repository.InventoryFilter) (*dto.ActivitySeries, error)
}
