package repository

import (
	"context"

	"github.com/ecothreads/marketplace-api/internal/domain/entity"
)

// DesignerMaterialRepository persistence port for designers' personal stashes.
// This domain has no ledger; records are mutable CRUD rows.
type DesignerMaterialRepository interface {
	Create(ctx context.Context, inv *entity.DesignerMaterialInventory) error
	Update(ctx context.Context, inv *entity.DesignerMaterialInventory) error
	Delete(ctx context.Context, id string) error
	// GetByID returns nil, nil when the record does not exist.
	GetByID(ctx context.Context, id string) (*entity.DesignerMaterialInventory, error)
	List(ctx context.Context, limit, offset int) ([]*entity.DesignerMaterialInventory, error)
	ListByDesigner(ctx context.Context, designerID int64) ([]*entity.DesignerMaterialInventory, error)
}
