package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ecothreads/marketplace-api/internal/domain"
	"github.com/ecothreads/marketplace-api/internal/domain/entity"
	"github.com/ecothreads/marketplace-api/internal/domain/repository"
)

var _ repository.DesignerMaterialRepository = (*DesignerMaterialRepo)(nil)

// DesignerMaterialRepo CRUD over designers' personal stash rows.
type DesignerMaterialRepo struct {
	q Querier
}

// NewDesignerMaterialRepository builds the adapter.
func NewDesignerMaterialRepository(q Querier) *DesignerMaterialRepo {
	return &DesignerMaterialRepo{q: q}
}

const designerMaterialColumns = `id, designer_id, material_id, material_name, category,
	quantity, unit, price_per_unit, status, last_buy_date, created_at, updated_at`

func (r *DesignerMaterialRepo) Create(ctx context.Context, inv *entity.DesignerMaterialInventory) error {
	query := `
		INSERT INTO designer_material_inventories (` + designerMaterialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.DesignerID, inv.MaterialID, inv.MaterialName, inv.Category,
		inv.Quantity, inv.Unit, inv.PricePerUnit, string(inv.Status),
		inv.LastBuyDate, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create designer material: %w", err)
	}
	return nil
}

func (r *DesignerMaterialRepo) Update(ctx context.Context, inv *entity.DesignerMaterialInventory) error {
	query := `
		UPDATE designer_material_inventories
		SET material_id = $2, material_name = $3, category = $4, quantity = $5,
		    unit = $6, price_per_unit = $7, status = $8, last_buy_date = $9,
		    updated_at = $10
		WHERE id = $1`

	tag, err := r.q.Exec(ctx, query,
		inv.ID, inv.MaterialID, inv.MaterialName, inv.Category, inv.Quantity,
		inv.Unit, inv.PricePerUnit, string(inv.Status), inv.LastBuyDate, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update designer material: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DesignerMaterialRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM designer_material_inventories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete designer material: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DesignerMaterialRepo) GetByID(ctx context.Context, id string) (*entity.DesignerMaterialInventory, error) {
	query := `SELECT ` + designerMaterialColumns + ` FROM designer_material_inventories WHERE id = $1`

	inv, err := scanDesignerMaterial(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get designer material: %w", err)
	}
	return inv, nil
}

func (r *DesignerMaterialRepo) List(ctx context.Context, limit, offset int) ([]*entity.DesignerMaterialInventory, error) {
	query := `
		SELECT ` + designerMaterialColumns + `
		FROM designer_material_inventories
		ORDER BY updated_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list designer materials: %w", err)
	}
	defer rows.Close()
	return collectDesignerMaterials(rows)
}

func (r *DesignerMaterialRepo) ListByDesigner(ctx context.Context, designerID int64) ([]*entity.DesignerMaterialInventory, error) {
	query := `
		SELECT ` + designerMaterialColumns + `
		FROM designer_material_inventories
		WHERE designer_id = $1
		ORDER BY material_name`

	rows, err := r.q.Query(ctx, query, designerID)
	if err != nil {
		return nil, fmt.Errorf("list designer materials by designer: %w", err)
	}
	defer rows.Close()
	return collectDesignerMaterials(rows)
}

func scanDesignerMaterial(row pgx.Row) (*entity.DesignerMaterialInventory, error) {
	var inv entity.DesignerMaterialInventory
	var status string
	err := row.Scan(
		&inv.ID, &inv.DesignerID, &inv.MaterialID, &inv.MaterialName, &inv.Category,
		&inv.Quantity, &inv.Unit, &inv.PricePerUnit, &status,
		&inv.LastBuyDate, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.Status = entity.StashStatus(status)
	return &inv, nil
}

func collectDesignerMaterials(rows pgx.Rows) ([]*entity.DesignerMaterialInventory, error) {
	var list []*entity.DesignerMaterialInventory
	for rows.Next() {
		inv, err := scanDesignerMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan designer material: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}
