package designer

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ecothreads/marketplace-api/internal/application/dto"
	"github.com/ecothreads/marketplace-api/internal/domain"
	"github.com/ecothreads/marketplace-api/internal/domain/entity"
	"github.com/ecothreads/marketplace-api/internal/domain/repository"
)

// StashUseCase CRUD over designers' personal material stashes. Native status
// strings are folded into the closed enum here, at the boundary, so nothing
// downstream ever sees a free-form status.
type StashUseCase struct {
	repo repository.DesignerMaterialRepository
}

// NewStashUseCase builds the use case.
func NewStashUseCase(repo repository.DesignerMaterialRepository) *StashUseCase {
	return &StashUseCase{repo: repo}
}

func validateSave(in dto.SaveDesignerMaterialRequest) error {
	if in.DesignerID <= 0 || in.MaterialID <= 0 {
		return domain.ErrInvalidInput
	}
	if in.Quantity.Sign() < 0 || in.PricePerUnit.Sign() < 0 {
		return domain.ErrInvalidInput
	}
	return nil
}

// Create stores a new stash record.
func (uc *StashUseCase) Create(ctx context.Context, in dto.SaveDesignerMaterialRequest) (*dto.DesignerMaterialDTO, error) {
	if err := validateSave(in); err != nil {
		return nil, err
	}
	now := time.Now()
	rec := &entity.DesignerMaterialInventory{
		ID:           uuid.New().String(),
		DesignerID:   in.DesignerID,
		MaterialID:   in.MaterialID,
		MaterialName: in.MaterialName,
		Category:     in.Category,
		Quantity:     in.Quantity,
		Unit:         in.Unit,
		PricePerUnit: in.PricePerUnit,
		Status:       entity.NormalizeStashStatus(in.Status),
		LastBuyDate:  lastBuyOrNow(in.LastBuyDate, now),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return toDTO(rec), nil
}

// Update replaces the mutable fields of an existing record.
func (uc *StashUseCase) Update(ctx context.Context, id string, in dto.SaveDesignerMaterialRequest) (*dto.DesignerMaterialDTO, error) {
	if err := validateSave(in); err != nil {
		return nil, err
	}
	rec, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	rec.MaterialName = in.MaterialName
	rec.Category = in.Category
	rec.Quantity = in.Quantity
	rec.Unit = in.Unit
	rec.PricePerUnit = in.PricePerUnit
	rec.Status = entity.NormalizeStashStatus(in.Status)
	if in.LastBuyDate != nil {
		rec.LastBuyDate = *in.LastBuyDate
	}
	rec.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return toDTO(rec), nil
}

// Delete removes a stash record.
func (uc *StashUseCase) Delete(ctx context.Context, id string) error {
	rec, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// GetByID fetches one record.
func (uc *StashUseCase) GetByID(ctx context.Context, id string) (*dto.DesignerMaterialDTO, error) {
	rec, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	return toDTO(rec), nil
}

// List pages through all stash records.
func (uc *StashUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.DesignerMaterialDTO, error) {
	page.DefaultPage()
	records, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toDTOs(records), nil
}

// GetStoredMaterial returns every record owned by one designer.
func (uc *StashUseCase) GetStoredMaterial(ctx context.Context, designerID int64) ([]dto.DesignerMaterialDTO, error) {
	if designerID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	records, err := uc.repo.ListByDesigner(ctx, designerID)
	if err != nil {
		return nil, err
	}
	return toDTOs(records), nil
}

func lastBuyOrNow(t *time.Time, now time.Time) time.Time {
	if t != nil {
		return *t
	}
	return now
}

func toDTO(rec *entity.DesignerMaterialInventory) *dto.DesignerMaterialDTO {
	return &dto.DesignerMaterialDTO{
		ID:           rec.ID,
		DesignerID:   rec.DesignerID,
		MaterialID:   rec.MaterialID,
		MaterialName: rec.MaterialName,
		Category:     rec.Category,
		Quantity:     rec.Quantity,
		Unit:         rec.Unit,
		PricePerUnit: rec.PricePerUnit,
		Status:       string(rec.Status),
		LastBuyDate:  rec.LastBuyDate,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
}

func toDTOs(records []*entity.DesignerMaterialInventory) []dto.DesignerMaterialDTO {
	out := make([]dto.DesignerMaterialDTO, 0, len(records))
	for _, rec := range records {
		out = append(out, *toDTO(rec))
	}
	return out
}
