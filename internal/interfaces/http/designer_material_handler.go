package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ecothreads/marketplace-api/internal/application/designer"
	"github.com/ecothreads/marketplace-api/internal/application/dto"
	"github.com/ecothreads/marketplace-api/internal/domain"
)

// DesignerMaterialHandler CRUD over designers' personal material stashes.
type DesignerMaterialHandler struct {
	uc *designer.StashUseCase
}

// NewDesignerMaterialHandler builds the handler.
func NewDesignerMaterialHandler(uc *designer.StashUseCase) *DesignerMaterialHandler {
	return &DesignerMaterialHandler{uc: uc}
}

// Create godoc
// @Summary      Register a stash record
// @Tags         designer-materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveDesignerMaterialRequest  true  "designer_id, material_id, material_name, quantity, unit"
// @Success      201  {object}  dto.DesignerMaterialDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/designer-material-inventories [post]
func (h *DesignerMaterialHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveDesignerMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Update a stash record
// @Tags         designer-materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Record UUID"
// @Param        body  body  dto.SaveDesignerMaterialRequest  true  "Fields to store"
// @Success      200  {object}  dto.DesignerMaterialDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/designer-material-inventories/{id} [put]
func (h *DesignerMaterialHandler) Update(c *fiber.Ctx) error {
	var in dto.SaveDesignerMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete a stash record
// @Tags         designer-materials
// @Security     Bearer
// @Param        id  path  string  true  "Record UUID"
// @Success      204  "No Content"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/designer-material-inventories/{id} [delete]
func (h *DesignerMaterialHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID godoc
// @Summary      Get a stash record
// @Tags         designer-materials
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Record UUID"
// @Success      200  {object}  dto.DesignerMaterialDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/designer-material-inventories/{id} [get]
func (h *DesignerMaterialHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      List stash records
// @Tags         designer-materials
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Page size (default 20)"
// @Param        offset  query  int  false  "Page offset"
// @Success      200  {array}  dto.DesignerMaterialDTO
// @Router       /api/designer-material-inventories [get]
func (h *DesignerMaterialHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 0), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(c.Context(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetStoredMaterial godoc
// @Summary      List one designer's stash
// @Tags         designer-materials
// @Security     Bearer
// @Produce      json
// @Param        designerId  path  int  true  "Designer ID"
// @Success      200  {array}   dto.DesignerMaterialDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/designer-material-inventories/stored/{designerId} [get]
func (h *DesignerMaterialHandler) GetStoredMaterial(c *fiber.Ctx) error {
	designerID, err := strconv.ParseInt(c.Params("designerId"), 10, 64)
	if err != nil || designerID <= 0 {
		return respondError(c, domain.ErrInvalidInput)
	}
	out, err := h.uc.GetStoredMaterial(c.Context(), designerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
