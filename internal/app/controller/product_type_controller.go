package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/shop-backend/internal/app/dto"
	"github.com/ikkim/shop-backend/internal/app/service"
	"github.com/ikkim/shop-backend/internal/middleware"
	"github.com/ikkim/shop-backend/pkg/logger"
)

type ProductTypeController struct {
	productTypeService service.ProductTypeService
}

func NewProductTypeController(productTypeService service.ProductTypeService) *ProductTypeController {
	return &ProductTypeController{
		productTypeService: productTypeService,
	}
}

// GetAll handles listing product types
// GET /api/v2/product_types
func (ctrl *ProductTypeController) GetAll(c *gin.Context) {
	params, ok := parseListParams(c)
	if !ok {
		return
	}

	productTypes, err := ctrl.productTypeService.GetAll(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OfProductTypes(productTypes))
}

// GET /api/v2/product_types/:id
func (ctrl *ProductTypeController) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	productType, err := ctrl.productTypeService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OfProductType(productType))
}

// POST /api/v2/product_types
func (ctrl *ProductTypeController) Create(c *gin.Context) {
	var req dto.ProductTypeDTO
	if !bindJSON(c, &req) {
		return
	}
	req.ID = 0

	id, err := ctrl.productTypeService.Create(c.Request.Context(), req.ToModel())
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.GetLoggerFromContext(c).Info("Product type created", logger.Fields{"product_type_id": id})
	c.JSON(http.StatusCreated, id)
}

// PATCH /api/v2/product_types/:id
func (ctrl *ProductTypeController) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ProductTypeDTO
	if !bindJSON(c, &req) {
		return
	}
	req.ID = id

	updatedID, err := ctrl.productTypeService.Update(c.Request.Context(), req.ToModel())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updatedID)
}

// DELETE /api/v2/product_types/:id
func (ctrl *ProductTypeController) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.productTypeService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	middleware.GetLoggerFromContext(c).Info("Product type deleted", logger.Fields{"product_type_id": id})
	c.Status(http.StatusNoContent)
}
