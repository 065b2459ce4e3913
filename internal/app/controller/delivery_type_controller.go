package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/shop-backend/internal/app/dto"
	"github.com/ikkim/shop-backend/internal/app/service"
	"github.com/ikkim/shop-backend/internal/middleware"
	"github.com/ikkim/shop-backend/pkg/logger"
)

type DeliveryTypeController struct {
	deliveryTypeService service.DeliveryTypeService
}

func NewDeliveryTypeController(deliveryTypeService service.DeliveryTypeService) *DeliveryTypeController {
	return &DeliveryTypeController{
		deliveryTypeService: deliveryTypeService,
	}
}

// GetAll handles listing delivery types
// GET /api/v2/delivery_types
func (ctrl *DeliveryTypeController) GetAll(c *gin.Context) {
	params, ok := parseListParams(c)
	if !ok {
		return
	}

	deliveryTypes, err := ctrl.deliveryTypeService.GetAll(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OfDeliveryTypes(deliveryTypes))
}

// GET /api/v2/delivery_types/:id
func (ctrl *DeliveryTypeController) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	deliveryType, err := ctrl.deliveryTypeService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OfDeliveryType(deliveryType))
}

// POST /api/v2/delivery_types
func (ctrl *DeliveryTypeController) Create(c *gin.Context) {
	var req dto.DeliveryTypeDTO
	if !bindJSON(c, &req) {
		return
	}
	req.ID = 0

	id, err := ctrl.deliveryTypeService.Create(c.Request.Context(), req.ToModel())
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.GetLoggerFromContext(c).Info("Delivery type created", logger.Fields{"delivery_type_id": id})
	c.JSON(http.StatusCreated, id)
}

// PATCH /api/v2/delivery_types/:id
func (ctrl *DeliveryTypeController) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.DeliveryTypeDTO
	if !bindJSON(c, &req) {
		return
	}
	req.ID = id

	updatedID, err := ctrl.deliveryTypeService.Update(c.Request.Context(), req.ToModel())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updatedID)
}

// DELETE /api/v2/delivery_types/:id
func (ctrl *DeliveryTypeController) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.deliveryTypeService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	middleware.GetLoggerFromContext(c).Info("Delivery type deleted", logger.Fields{"delivery_type_id": id})
	c.Status(http.StatusNoContent)
}
