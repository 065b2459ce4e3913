package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/shop-backend/internal/app/dto"
	"github.com/ikkim/shop-backend/internal/app/model"
	"github.com/ikkim/shop-backend/internal/app/service"
	apperrors "github.com/ikkim/shop-backend/internal/errors"
	"github.com/ikkim/shop-backend/internal/middleware"
	"github.com/ikkim/shop-backend/pkg/logger"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

// GetAll ignores ?pattern; orders have no searchable name
// GET /api/v2/orders
func (ctrl *OrderController) GetAll(c *gin.Context) {
	params, ok := parseListParams(c)
	if !ok {
		return
	}

	orders, err := ctrl.orderService.GetAll(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OfOrders(orders))
}

// GET /api/v2/orders/:id
func (ctrl *OrderController) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	order, err := ctrl.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OfOrder(order))
}

// Create places an order. Guests order through an unregistered customer;
// an order for a registered user must come from that user or from staff.
// POST /api/v2/orders
func (ctrl *OrderController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req dto.OrderDTO
	if !bindJSON(c, &req) {
		return
	}
	req.ID = 0

	if req.UserID != nil && !isSelfOrStaff(c, *req.UserID, model.AccessManager, model.AccessAdministrator) {
		log.Warn("Order for another user rejected", logger.Fields{"user_id": *req.UserID})
		apperrors.Forbidden(c, "cannot place orders for another user")
		return
	}

	id, err := ctrl.orderService.Create(c.Request.Context(), req.ToModel())
	if err != nil {
		respondError(c, err)
		return
	}

	log.Info("Order created", logger.Fields{
		"order_id": id,
		"items":    len(req.OrderProducts),
	})
	c.JSON(http.StatusCreated, id)
}

// PATCH /api/v2/orders/:id
func (ctrl *OrderController) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.OrderDTO
	if !bindJSON(c, &req) {
		return
	}
	req.ID = id

	updatedID, err := ctrl.orderService.Update(c.Request.Context(), req.ToModel())
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.GetLoggerFromContext(c).Info("Order updated", logger.Fields{"order_id": id})
	c.JSON(http.StatusOK, updatedID)
}

// PATCH /api/v2/orders/:id/status
func (ctrl *OrderController) ChangeStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.StatusDTO
	if !bindJSON(c, &req) {
		return
	}

	updatedID, err := ctrl.orderService.ChangeStatus(c.Request.Context(), id, model.Status(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.GetLoggerFromContext(c).Info("Order status changed", logger.Fields{
		"order_id": id,
		"status":   req.Status,
	})
	c.JSON(http.StatusOK, updatedID)
}

// DELETE /api/v2/orders/:id
func (ctrl *OrderController) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.orderService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
