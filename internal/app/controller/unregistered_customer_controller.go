package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/shop-backend/internal/app/dto"
	"github.com/ikkim/shop-backend/internal/app/service"
	"github.com/ikkim/shop-backend/internal/middleware"
	"github.com/ikkim/shop-backend/pkg/logger"
)

type UnregisteredCustomerController struct {
	customerService service.UnregisteredCustomerService
	orderService    service.OrderService
}

func NewUnregisteredCustomerController(customerService service.UnregisteredCustomerService, orderService service.OrderService) *UnregisteredCustomerController {
	return &UnregisteredCustomerController{
		customerService: customerService,
		orderService:    orderService,
	}
}

// GET /api/v2/unregistered_customers
func (ctrl *UnregisteredCustomerController) GetAll(c *gin.Context) {
	params, ok := parseListParams(c)
	if !ok {
		return
	}

	customers, err := ctrl.customerService.GetAll(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OfUnregisteredCustomers(customers))
}

// GET /api/v2/unregistered_customers/:id
func (ctrl *UnregisteredCustomerController) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	customer, err := ctrl.customerService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OfUnregisteredCustomer(customer))
}

// Create registers the contact details of a guest checkout
// POST /api/v2/unregistered_customers
func (ctrl *UnregisteredCustomerController) Create(c *gin.Context) {
	var req dto.UnregisteredCustomerDTO
	if !bindJSON(c, &req) {
		return
	}
	req.ID = 0

	id, err := ctrl.customerService.Create(c.Request.Context(), req.ToModel())
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.GetLoggerFromContext(c).Info("Unregistered customer created", logger.Fields{"customer_id": id})
	c.JSON(http.StatusCreated, id)
}

// PATCH /api/v2/unregistered_customers/:id
func (ctrl *UnregisteredCustomerController) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UnregisteredCustomerDTO
	if !bindJSON(c, &req) {
		return
	}
	req.ID = id

	updatedID, err := ctrl.customerService.Update(c.Request.Context(), req.ToModel())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updatedID)
}

// DELETE /api/v2/unregistered_customers/:id
func (ctrl *UnregisteredCustomerController) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.customerService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/v2/unregistered_customers/:id/orders
func (ctrl *UnregisteredCustomerController) GetOrders(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	params, ok := parseListParams(c)
	if !ok {
		return
	}

	orders, err := ctrl.orderService.GetByUnregisteredCustomer(c.Request.Context(), id, params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OfOrders(orders))
}
