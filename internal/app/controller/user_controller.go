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

type UserController struct {
	userService  service.UserService
	orderService service.OrderService
}

func NewUserController(userService service.UserService, orderService service.OrderService) *UserController {
	return &UserController{
		userService:  userService,
		orderService: orderService,
	}
}

// GET /api/v2/users
func (ctrl *UserController) GetAll(c *gin.Context) {
	params, ok := parseListParams(c)
	if !ok {
		return
	}

	users, err := ctrl.userService.GetAll(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OfUsers(users))
}

// GET /api/v2/users/:id
func (ctrl *UserController) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if !isSelfOrStaff(c, id, model.AccessManager, model.AccessAdministrator) {
		apperrors.Forbidden(c, "")
		return
	}

	user, err := ctrl.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OfUser(user))
}

// Create registers a user. Only administrators may register anything
// other than a USER.
// POST /api/v2/users
func (ctrl *UserController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req dto.UserDTO
	if !bindJSON(c, &req) {
		return
	}
	req.ID = 0

	if !mayGrant(c, model.Access(req.Access)) {
		log.Warn("Access level escalation rejected", logger.Fields{"access": req.Access})
		apperrors.Forbidden(c, "only administrators may assign access levels")
		return
	}

	id, err := ctrl.userService.Create(c.Request.Context(), req.ToModel(), req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	log.Info("User registered", logger.Fields{"user_id": id})
	c.JSON(http.StatusCreated, id)
}

// Update lets users edit their own profile; administrators may edit anyone
// PATCH /api/v2/users/:id
func (ctrl *UserController) Update(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if !isSelfOrStaff(c, id, model.AccessAdministrator) {
		apperrors.Forbidden(c, "")
		return
	}
	var req dto.UserDTO
	if !bindJSON(c, &req) {
		return
	}
	req.ID = id

	if !mayGrant(c, model.Access(req.Access)) {
		log.Warn("Access level escalation rejected", logger.Fields{
			"user_id": id,
			"access":  req.Access,
		})
		apperrors.Forbidden(c, "only administrators may change access levels")
		return
	}

	updatedID, err := ctrl.userService.Update(c.Request.Context(), req.ToModel(), req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updatedID)
}

// DELETE /api/v2/users/:id
func (ctrl *UserController) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.userService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	middleware.GetLoggerFromContext(c).Info("User deleted", logger.Fields{"user_id": id})
	c.Status(http.StatusNoContent)
}

// GET /api/v2/users/:id/orders
func (ctrl *UserController) GetOrders(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if !isSelfOrStaff(c, id, model.AccessManager, model.AccessAdministrator) {
		apperrors.Forbidden(c, "")
		return
	}
	params, ok := parseListParams(c)
	if !ok {
		return
	}

	orders, err := ctrl.orderService.GetByUser(c.Request.Context(), id, params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OfOrders(orders))
}

// mayGrant reports whether the caller may set the requested access level.
// An empty level keeps the default or the stored value.
func mayGrant(c *gin.Context, requested model.Access) bool {
	if requested == "" {
		return true
	}
	current, ok := middleware.GetUserAccess(c)
	if ok && current == model.AccessAdministrator {
		return true
	}
	if ok {
		return requested == current
	}
	return requested == model.AccessUser
}
