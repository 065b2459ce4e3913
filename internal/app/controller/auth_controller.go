package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/shop-backend/internal/app/dto"
	"github.com/ikkim/shop-backend/internal/app/service"
	apperrors "github.com/ikkim/shop-backend/internal/errors"
	"github.com/ikkim/shop-backend/internal/middleware"
	"github.com/ikkim/shop-backend/pkg/logger"
)

type AuthController struct {
	userService service.UserService
}

func NewAuthController(userService service.UserService) *AuthController {
	return &AuthController{
		userService: userService,
	}
}

// Login exchanges phone and password for a bearer token
// POST /api/v2/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := ctrl.userService.Login(c.Request.Context(), req.Phone, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			apperrors.Unauthorized(c, apperrors.AuthInvalidCredentials, "invalid phone or password")
			return
		}
		log.Error("Login failed", err)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      dto.OfUser(session.User),
	})
}

// Ping checks that a token is still valid for the given user
// POST /api/v2/ping/:userId
func (ctrl *AuthController) Ping(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}
	var req dto.PingRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := ctrl.userService.Ping(c.Request.Context(), userID, req.Token); err != nil {
		middleware.RespondTokenError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true})
}

// Logout revokes the bearer token of the request
// POST /api/v2/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	token, ok := middleware.GetToken(c)
	if !ok {
		apperrors.Unauthorized(c, "", "")
		return
	}

	err := ctrl.userService.Logout(c.Request.Context(), token)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
	case errors.Is(err, service.ErrRevocationDisabled):
		apperrors.RespondWithError(c, http.StatusNotImplemented, apperrors.InternalServerError, err.Error())
	default:
		log.Warn("Logout failed", logger.Fields{"error": err.Error()})
		middleware.RespondTokenError(c, err)
	}
}
