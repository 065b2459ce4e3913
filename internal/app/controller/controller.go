package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/shop-backend/internal/app/dto"
	"github.com/ikkim/shop-backend/internal/app/model"
	"github.com/ikkim/shop-backend/internal/app/service"
	apperrors "github.com/ikkim/shop-backend/internal/errors"
	"github.com/ikkim/shop-backend/internal/middleware"
	"github.com/ikkim/shop-backend/pkg/logger"
)

// parseID reads a positive numeric path parameter
func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		middleware.GetLoggerFromContext(c).Warn("Invalid id parameter", logger.Fields{
			"param": param,
			"value": c.Param(param),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "invalid "+param)
		return 0, false
	}
	return uint(id), true
}

// parseListParams reads ?pattern=&quantity=&offset=
func parseListParams(c *gin.Context) (service.ListParams, bool) {
	params := service.ListParams{Pattern: c.Query("pattern")}

	fields := map[string]string{}
	params.Quantity = queryInt(c, "quantity", fields)
	params.Offset = queryInt(c, "offset", fields)
	if len(fields) > 0 {
		apperrors.RespondWithFields(c, http.StatusBadRequest, fields)
		return params, false
	}
	return params, true
}

func queryInt(c *gin.Context, name string, fields map[string]string) *int {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		fields[name] = "must be an integer"
		return nil
	}
	return &v
}

// bindJSON decodes the body into dst and runs struct validation.
// It writes the 400 response itself and reports whether to continue.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		middleware.GetLoggerFromContext(c).Warn("Invalid request body", logger.Fields{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid request body")
		return false
	}
	if fields := dto.Validate(dst); len(fields) > 0 {
		middleware.GetLoggerFromContext(c).Warn("Request validation failed", logger.Fields{
			"fields": fields,
		})
		apperrors.RespondWithFields(c, http.StatusBadRequest, fields)
		return false
	}
	return true
}

// clientFailure is implemented by the service create/update/delete errors
type clientFailure interface {
	error
	FieldErrors() map[string]string
	ClientMessage() string
	ClientCode() string
}

// respondError maps service errors onto HTTP responses. Causes of failures
// are logged, never sent.
func respondError(c *gin.Context, err error) {
	log := middleware.GetLoggerFromContext(c)

	var (
		notFound   *service.NotFoundError
		notCreated *service.NotCreatedError
		notUpdated *service.NotUpdatedError
		notDeleted *service.NotDeletedError
	)
	switch {
	case errors.As(err, &notFound):
		log.Warn("Resource not found", logger.Fields{"kind": notFound.Kind, "id": notFound.ID})
		apperrors.NotFound(c, apperrors.ResourceNotFound, notFound.Error())
	case errors.As(err, &notCreated):
		respondFailure(c, apperrors.ResourceNotCreated, notCreated)
	case errors.As(err, &notUpdated):
		respondFailure(c, apperrors.ResourceNotUpdated, notUpdated)
	case errors.As(err, &notDeleted):
		respondFailure(c, apperrors.ResourceNotDeleted, notDeleted)
	default:
		log.Error("Unhandled service error", err)
		apperrors.InternalError(c, "")
	}
}

func respondFailure(c *gin.Context, fallbackCode string, f clientFailure) {
	code := f.ClientCode()
	if code == "" {
		code = fallbackCode
	}
	log := middleware.GetLoggerFromContext(c)

	if code == apperrors.InternalDatabaseError {
		log.Error(f.ClientMessage(), f)
		apperrors.InternalError(c, f.ClientMessage())
		return
	}
	log.Warn(f.ClientMessage(), logger.Fields{
		"code":  code,
		"error": f.Error(),
	})
	if fields := f.FieldErrors(); len(fields) > 0 {
		apperrors.RespondWithFields(c, http.StatusBadRequest, fields)
		return
	}
	apperrors.BadRequest(c, code, f.ClientMessage())
}

// isSelfOrStaff allows the owner of userID, or any of staff
func isSelfOrStaff(c *gin.Context, userID uint, staff ...model.Access) bool {
	if id, ok := middleware.GetUserID(c); ok && id == userID {
		return true
	}
	access, ok := middleware.GetUserAccess(c)
	return ok && middleware.HasAccess(access, staff...)
}
