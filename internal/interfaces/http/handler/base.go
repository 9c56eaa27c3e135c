package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smartbiz/backend/internal/domain/shared"
	"github.com/smartbiz/backend/internal/infrastructure/logger"
	"github.com/smartbiz/backend/internal/interfaces/http/dto"
	"github.com/smartbiz/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides shared helpers for the resource handlers
type BaseHandler struct{}

// getTenantID resolves the tenant scope for the request. The JWT middleware
// is authoritative, the X-Tenant-ID header is accepted only when no token
// scope is present (development setups without the auth layer).
func (h *BaseHandler) getTenantID(c *gin.Context) (uuid.UUID, bool) {
	if tenantID, ok := middleware.GetJWTTenantID(c); ok {
		return tenantID, true
	}

	header := c.GetHeader("X-Tenant-ID")
	if header == "" {
		h.Unauthorized(c, "Missing tenant scope")
		return uuid.Nil, false
	}
	tenantID, err := uuid.Parse(header)
	if err != nil {
		h.BadRequest(c, "Invalid X-Tenant-ID header")
		return uuid.Nil, false
	}
	return tenantID, true
}

// getUserID resolves the acting user for the request
func (h *BaseHandler) getUserID(c *gin.Context) (uuid.UUID, bool) {
	if userID, ok := middleware.GetJWTUserID(c); ok {
		return userID, true
	}

	header := c.GetHeader("X-User-ID")
	if header == "" {
		h.Unauthorized(c, "Missing user identity")
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(header)
	if err != nil {
		h.BadRequest(c, "Invalid X-User-ID header")
		return uuid.Nil, false
	}
	return userID, true
}

// parseIDParam parses a UUID path parameter
func (h *BaseHandler) parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, "Invalid "+name+" parameter")
		return uuid.Nil, false
	}
	return id, true
}

// Success writes a 200 response with data
func (h *BaseHandler) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta writes a 200 response with data and pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data interface{}, page, pageSize int, total int64) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, page, pageSize, total))
}

// Created writes a 201 response with data
func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent writes a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest writes a 400 response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.CodeInvalidInput, message))
}

// Unauthorized writes a 401 response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.CodeUnauthorized, message))
}

// HandleError maps an error from the application layer onto the response
// envelope. Domain errors carry their own code, anything else is a 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		c.JSON(dto.GetHTTPStatus(domainErr.Code),
			dto.NewErrorResponse(domainErr.Code, domainErr.Message))
		return
	}

	logger.GetGinLogger(c).Error("Unhandled error", zap.Error(err))
	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponse(dto.CodeInternalError, "An internal error occurred"))
}
