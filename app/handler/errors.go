package handler

import (
	"errors"
	"net/http"

	"tailorshop/app/middleware"
	"tailorshop/internal/roster"
	"tailorshop/internal/service"
	"tailorshop/internal/validation"
	"tailorshop/pkg/credential"
	"tailorshop/pkg/rosterapi"

	"github.com/gin-gonic/gin"
)

// ErrorResponse error payload returned by every handler
type ErrorResponse struct {
	Error     string            `json:"error"`
	Code      string            `json:"code"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"requestId,omitempty"`
}

// statusFor maps an error to its HTTP status and error code
func statusFor(err error) (int, string) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		return http.StatusUnprocessableEntity, "validation_error"
	case errors.Is(err, credential.ErrNotAuthenticated):
		return http.StatusUnauthorized, "not_authenticated"
	case errors.Is(err, rosterapi.ErrAuth):
		return http.StatusUnauthorized, "auth_error"
	case errors.Is(err, rosterapi.ErrValidation):
		return http.StatusUnprocessableEntity, "validation_error"
	case errors.Is(err, rosterapi.ErrNetwork):
		return http.StatusBadGateway, "network_error"
	case errors.Is(err, rosterapi.ErrServer):
		return http.StatusBadGateway, "server_error"
	case errors.Is(err, roster.ErrDuplicateType):
		return http.StatusConflict, "duplicate_type"
	case errors.Is(err, roster.ErrInvalidRate), errors.Is(err, roster.ErrEmptyType):
		return http.StatusUnprocessableEntity, "invalid_rate"
	case errors.Is(err, service.ErrWorkerNotFound):
		return http.StatusNotFound, "not_found"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// fieldsOf returns per-field messages carried by local or remote validation errors
func fieldsOf(err error) map[string]string {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return verrs
	}
	var apiErr *rosterapi.APIError
	if errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
		return apiErr.Fields
	}
	return nil
}

func respondError(c *gin.Context, err error) {
	status, code := statusFor(err)
	c.JSON(status, ErrorResponse{
		Error:     err.Error(),
		Code:      code,
		Fields:    fieldsOf(err),
		RequestID: middleware.GetRequestID(c),
	})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:     msg,
		Code:      "bad_request",
		RequestID: middleware.GetRequestID(c),
	})
}
