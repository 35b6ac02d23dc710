package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"social-service/internal/services"
	"social-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// writeServiceError maps a service error to its HTTP status and response code.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMissingRecipient),
		errors.Is(err, services.ErrMissingRequestID),
		errors.Is(err, services.ErrInvalidSearch),
		errors.Is(err, services.ErrInvalidRequest):
		response.Error(c, http.StatusBadRequest, response.CodeValidation, err.Error(), "")
	case errors.Is(err, services.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "User Not Found.", "")
	case errors.Is(err, services.ErrSelfRequest):
		response.Error(c, http.StatusBadRequest, response.CodeSelfRequest, "", "")
	case errors.Is(err, services.ErrRateLimited):
		response.Error(c, http.StatusBadRequest, response.CodeRateLimited, "", "")
	case errors.Is(err, services.ErrRequestNotPending):
		response.Error(c, http.StatusBadRequest, response.CodeNotPending, "", "")
	case errors.Is(err, services.ErrForbidden):
		response.Error(c, http.StatusForbidden, response.CodeForbidden, "", "")
	case errors.Is(err, services.ErrUserNotRegistered):
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "User not registered.", "")
	case errors.Is(err, services.ErrWrongPassword):
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Wrong Password.", "")
	case errors.Is(err, services.ErrInvalidToken):
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "", "invalid or expired token")
	default:
		_ = c.Error(err)
		slog.Error("Request failed", "path", c.Request.URL.Path, "error", err)
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "", "")
	}
}

func writeBindError(c *gin.Context, err error) {
	response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid input data", err.Error())
}

// errorLabel is the metrics label for a failed friend operation.
func errorLabel(err error) string {
	switch {
	case errors.Is(err, services.ErrMissingRecipient), errors.Is(err, services.ErrMissingRequestID):
		return "validation"
	case errors.Is(err, services.ErrUserNotFound):
		return "not_found"
	case errors.Is(err, services.ErrSelfRequest):
		return "self_request"
	case errors.Is(err, services.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, services.ErrRequestNotPending):
		return "not_pending"
	case errors.Is(err, services.ErrForbidden):
		return "forbidden"
	default:
		return "error"
	}
}
