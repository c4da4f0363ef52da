package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nativeswap/nativeswap/x/shared/errclass"
)

// requestError is a malformed request caught before reaching the engine.
type requestError struct {
	msg string
}

func (e *requestError) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return &requestError{msg: fmt.Sprintf(format, args...)}
}

// statusFor maps an error to its HTTP status and code.
func statusFor(err error) (int, string) {
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr):
		return http.StatusBadRequest, "BAD_REQUEST"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout, "TIMEOUT"
	}

	switch errclass.Classify(err) {
	case errclass.AccessDenied:
		return http.StatusForbidden, "ACCESS_DENIED"
	case errclass.Validation:
		return http.StatusBadRequest, "VALIDATION"
	case errclass.EconomicGuard:
		return http.StatusUnprocessableEntity, "ECONOMIC_GUARD"
	case errclass.Lifecycle:
		return http.StatusConflict, "LIFECYCLE"
	case errclass.Temporal:
		return http.StatusRequestTimeout, "DEADLINE_EXCEEDED"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// respondError writes err. Internal failures hide their detail.
func respondError(c *gin.Context, err error) {
	status, code := statusFor(err)
	resp := ErrorResponse{Error: err.Error(), Code: code}
	if status == http.StatusInternalServerError {
		resp.Error = "Internal server error"
	}
	c.AbortWithStatusJSON(status, resp)
}
