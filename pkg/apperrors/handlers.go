package apperrors

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// HandleError renders err as the uniform JSON error envelope.
// Non-AppError values are treated as internal errors and their cause is
// kept out of the response.
func HandleError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		slog.Error("server error", "code", appErr.Code, "error", appErr.Error())
	}

	c.JSON(appErr.HTTPCode, appErr)
}

// AsAppError unwraps err into *AppError when possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
