package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func SuccessResponse(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, code int, message string, errors interface{}) {
	c.AbortWithStatusJSON(code, APIResponse{
		Success: false,
		Message: message,
		Errors:  errors,
	})
}

// InternalError hides detail unless showDetail is set.
func InternalError(c *gin.Context, err error, showDetail bool) {
	detail := "Something went wrong"
	if showDetail && err != nil {
		detail = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, APIResponse{
		Success: false,
		Message: "Internal server error",
		Error:   detail,
	})
}
