package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform JSON body for every API response. Code is 0 on
// success and the HTTP status on failure, so clients can branch on the
// body alone.
type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Success writes a 200 with the payload wrapped in the standard envelope.
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Code: 0, Message: "success", Data: data})
}

// Error writes an error envelope with the given HTTP status.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Code: status, Message: message})
}

// BadRequest writes a 400 error envelope.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// InternalError writes a 500 error envelope.
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}
