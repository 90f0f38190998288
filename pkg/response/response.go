package response

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorDetails is the error body returned by every failing endpoint.
// The shape is part of the external API contract.
type ErrorDetails struct {
	Message   string    `json:"message"`
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error"`
}

// NewErrorDetails builds an error body for the given status code
func NewErrorDetails(status int, message string) ErrorDetails {
	return ErrorDetails{
		Message:   message,
		Status:    status,
		Timestamp: time.Now(),
		Error:     statusName(status),
	}
}

// Error writes an error body and sets the response status
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, NewErrorDetails(status, message))
}

// AbortWithError writes an error body and aborts the handler chain
func AbortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, NewErrorDetails(status, message))
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

func InternalError(c *gin.Context, err error) {
	Error(c, http.StatusInternalServerError, err.Error())
}

// statusName renders an HTTP status as an upper snake-case name,
// e.g. 404 -> NOT_FOUND, matching the wire contract.
func statusName(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return "UNKNOWN"
	}
	return strings.ToUpper(strings.ReplaceAll(text, " ", "_"))
}
