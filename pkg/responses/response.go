package responses

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// SuccessResponse represents a standard success JSON response.
type SuccessResponse struct {
	Status  string      `json:"status"`  // "success"
	Message string      `json:"message"` // Optional success message
	Data    interface{} `json:"data"`    // The actual data payload
}

// ErrorResponse represents a standard error JSON response.
type ErrorResponse struct {
	Status  string            `json:"status"`           // "error" or "fail"
	Message string            `json:"message"`          // Error message
	Code    int               `json:"code"`             // HTTP status code
	Errors  map[string]string `json:"errors,omitempty"` // Per-field validation messages
}

// SendSuccess wraps data in the success envelope.
func SendSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	if message == "" {
		message = "OK"
	}
	c.JSON(statusCode, SuccessResponse{Status: "success", Message: message, Data: data})
}

// SendError aborts the request with the error envelope. 5xx codes are
// reported as "fail", everything else as "error".
func SendError(c *gin.Context, statusCode int, message string) {
	status := "error"
	if statusCode >= http.StatusInternalServerError {
		status = "fail"
	}
	if message == "" {
		message = http.StatusText(statusCode)
	}
	c.AbortWithStatusJSON(statusCode, ErrorResponse{Status: status, Message: message, Code: statusCode})
}

func NotFound(c *gin.Context, resourceName string) {
	SendError(c, http.StatusNotFound, resourceName+" not found")
}

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "A valid scorer token is required"
	}
	SendError(c, http.StatusUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	SendError(c, http.StatusForbidden, message)
}

func BadRequest(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, message)
}

// Conflict is used when the request clashes with the match history, such
// as an undo with nothing to restore.
func Conflict(c *gin.Context, message string) {
	SendError(c, http.StatusConflict, message)
}

// UnprocessableEntity reports a well-formed request the scoring rules reject.
func UnprocessableEntity(c *gin.Context, message string) {
	SendError(c, http.StatusUnprocessableEntity, message)
}

// ServiceUnavailable reports a dependency that is not configured or not reachable.
func ServiceUnavailable(c *gin.Context, message string) {
	SendError(c, http.StatusServiceUnavailable, message)
}

func InternalServerError(c *gin.Context, message string) {
	if message == "" {
		message = "An unexpected error occurred on the server"
	}
	SendError(c, http.StatusInternalServerError, message)
}

// ValidationErrorResponse sends a structured 400 for errors coming out of
// c.ShouldBindJSON. Validator failures are reported per field.
func ValidationErrorResponse(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
			Status:  "error",
			Message: "Validation failed. Please check your input.",
			Code:    http.StatusBadRequest,
			Errors:  formatValidationErrors(ve),
		})
		return
	}
	// malformed JSON and type mismatches
	BadRequest(c, "Invalid request payload: "+err.Error())
}

func formatValidationErrors(errs validator.ValidationErrors) map[string]string {
	formatted := make(map[string]string, len(errs))
	for _, err := range errs {
		var msg string
		switch err.Tag() {
		case "required":
			msg = fmt.Sprintf("The %s field is required.", err.Field())
		case "min":
			msg = fmt.Sprintf("The %s field must be at least %s.", err.Field(), err.Param())
		case "max":
			msg = fmt.Sprintf("The %s field must not exceed %s.", err.Field(), err.Param())
		case "oneof":
			msg = fmt.Sprintf("The %s field must be one of the following: %s.", err.Field(), strings.ReplaceAll(err.Param(), " ", ", "))
		case "nefield":
			msg = fmt.Sprintf("The %s field must differ from %s.", err.Field(), err.Param())
		default:
			msg = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag.", err.Field(), err.Tag())
		}
		formatted[strings.ToLower(err.Field())] = msg
	}
	return formatted
}
