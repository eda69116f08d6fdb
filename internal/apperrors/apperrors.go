// Package apperrors defines the failure kinds the service layer surfaces:
// not-found, field-scoped validation, and authorization. Handlers translate
// each kind into its HTTP shape; services never map to status codes themselves.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// NotFoundError reports a referenced entity that is absent or already soft-deleted.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// NewNotFound creates a NotFoundError for the given entity and id.
func NewNotFound(entity string, id uint64) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf("%s with ID %d not found", entity, id)}
}

// ValidationError carries a field → messages map, matching the 422 response body.
type ValidationError struct {
	Details map[string][]string
}

func (e *ValidationError) Error() string {
	return "invalid input"
}

// NewValidation creates a ValidationError scoped to a single field.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Details: map[string][]string{field: {message}}}
}

// NewValidationDetails creates a ValidationError from a full field map.
func NewValidationDetails(details map[string][]string) *ValidationError {
	return &ValidationError{Details: details}
}

// AuthorizationError reports an RBAC denial or an unresolvable actor identity.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// NewAuthorization creates an AuthorizationError.
func NewAuthorization(message string) *AuthorizationError {
	return &AuthorizationError{Message: message}
}

// ErrorResponse is the JSON body for every error status.
type ErrorResponse struct {
	Error   string              `json:"error"`
	Details map[string][]string `json:"details,omitempty"`
}

// Respond writes the HTTP translation of err: Validation → 422 with the field
// map, NotFound → 404, Authorization → 403, anything else → 500.
func Respond(c *gin.Context, err error) {
	var validationErr *ValidationError
	var notFoundErr *NotFoundError
	var authErr *AuthorizationError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "Invalid input.",
			Details: validationErr.Details,
		})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: notFoundErr.Message})
	case errors.As(err, &authErr):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: authErr.Message})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "An unexpected error occurred. Please try again later.",
		})
	}
}

// Unauthorized writes a 401 for requests with no authenticated session.
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	c.JSON(http.StatusUnauthorized, ErrorResponse{Error: message})
}

// BadRequest writes a 400 for malformed request bodies.
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}
