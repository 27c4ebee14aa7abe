package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"droscher.com/BrewJournal/pkg/repository"
)

var (
	ErrBusinessRule = errors.New("business rule violation")
	ErrConflict     = errors.New("conflict")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries the full list of field violations collected by the
// input validators.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	messages := make([]string, 0, len(e.Fields))

	for _, field := range e.Fields {
		messages = append(messages, fmt.Sprintf("%s: %s", field.Field, field.Message))
	}

	return "validation failed: " + strings.Join(messages, ", ")
}

func newValidationError(fields []FieldError) error {
	return &ValidationError{Fields: fields}
}

type errorResponse struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// respondError is the single boundary translating the error taxonomy to HTTP
// statuses. Anything unrecognized is logged and reported as an internal error.
func (s *Server) respondError(c *gin.Context, err error) {
	var validationErr *ValidationError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, errorResponse{
			Code:    "validation_failed",
			Message: "one or more fields are invalid",
			Errors:  validationErr.Fields,
		})
	case errors.Is(err, ErrBusinessRule):
		c.JSON(http.StatusBadRequest, errorResponse{
			Code:    "business_rule_violation",
			Message: err.Error(),
		})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{
			Code:    "not_found",
			Message: err.Error(),
		})
	case errors.Is(err, ErrConflict):
		c.JSON(http.StatusConflict, errorResponse{
			Code:    "conflict",
			Message: err.Error(),
		})
	default:
		s.logger.Error("unhandled error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{
			Code:    "internal_error",
			Message: "internal server error",
		})
	}
}

func (s *Server) respondBindError(c *gin.Context, err error) {
	s.respondError(c, newValidationError([]FieldError{{Field: "body", Message: err.Error()}}))
}
