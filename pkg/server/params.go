package server

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.openly.dev/pointy"

	"droscher.com/BrewJournal/pkg/model"
)

const (
	defaultListCount = 10
	minListCount     = 1
	maxListCount     = 100
)

func parseCount(c *gin.Context) (int, error) {
	raw := c.Query("count")
	if raw == "" {
		return defaultListCount, nil
	}

	count, err := strconv.Atoi(raw)
	if err != nil || count < minListCount || count > maxListCount {
		return 0, newValidationError([]FieldError{{
			Field:   "count",
			Message: fmt.Sprintf("must be an integer between %d and %d", minListCount, maxListCount),
		}})
	}

	return count, nil
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, newValidationError([]FieldError{{Field: "id", Message: "must be a positive integer"}})
	}

	return uint(id), nil
}

// queryParams accumulates field errors while pulling typed filter values out
// of the query string, so one response can report every bad parameter.
type queryParams struct {
	c      *gin.Context
	fields []FieldError
}

func newQueryParams(c *gin.Context) *queryParams {
	return &queryParams{c: c}
}

func (q *queryParams) err() error {
	if len(q.fields) > 0 {
		return newValidationError(q.fields)
	}

	return nil
}

func (q *queryParams) invalid(name string, message string) {
	q.fields = append(q.fields, FieldError{Field: name, Message: message})
}

func (q *queryParams) str(name string) *string {
	raw := q.c.Query(name)
	if raw == "" {
		return nil
	}

	return pointy.String(raw)
}

func (q *queryParams) integer(name string) *int {
	raw := q.c.Query(name)
	if raw == "" {
		return nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		q.invalid(name, "must be an integer")

		return nil
	}

	return pointy.Int(value)
}

func (q *queryParams) uinteger(name string) *uint {
	raw := q.c.Query(name)
	if raw == "" {
		return nil
	}

	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		q.invalid(name, "must be a positive integer")

		return nil
	}

	return pointy.Uint(uint(value))
}

func (q *queryParams) float(name string) *float64 {
	raw := q.c.Query(name)
	if raw == "" {
		return nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		q.invalid(name, "must be a number")

		return nil
	}

	return pointy.Float64(value)
}

func (q *queryParams) boolean(name string) *bool {
	raw := q.c.Query(name)
	if raw == "" {
		return nil
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		q.invalid(name, "must be a boolean")

		return nil
	}

	return pointy.Bool(value)
}

func (q *queryParams) timestamp(name string) *time.Time {
	raw := q.c.Query(name)
	if raw == "" {
		return nil
	}

	if value, err := time.Parse(time.RFC3339, raw); err == nil {
		return &value
	}

	if value, err := time.Parse("2006-01-02", raw); err == nil {
		return &value
	}

	q.invalid(name, "must be an RFC 3339 timestamp or YYYY-MM-DD date")

	return nil
}

func (q *queryParams) roastLevel(name string) *model.RoastLevel {
	raw := q.c.Query(name)
	if raw == "" {
		return nil
	}

	level, err := model.ParseRoastLevel(raw)
	if err != nil {
		q.invalid(name, "must be a roast level name or ordinal")

		return nil
	}

	return &level
}

func (q *queryParams) brewMethod(name string) *model.BrewMethod {
	raw := q.c.Query(name)
	if raw == "" {
		return nil
	}

	method, err := model.ParseBrewMethod(raw)
	if err != nil {
		q.invalid(name, "must be a brew method name or ordinal")

		return nil
	}

	return &method
}

func (q *queryParams) equipmentType(name string) *model.EquipmentType {
	raw := q.c.Query(name)
	if raw == "" {
		return nil
	}

	equipmentType, err := model.ParseEquipmentType(raw)
	if err != nil {
		q.invalid(name, "must be an equipment type name or ordinal")

		return nil
	}

	return &equipmentType
}
