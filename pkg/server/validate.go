package server

import (
	"fmt"
	"strconv"

	"go.uber.org/multierr"

	"droscher.com/BrewJournal/pkg/model"
)

const (
	maxNameLength  = 200
	maxLabelLength = 100
	maxNotesLength = 500
	maxTastingLen  = 1000

	minGrindSize   = 1
	maxGrindSize   = 30
	maxGrindWeight = 1000.0
	maxGrindTime   = 600.0

	minSessionRating = 1
	maxSessionRating = 10

	maxBarPressure = 20.0
)

type brewRange struct {
	minTemperature float64
	maxTemperature float64
	minTimeSeconds int
	maxTimeSeconds int
}

var brewRanges = map[model.BrewMethod]brewRange{
	model.MethodEspresso:    {88, 96, 20, 40},
	model.MethodFrenchPress: {92, 96, 180, 300},
	model.MethodPourOver:    {90, 96, 120, 360},
	model.MethodDrip:        {90, 96, 240, 480},
	model.MethodAeroPress:   {80, 95, 60, 180},
	model.MethodColdBrew:    {4, 25, 28800, 86400},
}

// Unknown methods fall back to a permissive envelope.
var defaultBrewRange = brewRange{80, 100, 30, 86400}

// validateBrewParameters enforces the per-method temperature and time ranges.
// Both violations are folded into the single business error the client sees.
func validateBrewParameters(method model.BrewMethod, temperature float64, brewTimeSeconds int) error {
	limits, ok := brewRanges[method]
	if !ok {
		limits = defaultBrewRange
	}

	var errs error

	if temperature < limits.minTemperature || temperature > limits.maxTemperature {
		multierr.AppendInto(&errs, fmt.Errorf("%w: water temperature for %s must be between %g°C and %g°C",
			ErrBusinessRule, method, limits.minTemperature, limits.maxTemperature))
	}

	if brewTimeSeconds < limits.minTimeSeconds || brewTimeSeconds > limits.maxTimeSeconds {
		multierr.AppendInto(&errs, fmt.Errorf("%w: brew time for %s must be between %ds and %ds",
			ErrBusinessRule, method, limits.minTimeSeconds, limits.maxTimeSeconds))
	}

	return errs
}

// validateEquipmentSpecs applies the type-specific soft checks on the
// free-form specification map. Absent keys are fine; present keys must parse
// and fall in range.
func validateEquipmentSpecs(equipmentType model.EquipmentType, specs map[string]string) error {
	var errs error

	switch equipmentType {
	case model.EquipmentEspressoMachine:
		if raw, ok := specs["pressure_bars"]; ok {
			pressure, err := strconv.ParseFloat(raw, 64)
			if err != nil || pressure < 0 || pressure > maxBarPressure {
				multierr.AppendInto(&errs, fmt.Errorf("%w: pressure_bars must be a number between 0 and %g",
					ErrBusinessRule, maxBarPressure))
			}
		}
	case model.EquipmentGrinder:
		if raw, ok := specs["motor_power_watts"]; ok {
			power, err := strconv.ParseFloat(raw, 64)
			if err != nil || power <= 0 {
				multierr.AppendInto(&errs, fmt.Errorf("%w: motor_power_watts must be a positive number", ErrBusinessRule))
			}
		}
	case model.EquipmentFrenchPress, model.EquipmentPourOverDripper, model.EquipmentAeroPress, model.EquipmentColdBrewMaker:
	}

	return errs
}

func validateBeanRequest(req *coffeeBeanRequest) error {
	var fields []FieldError

	fields = appendRequiredString(fields, "name", req.Name, maxNameLength)
	fields = appendRequiredString(fields, "brand", req.Brand, maxNameLength)

	if req.RoastLevel == nil {
		fields = append(fields, FieldError{Field: "roastLevel", Message: "is required"})
	}

	if len(req.Origin) > maxNameLength {
		fields = append(fields, FieldError{Field: "origin", Message: fmt.Sprintf("must be at most %d characters", maxNameLength)})
	}

	if len(fields) > 0 {
		return newValidationError(fields)
	}

	return nil
}

func validateGrindRequest(req *grindSettingRequest) error {
	var fields []FieldError

	switch {
	case req.GrindSize == nil:
		fields = append(fields, FieldError{Field: "grindSize", Message: "is required"})
	case *req.GrindSize < minGrindSize || *req.GrindSize > maxGrindSize:
		fields = append(fields, FieldError{Field: "grindSize", Message: fmt.Sprintf("must be between %d and %d", minGrindSize, maxGrindSize)})
	}

	switch {
	case req.GrindTimeSeconds == nil:
		fields = append(fields, FieldError{Field: "grindTimeSeconds", Message: "is required"})
	case *req.GrindTimeSeconds <= 0 || *req.GrindTimeSeconds > maxGrindTime:
		fields = append(fields, FieldError{Field: "grindTimeSeconds", Message: fmt.Sprintf("must be greater than 0 and at most %g", maxGrindTime)})
	}

	switch {
	case req.GrindWeightGrams == nil:
		fields = append(fields, FieldError{Field: "grindWeightGrams", Message: "is required"})
	case *req.GrindWeightGrams <= 0 || *req.GrindWeightGrams > maxGrindWeight:
		fields = append(fields, FieldError{Field: "grindWeightGrams", Message: fmt.Sprintf("must be greater than 0 and at most %g", maxGrindWeight)})
	}

	fields = appendRequiredString(fields, "grinderType", req.GrinderType, maxLabelLength)

	if len(req.Notes) > maxNotesLength {
		fields = append(fields, FieldError{Field: "notes", Message: fmt.Sprintf("must be at most %d characters", maxNotesLength)})
	}

	if len(fields) > 0 {
		return newValidationError(fields)
	}

	return nil
}

func validateEquipmentRequest(req *equipmentRequest) error {
	var fields []FieldError

	fields = appendRequiredString(fields, "vendor", req.Vendor, maxLabelLength)
	fields = appendRequiredString(fields, "model", req.Model, maxLabelLength)

	if req.Type == nil {
		fields = append(fields, FieldError{Field: "type", Message: "is required"})
	}

	if len(fields) > 0 {
		return newValidationError(fields)
	}

	return nil
}

func validateSessionRequest(req *brewSessionRequest) error {
	var fields []FieldError

	if req.Method == nil {
		fields = append(fields, FieldError{Field: "method", Message: "is required"})
	}

	if req.WaterTemperature == nil {
		fields = append(fields, FieldError{Field: "waterTemperature", Message: "is required"})
	}

	if req.BrewTimeSeconds == nil {
		fields = append(fields, FieldError{Field: "brewTimeSeconds", Message: "is required"})
	}

	if req.Rating != nil && (*req.Rating < minSessionRating || *req.Rating > maxSessionRating) {
		fields = append(fields, FieldError{Field: "rating", Message: fmt.Sprintf("must be between %d and %d", minSessionRating, maxSessionRating)})
	}

	if req.CoffeeBeanID == nil {
		fields = append(fields, FieldError{Field: "coffeeBeanId", Message: "is required"})
	}

	if req.GrindSettingID == nil {
		fields = append(fields, FieldError{Field: "grindSettingId", Message: "is required"})
	}

	if len(req.TastingNotes) > maxTastingLen {
		fields = append(fields, FieldError{Field: "tastingNotes", Message: fmt.Sprintf("must be at most %d characters", maxTastingLen)})
	}

	if len(fields) > 0 {
		return newValidationError(fields)
	}

	return nil
}

func appendRequiredString(fields []FieldError, name string, value string, maxLength int) []FieldError {
	if value == "" {
		return append(fields, FieldError{Field: name, Message: "is required"})
	}

	if len(value) > maxLength {
		return append(fields, FieldError{Field: name, Message: fmt.Sprintf("must be at most %d characters", maxLength)})
	}

	return fields
}
