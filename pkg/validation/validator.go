package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// MaxWaypointIDLength bounds waypoint and floor identifiers
	MaxWaypointIDLength = 128

	idPattern = regexp.MustCompile(`^[A-Za-z0-9_.:\-]+$`)
)

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("waypointid", func(fl validator.FieldLevel) bool {
		return ValidateWaypointID(fl.Field().String()) == nil
	})
}

// Struct validates any struct using its `validate` tags and reports the
// first failure in a readable form.
func Struct(v any) error {
	if v == nil {
		return errors.New("value cannot be nil")
	}
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateWaypointID validates a waypoint or floor identifier
func ValidateWaypointID(id string) error {
	if id == "" {
		return errors.New("id cannot be empty")
	}
	if len(id) > MaxWaypointIDLength {
		return fmt.Errorf("id '%s' exceeds maximum length of %d characters", id, MaxWaypointIDLength)
	}
	if !idPattern.MatchString(id) {
		return fmt.Errorf("id '%s' contains invalid characters (only alphanumeric, '_', '.', ':' and '-' allowed)", id)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Namespace()
		tag := e.Tag()
		param := e.Param()

		switch tag {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min", "gte":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max", "lte":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "waypointid":
			return fmt.Errorf("%s: invalid identifier %q", field, e.Value())
		case "dive":
			return fmt.Errorf("%s: invalid element in array", field)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, tag)
		}
	}

	return err
}
