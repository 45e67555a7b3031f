package validation

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Struct validates obj against its `validate` struct tags and converts the
// failures into Errors. It returns nil when obj is valid.
func Struct(obj any) Errors {
	err := validate.Struct(obj)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Errors{{Field: "request", Message: err.Error()}}
	}

	out := make(Errors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Message: tagMessage(fe),
		})
	}
	return out
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return "Value is too short"
	case "max":
		return "Value is too long"
	case "oneof":
		return "Value must be one of " + fe.Param()
	case "e164":
		return "Invalid phone number"
	case "numeric":
		return "Value must be numeric"
	case "gt":
		return "Value must be greater than " + fe.Param()
	case "gte":
		return "Value must be greater than or equal to " + fe.Param()
	default:
		return "Invalid value"
	}
}
