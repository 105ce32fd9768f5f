package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers alias tags for common validations.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		// Aliases for common semantics
		v.RegisterAlias("pwd", "min=6") // password minimum length
		v.RegisterAlias("nonzero", "required")
	}
}

// ToDetails converts validation/binding errors into a map[field]message
// suitable for API error details.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	// Invalid JSON payloads
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}

	// Validation errors from validator.v10
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	// Fallback
	return map[string]string{"payload": "invalid payload"}
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()
	kind := fe.Kind()

	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "uuid":
		return "must be a valid UUID"
	case "datetime":
		return "must be a valid timestamp"
	case "pwd", "min":
		if tag == "pwd" {
			param = "6"
		}
		switch kind {
		case reflect.String:
			return "must be at least " + param + " characters"
		case reflect.Slice, reflect.Map, reflect.Array:
			return "must contain at least " + param + " items"
		default:
			return "must be at least " + param
		}
	case "max":
		switch kind {
		case reflect.String:
			return "must be at most " + param + " characters"
		case reflect.Slice, reflect.Map, reflect.Array:
			return "must contain at most " + param + " items"
		default:
			return "must be at most " + param
		}
	case "gt":
		if param == "0" {
			return "must be positive"
		}
		return "must be greater than " + param
	case "gte":
		return "must be " + param + " or more"
	case "lt":
		return "must be less than " + param
	case "lte":
		return "must be " + param + " or less"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(param, " ", ", ")
	case "len":
		return "must be exactly " + param + " characters"
	case "alphanum":
		return "must contain only letters and numbers"
	case "numeric":
		return "must be numeric"
	default:
		return "is invalid"
	}
}
