package validator

import (
	"net/url"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

var siretPattern = regexp.MustCompile(`^\d{14}-\d{2}$`)

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Register custom validations
	registerCustomValidations()
}

func registerCustomValidations() {
	// SIRET augmented with the site number: 14 digits, dash, 2 digits
	validate.RegisterValidation("siret", func(fl validator.FieldLevel) bool {
		return siretPattern.MatchString(strings.TrimSpace(fl.Field().String()))
	})

	// Hex blob, spaces allowed between digits
	validate.RegisterValidation("hexkey", func(fl validator.FieldLevel) bool {
		key := strings.ReplaceAll(fl.Field().String(), " ", "")
		if key == "" || len(key)%2 != 0 {
			return false
		}
		for i := 0; i < len(key); i++ {
			c := key[i]
			if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
				return false
			}
		}
		return true
	})

	// SystemPay context mode
	validate.RegisterValidation("ctxmode", func(fl validator.FieldLevel) bool {
		mode := strings.ToUpper(fl.Field().String())
		return mode == "TEST" || mode == "PRODUCTION"
	})

	// Absolute http(s) URL without query string
	validate.RegisterValidation("httpurl", func(fl validator.FieldLevel) bool {
		return IsReturnURL(fl.Field().String())
	})
}

// IsReturnURL reports whether raw is an absolute http or https URL that
// carries no query string
func IsReturnURL(raw string) bool {
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return false
	}
	if strings.Contains(raw, "?") {
		return false
	}
	u, err := url.Parse(raw)
	return err == nil && u.Host != ""
}

// FieldError is a single failed constraint
type FieldError struct {
	Field   string
	Tag     string
	Message string
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	fieldErrors := Check(s)
	if len(fieldErrors) == 0 {
		return nil
	}

	errors := make(map[string]string, len(fieldErrors))
	for _, fe := range fieldErrors {
		errors[fe.Field] = fe.Message
	}
	return errors
}

// Check validates a struct and returns the failed constraints in field order
func Check(s interface{}) []FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(validationErrors))
	for _, err := range validationErrors {
		out = append(out, FieldError{
			Field:   err.Field(),
			Tag:     err.Tag(),
			Message: message(err),
		})
	}
	return out
}

func message(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "len":
		return "Value must have length " + err.Param()
	case "min":
		return "Value is too short (min: " + err.Param() + ")"
	case "max":
		return "Value is too long (max: " + err.Param() + ")"
	case "numeric":
		return "Value must be numeric"
	case "url":
		return "Invalid URL format"
	case "siret":
		return "Invalid siret. Must look like 00000000000001-01"
	case "hexkey":
		return "Invalid key. Must be hexadecimal digits"
	case "ctxmode":
		return "Invalid context mode. Must be: TEST or PRODUCTION"
	case "httpurl":
		return "Must be an absolute http(s) URL without parameters"
	default:
		return "Invalid value"
	}
}
