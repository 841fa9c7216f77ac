package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationDetail describes one rejected input location.
type ValidationDetail struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// NewValidator returns a validator that reports JSON field names.
func NewValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return validate
}

// FieldDetail builds a detail for a single location such as ("query", "limit").
func FieldDetail(source, field, msg, kind string) ValidationDetail {
	return ValidationDetail{Loc: []string{source, field}, Msg: msg, Type: kind}
}

// ValidationDetails converts validator errors into response details rooted at source.
// It returns nil when err is not a validator error.
func ValidationDetails(source string, err error) []ValidationDetail {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	details := make([]ValidationDetail, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		loc := []string{source}
		namespace := fieldErr.Namespace()
		if idx := strings.Index(namespace, "."); idx >= 0 {
			namespace = namespace[idx+1:]
		}
		loc = append(loc, strings.Split(namespace, ".")...)
		details = append(details, ValidationDetail{
			Loc:  loc,
			Msg:  describeFieldError(fieldErr),
			Type: fieldErr.Tag(),
		})
	}
	return details
}

func describeFieldError(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "Field required"
	case "min":
		if fieldErr.Kind() == reflect.String {
			return fmt.Sprintf("String should have at least %s characters", fieldErr.Param())
		}
		return fmt.Sprintf("Input should be greater than or equal to %s", fieldErr.Param())
	case "max":
		if fieldErr.Kind() == reflect.String {
			return fmt.Sprintf("String should have at most %s characters", fieldErr.Param())
		}
		return fmt.Sprintf("Input should be less than or equal to %s", fieldErr.Param())
	case "gte":
		return fmt.Sprintf("Input should be greater than or equal to %s", fieldErr.Param())
	case "lte":
		return fmt.Sprintf("Input should be less than or equal to %s", fieldErr.Param())
	case "oneof":
		options := strings.Fields(fieldErr.Param())
		return fmt.Sprintf("Input should be %s", quoteOptions(options))
	case "uuid", "uuid4":
		return "Input should be a valid UUID"
	default:
		return fmt.Sprintf("Failed on the '%s' rule", fieldErr.Tag())
	}
}

func quoteOptions(options []string) string {
	quoted := make([]string, len(options))
	for i, option := range options {
		quoted[i] = "'" + option + "'"
	}
	if len(quoted) <= 1 {
		return strings.Join(quoted, "")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + " or " + quoted[len(quoted)-1]
}
