// Package validator wraps go-playground struct validation with friendly,
// JSON-field-keyed error messages.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// messageForTag maps validation tags to message templates. Templates
// with two placeholders receive the field name and the tag parameter.
var messageForTag = map[string]string{
	"required": "The field '%s' is required.",
	"min":      "The field '%s' must be at least %s characters long.",
	"max":      "The field '%s' must be no longer than %s characters.",
	"lte":      "The field '%s' must be less than or equal to %s.",
	"gte":      "The field '%s' must be greater than or equal to %s.",
	"gt":       "The field '%s' must be greater than %s.",
	"lt":       "The field '%s' must be less than %s.",
	"oneof":    "The field '%s' must be one of %s.",
	"url":      "The field '%s' must be a valid URL.",
}

func fieldMessage(name string, e validator.FieldError) string {
	msg, ok := messageForTag[e.Tag()]
	if !ok {
		return fmt.Sprintf("Field '%s' is invalid: %s", name, e.Tag())
	}
	if strings.Count(msg, "%s") == 2 {
		return fmt.Sprintf(msg, name, e.Param())
	}
	return fmt.Sprintf(msg, name)
}

// jsonName resolves the name a violation is reported under: the json
// tag when the field carries one, the Go field name otherwise.
func jsonName(structType reflect.Type, e validator.FieldError) string {
	field, ok := structType.FieldByName(e.StructField())
	if !ok {
		return e.StructField()
	}
	tag := field.Tag.Get("json")
	if tag == "" {
		return e.StructField()
	}
	return strings.Split(tag, ",")[0]
}

// ValidateStruct checks a struct pointer against its validate tags and
// returns the violations keyed by JSON field name. An empty map means
// the value is valid.
func ValidateStruct(s any) map[string]string {
	out := make(map[string]string)

	err := validate.Struct(s)
	if err == nil {
		return out
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return out
	}

	structType := reflect.TypeOf(s).Elem()
	for _, e := range fieldErrs {
		name := jsonName(structType, e)
		out[name] = fieldMessage(name, e)
	}
	return out
}
