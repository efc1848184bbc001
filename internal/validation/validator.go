// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/cinematch/internal/models"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is one failed constraint.
type FieldError struct {
	// Field is the struct field name, with an index for dived slice elements
	// ("Fields[1]").
	Field string
	Tag   string
	// Param is the tag parameter, "100" for max=100.
	Param   string
	Value   any
	Message string
}

// RequestValidationError lists every failed constraint of a request.
type RequestValidationError struct {
	Fields []FieldError
}

// Error joins the field messages.
func (e *RequestValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		messages[i] = f.Message
	}
	return strings.Join(messages, "; ")
}

// HasField reports whether field is among the failed fields.
func (e *RequestValidationError) HasField(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// GetValidator returns the shared validator with the custom tags registered.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		if err := validate.RegisterValidation("recfield", isRecommendationField); err != nil {
			panic(fmt.Sprintf("register recfield validator: %v", err))
		}
	})
	return validate
}

// isRecommendationField accepts names of title fields a recommendation can carry.
func isRecommendationField(fl validator.FieldLevel) bool {
	return models.IsTitleField(fl.Field().String())
}

// ValidateStruct validates s and returns nil or the list of failures.
func ValidateStruct(s any) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &RequestValidationError{Fields: []FieldError{{Field: "unknown", Tag: "unknown", Message: err.Error()}}}
	}

	out := &RequestValidationError{Fields: make([]FieldError, len(fieldErrs))}
	for i, fe := range fieldErrs {
		out.Fields[i] = FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Value:   fe.Value(),
			Message: describe(fe),
		}
	}
	return out
}

// describe renders a failure as "<Field> must ...".
func describe(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()

	var unit string
	switch fe.Kind() {
	case reflect.String:
		unit = " characters"
	case reflect.Slice, reflect.Array:
		unit = " items"
	}

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "recfield":
		return field + " must name a title field"
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s%s", field, param, unit)
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s%s", field, param, unit)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
