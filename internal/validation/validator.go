// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// CodeValidation is the API error code of every validation failure.
const CodeValidation = "VALIDATION_ERROR"

// maxClusterLabelLen bounds cluster labels accepted from query strings.
const maxClusterLabelLen = 64

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is one failed constraint on one query parameter.
type FieldError struct {
	Field   string
	Tag     string
	Param   string
	Value   interface{}
	Message string
}

// Errors is the list of failed constraints of one request. A nil Errors
// means the request is valid.
type Errors []FieldError

// Error joins the messages of all failed constraints.
func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "; ")
}

// APIError mirrors models.APIError without importing it.
type APIError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

// ToAPIError converts e into a VALIDATION_ERROR. A single failure reports
// its field, tag and value; several are listed under "fields".
func (e Errors) ToAPIError() *APIError {
	switch len(e) {
	case 0:
		return &APIError{Code: CodeValidation, Message: "Validation failed"}
	case 1:
		return &APIError{
			Code:    CodeValidation,
			Message: e[0].Message,
			Details: map[string]interface{}{
				"field": e[0].Field,
				"tag":   e[0].Tag,
				"value": e[0].Value,
			},
		}
	}

	fields := make([]map[string]interface{}, len(e))
	msgs := make([]string, len(e))
	for i, fe := range e {
		fields[i] = map[string]interface{}{
			"field":   fe.Field,
			"tag":     fe.Tag,
			"message": fe.Message,
		}
		msgs[i] = fe.Field + ": " + fe.Message
	}
	return &APIError{
		Code:    CodeValidation,
		Message: strings.Join(msgs, "; "),
		Details: map[string]interface{}{"fields": fields},
	}
}

// GetValidator returns the shared validator. Field names in errors come from
// the `query` struct tag, so messages name the parameter the client sent.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("query"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})

		// Registration only fails for an empty tag or nil func.
		_ = validate.RegisterValidation("cluster_label", validateClusterLabel)
	})
	return validate
}

// validateClusterLabel accepts short printable labels without surrounding
// whitespace. Whether the label exists is checked against the data later.
func validateClusterLabel(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" || len(s) > maxClusterLabelLen || strings.TrimSpace(s) != s {
		return false
	}
	for _, r := range s {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

// ValidateStruct checks s against its `validate` tags and returns nil when
// every constraint holds.
func ValidateStruct(s interface{}) Errors {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Errors{{Field: "unknown", Tag: "unknown", Message: err.Error()}}
	}

	out := make(Errors, len(fieldErrs))
	for i, fe := range fieldErrs {
		out[i] = FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Value:   fe.Value(),
			Message: message(fe),
		}
	}
	return out
}

// message renders a validator.FieldError for API clients.
func message(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()
	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "number", "numeric":
		return field + " must be a number"
	case "cluster_label":
		return fmt.Sprintf("%s must be a printable cluster label of at most %d characters", field, maxClusterLabelLen)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	case "min":
		return fmt.Sprintf("%s must be at least %s%s", field, param, unit)
	case "max":
		return fmt.Sprintf("%s must be at most %s%s", field, param, unit)
	case "gte", "gt", "lte", "lt":
		return fmt.Sprintf("%s must be %s %s", field, comparisons[fe.Tag()], param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

var comparisons = map[string]string{
	"gte": "greater than or equal to",
	"gt":  "greater than",
	"lte": "less than or equal to",
	"lt":  "less than",
}
