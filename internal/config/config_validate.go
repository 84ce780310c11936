// Reelsight - Movie Recommendation Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelsight

package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// Rate limit bounds, enforced unless DISABLE_RATE_LIMIT is set.
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

var (
	configValidator     *validator.Validate
	configValidatorOnce sync.Once
)

// validatorFor returns a validator that names fields by their env tag, so
// errors point at the variable an operator has to fix.
func validatorFor() *validator.Validate {
	configValidatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			if name := f.Tag.Get("env"); name != "" {
				return name
			}
			return f.Name
		})
		v.RegisterStructValidation(validateRateLimit, SecurityConfig{})
		configValidator = v
	})
	return configValidator
}

func validateRateLimit(sl validator.StructLevel) {
	s := sl.Current().Interface().(SecurityConfig)
	if s.RateLimitDisabled {
		return
	}
	if s.RateLimitReqs < minRateLimitRequests || s.RateLimitReqs > maxRateLimitRequests {
		sl.ReportError(s.RateLimitReqs, "RATE_LIMIT_REQUESTS", "RateLimitReqs", "rate_requests", "")
	}
	if s.RateLimitWindow < minRateLimitWindow || s.RateLimitWindow > maxRateLimitWindow {
		sl.ReportError(s.RateLimitWindow, "RATE_LIMIT_WINDOW", "RateLimitWindow", "rate_window", "")
	}
}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	err := validatorFor().Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		msgs[i] = describe(fe)
	}
	return errors.New(strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	name := fe.Field()
	switch fe.Tag() {
	case "required":
		return name + " must not be empty"
	case "min":
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	case "gt":
		return name + " must be positive"
	case "http_url":
		return fmt.Sprintf("%s must be an http(s) URL, got %q", name, fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "rate_requests":
		return fmt.Sprintf("%s must be between %d and %d", name, minRateLimitRequests, maxRateLimitRequests)
	case "rate_window":
		return fmt.Sprintf("%s must be between %v and %v", name, minRateLimitWindow, maxRateLimitWindow)
	default:
		return fmt.Sprintf("%s is invalid (%s)", name, fe.Tag())
	}
}
