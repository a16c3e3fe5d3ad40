// Package validation holds the request rules shared by DTO binding and services.
package validation

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Limits on self-reported values
const (
	MaxValues      = 10
	MaxValueLength = 50
)

// PasswordMinLength is the minimum accepted password length
const PasswordMinLength = 8

// Register installs the custom tags on v:
//
//	httpurl  absolute http or https URL
//	values   list of at most MaxValues distinct non-blank strings
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation("httpurl", func(fl validator.FieldLevel) bool {
		return IsHTTPURL(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("values", func(fl validator.FieldLevel) bool {
		values, ok := fl.Field().Interface().([]string)
		if !ok {
			return false
		}
		return ValidValues(values)
	})
}

// IsHTTPURL reports whether s is an absolute http(s) URL
func IsHTTPURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ValidValues reports whether values fit the limits once normalized
func ValidValues(values []string) bool {
	if len(values) > MaxValues {
		return false
	}
	for _, v := range values {
		if utf8.RuneCountInString(strings.TrimSpace(v)) > MaxValueLength {
			return false
		}
	}
	return true
}

// NormalizeValues trims values, drops blanks and keeps the first of each duplicate
func NormalizeValues(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
