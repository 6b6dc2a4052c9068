//-------------------------------------------------------------------------
//
// LootBox Admin
//
// Portions copyright (c) 2025 - 2026, LootBox
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package access

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	return v
}

// ValidationError reports input rejected before any store call.
// Fields maps the offending field to a short message.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + " " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// validateInput checks struct tags on v.
func validateInput(v any) error {
	if err := validate.Struct(v); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			fields := make(map[string]string, len(errs))
			for _, fe := range errs {
				fields[fe.Field()] = validationMessage(fe)
			}
			return &ValidationError{Fields: fields}
		}
		return &ValidationError{Fields: map[string]string{"input": err.Error()}}
	}
	return nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	}
	return "is invalid"
}

// ParseID coerces a textual id. Blank or non-numeric values are rejected
// as a validation error on field.
func ParseID(field, raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, &ValidationError{Fields: map[string]string{field: "is required"}}
	}
	id, err := ParseInt(raw)
	if err != nil {
		return 0, &ValidationError{Fields: map[string]string{field: "must be a number"}}
	}
	return id, nil
}

// ParseInt parses a base 10 integer with an optional sign. Leading zeros
// are decimal and prefixes such as 0x are rejected.
func ParseInt(raw string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
}

// ParseOptionalID is ParseID for optional filters: blank yields nil.
func ParseOptionalID(field, raw string) (*int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	id, err := ParseID(field, raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// ParsePrice coerces a textual price.
func ParsePrice(field, raw string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, &ValidationError{Fields: map[string]string{field: "is required"}}
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{field: "must be a number"}}
	}
	return &d, nil
}
