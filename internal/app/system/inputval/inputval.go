// Package inputval validates typed request inputs against their struct tags
// and reports the first failure as an *apperr.ValidationError naming the JSON
// field and the violated constraint.
//
// Besides the stock go-playground rules, two rules are registered:
//
//	emailshape   local@domain.tld with a 2+ letter top-level label
//	phonedigits  at least MinPhoneDigits digits once punctuation is ignored
package inputval

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/edumanage/schoolsite/internal/app/system/apperr"
	"github.com/go-playground/validator/v10"
)

// MinPhoneDigits is the minimum number of digits a phone number must carry.
const MinPhoneDigits = 10

var emailRE = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

var (
	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonName)
		_ = v.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
			return IsValidEmail(fl.Field().String())
		})
		_ = v.RegisterValidation("phonedigits", func(fl validator.FieldLevel) bool {
			return IsValidPhone(fl.Field().String())
		})
	})
	return v
}

// jsonName reports struct fields by their JSON name so errors match what the
// client sent.
func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// IsValidEmail reports whether s has the local@domain.tld shape.
func IsValidEmail(s string) bool {
	return emailRE.MatchString(s)
}

// PhoneDigits counts the decimal digits in s.
func PhoneDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// IsValidPhone reports whether s carries at least MinPhoneDigits digits.
func IsValidPhone(s string) bool {
	return PhoneDigits(s) >= MinPhoneDigits
}

// Struct validates s (a struct or pointer to struct) and returns nil or an
// *apperr.ValidationError for the first failing field.
func Struct(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return apperr.Validation(fe.Field(), constraintFor(fe))
	}
	return err
}

// Var validates a single value against tag, reporting failures under field.
func Var(field string, value any, tag string) error {
	err := instance().Var(value, tag)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return apperr.Validation(field, constraintFor(verrs[0]))
	}
	return err
}

func constraintFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return apperr.ConstraintRequired
	case "emailshape":
		return apperr.ConstraintFormat
	case "phonedigits":
		return apperr.ConstraintLength
	case "oneof":
		return apperr.ConstraintEnum
	case "min", "max", "len":
		if fe.Kind() == reflect.String {
			return apperr.ConstraintLength
		}
		return apperr.ConstraintRange
	case "gt", "gte", "lt", "lte":
		return apperr.ConstraintRange
	default:
		return fe.Tag()
	}
}

// BlankToNil turns an optional string that is empty or whitespace into nil.
// Forms send "" for untouched optional inputs.
func BlankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
