package validation

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"invest-portal/internal/common/apperrors"

	"github.com/go-playground/validator/v10"
)

var (
	hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	hhmmRe     = regexp.MustCompile(`^([01]?\d|2[0-3]):[0-5]\d$`)

	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		v.RegisterCustomTypeFunc(trimmed, "")
		_ = v.RegisterValidation("hexcolor6", func(fl validator.FieldLevel) bool {
			return fl.Field().String() == "" || hexColorRe.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
			return hhmmRe.MatchString(fl.Field().String())
		})
		instance = v
	})
	return instance
}

// trimmed validates strings the way they are stored: surrounding spaces are
// ignored and a blank string counts as absent, so omitempty skips it and
// required rejects it.
func trimmed(field reflect.Value) interface{} {
	s := strings.TrimSpace(field.String())
	if s == "" {
		return nil
	}
	return s
}

// Struct validates s and returns a VALIDATION_FAILURE carrying one message per field.
func Struct(s interface{}) error {
	err := get().Struct(s)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.Validation(err.Error())
	}

	fields := make(map[string]string, len(errs))
	for _, fe := range errs {
		name := fe.Field()
		if ns := fe.Namespace(); strings.Count(ns, ".") > 1 {
			name = ns[strings.Index(ns, ".")+1:]
		}
		fields[name] = message(fe)
	}
	return apperrors.ValidationFields(fields)
}

// Var validates a single value against a tag expression.
func Var(field string, value interface{}, tag string) error {
	if err := get().Var(value, tag); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return apperrors.ValidationFields(map[string]string{field: message(errs[0])})
		}
		return apperrors.Validation(err.Error())
	}
	return nil
}

// IsHHMM reports whether s is a 24h clock time such as 9:05 or 21:30.
func IsHHMM(s string) bool {
	return hhmmRe.MatchString(s)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		if fe.Kind() == reflect.String {
			return "Must be at least " + fe.Param() + " characters"
		}
		return "Must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "Must be at most " + fe.Param() + " characters"
		}
		return "Must be at most " + fe.Param()
	case "oneof":
		return "Must be one of: " + fe.Param()
	case "url", "http_url":
		return "Must be a valid URL"
	case "hexcolor6":
		return "Must be a hex color like #1a2b3c"
	case "hhmm":
		return "Must be a time in HH:MM format"
	case "gtefield":
		return "Must not be before " + fe.Param()
	default:
		return "Invalid value"
	}
}
