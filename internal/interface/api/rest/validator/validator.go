// Package validator checks request DTOs with go-playground/validator and
// reports failures keyed by JSON field name.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	v10 "github.com/go-playground/validator/v10"
)

const (
	minPasswordLen = 6
	maxPasswordLen = 72 // bcrypt safe

	DateLayout = "2006-01-02"
)

var validate = newValidate()

func newValidate() *v10.Validate {
	v := v10.New(v10.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("date", func(fl v10.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("password", func(fl v10.FieldLevel) bool {
		n := len(fl.Field().String())
		return n >= minPasswordLen && n <= maxPasswordLen
	})

	return v
}

// ParseDate accepts YYYY-MM-DD or a full RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}

// Validate returns nil when req passes, otherwise a message per JSON field.
func Validate(req any) map[string]string {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var ves v10.ValidationErrors
	if !errors.As(err, &ves) {
		return map[string]string{"body": err.Error()}
	}

	errs := make(map[string]string, len(ves))
	for _, fe := range ves {
		field := fe.Namespace()
		if _, after, ok := strings.Cut(field, "."); ok {
			field = after
		}
		if _, seen := errs[field]; !seen {
			errs[field] = message(fe)
		}
	}
	return errs
}

func message(fe v10.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "invalid email format"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "numeric":
		return "must contain digits only"
	case "oneof":
		return "must be one of " + fe.Param()
	case "date":
		return "must be YYYY-MM-DD"
	case "password":
		return fmt.Sprintf("password length must be %d-%d characters", minPasswordLen, maxPasswordLen)
	}
	return "is invalid"
}

// IDParam reports whether a path id is usable. Ids are opaque strings, so
// only emptiness and length are checked.
func IDParam(s string) bool {
	return s != "" && len(s) <= 64
}
