// Package validation holds the field and entity rules applied before any
// post, comment or message is persisted. Every rule is evaluated so a single
// call reports all problems at once.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/blogplatform/blog/internal/core/domain"
)

const (
	minContent = 10
	maxContent = 5000
)

var (
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
	namePattern  = regexp.MustCompile(`^[\p{L} '\-]{2,50}$`)
	titlePattern = regexp.MustCompile(`^[\p{L}\p{N} '\-]{3,300}$`)
)

// Result is the outcome of validating one entity or list.
type Result struct {
	Valid  bool
	Errors []string
}

func ok() Result {
	return Result{Valid: true, Errors: []string{}}
}

func failed(msgs ...string) Result {
	return Result{Valid: false, Errors: msgs}
}

// Err returns nil for a valid result and a *domain.ValidationError otherwise.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return domain.NewValidationError(r.Errors...)
}

var v = newValidate()

func newValidate() *validator.Validate {
	val := validator.New()
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = val.RegisterValidation("blogemail", func(fl validator.FieldLevel) bool {
		return IsEmail(fl.Field().String())
	})
	_ = val.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return IsName(fl.Field().String())
	})
	_ = val.RegisterValidation("blogtitle", func(fl validator.FieldLevel) bool {
		return titlePattern.MatchString(fl.Field().String())
	})
	_ = val.RegisterValidation("trimmin", func(fl validator.FieldLevel) bool {
		return trimmedLen(fl.Field().String()) >= paramInt(fl.Param())
	})
	_ = val.RegisterValidation("trimmax", func(fl validator.FieldLevel) bool {
		return trimmedLen(fl.Field().String()) <= paramInt(fl.Param())
	})
	return val
}

// IsEmail reports whether s has the local@domain.tld shape.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsName reports whether s is 2-50 letters, spaces, hyphens or apostrophes.
func IsName(s string) bool {
	return namePattern.MatchString(s)
}

func trimmedLen(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}

func paramInt(p string) int {
	n, _ := strconv.Atoi(p)
	return n
}

// check runs struct validation and converts failures into messages, in
// field declaration order.
func check(entity any) Result {
	err := v.Struct(entity)
	if err == nil {
		return ok()
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return failed(err.Error())
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldError(label(fe.Field()), fe))
	}
	return failed(msgs...)
}

// fieldRule is a single value checked outside of a struct.
type fieldRule struct {
	name  string
	value string
	tags  string
}

// checkFields validates each value against its tags, in order.
func checkFields(rules ...fieldRule) Result {
	var msgs []string
	for _, r := range rules {
		err := v.Var(r.value, r.tags)
		if err == nil {
			continue
		}
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			msgs = append(msgs, err.Error())
			continue
		}
		for _, fe := range ve {
			msgs = append(msgs, fieldError(r.name, fe))
		}
	}
	if len(msgs) > 0 {
		return failed(msgs...)
	}
	return ok()
}

// fieldError converts a single FieldError into a human-readable message.
func fieldError(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "blogemail":
		return field + " must be a valid email address"
	case "personname":
		return field + " must be 2-50 characters and contain only letters, spaces, hyphens or apostrophes"
	case "blogtitle":
		return field + " must be 3-300 characters and contain only letters, digits, spaces, hyphens or apostrophes"
	case "trimmin":
		return fmt.Sprintf("%s is too short (minimum %s characters)", field, fe.Param())
	case "trimmax":
		return fmt.Sprintf("%s is too long (maximum %s characters)", field, fe.Param())
	case "min", "max":
		return field + " must be 3-100 characters"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

func label(jsonName string) string {
	return strings.ReplaceAll(jsonName, "_", " ")
}
