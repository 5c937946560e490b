package http

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/atinyakov/portfolio/internal/models"
)

// FieldError describes one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// normalizer is implemented by requests that trim their input before validation.
type normalizer interface {
	normalize()
}

// fieldMessenger is implemented by requests that word their own field errors.
// An empty result falls back to the generic message.
type fieldMessenger interface {
	fieldMessage(field, tag string) string
}

const msgBadDate = "Invalid date format. Expected YYYY-MM-DD"

var (
	alphaSpace = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	validate   = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("alphaspace", func(fl validator.FieldLevel) bool {
		return alphaSpace.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := models.ParseDate(fl.Field().String())
		return err == nil
	})
	return v
}

func validateStruct(s any) []FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Message: err.Error()}}
	}

	messenger, _ := s.(fieldMessenger)

	out := make([]FieldError, 0, len(verrs))
	seen := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if seen[field] {
			continue
		}
		seen[field] = true
		var msg string
		if messenger != nil {
			msg = messenger.fieldMessage(field, fe.Tag())
		}
		if msg == "" {
			msg = describe(fe)
		}
		out = append(out, FieldError{Field: field, Message: msg})
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "isodate":
		return msgBadDate
	case "alphaspace":
		return "can only contain letters and spaces"
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}

func trim(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

// blankToNil turns an empty optional string into an absent one.
func blankToNil(s **string) {
	if *s == nil {
		return
	}
	trimmed := strings.TrimSpace(**s)
	if trimmed == "" {
		*s = nil
		return
	}
	*s = &trimmed
}
