// Package validation turns go-playground/validator failures into the
// field-level messages returned to API clients.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// dateLayouts are the accepted wire formats for calendar dates.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// labels maps lower-cased field names to user-facing labels.
var labels = map[string]string{
	"name":         "Name",
	"email":        "Email",
	"password":     "Password",
	"text":         "Text",
	"title":        "Title",
	"company":      "Company",
	"school":       "School",
	"degree":       "Degree",
	"fieldofstudy": "Field of study",
	"from":         "From date",
	"to":           "To date",
}

// Error carries one message per violated field, in struct field order.
type Error struct {
	Messages []string
}

// New builds an Error from ready-made messages.
func New(messages ...string) *Error {
	return &Error{Messages: messages}
}

func (e *Error) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// NewValidator returns a validator configured with the custom rules and json field names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom rules on v.
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("date", ValidDate)
}

// ValidDate accepts YYYY-MM-DD or RFC 3339. Empty values pass; pair with required.
func ValidDate(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	_, err := ParseDate(val)
	return err == nil
}

// ParseDate parses a wire date in any accepted layout.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("parse date %q", s)
}

// Struct validates s and returns an *Error listing every violated field.
func Struct(v *validator.Validate, s any) error {
	if err := v.Struct(s); err != nil {
		return FromError(err)
	}
	return nil
}

// FromError converts validator.ValidationErrors into an *Error.
// Other errors (for example malformed JSON from gin binding) become a single generic message.
func FromError(err error) *Error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return New("Invalid request body")
	}
	messages := make([]string, 0, len(ves))
	for _, fe := range ves {
		messages = append(messages, formatFieldError(fe))
	}
	return &Error{Messages: messages}
}

func formatFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	label := getLabel(field)

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "email":
		return "Please include a valid email"
	case "min":
		if field == "password" {
			return fmt.Sprintf("Please enter a password with %s or more characters", fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "date":
		return fmt.Sprintf("%s must be a valid date (YYYY-MM-DD)", label)
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

func getLabel(field string) string {
	if label, ok := labels[field]; ok {
		return label
	}
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
