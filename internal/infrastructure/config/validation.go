package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Location ids are lowercase slugs, so "Terra" fails validation rather than
// a catalog lookup at startup.
var locationIDPattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// Validator checks validate tags on config and universe documents
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator with the location_id rule registered
func NewValidator() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("location_id", func(fl validator.FieldLevel) bool {
		return locationIDPattern.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

// Validate reports every failing field at once, one per line
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	lines := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		lines = append(lines, describeFieldError(fe))
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(lines, "\n  "))
}

func describeFieldError(fe validator.FieldError) string {
	// Drop the root struct name: "Config.Game.MaxFuel" -> "Game.MaxFuel"
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "min", "gt":
		return fmt.Sprintf("%s must be %s %s, got %v", field, boundWord(fe.Tag()), fe.Param(), fe.Value())
	case "max":
		return fmt.Sprintf("%s must be at most %s, got %v", field, fe.Param(), fe.Value())
	case "ltefield":
		return fmt.Sprintf("%s (%v) cannot exceed %s", field, fe.Value(), fe.Param())
	case "nefield":
		return fmt.Sprintf("%s must differ from %s", field, fe.Param())
	case "location_id":
		return fmt.Sprintf("%s %q is not a location id (lowercase letters, digits, '-' or '_')", field, fe.Value())
	}
	return fmt.Sprintf("%s failed %s validation (value: %v)", field, fe.Tag(), fe.Value())
}

func boundWord(tag string) string {
	if tag == "gt" {
		return "greater than"
	}
	return "at least"
}

// ValidateConfig validates the entire configuration
func ValidateConfig(cfg *Config) error {
	return NewValidator().Validate(cfg)
}
