package cli

import (
	"errors"
	"fmt"
	"go/token"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("flag")
	})
	mustRegister(v, "goident", func(fl validator.FieldLevel) bool {
		name := fl.Field().String()
		return token.IsIdentifier(name) && name != "_"
	})
	mustRegister(v, "rustident", func(fl validator.FieldLevel) bool {
		return isRustIdent(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

func isRustIdent(s string) bool {
	s = strings.TrimPrefix(s, "r#")
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

func validateConfig(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	msgs := make([]string, 0, len(ves))
	for _, ve := range ves {
		msgs = append(msgs, "--"+flagOf(ve)+": "+formatValidationError(ve))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// flagOf names the flag of ve. Elements of list flags are reported
// against the list.
func flagOf(ve validator.FieldError) string {
	name := ve.Field()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return name
}

func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required_without":
		return fmt.Sprintf("required unless --%s is set", paramFlag(ve.Param()))
	case "required_with":
		return fmt.Sprintf("required with --%s", paramFlag(ve.Param()))
	case "excluded_with":
		return fmt.Sprintf("cannot be combined with --%s", paramFlag(ve.Param()))
	case "excluded_without":
		return fmt.Sprintf("requires --%s", paramFlag(ve.Param()))
	case "endswith":
		return fmt.Sprintf("must end with %s", ve.Param())
	case "goident":
		return fmt.Sprintf("%q is not a valid Go package name", ve.Value())
	case "rustident":
		return fmt.Sprintf("%q is not a valid identifier", ve.Value())
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}

// paramFlag maps a Config field name used as a tag parameter to its flag.
func paramFlag(field string) string {
	if f, ok := reflect.TypeFor[Config]().FieldByName(field); ok {
		if name := f.Tag.Get("flag"); name != "" {
			return name
		}
	}
	return strings.ToLower(field)
}
