package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance for all entities. Field-level
// rules (required-ness, enum domains, formats) live in the `validate`
// struct tags on the entities; reference existence is checked separately
// by the model package because it requires a read through the active
// repository set.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report wire names (json tags) in validation errors so both engines
	// surface identical field names to callers.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// ulid: a well-formed 26-character identifier.
	if err := v.RegisterValidation("ulid", func(fl validator.FieldLevel) bool {
		return ValidID(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("domain: registering ulid validation: %v", err))
	}

	return v
}

// validateStruct runs the tag-declared rules against v and translates the
// first failure into a *ValidationError for the named entity.
func validateStruct(entity string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return NewValidationError(entity, fe.Field(), validationReason(fe))
	}

	// InvalidValidationError and friends indicate a programming error,
	// not bad input.
	return err
}

func validationReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "ulid":
		return "must be a 26-character identifier"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("is invalid (%s)", fe.Tag())
	}
}
