package utils

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate

	phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := validate.RegisterValidation("selectable_role", validateSelectableRole); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("phone", validatePhone); err != nil {
		panic(err)
	}
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// validateSelectableRole accepts the roles a user may pick during onboarding.
func validateSelectableRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "student", "sponsor":
		return true
	}
	return false
}

func validatePhone(fl validator.FieldLevel) bool {
	phone := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(fl.Field().String())
	return phonePattern.MatchString(phone)
}

// ValidationMessage turns validator errors into a client-facing sentence. It
// returns an empty string for errors that did not come from the validator.
func ValidationMessage(err error) string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return ""
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, describeField(fe))
	}
	return strings.Join(messages, "; ")
}

func describeField(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", field, fe.Param())
	case "numeric":
		return fmt.Sprintf("%s must contain digits only", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must match the format %s", field, fe.Param())
	case "selectable_role":
		return "role must be 'student' or 'sponsor'"
	case "phone":
		return fmt.Sprintf("%s must be a valid phone number", field)
	}
	return fmt.Sprintf("%s is invalid", field)
}
