// Package forms validates user input before any network call. Every screen
// submits through one of these input structs; a failed validation blocks the
// request and carries field-scoped messages for inline display.
package forms

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	pkgerrors "github.com/kadualabs/vendorhub/pkg/errors"
)

var validate = newValidator()

var phonePattern = regexp.MustCompile(`^\+?[\d\s\-()]+$`)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("password_strength", func(fl validator.FieldLevel) bool {
		return hasPasswordMix(fl.Field().String())
	})
	v.RegisterStructValidation(validateLoginInput, LoginInput{})
	v.RegisterStructValidation(validateRegisterInput, RegisterInput{})
	v.RegisterStructValidation(validateProductInput, ProductInput{})
	v.RegisterStructValidation(validateVariantInput, VariantInput{})
	return v
}

// hasPasswordMix requires at least one lowercase letter, one uppercase
// letter, and one digit.
func hasPasswordMix(password string) bool {
	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}

// Validate checks an input struct and returns a VALIDATION_ERROR carrying a
// field-to-message map, or nil when the input is acceptable.
func Validate(input any) error {
	if err := validate.Struct(input); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) *pkgerrors.Error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			name := fieldErr.Field()
			if _, seen := details[name]; !seen {
				details[name] = validationMessage(fieldErr)
			}
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "email":
		return "must be a valid email"
	case "phone":
		return "must be a valid phone number"
	case "password_strength":
		return "must contain an uppercase letter, a lowercase letter, and a number"
	case "eqfield":
		return "passwords don't match"
	case "nefield":
		return "must be different from the current password"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "identifier":
		return "must be a valid email address or phone number"
	case "document_required":
		return "Ghana Card document is required"
	case "sale_price":
		return "sale price must be less than the regular price"
	case "positive_price":
		return "must be greater than 0"
	}
	return "is invalid"
}
