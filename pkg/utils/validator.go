package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"wastemanage/internal/domain/pickup"
)

var validate *validator.Validate

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
var phoneRegex = regexp.MustCompile(`^\+?[0-9\-\s()]{7,20}$`)

func init() {
	validate = validator.New()

	_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRegex.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("waste_type", func(fl validator.FieldLevel) bool {
		return pickup.IsValidWasteType(fl.Field().String())
	})
	_ = validate.RegisterValidation("time_slot", func(fl validator.FieldLevel) bool {
		return pickup.IsValidTimeSlot(fl.Field().String())
	})
	_ = validate.RegisterValidation("pickup_status", func(fl validator.FieldLevel) bool {
		return pickup.IsValidStatus(fl.Field().String())
	})
}

// ValidateStruct runs the registered validators and returns an error naming
// every failed field, suitable for client display.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	fields := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, describeFieldError(fe))
	}

	return fmt.Errorf("invalid fields: %s", strings.Join(fields, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "waste_type":
		return fmt.Sprintf("%s must be one of paper, plastics, cartons, metal, tins, mixed", fe.Field())
	case "time_slot":
		return fmt.Sprintf("%s must be one of morning, afternoon, evening", fe.Field())
	case "pickup_status":
		return fmt.Sprintf("%s must be a valid status", fe.Field())
	case "phone":
		return fmt.Sprintf("%s must be a valid phone number", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// IsValidEmail reports whether s looks like an email address.
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}
