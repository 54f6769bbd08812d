package web

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// GetErrorMsg returns the message appended to the field name of a failed rule.
func GetErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return " is required"
	case "currency":
		return " is not supported"
	case "min":
		return " must be at least " + fe.Param()
	case "max":
		return " must be at most " + fe.Param()
	case "oneof":
		return " must be one of " + fe.Param()
	case "otp":
		return " must be 4 digits"
	case "uuid":
		return " must be a uuid"
	}

	return " is invalid"
}

// BindErrorMsg describes the first validation failure of a binding error.
func BindErrorMsg(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return ve[0].Field() + GetErrorMsg(ve[0])
	}

	return "invalid request"
}
