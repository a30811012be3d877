package resp

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"sabores/pkg/apperr"

	"github.com/go-playground/validator/v10"
)

// BindError converts a ShouldBind* failure into a field-level validation error.
func BindError(err error) error {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		fields := make(map[string]string, len(ves))
		for _, fe := range ves {
			fields[fieldPath(fe)] = fieldMessage(fe)
		}
		return apperr.ValidationFields("invalid request", fields)
	}
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		return apperr.ValidationFields("invalid request", map[string]string{
			ute.Field: fmt.Sprintf("must be %s", ute.Type.String()),
		})
	}
	return apperr.Validation("invalid request body")
}

// fieldPath drops the top-level struct name: "AddToCartIn.items[0].quantity" -> "items[0].quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "eqfield":
		return "must match " + fe.Param()
	case "order_status", "payment_status", "payment_method", "ticket_status", "ticket_priority", "role":
		return "is not a valid choice"
	case "len":
		return "must have length " + fe.Param()
	case "card_expiry":
		return "must be in MM/YY format"
	case "numeric":
		return "must contain only digits"
	default:
		return "is invalid"
	}
}
