package utils

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type enumSample struct {
	Status  string `json:"status" binding:"omitempty,order_status"`
	Method  string `json:"payment_method" binding:"omitempty,payment_method"`
	Expiry  string `json:"expiry" binding:"omitempty,card_expiry"`
	Role    string `json:"role" binding:"omitempty,role"`
	Ticket  string `json:"ticket" binding:"omitempty,ticket_status"`
	Urgency string `json:"urgency" binding:"omitempty,ticket_priority"`
}

func TestCustomValidators(t *testing.T) {
	RegisterValidators()

	ok := enumSample{Status: "on_the_way", Method: "card", Expiry: "09/27", Role: "staff", Ticket: "in_progress", Urgency: "high"}
	assert.NoError(t, binding.Validator.ValidateStruct(ok))

	bad := enumSample{Status: "shipped", Method: "bitcoin", Expiry: "9/27", Role: "chef", Ticket: "done", Urgency: "urgent"}
	err := binding.Validator.ValidateStruct(bad)
	var ves validator.ValidationErrors
	require.ErrorAs(t, err, &ves)
	fields := map[string]bool{}
	for _, fe := range ves {
		fields[fe.Field()] = true
	}
	for _, name := range []string{"status", "payment_method", "expiry", "role", "ticket", "urgency"} {
		assert.True(t, fields[name], name)
	}
}

type cardSample struct {
	Last4  string `json:"card_last4" validate:"required,len=4,numeric"`
	Expiry string `json:"expiry" validate:"required,card_expiry"`
}

func TestStandaloneValidatorSharesRules(t *testing.T) {
	v := Validator()
	assert.Same(t, v, Validator())
	assert.NoError(t, v.Struct(cardSample{Last4: "4242", Expiry: "12/29"}))

	err := v.Struct(cardSample{Last4: "42a2", Expiry: "13/29"})
	var ves validator.ValidationErrors
	require.ErrorAs(t, err, &ves)
	tags := map[string]string{}
	for _, fe := range ves {
		tags[fe.Field()] = fe.Tag()
	}
	assert.Equal(t, map[string]string{"card_last4": "numeric", "expiry": "card_expiry"}, tags)
}
