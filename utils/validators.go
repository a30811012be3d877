package utils

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"sabores/entity"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	registerOnce   sync.Once
	standaloneOnce sync.Once
	standalone     *validator.Validate
	expiryRe       = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
)

// RegisterValidators hooks the domain rules into gin's validator engine.
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			registerRules(v)
		}
	})
}

// Validator คืน validator ที่ใช้กฎชุดเดียวกับ gin (tag `validate`) สำหรับ service layer
func Validator() *validator.Validate {
	standaloneOnce.Do(func() {
		standalone = validator.New()
		registerRules(standalone)
	})
	return standalone
}

// registerRules adds the domain enums and makes field errors use JSON names.
func registerRules(v *validator.Validate) {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("order_status", func(fl validator.FieldLevel) bool {
		return entity.OrderStatus(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("payment_status", func(fl validator.FieldLevel) bool {
		return entity.PaymentStatus(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
		return entity.PaymentType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("ticket_status", func(fl validator.FieldLevel) bool {
		return entity.TicketStatus(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("ticket_priority", func(fl validator.FieldLevel) bool {
		return entity.TicketPriority(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return entity.IsValidRole(fl.Field().String())
	})
	_ = v.RegisterValidation("card_expiry", func(fl validator.FieldLevel) bool {
		return expiryRe.MatchString(fl.Field().String())
	})
}
