package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var accountCodeRe = regexp.MustCompile(`^[0-9]{3,10}$`)

// RegisterCustomValidators installs the request validators the DTO binding
// tags rely on. Call once at startup before serving.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// drcr: the debit/credit flag of a ledger entry, "D" or "C".
	_ = v.RegisterValidation("drcr", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "D" || s == "C"
	})

	// accountcode: numeric chart codes like "1010".
	_ = v.RegisterValidation("accountcode", func(fl validator.FieldLevel) bool {
		return accountCodeRe.MatchString(fl.Field().String())
	})
}
