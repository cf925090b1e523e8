package validation

import (
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/hexanode/accounts/internal/constants"
)

// PasswordComplexity reports whether a password satisfies the complexity
// policy: at least one lowercase, one uppercase, one digit and one special
// character. Length bounds are enforced separately by min/max binding tags.
func PasswordComplexity(password string) bool {
	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(constants.PasswordSpecialChars, r):
			hasSpecial = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSpecial
}

func passwordRule(fl validator.FieldLevel) bool {
	return PasswordComplexity(fl.Field().String())
}

// RegisterRules installs custom validation rules on gin's binding validator.
// Call once at startup before routes are served.
func RegisterRules() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("password", passwordRule)
}
