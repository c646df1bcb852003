package validator

import (
	"log"

	"blog_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules installs the domain value-set rules.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A broken rule set is a startup error, not a runtime one.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-like-type", validateLikeType)
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		// Empty values are the business of the 'required' rule.
		return true
	}
	role := models.UserRole(value)
	return role == models.UserRoleAdmin || role == models.UserRoleUser
}

func validateLikeType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	t := models.LikeType(value)
	return t == models.LikeTypeLike || t == models.LikeTypeDislike
}
