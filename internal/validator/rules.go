package validator

import (
	"log"

	"websewa_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules wires the domain vocabularies into the validator.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A rule that cannot register is a startup misconfiguration.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("order_status", validateOrderStatus)
	mustRegister("item_category", validateItemCategory)
}

func validateOrderStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // empty is 'required's job
	}
	switch models.OrderStatus(value) {
	case models.OrderStatusPending, models.OrderStatusPaid, models.OrderStatusCancelled, models.OrderStatusRefunded:
		return true
	default:
		return false
	}
}

func validateItemCategory(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.ItemCategory(value) {
	case models.ItemCategoryService, models.ItemCategoryBundle, models.ItemCategoryClass,
		models.ItemCategoryMembership, models.ItemCategoryDomain, models.ItemCategoryHosting:
		return true
	default:
		return false
	}
}
