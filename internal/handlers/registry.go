package handlers

import (
	"websewa_backend/internal/services"
	"websewa_backend/internal/validator"
)

// AppHandlers bundles every HTTP handler for route registration.
type AppHandlers struct {
	Checkout *CheckoutHandler
	Payment  *PaymentHandler
	Order    *OrderHandler
	Credit   *CreditHandler
	Catalog  *CatalogHandler
}

func NewAppHandlers(v *validator.Validator, sc *services.ServiceContainer) *AppHandlers {
	return &AppHandlers{
		Checkout: NewCheckoutHandler(v, sc.CheckoutService),
		Payment:  NewPaymentHandler(v, sc.PaymentService),
		Order:    NewOrderHandler(v, sc.OrderService),
		Credit:   NewCreditHandler(v, sc.CreditService),
		Catalog:  NewCatalogHandler(v, sc.CatalogService),
	}
}
