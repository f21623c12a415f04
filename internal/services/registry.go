package services

// ServiceContainer holds all application services.
type ServiceContainer struct {
	CheckoutService CheckoutService
	PaymentService  PaymentService
	OrderService    OrderService
	CreditService   CreditService
	CatalogService  CatalogService
}
