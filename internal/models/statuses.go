package models

type UserRole string
type OrderStatus string
type HostingOrderStatus string
type MembershipStatus string
type DomainStatus string
type ItemCategory string
type CreditTransactionType string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"

	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusRefunded  OrderStatus = "refunded"

	HostingStatusPending   HostingOrderStatus = "pending"
	HostingStatusActive    HostingOrderStatus = "active"
	HostingStatusSuspended HostingOrderStatus = "suspended"
	HostingStatusCancelled HostingOrderStatus = "cancelled"

	MembershipStatusNone     MembershipStatus = "none"
	MembershipStatusActive   MembershipStatus = "active"
	MembershipStatusTrialing MembershipStatus = "trialing"
	MembershipStatusCanceled MembershipStatus = "canceled"
	MembershipStatusExpired  MembershipStatus = "expired"

	DomainStatusPending DomainStatus = "pending"
	DomainStatusActive  DomainStatus = "active"
	DomainStatusExpired DomainStatus = "expired"

	ItemCategoryService    ItemCategory = "service"
	ItemCategoryBundle     ItemCategory = "bundle"
	ItemCategoryClass      ItemCategory = "class"
	ItemCategoryMembership ItemCategory = "membership"
	ItemCategoryDomain     ItemCategory = "domain"
	ItemCategoryHosting    ItemCategory = "hosting"

	CreditTransactionCredit CreditTransactionType = "credit"
	CreditTransactionDebit  CreditTransactionType = "debit"
)

// ValidOrderTransition encodes the order state machine:
// pending -> {paid, cancelled}; paid -> {refunded}; cancelled and refunded
// are terminal; nothing re-enters pending.
func ValidOrderTransition(from, to OrderStatus) bool {
	switch from {
	case OrderStatusPending:
		return to == OrderStatusPaid || to == OrderStatusCancelled
	case OrderStatusPaid:
		return to == OrderStatusRefunded
	default:
		return false
	}
}
