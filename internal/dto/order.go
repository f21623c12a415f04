package dto

// UpdateOrderStatusRequest is the operator-only manual settlement input.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required" validate:"required,order_status"`
}

type OrderListQuery struct {
	Status   string `form:"status" validate:"omitempty,order_status"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}
