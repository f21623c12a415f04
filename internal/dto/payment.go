package dto

// EsewaCallbackRequest is the raw gateway notification: a single base64
// field wrapping the signed JSON payload.
type EsewaCallbackRequest struct {
	Data string `form:"data" json:"data" binding:"required"`
}

// EsewaPaymentData is the decoded callback payload. SignedFieldNames lists
// the fields covered by the signature, in signing order; the verifier must
// rebuild the message from that list and never assume a fixed order.
type EsewaPaymentData struct {
	TransactionCode  string `json:"transaction_code"`
	Status           string `json:"status"`
	TotalAmount      string `json:"total_amount"`
	TransactionUUID  string `json:"transaction_uuid"`
	ProductCode      string `json:"product_code"`
	SignedFieldNames string `json:"signed_field_names"`
	Signature        string `json:"signature"`
}

// FieldValue resolves a signed field name to its payload value.
func (d *EsewaPaymentData) FieldValue(name string) string {
	switch name {
	case "transaction_code":
		return d.TransactionCode
	case "status":
		return d.Status
	case "total_amount":
		return d.TotalAmount
	case "transaction_uuid":
		return d.TransactionUUID
	case "product_code":
		return d.ProductCode
	case "signed_field_names":
		return d.SignedFieldNames
	default:
		return ""
	}
}

type CallbackResponse struct {
	Success bool `json:"success"`
}
