package dto

// UseCreditsRequest debits the caller's balance before an advanced feature
// runs. The feature invocation itself happens elsewhere, after the debit.
type UseCreditsRequest struct {
	Amount  int    `json:"amount" binding:"required" validate:"required,gt=0"`
	Feature string `json:"feature" binding:"required"`
}

type CreditBalanceResponse struct {
	Balance int `json:"balance"`
}
