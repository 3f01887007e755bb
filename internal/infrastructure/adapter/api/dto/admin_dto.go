package dto

// AddBalanceRequest credits a user's ledger (privileged)
type AddBalanceRequest struct {
	TgID   int64 `json:"tg_id" binding:"required"`
	Amount int64 `json:"amount"`
}

// AddBalanceResponse returns the new balance after a credit
type AddBalanceResponse struct {
	OK      bool  `json:"ok"`
	Balance int64 `json:"balance"`
}

// ConfirmationResponse acknowledges a privileged moderation action
type ConfirmationResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}
