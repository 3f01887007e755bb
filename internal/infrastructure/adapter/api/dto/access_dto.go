package dto

// BuySpotRequest asks to unlock a spot's tutorial
type BuySpotRequest struct {
	SpotID   uint64 `json:"spot_id" binding:"required"`
	InitData string `json:"init_data" binding:"required"`
}

// BuySpotResponse returns the protected tutorial link after a grant
type BuySpotResponse struct {
	Success      bool   `json:"success"`
	TelegraphURL string `json:"telegraph_url"`
}
