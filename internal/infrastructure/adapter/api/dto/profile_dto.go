package dto

// MeRequest asks for the caller's profile
type MeRequest struct {
	InitData string `json:"init_data" binding:"required"`
}

// MeResponse is the caller's ledger state and owned spots
type MeResponse struct {
	Balance      int64    `json:"balance"`
	FreeAttempts int      `json:"free_attempts"`
	Username     string   `json:"username,omitempty"`
	FirstName    string   `json:"first_name,omitempty"`
	MySpotIDs    []uint64 `json:"my_spot_ids"`
}
