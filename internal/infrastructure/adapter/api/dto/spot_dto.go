package dto

// SpotPublic is a spot summary for the map: never includes the protected
// tutorial link
type SpotPublic struct {
	ID             uint64  `json:"id"`
	Title          string  `json:"title"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	AuthorUsername string  `json:"author_username,omitempty"`
	Danger         string  `json:"danger,omitempty"`
}

// AddSpotRequest is a user submission of a new spot
type AddSpotRequest struct {
	Title        string  `json:"title" binding:"required"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	TelegraphURL string  `json:"telegraph_url" binding:"required"`
	Danger       string  `json:"danger"`
	InitData     string  `json:"init_data" binding:"required"`
}

// AddSpotResponse confirms a submission is pending moderation
type AddSpotResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
