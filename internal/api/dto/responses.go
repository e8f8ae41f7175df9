package dto

import "time"

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// NewHealthResponse creates a healthy response with the current timestamp.
func NewHealthResponse() HealthResponse {
	return HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// TokenResponse is returned after a successful authorization-code exchange.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int    `json:"expires_in"`
}

// MyItemsResponse lists the authenticated seller's published item IDs.
type MyItemsResponse struct {
	SellerID int64    `json:"seller_id"`
	ItemIDs  []string `json:"item_ids"`
	Total    int      `json:"total"`
}
