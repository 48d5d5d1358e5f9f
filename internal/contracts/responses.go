package contracts

import "ride-hail-client/internal/domain/user"

// TokenResponse mirrors the auth endpoints' token payload.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`

	// Some deployments return the user inline with the token.
	User *user.User `json:"user,omitempty"`
}

// AdminStats mirrors GET /admin/stats.
type AdminStats struct {
	TotalUsers     int     `json:"total_users"`
	TotalDrivers   int     `json:"total_drivers"`
	TotalRiders    int     `json:"total_riders"`
	TotalRides     int     `json:"total_rides"`
	ActiveRides    int     `json:"active_rides"`
	CompletedRides int     `json:"completed_rides"`
	TotalRevenue   float64 `json:"total_revenue"`
}

// MessageResponse is the generic `{message: ...}` acknowledgement several
// mutating endpoints return.
type MessageResponse struct {
	Message string `json:"message"`
}
