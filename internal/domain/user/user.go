package user

import "time"

// User is the client-side projection of the authenticated account, as
// returned by the auth endpoints and persisted alongside the token.
type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Phone          *string   `json:"phone"`
	Role           Role      `json:"role"`
	IsActive       bool      `json:"is_active"`
	IsVerified     bool      `json:"is_verified"`
	ProfilePicture *string   `json:"profile_picture"`
	CreatedAt      time.Time `json:"created_at"`

	// Present on accounts with a driver profile.
	DriverProfile *DriverProfile `json:"driver_profile,omitempty"`
}

// Key returns the reconciliation key for the record.
func (u User) Key() int64 { return u.ID }

// DriverProfile carries the driver-specific fields of a user record.
type DriverProfile struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"user_id"`
	LicenseNumber string  `json:"license_number"`
	VehicleModel  *string `json:"vehicle_model"`
	VehiclePlate  *string `json:"vehicle_plate"`
	VehicleColor  *string `json:"vehicle_color"`
	Rating        float64 `json:"rating"`
	TotalRides    int     `json:"total_rides"`
	IsAvailable   bool    `json:"is_available"`

	CurrentLat *float64 `json:"current_lat"`
	CurrentLng *float64 `json:"current_lng"`
}
