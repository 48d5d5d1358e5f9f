package contracts

import "time"

// CreateRideRequest mirrors POST /rides/.
type CreateRideRequest struct {
	PickupAddress      string     `json:"pickup_address" validate:"required"`
	PickupLat          float64    `json:"pickup_lat" validate:"gte=-90,lte=90"`
	PickupLng          float64    `json:"pickup_lng" validate:"gte=-180,lte=180"`
	DestinationAddress string     `json:"destination_address" validate:"required"`
	DestinationLat     float64    `json:"destination_lat" validate:"gte=-90,lte=90"`
	DestinationLng     float64    `json:"destination_lng" validate:"gte=-180,lte=180"`
	VehicleType        string     `json:"vehicle_type" validate:"oneof=economy premium suv luxury"`
	ScheduledTime      *time.Time `json:"scheduled_time,omitempty"`
}

// UpdateRideRequest mirrors PATCH /rides/{id}. All fields optional.
type UpdateRideRequest struct {
	Status    *string  `json:"status,omitempty"`
	DriverID  *int64   `json:"driver_id,omitempty"`
	FinalFare *float64 `json:"final_fare,omitempty"`
}

// RateRideRequest mirrors POST /rides/{id}/rate.
type RateRideRequest struct {
	Rating   int     `json:"rating" validate:"gte=1,lte=5"`
	Feedback *string `json:"feedback,omitempty"`
}

// LocationUpdateRequest mirrors PATCH /users/driver/location.
type LocationUpdateRequest struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

// RegisterRequest mirrors POST /auth/register.
type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Name     string  `json:"name" validate:"required"`
	Phone    *string `json:"phone,omitempty"`
	Password string  `json:"password" validate:"required,min=6"`
}

// DriverRegisterRequest mirrors POST /auth/driver/register; the original
// client flattens user and driver-profile fields into one body.
type DriverRegisterRequest struct {
	RegisterRequest
	LicenseNumber string  `json:"license_number" validate:"required"`
	VehicleModel  *string `json:"vehicle_model,omitempty"`
	VehiclePlate  *string `json:"vehicle_plate,omitempty"`
	VehicleColor  *string `json:"vehicle_color,omitempty"`
}

// CreateVacationRequest mirrors POST /vacation/.
type CreateVacationRequest struct {
	Destination   string    `json:"destination" validate:"required"`
	HotelName     *string   `json:"hotel_name,omitempty"`
	HotelAddress  *string   `json:"hotel_address,omitempty"`
	StartDate     time.Time `json:"start_date" validate:"required"`
	EndDate       time.Time `json:"end_date" validate:"required"`
	VehicleType   string    `json:"vehicle_type" validate:"oneof=economy premium suv luxury"`
	Passengers    int       `json:"passengers" validate:"gte=1"`
	RideIncluded  bool      `json:"ride_included"`
	HotelIncluded bool      `json:"hotel_included"`
}

// CreateIntercityRideRequest mirrors POST /intercity/rides.
type CreateIntercityRideRequest struct {
	OriginCityID      int64     `json:"origin_city_id" validate:"required"`
	DestinationCityID int64     `json:"destination_city_id" validate:"required"`
	PickupAddress     string    `json:"pickup_address" validate:"required"`
	DropoffAddress    string    `json:"dropoff_address" validate:"required"`
	ScheduledDate     time.Time `json:"scheduled_date" validate:"required"`
	Passengers        int       `json:"passengers" validate:"gte=1"`
}
