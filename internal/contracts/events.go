package contracts

// Event is the envelope for everything the realtime channel delivers to
// listeners. Server frames arrive as flat JSON objects `{type, ...fields}`;
// Raw preserves the full frame so typed decoding stays with the consumer.
// Events are transient: consumed once by listeners, never stored.
type Event struct {
	Type string `json:"type"`
	Raw  []byte `json:"-"`

	// Err is set only on local "error" notifications.
	Err error `json:"-"`
}

// NewRideRequestEvent mirrors the "new_ride_request" frame pushed to drivers.
type NewRideRequestEvent struct {
	Type               string  `json:"type"`
	RideID             int64   `json:"ride_id"`
	PickupAddress      string  `json:"pickup_address"`
	DestinationAddress string  `json:"destination_address"`
	DistanceKM         float64 `json:"distance_km"`
	EstimatedFare      float64 `json:"estimated_fare"`
	VehicleType        string  `json:"vehicle_type"`
}

// RideStatusUpdateEvent mirrors the "ride_status_update" frame pushed to riders.
type RideStatusUpdateEvent struct {
	Type   string `json:"type"`
	RideID int64  `json:"ride_id"`
	Status string `json:"status"`
}

// NewVacationRequestEvent mirrors the "new_vacation_request" frame pushed to drivers.
type NewVacationRequestEvent struct {
	Type        string  `json:"type"`
	VacationID  int64   `json:"vacation_id"`
	Destination string  `json:"destination"`
	HotelName   *string `json:"hotel_name"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	TotalPrice  float64 `json:"total_price"`
	Passengers  int     `json:"passengers"`
}

// VacationStatusUpdateEvent mirrors the "vacation_status_update" frame.
type VacationStatusUpdateEvent struct {
	Type       string `json:"type"`
	VacationID int64  `json:"vacation_id"`
	Status     string `json:"status"`
}

// DriverLocationUpdateEvent mirrors the "driver_location_update" frame pushed
// to riders while a driver is en route.
type DriverLocationUpdateEvent struct {
	Type   string  `json:"type"`
	RideID int64   `json:"ride_id"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
}
