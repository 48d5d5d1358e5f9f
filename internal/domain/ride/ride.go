package ride

import (
	"time"
)

// Ride is the client-side projection of a ride record. The server owns the
// record; the client only replaces it wholesale with what create/update
// responses, list fetches, and realtime push events report. It never
// transitions Status locally except as an optimistic placeholder that the
// next sync overwrites.
type Ride struct {
	ID       int64  `json:"id"`
	RiderID  int64  `json:"rider_id"`
	DriverID *int64 `json:"driver_id"`

	PickupAddress      string  `json:"pickup_address"`
	PickupLat          float64 `json:"pickup_lat"`
	PickupLng          float64 `json:"pickup_lng"`
	DestinationAddress string  `json:"destination_address"`
	DestinationLat     float64 `json:"destination_lat"`
	DestinationLng     float64 `json:"destination_lng"`

	VehicleType VehicleType `json:"vehicle_type"`
	Status      Status      `json:"status"`

	DistanceKM      *float64 `json:"distance_km"`
	DurationMinutes *int     `json:"duration_minutes"`
	EstimatedFare   *float64 `json:"estimated_fare"`
	FinalFare       *float64 `json:"final_fare"`
	Rating          *int     `json:"rating"`

	ScheduledTime *time.Time `json:"scheduled_time"`
	CreatedAt     time.Time  `json:"created_at"`
	StartedAt     *time.Time `json:"started_at"`
	CompletedAt   *time.Time `json:"completed_at"`
}

// Key returns the reconciliation key for the record.
func (r Ride) Key() int64 { return r.ID }

// IntercityRide is the client-side projection of a scheduled intercity trip.
type IntercityRide struct {
	ID                int64      `json:"id"`
	RiderID           int64      `json:"rider_id"`
	DriverID          *int64     `json:"driver_id"`
	OriginCityID      int64      `json:"origin_city_id"`
	DestinationCityID int64      `json:"destination_city_id"`
	PickupAddress     string     `json:"pickup_address"`
	DropoffAddress    string     `json:"dropoff_address"`
	ScheduledDate     time.Time  `json:"scheduled_date"`
	Status            Status     `json:"status"`
	DistanceKM        *float64   `json:"distance_km"`
	EstimatedHours    *float64   `json:"estimated_duration_hours"`
	Price             float64    `json:"price"`
	Passengers        int        `json:"passengers"`
	CreatedAt         time.Time  `json:"created_at"`
}

// Key returns the reconciliation key for the record.
func (r IntercityRide) Key() int64 { return r.ID }

// City is a supported intercity origin/destination.
type City struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	State    *string  `json:"state"`
	Country  string   `json:"country"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
	IsActive bool     `json:"is_active"`
}
