package vacation

import (
	"time"

	"ride-hail-client/internal/domain/ride"
)

// Vacation is the client-side projection of a vacation booking. Mutated only
// by server responses and realtime push events, like ride.Ride.
type Vacation struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`

	Destination  string  `json:"destination"`
	HotelName    *string `json:"hotel_name"`
	HotelAddress *string `json:"hotel_address"`

	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	VehicleType ride.VehicleType `json:"vehicle_type"`
	Passengers  int              `json:"passengers"`

	RideIncluded  bool `json:"ride_included"`
	HotelIncluded bool `json:"hotel_included"`

	TotalPrice       float64 `json:"total_price"`
	Status           Status  `json:"status"`
	BookingReference *string `json:"booking_reference"`

	CreatedAt time.Time `json:"created_at"`

	// Optional structured itinerary, present once the scheduler has run.
	Schedule *Schedule `json:"schedule,omitempty"`
}

// Key returns the reconciliation key for the record.
func (v Vacation) Key() int64 { return v.ID }

// Schedule is the structured itinerary a confirmed vacation may carry.
type Schedule struct {
	Flight     *FlightLeg     `json:"flight,omitempty"`
	Meals      []MealBooking  `json:"meals,omitempty"`
	Activities []ActivitySlot `json:"activities,omitempty"`
}

// FlightLeg describes the booked flight of a vacation schedule.
type FlightLeg struct {
	Airline       string    `json:"airline"`
	FlightNumber  string    `json:"flight_number"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
}

// MealBooking is a reserved meal within the vacation schedule.
type MealBooking struct {
	Day        int    `json:"day"`
	Restaurant string `json:"restaurant"`
	MealType   string `json:"meal_type"`
}

// ActivitySlot is a planned activity within the vacation schedule.
type ActivitySlot struct {
	Day      int    `json:"day"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// LoyaltyPoints mirrors GET /vacation/loyalty/points.
type LoyaltyPoints struct {
	Points int     `json:"points"`
	Tier   string  `json:"tier"`
	Earned float64 `json:"earned"`
}
