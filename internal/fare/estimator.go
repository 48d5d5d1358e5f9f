// Package fare computes client-side fare estimates from straight-line
// distance. The server remains authoritative for the final fare.
package fare

import (
	"fmt"
	"math"
	"time"

	"ride-hail-client/internal/domain/geo"
	"ride-hail-client/internal/domain/ride"
)

// Tariff is a per-vehicle-type pricing rule.
type Tariff struct {
	BaseFare float64
	PerKM    float64
}

// tariffs mirrors the server's published pricing table.
var tariffs = map[ride.VehicleType]Tariff{
	ride.VehicleEconomy: {BaseFare: 50, PerKM: 10},
	ride.VehiclePremium: {BaseFare: 100, PerKM: 15},
	ride.VehicleSUV:     {BaseFare: 120, PerKM: 18},
	ride.VehicleLuxury:  {BaseFare: 200, PerKM: 25},
}

// averageSpeedKMH converts distance into a duration estimate.
const averageSpeedKMH = 40.0

// Quote is a complete client-side estimate for one trip.
type Quote struct {
	DistanceKM  float64          `json:"distance_km"`
	DurationMin int              `json:"duration_minutes"`
	Fare        float64          `json:"estimated_fare"`
	VehicleType ride.VehicleType `json:"vehicle_type"`
	PickupETA   time.Time        `json:"pickup_eta"`
	DropoffETA  time.Time        `json:"dropoff_eta"`
}

// Tariffs returns a copy of the pricing table, for display.
func Tariffs() map[ride.VehicleType]Tariff {
	out := make(map[ride.VehicleType]Tariff, len(tariffs))
	for vt, t := range tariffs {
		out[vt] = t
	}
	return out
}

// Estimate prices a trip between two points. Either point being unset (zero
// coordinates) yields an error: no estimate is shown rather than a bogus one.
func Estimate(from, to geo.Point, vt ride.VehicleType, now time.Time) (Quote, error) {
	if from.IsZero() || to.IsZero() {
		return Quote{}, fmt.Errorf("fare: both endpoints required")
	}
	if err := from.Validate(); err != nil {
		return Quote{}, fmt.Errorf("fare: pickup: %w", err)
	}
	if err := to.Validate(); err != nil {
		return Quote{}, fmt.Errorf("fare: destination: %w", err)
	}
	return EstimateDistance(geo.HaversineKM(from, to), vt, now)
}

// EstimateDistance prices a trip of a known distance. Callers with a routed
// distance from the server use this instead of the straight-line figure.
func EstimateDistance(distanceKM float64, vt ride.VehicleType, now time.Time) (Quote, error) {
	tariff, ok := tariffs[vt]
	if !ok {
		return Quote{}, fmt.Errorf("fare: unknown vehicle type %q", vt)
	}
	if distanceKM < 0 {
		return Quote{}, fmt.Errorf("fare: negative distance")
	}

	durationMin := int(math.Round(distanceKM / averageSpeedKMH * 60))
	q := Quote{
		DistanceKM:  distanceKM,
		DurationMin: durationMin,
		Fare:        math.Round((tariff.BaseFare+distanceKM*tariff.PerKM)*100) / 100,
		VehicleType: vt,
		PickupETA:   now,
		DropoffETA:  now.Add(time.Duration(durationMin) * time.Minute),
	}
	return q, nil
}
