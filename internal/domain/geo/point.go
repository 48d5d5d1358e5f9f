package geo

import (
	"errors"
	"math"
)

// Point is a geographic coordinate, optionally with a display address.
type Point struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address,omitempty"`
}

var (
	ErrInvalidLatitude  = errors.New("latitude must be between -90 and 90")
	ErrInvalidLongitude = errors.New("longitude must be between -180 and 180")
)

// Validate checks coordinate ranges.
func (p Point) Validate() error {
	if p.Lat < -90 || p.Lat > 90 {
		return ErrInvalidLatitude
	}
	if p.Lng < -180 || p.Lng > 180 {
		return ErrInvalidLongitude
	}
	return nil
}

// IsZero reports whether the point carries no coordinates. The UI treats a
// zero point as "no location", never as a location at (0,0).
func (p Point) IsZero() bool {
	return p.Lat == 0 && p.Lng == 0
}

// HaversineKM returns the great-circle distance between two points in kilometers.
func HaversineKM(from, to Point) float64 {
	const earthRadiusKM = 6371.0
	a1 := from.Lat * math.Pi / 180
	a2 := to.Lat * math.Pi / 180
	da := (to.Lat - from.Lat) * math.Pi / 180
	db := (to.Lng - from.Lng) * math.Pi / 180

	a := math.Sin(da/2)*math.Sin(da/2) +
		math.Cos(a1)*math.Cos(a2)*math.Sin(db/2)*math.Sin(db/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKM * c
}
