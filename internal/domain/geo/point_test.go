package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointValidate(t *testing.T) {
	assert.NoError(t, Point{Lat: 12.9716, Lng: 77.5946}.Validate())
	assert.ErrorIs(t, Point{Lat: 91, Lng: 0}.Validate(), ErrInvalidLatitude)
	assert.ErrorIs(t, Point{Lat: -91, Lng: 0}.Validate(), ErrInvalidLatitude)
	assert.ErrorIs(t, Point{Lat: 0, Lng: 181}.Validate(), ErrInvalidLongitude)
	assert.ErrorIs(t, Point{Lat: 0, Lng: -181}.Validate(), ErrInvalidLongitude)
}

func TestPointIsZero(t *testing.T) {
	assert.True(t, Point{}.IsZero())
	assert.True(t, Point{Address: "somewhere"}.IsZero())
	assert.False(t, Point{Lat: 0.0001}.IsZero())
}

func TestHaversineKM(t *testing.T) {
	bangalore := Point{Lat: 12.9716, Lng: 77.5946}
	delhi := Point{Lat: 28.7041, Lng: 77.1025}

	d := HaversineKM(bangalore, delhi)
	// great-circle distance is roughly 1750 km
	assert.InDelta(t, 1750, d, 20)

	assert.Zero(t, HaversineKM(bangalore, bangalore))
	assert.InDelta(t, HaversineKM(bangalore, delhi), HaversineKM(delhi, bangalore), 1e-9)
}
