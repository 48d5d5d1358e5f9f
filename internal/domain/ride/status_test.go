package ride

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("  In_Progress ")
	assert.NoError(t, err)
	assert.Equal(t, StatusInProgress, s)

	_, err = ParseStatus("teleporting")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusAccepted.Terminal())
	assert.False(t, StatusInProgress.Terminal())
}

func TestStatusActive(t *testing.T) {
	assert.True(t, StatusAccepted.Active())
	assert.True(t, StatusInProgress.Active())
	assert.False(t, StatusPending.Active())
	assert.False(t, StatusCompleted.Active())
}

func TestParseVehicleType(t *testing.T) {
	vt, err := ParseVehicleType("SUV")
	assert.NoError(t, err)
	assert.Equal(t, VehicleSUV, vt)

	_, err = ParseVehicleType("hoverboard")
	assert.ErrorIs(t, err, ErrInvalidVehicleType)
}
