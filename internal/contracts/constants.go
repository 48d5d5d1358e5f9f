package contracts

// Server-pushed event types carried in the realtime envelope.
const (
	EventNewRideRequest       = "new_ride_request"
	EventRideStatusUpdate     = "ride_status_update"
	EventNewVacationRequest   = "new_vacation_request"
	EventVacationStatusUpdate = "vacation_status_update"
	EventDriverLocationUpdate = "driver_location_update"
)

// Client-local channel notifications, fanned out alongside server events.
const (
	EventConnected            = "connected"
	EventDisconnected         = "disconnected"
	EventError                = "error"
	EventMaxReconnectAttempts = "maxReconnectAttemptsReached"

	// EventMessage receives every well-formed server envelope regardless of type.
	EventMessage = "message"
)
