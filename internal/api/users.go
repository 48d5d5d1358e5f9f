package api

import (
	"context"
	"net/http"

	"ride-hail-client/internal/contracts"
	"ride-hail-client/internal/domain/user"
)

// CurrentUser fetches the authenticated account.
func (c *Client) CurrentUser(ctx context.Context) (user.User, error) {
	var u user.User
	err := c.do(ctx, http.MethodGet, "/users/me", nil, &u)
	return u, err
}

// Drivers lists driver accounts, optionally only currently-available ones.
func (c *Client) Drivers(ctx context.Context, availableOnly bool) ([]user.User, error) {
	path := "/users/drivers"
	if availableOnly {
		path += "?available_only=true"
	}
	var drivers []user.User
	err := c.do(ctx, http.MethodGet, path, nil, &drivers)
	return drivers, err
}

// UpdateDriverLocation reports the driver's current position.
func (c *Client) UpdateDriverLocation(ctx context.Context, lat, lng float64) error {
	return c.do(ctx, http.MethodPatch, "/users/driver/location", contracts.LocationUpdateRequest{Lat: lat, Lng: lng}, nil)
}

// ToggleDriverAvailability flips the server-side availability flag and
// returns the updated profile.
func (c *Client) ToggleDriverAvailability(ctx context.Context) (user.DriverProfile, error) {
	var profile user.DriverProfile
	err := c.do(ctx, http.MethodPatch, "/users/driver/availability", nil, &profile)
	return profile, err
}
