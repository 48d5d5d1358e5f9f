package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"ride-hail-client/internal/contracts"
	"ride-hail-client/internal/domain/ride"
)

// CreateRide books a new ride for the authenticated rider.
func (c *Client) CreateRide(ctx context.Context, req contracts.CreateRideRequest) (ride.Ride, error) {
	if err := checkRequest(req); err != nil {
		return ride.Ride{}, err
	}
	var r ride.Ride
	err := c.do(ctx, http.MethodPost, "/rides/", req, &r)
	return r, err
}

// Rides lists the caller's rides, optionally filtered by status.
func (c *Client) Rides(ctx context.Context, status ride.Status) ([]ride.Ride, error) {
	path := "/rides/"
	if status != "" {
		path += "?status=" + url.QueryEscape(status.String())
	}
	var rides []ride.Ride
	err := c.do(ctx, http.MethodGet, path, nil, &rides)
	return rides, err
}

// AvailableRides lists unassigned pending rides a driver may accept.
func (c *Client) AvailableRides(ctx context.Context) ([]ride.Ride, error) {
	var rides []ride.Ride
	err := c.do(ctx, http.MethodGet, "/rides/available", nil, &rides)
	return rides, err
}

// Ride fetches a single ride.
func (c *Client) Ride(ctx context.Context, id int64) (ride.Ride, error) {
	var r ride.Ride
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/rides/%d", id), nil, &r)
	return r, err
}

// UpdateRide patches a ride; drivers drive the lifecycle with status-only
// patches (accepted, in_progress, completed, cancelled).
func (c *Client) UpdateRide(ctx context.Context, id int64, req contracts.UpdateRideRequest) (ride.Ride, error) {
	var r ride.Ride
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/rides/%d", id), req, &r)
	return r, err
}

// UpdateRideStatus is the common status-only patch.
func (c *Client) UpdateRideStatus(ctx context.Context, id int64, status ride.Status) (ride.Ride, error) {
	s := status.String()
	return c.UpdateRide(ctx, id, contracts.UpdateRideRequest{Status: &s})
}

// CancelRide deletes (cancels) a ride.
func (c *Client) CancelRide(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/rides/%d", id), nil, nil)
}

// RateRide submits a completed ride's rating.
func (c *Client) RateRide(ctx context.Context, id int64, rating int, feedback *string) (ride.Ride, error) {
	req := contracts.RateRideRequest{Rating: rating, Feedback: feedback}
	if err := checkRequest(req); err != nil {
		return ride.Ride{}, err
	}
	var r ride.Ride
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/rides/%d/rate", id), req, &r)
	return r, err
}
