package api

import (
	"context"
	"fmt"
	"net/http"

	"ride-hail-client/internal/contracts"
	"ride-hail-client/internal/domain/ride"
)

// Cities lists the supported intercity origins/destinations.
func (c *Client) Cities(ctx context.Context) ([]ride.City, error) {
	var cities []ride.City
	err := c.do(ctx, http.MethodGet, "/intercity/cities", nil, &cities)
	return cities, err
}

// IntercityRides lists the caller's intercity trips.
func (c *Client) IntercityRides(ctx context.Context) ([]ride.IntercityRide, error) {
	var rides []ride.IntercityRide
	err := c.do(ctx, http.MethodGet, "/intercity/rides", nil, &rides)
	return rides, err
}

// CreateIntercityRide books an intercity trip.
func (c *Client) CreateIntercityRide(ctx context.Context, req contracts.CreateIntercityRideRequest) (ride.IntercityRide, error) {
	if err := checkRequest(req); err != nil {
		return ride.IntercityRide{}, err
	}
	var r ride.IntercityRide
	err := c.do(ctx, http.MethodPost, "/intercity/rides", req, &r)
	return r, err
}

// AcceptIntercityRide assigns the calling driver to an intercity trip.
func (c *Client) AcceptIntercityRide(ctx context.Context, id int64) (ride.IntercityRide, error) {
	var r ride.IntercityRide
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/intercity/rides/%d/accept", id), nil, &r)
	return r, err
}
