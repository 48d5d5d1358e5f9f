package api

import (
	"context"
	"fmt"
	"net/http"

	"ride-hail-client/internal/contracts"
	"ride-hail-client/internal/domain/vacation"
)

// CreateVacation books a vacation package.
func (c *Client) CreateVacation(ctx context.Context, req contracts.CreateVacationRequest) (vacation.Vacation, error) {
	if err := checkRequest(req); err != nil {
		return vacation.Vacation{}, err
	}
	var v vacation.Vacation
	err := c.do(ctx, http.MethodPost, "/vacation/", req, &v)
	return v, err
}

// Vacations lists the caller's vacation bookings.
func (c *Client) Vacations(ctx context.Context) ([]vacation.Vacation, error) {
	var vacations []vacation.Vacation
	err := c.do(ctx, http.MethodGet, "/vacation/", nil, &vacations)
	return vacations, err
}

// AvailableVacations lists pending vacation requests drivers can take on.
func (c *Client) AvailableVacations(ctx context.Context) ([]vacation.Vacation, error) {
	var vacations []vacation.Vacation
	err := c.do(ctx, http.MethodGet, "/vacation/available", nil, &vacations)
	return vacations, err
}

// Vacation fetches a single vacation booking.
func (c *Client) Vacation(ctx context.Context, id int64) (vacation.Vacation, error) {
	var v vacation.Vacation
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/vacation/%d", id), nil, &v)
	return v, err
}

// CancelVacation deletes (cancels) a vacation booking.
func (c *Client) CancelVacation(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/vacation/%d", id), nil, nil)
}

// ConfirmVacation accepts a pending vacation request.
func (c *Client) ConfirmVacation(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/vacation/%d/confirm", id), nil, nil)
}

// RejectVacation declines a pending vacation request.
func (c *Client) RejectVacation(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/vacation/%d/reject", id), nil, nil)
}

// LoyaltyPoints fetches the caller's loyalty balance.
func (c *Client) LoyaltyPoints(ctx context.Context) (vacation.LoyaltyPoints, error) {
	var points vacation.LoyaltyPoints
	err := c.do(ctx, http.MethodGet, "/vacation/loyalty/points", nil, &points)
	return points, err
}

// ScheduleVacationRides asks the server-side scheduler to plan the rides of
// a confirmed vacation.
func (c *Client) ScheduleVacationRides(ctx context.Context, vacationID int64) (contracts.MessageResponse, error) {
	var msg contracts.MessageResponse
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/scheduler/vacation/%d/schedule-rides", vacationID), nil, &msg)
	return msg, err
}
