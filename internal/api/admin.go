package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"ride-hail-client/internal/contracts"
	"ride-hail-client/internal/domain/user"
)

// Stats fetches the aggregate platform numbers for the admin dashboard.
func (c *Client) Stats(ctx context.Context) (contracts.AdminStats, error) {
	var stats contracts.AdminStats
	err := c.do(ctx, http.MethodGet, "/admin/stats", nil, &stats)
	return stats, err
}

// Users lists accounts, optionally filtered by role.
func (c *Client) Users(ctx context.Context, role user.Role) ([]user.User, error) {
	path := "/admin/users"
	if role != "" {
		path += "?role=" + url.QueryEscape(role.String())
	}
	var users []user.User
	err := c.do(ctx, http.MethodGet, path, nil, &users)
	return users, err
}

// ToggleUserActive flips an account's active flag.
func (c *Client) ToggleUserActive(ctx context.Context, id int64) (user.User, error) {
	var u user.User
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/admin/users/%d/toggle-active", id), nil, &u)
	return u, err
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/users/%d", id), nil, nil)
}
