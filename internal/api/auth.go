package api

import (
	"context"
	"net/http"
	"net/url"

	"ride-hail-client/internal/contracts"
	"ride-hail-client/internal/domain/user"
)

// Login exchanges credentials for a token. The endpoint takes form fields
// (username/password), not JSON.
func (c *Client) Login(ctx context.Context, email, password string) (contracts.TokenResponse, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var resp contracts.TokenResponse
	err := c.doForm(ctx, http.MethodPost, "/auth/login", form, &resp)
	return resp, err
}

// Register creates a rider account.
func (c *Client) Register(ctx context.Context, req contracts.RegisterRequest) (user.User, error) {
	if err := checkRequest(req); err != nil {
		return user.User{}, err
	}
	var u user.User
	err := c.do(ctx, http.MethodPost, "/auth/register", req, &u)
	return u, err
}

// RegisterDriver creates a driver account with its profile in one call.
func (c *Client) RegisterDriver(ctx context.Context, req contracts.DriverRegisterRequest) (user.User, error) {
	if err := checkRequest(req); err != nil {
		return user.User{}, err
	}
	var u user.User
	err := c.do(ctx, http.MethodPost, "/auth/driver/register", req, &u)
	return u, err
}

// Authenticate performs the full login flow: exchange credentials, fetch the
// account with the fresh token, persist both in the session, and re-arm the
// one-shot unauthorized hook for the new epoch.
func (c *Client) Authenticate(ctx context.Context, email, password string) (user.User, error) {
	tok, err := c.Login(ctx, email, password)
	if err != nil {
		return user.User{}, err
	}

	var u user.User
	if tok.User != nil {
		u = *tok.User
	} else {
		if err := c.doWith(ctx, tok.AccessToken, http.MethodGet, "/users/me", nil, &u); err != nil {
			return user.User{}, err
		}
	}

	if err := c.sess.Login(tok.AccessToken, u); err != nil {
		return user.User{}, err
	}
	c.RearmUnauthorized()
	return u, nil
}
