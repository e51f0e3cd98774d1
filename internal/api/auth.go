package api

import (
	"context"
	"net/http"

	"conduit/internal/entity"
	"conduit/internal/form"
)

// Account is the full user record behind GET /user: the viewer plus the
// private email only that endpoint returns.
type Account struct {
	Viewer entity.Viewer
	Email  string
}

// Login exchanges a valid login form for a viewer.
func (c *Client) Login(ctx context.Context, v form.ValidForm) (entity.Viewer, []entity.ErrorMessage) {
	var env userEnvelope
	if errs := c.do(ctx, http.MethodPost, "users/login", nil, form.EncodeUser(v), &env); errs != nil {
		return entity.Viewer{}, errs
	}
	return entity.DecodeViewer(env.User), nil
}

// Register creates an account from a valid registration form.
func (c *Client) Register(ctx context.Context, v form.ValidForm) (entity.Viewer, []entity.ErrorMessage) {
	var env userEnvelope
	if errs := c.do(ctx, http.MethodPost, "users", nil, form.EncodeUser(v), &env); errs != nil {
		return entity.Viewer{}, errs
	}
	return entity.DecodeViewer(env.User), nil
}

// CurrentUser fetches the authenticated account, used to prefill settings.
func (c *Client) CurrentUser(ctx context.Context, creds entity.Credentials) (Account, []entity.ErrorMessage) {
	var env userEnvelope
	if errs := c.do(ctx, http.MethodGet, "user", &creds, nil, &env); errs != nil {
		return Account{}, errs
	}
	return Account{Viewer: entity.DecodeViewer(env.User), Email: env.User.Email}, nil
}

// UpdateUser saves a valid settings form and returns the refreshed viewer.
func (c *Client) UpdateUser(ctx context.Context, creds entity.Credentials, v form.ValidForm) (entity.Viewer, []entity.ErrorMessage) {
	var env userEnvelope
	if errs := c.do(ctx, http.MethodPut, "user", &creds, form.EncodeUser(v), &env); errs != nil {
		return entity.Viewer{}, errs
	}
	return entity.DecodeViewer(env.User), nil
}
