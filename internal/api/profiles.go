package api

import (
	"context"
	"net/http"

	"conduit/internal/entity"
)

// GetProfile fetches a user's public profile. The optional viewer context
// decides the author arm.
func (c *Client) GetProfile(ctx context.Context, viewer *entity.Viewer, u entity.Username) (entity.Author, []entity.ErrorMessage) {
	var env profileEnvelope
	if errs := c.do(ctx, http.MethodGet, "profiles/"+u.String(), credsOf(viewer), nil, &env); errs != nil {
		return entity.Author{}, errs
	}
	return entity.DecodeAuthor(env.Profile, viewer), nil
}

// Follow starts following the author and returns the replacement Author
// value.
func (c *Client) Follow(ctx context.Context, viewer entity.Viewer, u entity.Username) (entity.Author, []entity.ErrorMessage) {
	return c.followRequest(ctx, http.MethodPost, viewer, u)
}

// Unfollow stops following the author.
func (c *Client) Unfollow(ctx context.Context, viewer entity.Viewer, u entity.Username) (entity.Author, []entity.ErrorMessage) {
	return c.followRequest(ctx, http.MethodDelete, viewer, u)
}

func (c *Client) followRequest(ctx context.Context, method string, viewer entity.Viewer, u entity.Username) (entity.Author, []entity.ErrorMessage) {
	var env profileEnvelope
	if errs := c.do(ctx, method, "profiles/"+u.String()+"/follow", credsOf(&viewer), nil, &env); errs != nil {
		return entity.Author{}, errs
	}
	return entity.DecodeAuthor(env.Profile, &viewer), nil
}
