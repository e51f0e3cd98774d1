package api

import (
	"context"
	"net/http"

	"conduit/internal/entity"
)

// Comments fetches an article's comments. The list is best-effort: items
// that fail to decode are dropped.
func (c *Client) Comments(ctx context.Context, viewer *entity.Viewer, slug entity.Slug) ([]entity.Comment, []entity.ErrorMessage) {
	var env commentsEnvelope
	if errs := c.do(ctx, http.MethodGet, "articles/"+slug.String()+"/comments", credsOf(viewer), nil, &env); errs != nil {
		return nil, errs
	}
	return entity.DecodeComments(env.Comments, viewer, c.log), nil
}

// PostComment publishes a comment on the article.
func (c *Client) PostComment(ctx context.Context, viewer entity.Viewer, slug entity.Slug, body string) (entity.Comment, []entity.ErrorMessage) {
	payload := map[string]any{"comment": map[string]any{"body": body}}
	var env commentEnvelope
	if errs := c.do(ctx, http.MethodPost, "articles/"+slug.String()+"/comments", credsOf(&viewer), payload, &env); errs != nil {
		return entity.Comment{}, errs
	}
	comment, err := entity.DecodeComment(env.Comment, &viewer)
	if err != nil {
		c.log.WithError(err).Warn("Malformed comment in response")
		return entity.Comment{}, entity.Messages(dataErrorMsg)
	}
	return comment, nil
}

// DeleteComment removes the viewer's comment.
func (c *Client) DeleteComment(ctx context.Context, viewer entity.Viewer, slug entity.Slug, id entity.CommentID) []entity.ErrorMessage {
	return c.do(ctx, http.MethodDelete, "articles/"+slug.String()+"/comments/"+id.String(), credsOf(&viewer), nil, nil)
}
