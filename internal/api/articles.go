package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"conduit/internal/entity"
	"conduit/internal/form"
)

// FeedRequest parameterizes an article-list fetch. Zero-valued filters are
// left off the query string.
type FeedRequest struct {
	// Personal selects the follows-based feed (articles/feed); it requires
	// credentials and ignores the filters below.
	Personal  bool
	Tag       entity.Tag
	Author    entity.Username
	Favorited entity.Username
	Page      entity.PageNumber
	PerPage   int
}

func (r FeedRequest) path() string {
	base := "articles"
	if r.Personal {
		base = "articles/feed"
	}
	q := url.Values{}
	if !r.Personal {
		if r.Tag != "" {
			q.Set("tag", r.Tag.String())
		}
		if r.Author != "" {
			q.Set("author", r.Author.String())
		}
		if r.Favorited != "" {
			q.Set("favorited", r.Favorited.String())
		}
	}
	q.Set("limit", strconv.Itoa(r.PerPage))
	q.Set("offset", strconv.Itoa(r.Page.Offset(r.PerPage)))
	return base + "?" + q.Encode()
}

// ListArticles fetches one page of articles.
func (c *Client) ListArticles(ctx context.Context, viewer *entity.Viewer, req FeedRequest) (entity.PaginatedList[entity.Article], []entity.ErrorMessage) {
	var env articlesEnvelope
	if errs := c.do(ctx, http.MethodGet, req.path(), credsOf(viewer), nil, &env); errs != nil {
		return entity.PaginatedList[entity.Article]{}, errs
	}

	items := make([]entity.Article, 0, len(env.Articles))
	for _, w := range env.Articles {
		a, err := entity.DecodeArticle(w, viewer)
		if err != nil {
			c.log.WithError(err).WithField("slug", w.Slug).Warn("Malformed article in list")
			return entity.PaginatedList[entity.Article]{}, entity.Messages(dataErrorMsg)
		}
		items = append(items, a)
	}
	return entity.PaginatedList[entity.Article]{
		Items:   items,
		PerPage: req.PerPage,
		Total:   env.ArticlesCount,
	}, nil
}

// GetArticle fetches a single article by slug.
func (c *Client) GetArticle(ctx context.Context, viewer *entity.Viewer, slug entity.Slug) (entity.Article, []entity.ErrorMessage) {
	return c.articleRequest(ctx, http.MethodGet, "articles/"+slug.String(), viewer, nil)
}

// CreateArticle publishes a valid editor form.
func (c *Client) CreateArticle(ctx context.Context, viewer entity.Viewer, v form.ValidForm) (entity.Article, []entity.ErrorMessage) {
	return c.articleRequest(ctx, http.MethodPost, "articles", &viewer, form.EncodeArticle(v))
}

// UpdateArticle saves a valid editor form over an existing article.
func (c *Client) UpdateArticle(ctx context.Context, viewer entity.Viewer, slug entity.Slug, v form.ValidForm) (entity.Article, []entity.ErrorMessage) {
	return c.articleRequest(ctx, http.MethodPut, "articles/"+slug.String(), &viewer, form.EncodeArticle(v))
}

// DeleteArticle removes the viewer's article.
func (c *Client) DeleteArticle(ctx context.Context, viewer entity.Viewer, slug entity.Slug) []entity.ErrorMessage {
	return c.do(ctx, http.MethodDelete, "articles/"+slug.String(), credsOf(&viewer), nil, nil)
}

// Favorite marks the article as favorited; the returned article replaces
// the current one.
func (c *Client) Favorite(ctx context.Context, viewer entity.Viewer, slug entity.Slug) (entity.Article, []entity.ErrorMessage) {
	return c.articleRequest(ctx, http.MethodPost, "articles/"+slug.String()+"/favorite", &viewer, nil)
}

// Unfavorite removes the favorite.
func (c *Client) Unfavorite(ctx context.Context, viewer entity.Viewer, slug entity.Slug) (entity.Article, []entity.ErrorMessage) {
	return c.articleRequest(ctx, http.MethodDelete, "articles/"+slug.String()+"/favorite", &viewer, nil)
}

func (c *Client) articleRequest(ctx context.Context, method, path string, viewer *entity.Viewer, body any) (entity.Article, []entity.ErrorMessage) {
	var env articleEnvelope
	if errs := c.do(ctx, method, path, credsOf(viewer), body, &env); errs != nil {
		return entity.Article{}, errs
	}
	a, err := entity.DecodeArticle(env.Article, viewer)
	if err != nil {
		c.log.WithError(err).WithField("slug", env.Article.Slug).Warn("Malformed article")
		return entity.Article{}, entity.Messages(dataErrorMsg)
	}
	return a, nil
}

// Tags fetches the sidebar tag list.
func (c *Client) Tags(ctx context.Context) ([]entity.Tag, []entity.ErrorMessage) {
	var env tagsEnvelope
	if errs := c.do(ctx, http.MethodGet, "tags", nil, nil, &env); errs != nil {
		return nil, errs
	}
	tags := make([]entity.Tag, 0, len(env.Tags))
	for _, t := range env.Tags {
		tags = append(tags, entity.Tag(t))
	}
	return tags, nil
}
