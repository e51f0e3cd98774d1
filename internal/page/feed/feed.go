// Package feed is the article-list sub-model shared by the home and profile
// pages: one loaded page of article previews plus its pagination row.
package feed

import (
	"strconv"

	"conduit/internal/entity"
	"conduit/internal/page"
	"conduit/internal/session"
	"conduit/internal/view"
)

// Model is a loaded feed page.
type Model struct {
	session  session.Session
	articles entity.PaginatedList[entity.Article]
}

// New wraps one fetched page of articles.
func New(sess session.Session, articles entity.PaginatedList[entity.Article]) Model {
	return Model{session: sess, articles: articles}
}

// Articles exposes the underlying page.
func (m Model) Articles() entity.PaginatedList[entity.Article] { return m.articles }

// Find returns the listed article with the given slug.
func (m Model) Find(slug entity.Slug) (entity.Article, bool) {
	for _, a := range m.articles.Items {
		if a.Slug == slug {
			return a, true
		}
	}
	return entity.Article{}, false
}

// Replace swaps in the new article value by slug, as favorite completions
// do. It reports whether the slug was present.
func (m *Model) Replace(a entity.Article) bool {
	for i := range m.articles.Items {
		if m.articles.Items[i].Slug == a.Slug {
			m.articles.Items[i] = a
			return true
		}
	}
	return false
}

// View renders the previews and the pagination row. onFavorite and onPage
// build the page-specific messages for the interactive elements.
func (m Model) View(active entity.PageNumber, onFavorite func(entity.Slug) any, onPage func(entity.PageNumber) any) *view.Node {
	root := view.El("div").Class("article-list")

	if len(m.articles.Items) == 0 {
		return root.Append(view.El("div", view.Text("No articles are here... yet.")).Class("article-preview"))
	}

	for _, a := range m.articles.Items {
		root.Append(m.preview(a, onFavorite))
	}

	if pages := m.articles.TotalPages(); pages > 1 {
		root.Append(pagination(pages, active, onPage))
	}
	return root
}

func (m Model) preview(a entity.Article, onFavorite func(entity.Slug) any) *view.Node {
	favoriteClass := "btn-outline-primary"
	if a.Favorited {
		favoriteClass = "btn-primary"
	}

	meta := view.El("div").Class("article-meta").Append(
		view.El("img").Attr("src", a.Author.Profile().Avatar.Src()),
		page.AuthorLink(a.Author),
		view.El("span", view.Text(a.CreatedAt.String())).Class("date"),
		view.El("button", view.Text(strconv.Itoa(a.FavoritesCount))).
			Class("btn "+favoriteClass).
			OnActivate(onFavorite(a.Slug)),
	)

	preview := view.El("div").Class("article-preview").Append(
		meta,
		view.El("a").Class("preview-link").Attr("href", "/article/"+a.Slug.String()).Append(
			view.El("h1", view.Text(a.Title)),
			view.El("p", view.Text(a.Description)),
			view.El("span", view.Text("Read more...")),
		),
	)

	if len(a.TagList) > 0 {
		tags := view.El("ul").Class("tag-list")
		for _, t := range a.TagList {
			tags.Append(view.El("li", view.Text(t.String())).Class("tag-default tag-pill tag-outline"))
		}
		preview.Append(tags)
	}
	return preview
}

func pagination(pages int, active entity.PageNumber, onPage func(entity.PageNumber) any) *view.Node {
	row := view.El("ul").Class("pagination")
	for i := 1; i <= pages; i++ {
		n := entity.PageNumber(i)
		class := "page-item"
		if n == active {
			class = "page-item active"
		}
		row.Append(
			view.El("li", view.El("a", view.Text(n.String())).Class("page-link")).
				Class(class).
				OnActivate(onPage(n)),
		)
	}
	return row
}
