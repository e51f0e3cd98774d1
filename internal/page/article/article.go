// Package article is the single-article page: the rendered article, its
// comment thread, and the favorite/follow/delete actions.
package article

import (
	"context"
	"strings"

	"conduit/internal/entity"
	"conduit/internal/page"
	"conduit/internal/program"
	"conduit/internal/router"
	"conduit/internal/session"
	"conduit/internal/view"
)

// CommentText is the comment box: what the user is typing, or the text of a
// post in flight.
type CommentText struct {
	Sending bool
	Text    string
}

// comments couples the comment box with the loaded thread. The thread is a
// deque: posts prepend, deletes prune by id.
type comments struct {
	text CommentText
	list []entity.Comment
}

// Model is the article page state.
type Model struct {
	deps     page.Deps
	session  session.Session
	slug     entity.Slug
	article  page.Status[entity.Article]
	comments page.Status[comments]
	errors   []entity.ErrorMessage
}

// Msg marks article-page messages.
type Msg interface{ articleMsg() }

type msg struct{}

func (msg) articleMsg() {}

// Loaded* complete the two initial fetches.
type ArticleLoaded struct {
	msg
	Article entity.Article
	Errs    []entity.ErrorMessage
}

type CommentsLoaded struct {
	msg
	Comments []entity.Comment
	Errs     []entity.ErrorMessage
}

type SlowLoadPassed struct{ msg }

// CommentEdited replaces the comment box text.
type CommentEdited struct {
	msg
	Text string
}

// PostCommentClicked submits the comment box.
type PostCommentClicked struct{ msg }

type PostCommentCompleted struct {
	msg
	Comment entity.Comment
	Errs    []entity.ErrorMessage
}

// DeleteCommentClicked removes one comment.
type DeleteCommentClicked struct {
	msg
	ID entity.CommentID
}

type DeleteCommentCompleted struct {
	msg
	ID   entity.CommentID
	Errs []entity.ErrorMessage
}

// FavoriteClicked toggles the article favorite.
type FavoriteClicked struct{ msg }

type FavoriteCompleted struct {
	msg
	Article entity.Article
	Errs    []entity.ErrorMessage
}

// FollowClicked toggles following the article's author.
type FollowClicked struct{ msg }

type FollowCompleted struct {
	msg
	Author entity.Author
	Errs   []entity.ErrorMessage
}

// DeleteArticleClicked removes the viewer's own article.
type DeleteArticleClicked struct{ msg }

type DeleteArticleCompleted struct {
	msg
	Errs []entity.ErrorMessage
}

type DismissErrors struct{ msg }

// Init fires the article and comment fetches in parallel.
func Init(deps page.Deps, sess session.Session, slug entity.Slug) (*Model, []program.Cmd) {
	m := &Model{
		deps:     deps,
		session:  sess,
		slug:     slug,
		article:  page.Loading[entity.Article](),
		comments: page.Loading[comments](),
	}
	client := deps.API
	viewer := sess.ViewerRef()
	return m, []program.Cmd{
		func(ctx context.Context) program.Msg {
			a, errs := client.GetArticle(ctx, viewer, slug)
			return ArticleLoaded{Article: a, Errs: errs}
		},
		func(ctx context.Context) program.Msg {
			cs, errs := client.Comments(ctx, viewer, slug)
			return CommentsLoaded{Comments: cs, Errs: errs}
		},
		program.Tick(deps.SlowLoad, SlowLoadPassed{}),
	}
}

func (m *Model) Session() session.Session { return m.session }

// CommentBox exposes the current comment box state. Used by tests.
func (m *Model) CommentBox() (CommentText, bool) {
	c, ok := m.comments.Value()
	return c.text, ok
}

// CommentList exposes the loaded thread. Used by tests.
func (m *Model) CommentList() []entity.Comment {
	c, _ := m.comments.Value()
	return c.list
}

// Update advances the page, dropping completions whose state has moved on.
func (m *Model) Update(raw program.Msg) []program.Cmd {
	switch msg := raw.(type) {
	case ArticleLoaded:
		if !m.article.IsLoading() {
			m.deps.Log.Debug("Dropping stale article completion")
			return nil
		}
		if msg.Errs != nil {
			m.article = page.Failed[entity.Article]()
			m.errors = msg.Errs
			return nil
		}
		m.article = page.Loaded(msg.Article)

	case CommentsLoaded:
		if !m.comments.IsLoading() {
			m.deps.Log.Debug("Dropping stale comments completion")
			return nil
		}
		if msg.Errs != nil {
			m.comments = page.Failed[comments]()
			return nil
		}
		m.comments = page.Loaded(comments{list: msg.Comments})

	case SlowLoadPassed:
		m.article = m.article.SlowedDown()
		m.comments = m.comments.SlowedDown()

	case CommentEdited:
		if c, ok := m.comments.Value(); ok && !c.text.Sending {
			c.text.Text = msg.Text
			m.comments = page.Loaded(c)
		}

	case PostCommentClicked:
		return m.postComment()

	case PostCommentCompleted:
		c, ok := m.comments.Value()
		if !ok || !c.text.Sending {
			m.deps.Log.Debug("Dropping stale comment-post completion")
			return nil
		}
		if msg.Errs != nil {
			// Revert to editing the same text so nothing the user typed is
			// lost.
			c.text.Sending = false
			m.comments = page.Loaded(c)
			m.errors = msg.Errs
			return nil
		}
		c.text = CommentText{}
		c.list = append([]entity.Comment{msg.Comment}, c.list...)
		m.comments = page.Loaded(c)

	case DeleteCommentClicked:
		return m.deleteComment(msg.ID)

	case DeleteCommentCompleted:
		if msg.Errs != nil {
			m.errors = msg.Errs
			return nil
		}
		if c, ok := m.comments.Value(); ok {
			pruned := c.list[:0:0]
			for _, cm := range c.list {
				if cm.ID != msg.ID {
					pruned = append(pruned, cm)
				}
			}
			c.list = pruned
			m.comments = page.Loaded(c)
		}

	case FavoriteClicked:
		return m.toggleFavorite()

	case FavoriteCompleted:
		if msg.Errs != nil {
			m.errors = msg.Errs
			return nil
		}
		if _, ok := m.article.Value(); ok {
			m.article = page.Loaded(msg.Article)
		}

	case FollowClicked:
		return m.toggleFollow()

	case FollowCompleted:
		if msg.Errs != nil {
			m.errors = msg.Errs
			return nil
		}
		if a, ok := m.article.Value(); ok {
			a.Author = msg.Author
			m.article = page.Loaded(a)
		}

	case DeleteArticleClicked:
		viewer, ok := m.session.Viewer()
		if !ok {
			return nil
		}
		client := m.deps.API
		slug := m.slug
		return []program.Cmd{func(ctx context.Context) program.Msg {
			return DeleteArticleCompleted{Errs: client.DeleteArticle(ctx, viewer, slug)}
		}}

	case DeleteArticleCompleted:
		if msg.Errs != nil {
			m.errors = msg.Errs
			return nil
		}
		m.deps.Nav.Push(router.Home())

	case DismissErrors:
		m.errors = nil

	case page.SessionChanged:
		m.session = msg.Session
	}
	return nil
}

// postComment submits the comment box. It is a no-op unless the comments
// are loaded, nothing is in flight, and the text is non-empty.
func (m *Model) postComment() []program.Cmd {
	viewer, ok := m.session.Viewer()
	if !ok {
		return nil
	}
	c, ok := m.comments.Value()
	if !ok || c.text.Sending || strings.TrimSpace(c.text.Text) == "" {
		return nil
	}

	text := c.text.Text
	c.text.Sending = true
	m.comments = page.Loaded(c)

	client := m.deps.API
	slug := m.slug
	return []program.Cmd{func(ctx context.Context) program.Msg {
		comment, errs := client.PostComment(ctx, viewer, slug, text)
		return PostCommentCompleted{Comment: comment, Errs: errs}
	}}
}

func (m *Model) deleteComment(id entity.CommentID) []program.Cmd {
	viewer, ok := m.session.Viewer()
	if !ok {
		return nil
	}
	client := m.deps.API
	slug := m.slug
	return []program.Cmd{func(ctx context.Context) program.Msg {
		return DeleteCommentCompleted{ID: id, Errs: client.DeleteComment(ctx, viewer, slug, id)}
	}}
}

func (m *Model) toggleFavorite() []program.Cmd {
	viewer, ok := m.session.Viewer()
	if !ok {
		m.deps.Nav.Push(router.Login())
		return nil
	}
	a, ok := m.article.Value()
	if !ok {
		return nil
	}
	client := m.deps.API
	slug := m.slug
	favorited := a.Favorited
	return []program.Cmd{func(ctx context.Context) program.Msg {
		var out entity.Article
		var errs []entity.ErrorMessage
		if favorited {
			out, errs = client.Unfavorite(ctx, viewer, slug)
		} else {
			out, errs = client.Favorite(ctx, viewer, slug)
		}
		return FavoriteCompleted{Article: out, Errs: errs}
	}}
}

func (m *Model) toggleFollow() []program.Cmd {
	viewer, ok := m.session.Viewer()
	if !ok {
		m.deps.Nav.Push(router.Login())
		return nil
	}
	a, ok := m.article.Value()
	if !ok || a.Author.IsViewer() {
		return nil
	}
	client := m.deps.API
	username := a.Author.Username()
	following := a.Author.Following()
	return []program.Cmd{func(ctx context.Context) program.Msg {
		var author entity.Author
		var errs []entity.ErrorMessage
		if following {
			author, errs = client.Unfollow(ctx, viewer, username)
		} else {
			author, errs = client.Follow(ctx, viewer, username)
		}
		return FollowCompleted{Author: author, Errs: errs}
	}}
}

// View renders the page.
func (m *Model) View() *view.Node {
	root := view.El("div").Class("article-page").Append(
		page.ErrorBanner(m.errors, DismissErrors{}),
	)

	switch m.article.Kind() {
	case page.StatusLoading:
		return root
	case page.StatusLoadingSlowly:
		return root.Append(page.LoadingIcon())
	case page.StatusFailed:
		return root.Append(page.LoadFailed("article"))
	}
	a, _ := m.article.Value()

	root.Append(
		view.El("div").Class("banner").Append(
			view.El("h1", view.Text(a.Title)),
			m.viewMeta(a),
		),
		view.El("div", view.Text(a.Body.String())).Class("article-content"),
	)
	return root.Append(m.viewComments())
}

func (m *Model) viewMeta(a entity.Article) *view.Node {
	meta := view.El("div").Class("article-meta").Append(
		view.El("img").Attr("src", a.Author.Profile().Avatar.Src()),
		page.AuthorLink(a.Author),
		view.El("span", view.Text(a.CreatedAt.String())).Class("date"),
	)

	if a.Author.IsViewer() {
		return meta.Append(
			view.El("a", view.Text("Edit Article")).
				Class("btn btn-outline-secondary btn-sm").
				Attr("href", "/editor/"+a.Slug.String()),
			view.El("button", view.Text("Delete Article")).
				Class("btn btn-outline-danger btn-sm").
				OnActivate(DeleteArticleClicked{}),
		)
	}

	followLabel := "Follow " + a.Author.Username().String()
	if a.Author.Following() {
		followLabel = "Unfollow " + a.Author.Username().String()
	}
	favoriteLabel := "Favorite Article"
	if a.Favorited {
		favoriteLabel = "Unfavorite Article"
	}
	return meta.Append(
		view.El("button", view.Text(followLabel)).
			Class("btn btn-sm btn-outline-secondary").
			OnActivate(FollowClicked{}),
		view.El("button", view.Text(favoriteLabel)).
			Class("btn btn-sm btn-outline-primary").
			OnActivate(FavoriteClicked{}),
	)
}

func (m *Model) viewComments() *view.Node {
	switch m.comments.Kind() {
	case page.StatusLoading:
		return view.El("span")
	case page.StatusLoadingSlowly:
		return page.LoadingIcon()
	case page.StatusFailed:
		return page.LoadFailed("comments")
	}
	c, _ := m.comments.Value()

	root := view.El("div").Class("comments")
	if m.session.LoggedIn() {
		submit := view.El("button", view.Text("Post Comment")).Class("btn btn-sm btn-primary")
		if c.text.Sending {
			submit.Attr("disabled", "disabled")
		} else {
			submit.OnActivate(PostCommentClicked{})
		}
		root.Append(view.El("form").Class("card comment-form").Append(
			view.El("textarea", view.Text(c.text.Text)).Attr("placeholder", "Write a comment..."),
			submit,
		))
	} else {
		root.Append(view.El("p", view.Text("Sign in or sign up to add comments on this article.")))
	}

	for _, cm := range c.list {
		card := view.El("div").Class("card").Append(
			view.El("p", view.Text(cm.Body)).Class("card-text"),
			page.AuthorLink(cm.Author),
			view.El("span", view.Text(cm.CreatedAt.String())).Class("date-posted"),
		)
		if cm.Author.IsViewer() {
			card.Append(
				view.El("span", view.Text("Delete")).
					Class("mod-options").
					OnActivate(DeleteCommentClicked{ID: cm.ID}),
			)
		}
		root.Append(card)
	}
	return root
}
