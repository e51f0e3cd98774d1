// Package editor is the article create/edit page. Its status machine covers
// both flows: a new article starts in editingNew, an existing one loads
// first and then moves to editing.
package editor

import (
	"context"

	"conduit/internal/entity"
	"conduit/internal/form"
	"conduit/internal/page"
	"conduit/internal/program"
	"conduit/internal/router"
	"conduit/internal/session"
	"conduit/internal/view"
)

type phase int

const (
	phaseLoading phase = iota
	phaseLoadingSlowly
	phaseLoadingFailed
	phaseEditing    // existing article, form ready
	phaseSaving     // existing article, update in flight
	phaseEditingNew // new article, form ready
	phaseCreating   // new article, create in flight
)

// Model is the editor page state.
type Model struct {
	deps     page.Deps
	session  session.Session
	phase    phase
	slug     entity.Slug // zero for the new-article phases
	problems []form.Problem
	form     form.Form
}

// Msg marks editor-page messages.
type Msg interface{ editorMsg() }

type msg struct{}

func (msg) editorMsg() {}

// ArticleLoaded completes the prefill fetch when editing.
type ArticleLoaded struct {
	msg
	Article entity.Article
	Errs    []entity.ErrorMessage
}

type SlowLoadPassed struct{ msg }

// FieldEdited replaces one form value.
type FieldEdited struct {
	msg
	Key   string
	Value string
}

// SubmitClicked validates and saves the form.
type SubmitClicked struct{ msg }

// CreateCompleted finishes a create request.
type CreateCompleted struct {
	msg
	Article entity.Article
	Errs    []entity.ErrorMessage
}

// EditCompleted finishes an update request.
type EditCompleted struct {
	msg
	Article entity.Article
	Errs    []entity.ErrorMessage
}

// InitNew opens the editor on an empty form.
func InitNew(deps page.Deps, sess session.Session) (*Model, []program.Cmd) {
	return &Model{
		deps:    deps,
		session: sess,
		phase:   phaseEditingNew,
		form:    form.ArticleEditor(),
	}, nil
}

// InitEdit opens the editor on an existing article, fetching it to prefill
// the form.
func InitEdit(deps page.Deps, sess session.Session, slug entity.Slug) (*Model, []program.Cmd) {
	m := &Model{
		deps:    deps,
		session: sess,
		phase:   phaseLoading,
		slug:    slug,
		form:    form.ArticleEditor(),
	}
	client := deps.API
	viewer := sess.ViewerRef()
	return m, []program.Cmd{
		func(ctx context.Context) program.Msg {
			a, errs := client.GetArticle(ctx, viewer, slug)
			return ArticleLoaded{Article: a, Errs: errs}
		},
		program.Tick(deps.SlowLoad, SlowLoadPassed{}),
	}
}

func (m *Model) Session() session.Session { return m.session }

// Problems exposes the current problem list. Used by tests.
func (m *Model) Problems() []form.Problem { return m.problems }

func (m *Model) loading() bool {
	return m.phase == phaseLoading || m.phase == phaseLoadingSlowly
}

func (m *Model) editable() bool {
	return m.phase == phaseEditing || m.phase == phaseEditingNew
}

// Update advances the machine.
func (m *Model) Update(raw program.Msg) []program.Cmd {
	switch msg := raw.(type) {
	case ArticleLoaded:
		if !m.loading() {
			m.deps.Log.Debug("Dropping stale editor prefill completion")
			return nil
		}
		if msg.Errs != nil {
			m.phase = phaseLoadingFailed
			m.problems = form.ServerErrors(msg.Errs)
			return nil
		}
		m.phase = phaseEditing
		m.problems = nil
		m.form = form.ArticleEditorFrom(msg.Article)

	case SlowLoadPassed:
		if m.phase == phaseLoading {
			m.phase = phaseLoadingSlowly
		}

	case FieldEdited:
		if m.editable() {
			m.form = m.form.Upsert(form.NewField(msg.Key, msg.Value))
		}

	case SubmitClicked:
		return m.submit()

	case CreateCompleted:
		if m.phase != phaseCreating {
			m.deps.Log.Debug("Dropping stale create completion")
			return nil
		}
		if msg.Errs != nil {
			m.phase = phaseEditingNew
			m.problems = form.ServerErrors(msg.Errs)
			return nil
		}
		m.deps.Nav.Push(router.Article(msg.Article.Slug))

	case EditCompleted:
		if m.phase != phaseSaving {
			m.deps.Log.Debug("Dropping stale save completion")
			return nil
		}
		if msg.Errs != nil {
			m.phase = phaseEditing
			m.problems = form.ServerErrors(msg.Errs)
			return nil
		}
		m.deps.Nav.Push(router.Article(msg.Article.Slug))

	case page.SessionChanged:
		m.session = msg.Session
	}
	return nil
}

func (m *Model) submit() []program.Cmd {
	if !m.editable() {
		return nil
	}
	viewer, ok := m.session.Viewer()
	if !ok {
		m.deps.Nav.Push(router.Login())
		return nil
	}

	valid, problems := m.form.Trim().Validate()
	if problems != nil {
		m.problems = problems
		return nil
	}
	m.problems = nil

	client := m.deps.API
	if m.phase == phaseEditingNew {
		m.phase = phaseCreating
		return []program.Cmd{func(ctx context.Context) program.Msg {
			a, errs := client.CreateArticle(ctx, viewer, valid)
			return CreateCompleted{Article: a, Errs: errs}
		}}
	}

	m.phase = phaseSaving
	slug := m.slug
	return []program.Cmd{func(ctx context.Context) program.Msg {
		a, errs := client.UpdateArticle(ctx, viewer, slug, valid)
		return EditCompleted{Article: a, Errs: errs}
	}}
}

// View renders the editor.
func (m *Model) View() *view.Node {
	root := view.El("div").Class("editor-page")

	switch m.phase {
	case phaseLoading:
		return root
	case phaseLoadingSlowly:
		return root.Append(page.LoadingIcon())
	case phaseLoadingFailed:
		return root.Append(page.ProblemList(m.problems), page.LoadFailed("article"))
	}

	saveLabel := "Publish Article"
	if m.slug != "" {
		saveLabel = "Update Article"
	}
	submit := view.El("button", view.Text(saveLabel)).Class("btn btn-lg pull-xs-right btn-primary")
	if m.editable() {
		submit.OnActivate(SubmitClicked{})
	} else {
		submit.Attr("disabled", "disabled")
	}

	formNode := view.El("form")
	for _, f := range m.form.Fields() {
		formNode.Append(
			view.El("input", view.Text(f.Value)).
				Attr("name", f.Key).
				Class("form-control"),
		)
	}
	formNode.Append(submit)

	return root.Append(page.ProblemList(m.problems), formNode)
}
