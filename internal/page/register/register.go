// Package register is the sign-up page.
package register

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

// Model is the register page state.
type Model struct {
	deps     page.Deps
	session  session.Session
	form     form.Form
	problems []form.Problem
}

// Msg marks register-page messages.
type Msg interface{ registerMsg() }

type msg struct{}

func (msg) registerMsg() {}

type FieldEdited struct {
	msg
	Key   string
	Value string
}

type SubmitClicked struct{ msg }

type Completed struct {
	msg
	Viewer entity.Viewer
	Errs   []entity.ErrorMessage
}

// Init builds the page with an empty form.
func Init(deps page.Deps, sess session.Session) (*Model, []program.Cmd) {
	return &Model{deps: deps, session: sess, form: form.Register()}, nil
}

func (m *Model) Session() session.Session { return m.session }

// Problems exposes the current problem list. Used by tests.
func (m *Model) Problems() []form.Problem { return m.problems }

// Update advances the page.
func (m *Model) Update(raw program.Msg) []program.Cmd {
	switch msg := raw.(type) {
	case FieldEdited:
		m.form = m.form.Upsert(form.NewField(msg.Key, msg.Value))

	case SubmitClicked:
		valid, problems := m.form.Trim().Validate()
		if problems != nil {
			m.problems = problems
			return nil
		}
		m.problems = nil
		client := m.deps.API
		return []program.Cmd{func(ctx context.Context) program.Msg {
			viewer, errs := client.Register(ctx, valid)
			return Completed{Viewer: viewer, Errs: errs}
		}}

	case Completed:
		if msg.Errs != nil {
			m.problems = form.ServerErrors(msg.Errs)
			return nil
		}
		store := m.deps.Store
		log := m.deps.Log
		viewer := msg.Viewer
		return []program.Cmd{func(ctx context.Context) program.Msg {
			if err := store.Save(viewer); err != nil {
				log.WithError(err).Error("Failed to persist viewer")
			}
			return page.SessionChanged{Session: session.LoggedIn(viewer)}
		}}

	case page.SessionChanged:
		m.session = msg.Session
		m.deps.Nav.Push(router.Home())
	}
	return nil
}

// View renders the page.
func (m *Model) View() *view.Node {
	node := view.El("form")
	for _, fld := range m.form.Fields() {
		node.Append(
			view.El("input", view.Text(fld.Value)).
				Attr("name", fld.Key).
				Class("form-control form-control-lg"),
		)
	}
	node.Append(
		view.El("button", view.Text("Sign up")).
			Class("btn btn-lg btn-primary pull-xs-right").
			OnActivate(SubmitClicked{}),
	)

	return view.El("div").Class("auth-page").Append(
		view.El("h1", view.Text("Sign up")).Class("text-xs-center"),
		view.El("a", view.Text("Have an account?")).Attr("href", "/login"),
		page.ProblemList(m.problems),
		node,
	)
}
