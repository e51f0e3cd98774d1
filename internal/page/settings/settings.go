// Package settings is the profile-settings page. Unlike the other form
// pages it loads first: the current account is fetched to prefill the form.
package settings

import (
	"context"

	"conduit/internal/api"
	"conduit/internal/entity"
	"conduit/internal/form"
	"conduit/internal/page"
	"conduit/internal/program"
	"conduit/internal/router"
	"conduit/internal/session"
	"conduit/internal/view"
)

// Model is the settings page state.
type Model struct {
	deps     page.Deps
	session  session.Session
	status   page.Status[form.Form]
	problems []form.Problem
}

// Msg marks settings-page messages.
type Msg interface{ settingsMsg() }

type msg struct{}

func (msg) settingsMsg() {}

// AccountLoaded completes the prefill fetch.
type AccountLoaded struct {
	msg
	Account api.Account
	Errs    []entity.ErrorMessage
}

type SlowLoadPassed struct{ msg }

type FieldEdited struct {
	msg
	Key   string
	Value string
}

type SubmitClicked struct{ msg }

// Completed finishes the save request.
type Completed struct {
	msg
	Viewer entity.Viewer
	Errs   []entity.ErrorMessage
}

// Init fires the account fetch; guests are sent to the login page.
func Init(deps page.Deps, sess session.Session) (*Model, []program.Cmd) {
	m := &Model{deps: deps, session: sess, status: page.Loading[form.Form]()}
	creds, ok := sess.Credentials()
	if !ok {
		deps.Nav.Push(router.Login())
		return m, nil
	}
	client := deps.API
	return m, []program.Cmd{
		func(ctx context.Context) program.Msg {
			account, errs := client.CurrentUser(ctx, creds)
			return AccountLoaded{Account: account, Errs: errs}
		},
		program.Tick(deps.SlowLoad, SlowLoadPassed{}),
	}
}

func (m *Model) Session() session.Session { return m.session }

// Problems exposes the current problem list. Used by tests.
func (m *Model) Problems() []form.Problem { return m.problems }

// Form exposes the prefilled form, once loaded. Used by tests.
func (m *Model) Form() (form.Form, bool) { return m.status.Value() }

// Update advances the page.
func (m *Model) Update(raw program.Msg) []program.Cmd {
	switch msg := raw.(type) {
	case AccountLoaded:
		if !m.status.IsLoading() {
			m.deps.Log.Debug("Dropping stale account completion")
			return nil
		}
		if msg.Errs != nil {
			m.status = page.Failed[form.Form]()
			m.problems = form.ServerErrors(msg.Errs)
			return nil
		}
		m.status = page.Loaded(prefill(msg.Account))

	case SlowLoadPassed:
		m.status = m.status.SlowedDown()

	case FieldEdited:
		if f, ok := m.status.Value(); ok {
			m.status = page.Loaded(f.Upsert(form.NewField(msg.Key, msg.Value)))
		}

	case SubmitClicked:
		f, ok := m.status.Value()
		if !ok {
			return nil
		}
		creds, ok := m.session.Credentials()
		if !ok {
			return nil
		}
		valid, problems := f.Trim().Validate()
		if problems != nil {
			m.problems = problems
			return nil
		}
		m.problems = nil
		client := m.deps.API
		return []program.Cmd{func(ctx context.Context) program.Msg {
			viewer, errs := client.UpdateUser(ctx, creds, valid)
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

// prefill builds the settings form from the fetched account.
func prefill(account api.Account) form.Form {
	avatar, _ := account.Viewer.Profile.Avatar.Custom()
	bio := ""
	if account.Viewer.Profile.Bio != nil {
		bio = *account.Viewer.Profile.Bio
	}
	return form.Settings(avatar, account.Viewer.Username().String(), bio, account.Email)
}

// View renders the page.
func (m *Model) View() *view.Node {
	root := view.El("div").Class("settings-page").Append(
		view.El("h1", view.Text("Your Settings")).Class("text-xs-center"),
		page.ProblemList(m.problems),
	)

	switch m.status.Kind() {
	case page.StatusLoading:
		return root
	case page.StatusLoadingSlowly:
		return root.Append(page.LoadingIcon())
	case page.StatusFailed:
		return root.Append(page.LoadFailed("settings"))
	}
	f, _ := m.status.Value()

	node := view.El("form")
	for _, fld := range f.Fields() {
		node.Append(
			view.El("input", view.Text(fld.Value)).
				Attr("name", fld.Key).
				Class("form-control"),
		)
	}
	node.Append(
		view.El("button", view.Text("Update Settings")).
			Class("btn btn-lg btn-primary pull-xs-right").
			OnActivate(SubmitClicked{}),
	)
	return root.Append(node)
}
