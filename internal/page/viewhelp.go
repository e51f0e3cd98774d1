package page

import (
	"conduit/internal/entity"
	"conduit/internal/form"
	"conduit/internal/view"
)

// LoadingIconURL is shown while a slow fetch is still in flight.
const LoadingIconURL = "/assets/images/loading.svg"

// ErrorImageURL is the placeholder for a failed primary load.
const ErrorImageURL = "/assets/images/error.jpg"

// LoadingIcon renders the slow-load spinner.
func LoadingIcon() *view.Node {
	return view.El("img").Attr("src", LoadingIconURL).Attr("alt", "Loading...")
}

// LoadFailed renders the placeholder for a failed primary load.
func LoadFailed(subject string) *view.Node {
	return view.El("div").Class("load-error").Append(
		view.El("img").Attr("src", ErrorImageURL).Attr("alt", "Error"),
		view.Text("Error loading "+subject+"."),
	)
}

// ErrorBanner renders a dismissible list of recoverable errors, or nothing
// when the list is empty. Activating the banner delivers dismiss.
func ErrorBanner(errors []entity.ErrorMessage, dismiss any) *view.Node {
	if len(errors) == 0 {
		return view.El("span")
	}
	banner := view.El("div").Class("error-messages")
	for _, e := range errors {
		banner.Append(view.El("p", view.Text(e.String())))
	}
	banner.Append(view.El("button", view.Text("Ok")).OnActivate(dismiss))
	return banner
}

// ProblemList renders form problems as the bulleted list above a form, or
// nothing when there are none.
func ProblemList(problems []form.Problem) *view.Node {
	if len(problems) == 0 {
		return view.El("span")
	}
	list := view.El("ul").Class("error-messages")
	for _, p := range problems {
		list.Append(view.El("li", view.Text(p.Message())))
	}
	return list
}

// AuthorLink renders the byline link for an author.
func AuthorLink(a entity.Author) *view.Node {
	return view.El("a", view.Text(a.Username().String())).
		Class("author").
		Attr("href", "/profile/"+a.Username().String())
}
