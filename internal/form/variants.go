package form

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"conduit/internal/entity"
)

// Stable field keys, shared by the variants, the renderers and the encoders.
const (
	KeyUsername    = "username"
	KeyEmail       = "email"
	KeyPassword    = "password"
	KeyAvatar      = "avatar"
	KeyBio         = "bio"
	KeyTitle       = "title"
	KeyDescription = "description"
	KeyBody        = "body"
	KeyTags        = "tags"
)

// MinPasswordLength is the minimum accepted password length, counted in
// runes.
const MinPasswordLength = 8

func required() validation.Rule {
	return validation.Required.Error("can't be blank")
}

// minPassword rejects passwords shorter than MinPasswordLength. Like all
// length rules it skips empty values; pair with required() where a value is
// mandatory.
func minPassword() validation.Rule {
	return validation.RuneLength(MinPasswordLength, 0).
		Error("must be at least 8 characters long")
}

// Login builds the empty login form: email and password, both required.
func Login() Form {
	return New(
		NewField(KeyEmail, "", required()),
		NewField(KeyPassword, "", required()),
	)
}

// Register builds the empty registration form. The password must be present
// and at least MinPasswordLength long.
func Register() Form {
	return New(
		NewField(KeyUsername, "", required()),
		NewField(KeyEmail, "", required()),
		NewField(KeyPassword, "", required(), minPassword()),
	)
}

// Settings builds the settings form prefilled with the current account. An
// empty password means "don't change it"; any non-empty password must meet
// the minimum length.
func Settings(avatar, username, bio, email string) Form {
	return New(
		NewField(KeyAvatar, avatar),
		NewField(KeyUsername, username, required()),
		NewField(KeyBio, bio),
		NewField(KeyEmail, email, required()),
		NewField(KeyPassword, "", minPassword()),
	)
}

// ArticleEditor builds the empty article form: title and body required,
// description and tags free-form.
func ArticleEditor() Form {
	return New(
		NewField(KeyTitle, "", required()),
		NewField(KeyDescription, ""),
		NewField(KeyBody, "", required()),
		NewField(KeyTags, ""),
	)
}

// ArticleEditorFrom prefills the article form from an existing article for
// editing. Tags collapse back into a space-separated string.
func ArticleEditorFrom(a entity.Article) Form {
	tags := make([]string, 0, len(a.TagList))
	for _, t := range a.TagList {
		tags = append(tags, t.String())
	}
	f := ArticleEditor()
	f = f.Upsert(NewField(KeyTitle, a.Title))
	f = f.Upsert(NewField(KeyDescription, a.Description))
	f = f.Upsert(NewField(KeyBody, a.Body.String()))
	f = f.Upsert(NewField(KeyTags, strings.Join(tags, " ")))
	return f
}
