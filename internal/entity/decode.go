package entity

import (
	"encoding/json"

	"github.com/sirupsen/logrus"
)

// Wire shapes as the backend sends them (camelCase keys). Decoders lift
// these into entities; only timestamp parsing can fail.

// ProfileJSON is the profile object nested in article, comment and profile
// envelopes.
type ProfileJSON struct {
	Username  string  `json:"username"`
	Bio       *string `json:"bio"`
	Image     *string `json:"image"`
	Following bool    `json:"following"`
}

// UserJSON is the payload of the user envelope returned by the auth
// endpoints. Bio and email only appear on GET /user.
type UserJSON struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Bio      *string `json:"bio"`
	Image    *string `json:"image"`
	Token    string  `json:"token"`
}

// ArticleJSON is the article object inside article envelopes.
type ArticleJSON struct {
	Slug           string      `json:"slug"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Body           string      `json:"body"`
	TagList        []string    `json:"tagList"`
	CreatedAt      string      `json:"createdAt"`
	UpdatedAt      string      `json:"updatedAt"`
	Favorited      bool        `json:"favorited"`
	FavoritesCount int         `json:"favoritesCount"`
	Author         ProfileJSON `json:"author"`
}

// CommentJSON is the comment object inside comment envelopes.
type CommentJSON struct {
	ID        json.Number `json:"id"`
	Body      string      `json:"body"`
	CreatedAt string      `json:"createdAt"`
	UpdatedAt string      `json:"updatedAt"`
	Author    ProfileJSON `json:"author"`
}

// DecodeProfile maps a wire profile into a Profile.
func DecodeProfile(w ProfileJSON) Profile {
	return Profile{
		Username: Username(w.Username),
		Bio:      w.Bio,
		Avatar:   NewAvatar(w.Image),
	}
}

// DecodeAuthor picks the author arm from the viewer context: the viewer's
// own username wins over the wire's following flag.
func DecodeAuthor(w ProfileJSON, viewer *Viewer) Author {
	if viewer != nil && viewer.Username() == Username(w.Username) {
		return ViewerAuthor(*viewer)
	}
	if w.Following {
		return FollowedAuthor(DecodeProfile(w))
	}
	return UnfollowedAuthor(DecodeProfile(w))
}

// DecodeViewer maps a user envelope payload into a Viewer.
func DecodeViewer(w UserJSON) Viewer {
	return Viewer{
		Profile: Profile{
			Username: Username(w.Username),
			Bio:      w.Bio,
			Avatar:   NewAvatar(w.Image),
		},
		AuthToken: w.Token,
	}
}

// DecodeArticle lifts a wire article. It fails only when a timestamp is
// unparsable.
func DecodeArticle(w ArticleJSON, viewer *Viewer) (Article, error) {
	createdAt, err := ParseTimestamp(w.CreatedAt)
	if err != nil {
		return Article{}, err
	}
	updatedAt, err := ParseTimestamp(w.UpdatedAt)
	if err != nil {
		return Article{}, err
	}
	tags := make([]Tag, 0, len(w.TagList))
	for _, t := range w.TagList {
		tags = append(tags, Tag(t))
	}
	return Article{
		Slug:           Slug(w.Slug),
		Title:          w.Title,
		Description:    w.Description,
		Body:           Markdown(w.Body),
		TagList:        tags,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
		Favorited:      w.Favorited,
		FavoritesCount: w.FavoritesCount,
		Author:         DecodeAuthor(w.Author, viewer),
	}, nil
}

// DecodeComment lifts a wire comment.
func DecodeComment(w CommentJSON, viewer *Viewer) (Comment, error) {
	createdAt, err := ParseTimestamp(w.CreatedAt)
	if err != nil {
		return Comment{}, err
	}
	updatedAt, err := ParseTimestamp(w.UpdatedAt)
	if err != nil {
		return Comment{}, err
	}
	return Comment{
		ID:        CommentID(w.ID.String()),
		Body:      w.Body,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
		Author:    DecodeAuthor(w.Author, viewer),
	}, nil
}

// DecodeComments lifts a comment list best-effort: a malformed item is
// logged and dropped, the rest keep their order.
func DecodeComments(ws []CommentJSON, viewer *Viewer, log logrus.FieldLogger) []Comment {
	out := make([]Comment, 0, len(ws))
	for _, w := range ws {
		c, err := DecodeComment(w, viewer)
		if err != nil {
			log.WithError(err).WithField("comment_id", w.ID.String()).Warn("Dropping malformed comment")
			continue
		}
		out = append(out, c)
	}
	return out
}
