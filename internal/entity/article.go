package entity

// Article is a blog post with markdown body, tags, author and favorite
// counters.
type Article struct {
	Slug           Slug
	Title          string
	Description    string
	Body           Markdown
	TagList        []Tag
	CreatedAt      Timestamp
	UpdatedAt      Timestamp
	Favorited      bool
	FavoritesCount int
	Author         Author
}

// CommentID wraps the backend's numeric comment id as a string.
// Equality is structural.
type CommentID string

func (id CommentID) String() string { return string(id) }

// Comment is a single comment on an article.
type Comment struct {
	ID        CommentID
	Body      string
	CreatedAt Timestamp
	UpdatedAt Timestamp
	Author    Author
}
