package entity

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func wireProfile(username string, following bool) ProfileJSON {
	return ProfileJSON{
		Username:  username,
		Bio:       strptr("a bio"),
		Image:     strptr("https://example.com/a.png"),
		Following: following,
	}
}

func testViewer(username string) Viewer {
	return Viewer{
		Profile:   Profile{Username: Username(username)},
		AuthToken: "tok",
	}
}

func TestDecodeAuthorArms(t *testing.T) {
	viewer := testViewer("alice")

	t.Run("viewer wins over following flag", func(t *testing.T) {
		for _, following := range []bool{true, false} {
			a := DecodeAuthor(wireProfile("alice", following), &viewer)
			assert.True(t, a.IsViewer())
			assert.False(t, a.Following())
			assert.Equal(t, Username("alice"), a.Username())
			got, ok := a.Viewer()
			require.True(t, ok)
			assert.Equal(t, viewer, got)
		}
	})

	t.Run("following", func(t *testing.T) {
		a := DecodeAuthor(wireProfile("bob", true), &viewer)
		assert.True(t, a.Following())
		assert.False(t, a.IsViewer())
	})

	t.Run("not following", func(t *testing.T) {
		a := DecodeAuthor(wireProfile("bob", false), &viewer)
		assert.False(t, a.Following())
		assert.False(t, a.IsViewer())
	})

	t.Run("guest context", func(t *testing.T) {
		a := DecodeAuthor(wireProfile("alice", false), nil)
		assert.False(t, a.IsViewer())
	})
}

func TestDecodeArticle(t *testing.T) {
	w := ArticleJSON{
		Slug:           "how-to-train",
		Title:          "How to train",
		Description:    "dragons",
		Body:           "# content",
		TagList:        []string{"dragons", "training"},
		CreatedAt:      "2021-02-18T03:22:56.637Z",
		UpdatedAt:      "2021-02-19T03:22:56.637Z",
		Favorited:      true,
		FavoritesCount: 3,
		Author:         wireProfile("bob", true),
	}

	a, err := DecodeArticle(w, nil)
	require.NoError(t, err)
	assert.Equal(t, Slug("how-to-train"), a.Slug)
	assert.Equal(t, Markdown("# content"), a.Body)
	assert.Equal(t, []Tag{"dragons", "training"}, a.TagList)
	assert.Equal(t, "February 18, 2021", a.CreatedAt.String())
	assert.True(t, a.Author.Following())
	assert.Equal(t, 3, a.FavoritesCount)

	w.UpdatedAt = "not-a-time"
	_, err = DecodeArticle(w, nil)
	assert.Error(t, err)
}

func TestDecodeCommentsDropsMalformed(t *testing.T) {
	good := func(id, body string) CommentJSON {
		return CommentJSON{
			ID:        json.Number(id),
			Body:      body,
			CreatedAt: "2021-02-18T03:22:56.637Z",
			UpdatedAt: "2021-02-18T03:22:56.637Z",
			Author:    wireProfile("bob", false),
		}
	}
	bad := good("2", "broken")
	bad.CreatedAt = "???"

	log := logrus.New()
	log.SetOutput(io.Discard)

	got := DecodeComments([]CommentJSON{good("1", "first"), bad, good("3", "third")}, nil, log)
	require.Len(t, got, 2)
	assert.Equal(t, CommentID("1"), got[0].ID)
	assert.Equal(t, "first", got[0].Body)
	assert.Equal(t, CommentID("3"), got[1].ID)
}

func TestDecodeViewer(t *testing.T) {
	v := DecodeViewer(UserJSON{Username: "alice", Token: "T", Image: nil})
	assert.Equal(t, Username("alice"), v.Username())
	assert.Equal(t, "T", v.AuthToken)
	assert.Equal(t, DefaultAvatarURL, v.Profile.Avatar.Src())
}
