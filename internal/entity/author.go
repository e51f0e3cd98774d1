package entity

type authorKind int

const (
	authorNotFollowing authorKind = iota
	authorFollowing
	authorIsViewer
)

// Author is the per-article view of a user from the current viewer's
// perspective: someone the viewer follows, someone they don't, or the viewer
// themselves. Follow state changes produce a new Author value.
type Author struct {
	kind    authorKind
	profile Profile
	viewer  Viewer
}

// FollowedAuthor builds an author the viewer follows.
func FollowedAuthor(p Profile) Author {
	return Author{kind: authorFollowing, profile: p}
}

// UnfollowedAuthor builds an author the viewer does not follow.
func UnfollowedAuthor(p Profile) Author {
	return Author{kind: authorNotFollowing, profile: p}
}

// ViewerAuthor marks the author as the viewer themselves. The author profile
// is the viewer's own profile, so the two usernames always agree.
func ViewerAuthor(v Viewer) Author {
	return Author{kind: authorIsViewer, profile: v.Profile, viewer: v}
}

func (a Author) Profile() Profile   { return a.profile }
func (a Author) Username() Username { return a.profile.Username }

// Following reports whether the viewer follows this author. Always false for
// the viewer themselves.
func (a Author) Following() bool { return a.kind == authorFollowing }

// IsViewer reports whether this author is the current viewer.
func (a Author) IsViewer() bool { return a.kind == authorIsViewer }

// Viewer returns the embedded viewer when IsViewer holds.
func (a Author) Viewer() (Viewer, bool) {
	return a.viewer, a.kind == authorIsViewer
}
