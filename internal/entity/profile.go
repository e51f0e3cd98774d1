package entity

// Profile is the public face of a user.
type Profile struct {
	Username Username
	Bio      *string
	Avatar   Avatar
}

// Viewer is the currently-logged-in user together with the token needed to
// speak for them.
type Viewer struct {
	Profile   Profile
	AuthToken string
}

func (v Viewer) Username() Username { return v.Profile.Username }

// Credentials returns the subset of the viewer the request layer needs.
func (v Viewer) Credentials() Credentials {
	return Credentials{Username: v.Profile.Username, AuthToken: v.AuthToken}
}

// Credentials is the authenticated identity sent as the Authorization token.
type Credentials struct {
	Username  Username
	AuthToken string
}
