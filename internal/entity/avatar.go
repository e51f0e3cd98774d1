package entity

// DefaultAvatarURL is the asset served for users without an avatar.
const DefaultAvatarURL = "/assets/images/smiley-cyrus.jpg"

// Avatar is either a caller-supplied URL or the default asset. Src never
// returns an empty string.
type Avatar struct {
	url string
}

// NewAvatar accepts the backend's nullable image field. A nil or empty value
// resolves to the default avatar.
func NewAvatar(url *string) Avatar {
	if url == nil {
		return Avatar{}
	}
	return Avatar{url: *url}
}

// Src returns the URL to display.
func (a Avatar) Src() string {
	if a.url == "" {
		return DefaultAvatarURL
	}
	return a.url
}

// Custom reports the user-supplied URL, if any. Used when serializing the
// viewer back to storage and to prefill the settings form.
func (a Avatar) Custom() (string, bool) { return a.url, a.url != "" }
