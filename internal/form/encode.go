package form

import "strings"

// EncodeUser flattens a valid login/register/settings form into the user
// envelope. The avatar field maps onto the wire's "image" key, and an empty
// password (settings: "don't change") is omitted entirely.
func EncodeUser(v ValidForm) map[string]any {
	user := make(map[string]any)
	for _, f := range v.Fields() {
		switch {
		case f.Key == KeyPassword && f.Value == "":
		case f.Key == KeyAvatar:
			user["image"] = f.Value
		default:
			user[f.Key] = f.Value
		}
	}
	return map[string]any{"user": user}
}

// EncodeArticle flattens a valid editor form into the article envelope. The
// tags field becomes a "tagList" array of the non-empty whitespace-separated
// tokens.
func EncodeArticle(v ValidForm) map[string]any {
	article := make(map[string]any)
	for _, f := range v.Fields() {
		if f.Key == KeyTags {
			article["tagList"] = strings.Fields(f.Value)
		} else {
			article[f.Key] = f.Value
		}
	}
	return map[string]any{"article": article}
}
