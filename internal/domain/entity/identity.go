package entity

import "strings"

// AnonymousAuthor is the display name used when a submitter has no usable identity
const AnonymousAuthor = "Anonymous"

// Identity is a verified external identity extracted from an authenticated
// request. Produced only by the authenticity check; handlers never build one
// from raw payload fields.
type Identity struct {
	TgID      int64
	Username  string
	FirstName string
}

// DisplayName derives the public author label: @username, else first name,
// else the anonymous placeholder
func (i Identity) DisplayName() string {
	if i.Username != "" {
		return "@" + i.Username
	}
	if name := strings.TrimSpace(i.FirstName); name != "" {
		return name
	}
	return AnonymousAuthor
}
