package security

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// FeedAuth guards the calendar feed with a shared token. Calendar
// subscribers usually cannot set request headers, so the token is accepted
// either as a bearer header or as a ?token= query parameter.
type FeedAuth struct {
	Enabled bool
	Token   string
}

func (a FeedAuth) Authorize(r *http.Request) bool {
	if !a.Enabled {
		return true
	}
	if candidate, ok := bearerToken(r); ok {
		return equal(candidate, a.Token)
	}
	if candidate := strings.TrimSpace(r.URL.Query().Get("token")); candidate != "" {
		return equal(candidate, a.Token)
	}
	return false
}

func bearerToken(r *http.Request) (string, bool) {
	head := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "Bearer "
	if !strings.HasPrefix(head, prefix) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(head, prefix)), true
}

func equal(candidate, token string) bool {
	if len(candidate) != len(token) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(token)) == 1
}
