package security

import (
	"net/http/httptest"
	"testing"
)

func TestFeedAuthDisabled(t *testing.T) {
	a := FeedAuth{Enabled: false}
	r := httptest.NewRequest("GET", "/ical", nil)
	if !a.Authorize(r) {
		t.Fatal("disabled auth must allow everything")
	}
}

func TestFeedAuthBearer(t *testing.T) {
	a := FeedAuth{Enabled: true, Token: "secret"}

	r := httptest.NewRequest("GET", "/ical", nil)
	if a.Authorize(r) {
		t.Fatal("missing token must be rejected")
	}

	r.Header.Set("Authorization", "Bearer secret")
	if !a.Authorize(r) {
		t.Fatal("valid bearer token rejected")
	}

	r.Header.Set("Authorization", "Bearer wrong!")
	if a.Authorize(r) {
		t.Fatal("wrong bearer token accepted")
	}

	r.Header.Set("Authorization", "Bearer s")
	if a.Authorize(r) {
		t.Fatal("short bearer token accepted")
	}
}

func TestFeedAuthQueryToken(t *testing.T) {
	a := FeedAuth{Enabled: true, Token: "secret"}

	r := httptest.NewRequest("GET", "/ical?token=secret", nil)
	if !a.Authorize(r) {
		t.Fatal("valid query token rejected")
	}

	r = httptest.NewRequest("GET", "/ical?token=nope12", nil)
	if a.Authorize(r) {
		t.Fatal("wrong query token accepted")
	}

	// A bearer header takes precedence over the query parameter.
	r = httptest.NewRequest("GET", "/ical?token=secret", nil)
	r.Header.Set("Authorization", "Bearer wrong!")
	if a.Authorize(r) {
		t.Fatal("invalid bearer must not fall through to query token")
	}
}
