package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sevenofnine/edupage-calendar-bridge/internal/domain"
	"github.com/sevenofnine/edupage-calendar-bridge/internal/security"
)

type fakeProvider struct {
	events []domain.LessonEvent
	err    error
}

func (fakeProvider) Name() string { return "fake" }
func (f fakeProvider) Events(context.Context) ([]domain.LessonEvent, error) {
	return f.events, f.err
}

func TestFeedSuccess(t *testing.T) {
	p := fakeProvider{events: []domain.LessonEvent{{
		UID:        "u1",
		Summary:    "Math 201",
		Start:      time.Date(2026, 2, 9, 8, 0, 0, 0, time.Local),
		End:        time.Date(2026, 2, 9, 8, 45, 0, 0, time.Local),
		Recurrence: "FREQ=WEEKLY",
	}}}
	s := New(Options{Provider: p})
	ts := httptest.NewServer(s.httpSrv.Handler)
	defer ts.Close()

	res, err := http.Get(ts.URL + "/ical")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Fatalf("content type = %q", ct)
	}
	body, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(body), "SUMMARY:Math 201") {
		t.Fatalf("feed body missing event:\n%s", body)
	}
}

func TestFeedFailureIsOpaque(t *testing.T) {
	s := New(Options{Provider: fakeProvider{err: errors.New("default_num missing")}})
	ts := httptest.NewServer(s.httpSrv.Handler)
	defer ts.Close()

	res, err := http.Get(ts.URL + "/ical")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusBadGateway {
		t.Fatalf("status = %d", res.StatusCode)
	}
	body, _ := io.ReadAll(res.Body)
	if strings.Contains(string(body), "default_num") {
		t.Fatalf("error detail leaked to subscriber: %s", body)
	}
}

func TestFeedMethodNotAllowed(t *testing.T) {
	s := New(Options{Provider: fakeProvider{}})
	ts := httptest.NewServer(s.httpSrv.Handler)
	defer ts.Close()

	res, _ := http.Post(ts.URL+"/ical", "text/plain", strings.NewReader("x"))
	if res.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", res.StatusCode)
	}
}

func TestAuthProtectsFeedNotHealth(t *testing.T) {
	s := New(Options{Provider: fakeProvider{}, Auth: security.FeedAuth{Enabled: true, Token: "t"}})
	ts := httptest.NewServer(s.httpSrv.Handler)
	defer ts.Close()

	res, _ := http.Get(ts.URL + "/healthz")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("healthz status = %d", res.StatusCode)
	}

	res, _ = http.Get(ts.URL + "/ical")
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}

	res, _ = http.Get(ts.URL + "/ical?token=t")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 with query token, got %d", res.StatusCode)
	}
}

func TestServeValidation(t *testing.T) {
	s := New(Options{Provider: fakeProvider{}})
	if err := s.ServeTCP(context.Background(), ""); err == nil {
		t.Fatal("expected bind error")
	}
	if err := s.ServeUnix(context.Background(), ""); err == nil {
		t.Fatal("expected unix path error")
	}
}

func TestServeTCPAndUnixLifecycle(t *testing.T) {
	s := New(Options{Provider: fakeProvider{}})
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(30 * time.Millisecond)
		cancel()
	}()
	if err := s.ServeTCP(ctx, "127.0.0.1:0"); err != nil && !errors.Is(err, http.ErrServerClosed) {
		t.Fatalf("ServeTCP err=%v", err)
	}

	s = New(Options{Provider: fakeProvider{}})
	ctx, cancel = context.WithCancel(context.Background())
	sock := t.TempDir() + "/bridge.sock"
	go func() {
		time.Sleep(30 * time.Millisecond)
		cancel()
	}()
	if err := s.ServeUnix(ctx, sock); err != nil && !errors.Is(err, http.ErrServerClosed) {
		t.Fatalf("ServeUnix err=%v", err)
	}
}
