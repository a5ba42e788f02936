package discord

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"unicode/utf8"

	derr "github.com/ozzus/esports-digest/internal/domain/errors"
)

// redirectTransport sends every request to the test server, keeping the path.
type redirectTransport struct {
	target *url.URL
}

func (rt redirectTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = rt.target.Scheme
	req.URL.Host = rt.target.Host
	req.Host = rt.target.Host
	return http.DefaultTransport.RoundTrip(req)
}

func newTestNotifier(t *testing.T, h http.HandlerFunc) *Notifier {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	target, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}

	n, err := NewNotifier("token", "1421093651202703420", &http.Client{Transport: redirectTransport{target: target}})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	return n
}

func TestNotifier_Send(t *testing.T) {
	n := newTestNotifier(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/channels/1421093651202703420/messages") {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bot token" {
			t.Fatalf("unexpected auth header: %q", auth)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["content"] != "\n赛区：LPL" {
			t.Fatalf("unexpected content: %v", body["content"])
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"99","channel_id":"1421093651202703420","content":"ok"}`))
	})

	delivery, err := n.Send(context.Background(), "\n赛区：LPL")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if delivery.Response != "message_id=99" {
		t.Fatalf("unexpected response %q", delivery.Response)
	}
}

func TestNotifier_SendForbidden(t *testing.T) {
	n := newTestNotifier(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"Missing Access","code":50001}`))
	})

	_, err := n.Send(context.Background(), "content")
	if !errors.Is(err, derr.ErrChannelRejected) {
		t.Fatalf("expected ErrChannelRejected, got %v", err)
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("赛", maxMessageRunes+10)
	got := truncate(long, maxMessageRunes)
	if utf8.RuneCountInString(got) != maxMessageRunes {
		t.Fatalf("expected %d runes, got %d", maxMessageRunes, utf8.RuneCountInString(got))
	}
	if truncate("short", maxMessageRunes) != "short" {
		t.Fatal("expected short content untouched")
	}
}
