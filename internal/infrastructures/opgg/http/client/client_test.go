package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	derr "github.com/ozzus/esports-digest/internal/domain/errors"
)

func TestUpcomingMatches_SendsGraphQLQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("unexpected content type: %s", ct)
		}
		if ua := r.Header.Get("User-Agent"); ua != "Mozilla/5.0" {
			t.Fatalf("unexpected user agent: %s", ua)
		}

		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		for _, field := range []string{"upcomingMatches", "scheduledAt", "shortName", "status"} {
			if !strings.Contains(req["query"], field) {
				t.Fatalf("expected %s in query, got %q", field, req["query"])
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"upcomingMatches":[
			{"id":"1","name":"BLG vs JDG","status":"not_started","scheduledAt":"2024-06-01T10:00:00.000Z",
			 "tournament":{"serie":{"league":{"shortName":"LPL"}}}},
			null,
			"garbage",
			{"id":"2","name":"T1 vs GEN","status":"not_started","scheduledAt":"2024-06-01T08:00:00.000Z",
			 "tournament":{"serie":{"league":{"shortName":"LCK"}}}}
		]}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "Mozilla/5.0", srv.Client())
	matches, err := c.UpcomingMatches(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0]["name"] != "BLG vs JDG" || matches[1]["id"] != "2" {
		t.Fatalf("unexpected matches payload: %+v", matches)
	}
}

func TestUpcomingMatches_MissingKeysYieldEmpty(t *testing.T) {
	bodies := []string{
		`{}`,
		`{"data":null}`,
		`{"data":{}}`,
		`{"data":{"upcomingMatches":null}}`,
		`{"data":{"upcomingMatches":{"oops":true}}}`,
		`{"errors":[{"message":"rate limited"}]}`,
	}

	for _, body := range bodies {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(body))
		}))

		c := NewClient(srv.URL, "", srv.Client())
		matches, err := c.UpcomingMatches(context.Background())
		srv.Close()

		if err != nil {
			t.Fatalf("body %s: expected no error, got %v", body, err)
		}
		if matches == nil || len(matches) != 0 {
			t.Fatalf("body %s: expected empty non-nil slice, got %v", body, matches)
		}
	}
}

func TestUpcomingMatches_Non2xxMapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", srv.Client())
	_, err := c.UpcomingMatches(context.Background())
	if !errors.Is(err, derr.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestUpcomingMatches_TransportErrorMapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, "", nil)
	_, err := c.UpcomingMatches(context.Background())
	if !errors.Is(err, derr.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestUpcomingMatches_InvalidJSONMapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", srv.Client())
	_, err := c.UpcomingMatches(context.Background())
	if !errors.Is(err, derr.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}
