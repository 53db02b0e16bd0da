package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func suggestServer(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient("test-key").WithEndpoint(srv.URL)
	client.httpClient = srv.Client()
	return client, srv
}

func TestSuggestShortQuery(t *testing.T) {
	var calls atomic.Int32
	client, _ := suggestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	for _, q := range []string{"", "a", "ab"} {
		if got := client.Suggest(context.Background(), q); got != nil {
			t.Errorf("Suggest(%q) = %v, want nil", q, got)
		}
	}
	if calls.Load() != 0 {
		t.Errorf("short queries must not hit the network, got %d calls", calls.Load())
	}

	// Multi-byte runes count as characters, not bytes.
	client2, _ := suggestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"items": []Suggestion{}})
	})
	client2.Suggest(context.Background(), "žlu")
}

func TestSuggestMergesCategories(t *testing.T) {
	client, _ := suggestServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("apikey") != "test-key" {
			t.Errorf("missing apikey, got %q", q.Get("apikey"))
		}
		if q.Get("query") != "divadlo" {
			t.Errorf("unexpected query %q", q.Get("query"))
		}
		if q.Get("locality") == "" || q.Get("preferBBox") == "" {
			t.Error("bounding area parameters missing")
		}

		name := map[string]string{
			"poi":              "Vrchlického divadlo",
			"regional.street":  "Divadelní ulice",
			"regional.address": "Divadelní 123",
		}[q.Get("type")]

		json.NewEncoder(w).Encode(map[string]any{
			"items": []Suggestion{{
				Name:     name,
				Position: &LatLon{Lat: 50.35, Lon: 13.79},
			}},
		})
	})

	got := client.Suggest(context.Background(), "divadlo")
	if len(got) != 3 {
		t.Fatalf("expected 3 merged suggestions, got %d", len(got))
	}

	// Merge order is fixed: poi, street, address.
	want := []string{"Vrchlického divadlo", "Divadelní ulice", "Divadelní 123"}
	for i := range want {
		if got[i].Name != want[i] {
			t.Errorf("position %d: got %q, want %q", i, got[i].Name, want[i])
		}
	}
	if got[0].Position == nil || got[0].Position.Lat != 50.35 {
		t.Errorf("position not carried through: %+v", got[0].Position)
	}
}

func TestSuggestFailureReturnsEmpty(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		var calls atomic.Int32
		client, _ := suggestServer(t, func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 2 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			json.NewEncoder(w).Encode(map[string]any{"items": []Suggestion{{Name: "x"}}})
		})

		if got := client.Suggest(context.Background(), "divadlo"); got != nil {
			t.Errorf("partial failure must yield empty result, got %v", got)
		}
	})

	t.Run("bad json", func(t *testing.T) {
		client, _ := suggestServer(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "not json")
		})
		if got := client.Suggest(context.Background(), "divadlo"); got != nil {
			t.Errorf("got %v, want nil", got)
		}
	})
}

func TestSuggestCancellation(t *testing.T) {
	client, _ := suggestServer(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan []Suggestion, 1)
	go func() {
		done <- client.Suggest(ctx, "divadlo")
	}()

	cancel()
	if got := <-done; got != nil {
		t.Errorf("superseded query must return empty, got %v", got)
	}
}
