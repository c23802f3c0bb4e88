package ticketmaster

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/shellmatthewk/concert-ticket-checker/internal/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(&config.TicketmasterConfig{
		APIKey:   "test-key",
		BaseURL:  baseURL,
		PageSize: 25,
	}, zap.NewNop())
}

func TestClientFetchEvents(t *testing.T) {
	t.Parallel()

	t.Run("sends required query parameters", func(t *testing.T) {
		t.Parallel()

		var gotQuery map[string]string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = map[string]string{}
			for key := range r.URL.Query() {
				gotQuery[key] = r.URL.Query().Get(key)
			}
			w.Write([]byte(`{"page":{"totalElements":0}}`))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).FetchEvents(context.Background(), SearchParams{Page: 3})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		want := map[string]string{
			"apikey":             "test-key",
			"classificationName": "music",
			"size":               "25",
			"page":               "3",
			"sort":               "date,asc",
		}
		for key, val := range want {
			if gotQuery[key] != val {
				t.Errorf("query %s = %q, want %q", key, gotQuery[key], val)
			}
		}
		for _, key := range []string{"keyword", "city", "stateCode"} {
			if _, ok := gotQuery[key]; ok {
				t.Errorf("unexpected query parameter %s", key)
			}
		}
	})

	t.Run("sends optional filters when set", func(t *testing.T) {
		t.Parallel()

		var gotQuery string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		params := SearchParams{Keyword: "rock", City: "Austin", StateCode: "TX"}
		if _, err := newTestClient(srv.URL).FetchEvents(context.Background(), params); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		req, _ := http.NewRequest(http.MethodGet, "/?"+gotQuery, nil)
		query := req.URL.Query()
		if query.Get("keyword") != "rock" || query.Get("city") != "Austin" || query.Get("stateCode") != "TX" {
			t.Errorf("optional filters not forwarded: %s", gotQuery)
		}
	})

	t.Run("decodes embedded events", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{
				"_embedded": {
					"events": [{
						"id": "tm-1",
						"name": "Act One",
						"url": "https://tickets.example.com/tm-1",
						"dates": {"start": {"dateTime": "2026-10-01T20:00:00Z"}},
						"classifications": [{"genre": {"name": "Rock"}}],
						"priceRanges": [{"min": 50, "max": 150}],
						"_embedded": {
							"venues": [{
								"name": "Garden Hall",
								"city": {"name": "New York"},
								"state": {"stateCode": "NY"},
								"location": {"latitude": "40.7128", "longitude": "-74.0060"},
								"timezone": "America/New_York"
							}],
							"attractions": [{"name": "The Headliner"}]
						}
					}]
				},
				"page": {"totalElements": 1, "totalPages": 1, "number": 0}
			}`))
		}))
		defer srv.Close()

		events, err := newTestClient(srv.URL).FetchEvents(context.Background(), SearchParams{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(events) != 1 {
			t.Fatalf("expected 1 event, got %d", len(events))
		}

		ev := events[0]
		if ev.ID != "tm-1" || ev.Name != "Act One" {
			t.Errorf("unexpected event identity: %+v", ev)
		}
		if ev.FirstAttractionName() != "The Headliner" {
			t.Errorf("expected attraction name, got %q", ev.FirstAttractionName())
		}
		if ev.FirstGenreName() != "Rock" {
			t.Errorf("expected genre Rock, got %q", ev.FirstGenreName())
		}
		pr := ev.FirstPriceRange()
		if pr == nil || pr.Min != 50 || pr.Max != 150 {
			t.Errorf("unexpected price range: %+v", pr)
		}
		venue := ev.FirstVenue()
		if venue == nil || venue.Name != "Garden Hall" || venue.City.Name != "New York" {
			t.Errorf("unexpected venue: %+v", venue)
		}
	})

	t.Run("sparse records decode with nil optionals", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"_embedded": {"events": [{"id": "tm-2", "name": "Bare"}]}}`))
		}))
		defer srv.Close()

		events, err := newTestClient(srv.URL).FetchEvents(context.Background(), SearchParams{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(events) != 1 {
			t.Fatalf("expected 1 event, got %d", len(events))
		}

		ev := events[0]
		if ev.FirstVenue() != nil {
			t.Errorf("expected nil venue")
		}
		if ev.FirstAttractionName() != "" {
			t.Errorf("expected empty attraction name")
		}
		if ev.FirstGenreName() != "" {
			t.Errorf("expected empty genre")
		}
		if ev.FirstPriceRange() != nil {
			t.Errorf("expected nil price range")
		}
	})

	t.Run("missing embedded block yields empty result", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"page": {"totalElements": 0, "totalPages": 0, "number": 0}}`))
		}))
		defer srv.Close()

		events, err := newTestClient(srv.URL).FetchEvents(context.Background(), SearchParams{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(events) != 0 {
			t.Errorf("expected no events, got %d", len(events))
		}
	})

	t.Run("non-2xx status is an error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).FetchEvents(context.Background(), SearchParams{})
		if err == nil {
			t.Fatalf("expected error on 429 response")
		}
	})

	t.Run("malformed body is an error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{not json`))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).FetchEvents(context.Background(), SearchParams{})
		if err == nil {
			t.Fatalf("expected decode error")
		}
	})
}
