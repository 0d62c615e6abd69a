package tmdb_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"filmoteca/internal/tmdb"
)

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := tmdb.New("", "https://example.com", "en-US"); err == nil {
		t.Fatal("expected error when api key missing")
	}
}

func TestMovieRequestsCredits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/tt0816692" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		query := r.URL.Query()
		if query.Get("api_key") != "key" || query.Get("language") != "es-ES" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		if query.Get("append_to_response") != "credits" {
			t.Errorf("expected credits appended, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"title":"Interstellar"}`))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL, "es-ES")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	body, err := client.Movie(context.Background(), "tt0816692")
	if err != nil {
		t.Fatalf("Movie returned error: %v", err)
	}
	if string(body) != `{"title":"Interstellar"}` {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestMovieHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status_code":34}`))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL, "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.Movie(context.Background(), "tt1"); err == nil {
		t.Fatal("expected error when TMDb returns non-200")
	}
	if _, err := client.Movie(context.Background(), " "); err == nil {
		t.Fatal("expected error for empty id")
	}
}
