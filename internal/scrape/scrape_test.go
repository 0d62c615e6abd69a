package scrape_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gofrs/flock"

	"filmoteca/internal/catalog"
	"filmoteca/internal/config"
	"filmoteca/internal/history"
	"filmoteca/internal/logging"
	"filmoteca/internal/reconcile"
	"filmoteca/internal/scrape"
	"filmoteca/internal/testsupport"
)

type upstreams struct {
	emby, tmdb, omdb *httptest.Server
	listStatus       int
	imageCalls       atomic.Int32
}

func newUpstreams(t *testing.T) *upstreams {
	t.Helper()
	u := &upstreams{listStatus: http.StatusOK}
	poster := testsupport.JPEG(t, 100, 150)

	embyMux := http.NewServeMux()
	embyMux.HandleFunc("GET /Items", func(w http.ResponseWriter, r *http.Request) {
		if u.listStatus != http.StatusOK {
			http.Error(w, "boom", u.listStatus)
			return
		}
		item := testsupport.EmbyItem("42", "tt000042", "abc")
		_, _ = w.Write(testsupport.MustJSON(t, map[string]any{"Items": []any{item}}))
	})
	embyMux.HandleFunc("GET /Items/{id}/Images/Primary", func(w http.ResponseWriter, r *http.Request) {
		u.imageCalls.Add(1)
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(poster)
	})
	u.emby = httptest.NewServer(embyMux)
	t.Cleanup(u.emby.Close)

	u.tmdb = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(testsupport.MustJSON(t, testsupport.TMDbMovie("Interstellar")))
	}))
	t.Cleanup(u.tmdb.Close)

	u.omdb = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(testsupport.MustJSON(t, testsupport.OMDbRatings("Interstellar", "75%")))
	}))
	t.Cleanup(u.omdb.Close)
	return u
}

func (u *upstreams) config(t *testing.T, opts ...testsupport.ConfigOption) *config.Config {
	t.Helper()
	opts = append([]testsupport.ConfigOption{testsupport.WithUpstreams(u.emby.URL, u.tmdb.URL, u.omdb.URL)}, opts...)
	return testsupport.NewConfig(t, opts...)
}

func TestRunWritesCatalogThumbnailsAndHistory(t *testing.T) {
	u := newUpstreams(t)
	cfg := u.config(t)
	ledger := testsupport.MustOpenHistory(t, cfg)
	runner := scrape.New(cfg, logging.NewNop(), scrape.WithHistory(ledger))

	summary, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Records != 1 || summary.Reconcile.New != 1 || summary.Thumbs.Created != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	records, err := catalog.NewStore(cfg.Paths.CatalogFile).Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if len(records) != 1 || records[0].ID != "42" || records[0].Title != "Movie 42" {
		t.Fatalf("unexpected records %+v", records)
	}
	if got, ok := records[0].CriticRating.Value(); !ok || got != 7.5 {
		t.Fatalf("expected critic rating 7.5, got %v", records[0].CriticRating)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.ThumbsDir, "abc.jpg")); err != nil {
		t.Fatalf("expected thumbnail: %v", err)
	}

	firstDoc := testsupport.ReadFile(t, cfg.Paths.CatalogFile)
	if _, err := runner.Run(context.Background()); err != nil {
		t.Fatalf("second Run returned error: %v", err)
	}
	if !bytes.Equal(firstDoc, testsupport.ReadFile(t, cfg.Paths.CatalogFile)) {
		t.Fatal("second run changed movies.json")
	}
	if got := u.imageCalls.Load(); got != 1 {
		t.Fatalf("expected one image download across runs, got %d", got)
	}

	runs, err := ledger.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if len(runs) != 2 || runs[0].Status != history.StatusSucceeded || runs[1].ID != summary.RunID {
		t.Fatalf("unexpected history %+v", runs)
	}
}

func TestRunReportsEveryMissingSetting(t *testing.T) {
	u := newUpstreams(t)
	cfg := u.config(t, testsupport.WithoutCredentials())

	_, err := scrape.New(cfg, logging.NewNop()).Run(context.Background())
	if !errors.Is(err, scrape.ErrMissingSettings) {
		t.Fatalf("expected ErrMissingSettings, got %v", err)
	}
	for _, env := range []string{"EMBY_API_KEY", "EMBY_MOVIES_PARENT_ID", "TMDB_API_KEY", "OMDB_API_KEY", "LANGUAGE"} {
		if !strings.Contains(err.Error(), env) {
			t.Errorf("error does not mention %s: %v", env, err)
		}
	}
	var missing config.MissingSetting
	if !errors.As(err, &missing) {
		t.Fatalf("expected a MissingSetting in the chain, got %v", err)
	}
	if _, statErr := os.Stat(cfg.Paths.CatalogFile); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("catalog must not be written, stat returned %v", statErr)
	}
}

func TestRunRefusesConcurrentScrape(t *testing.T) {
	u := newUpstreams(t)
	cfg := u.config(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}
	held := flock.New(cfg.LockPath())
	ok, err := held.TryLock()
	if err != nil || !ok {
		t.Fatalf("take lock: ok=%v err=%v", ok, err)
	}
	defer held.Unlock()

	if _, err := scrape.New(cfg, logging.NewNop()).Run(context.Background()); !errors.Is(err, scrape.ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}
}

func TestRunLeavesCatalogUntouchedWhenPrimaryFails(t *testing.T) {
	u := newUpstreams(t)
	u.listStatus = http.StatusBadGateway
	cfg := u.config(t)
	testsupport.WriteFile(t, cfg.Paths.CatalogFile, []byte("[]"))
	ledger := testsupport.MustOpenHistory(t, cfg)

	_, err := scrape.New(cfg, logging.NewNop(), scrape.WithHistory(ledger)).Run(context.Background())
	if !errors.Is(err, reconcile.ErrPrimaryUnavailable) {
		t.Fatalf("expected ErrPrimaryUnavailable, got %v", err)
	}
	if got := string(testsupport.ReadFile(t, cfg.Paths.CatalogFile)); got != "[]" {
		t.Fatalf("catalog rewritten: %q", got)
	}
	runs, err := ledger.List(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Status != history.StatusFailed || runs[0].Error == "" {
		t.Fatalf("expected failed run in history, got %+v", runs)
	}
}
