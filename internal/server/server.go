package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"filmoteca/internal/catalog"
	"filmoteca/internal/config"
	"filmoteca/internal/logging"
	"filmoteca/internal/thumbs"
)

// Server serves the catalog and thumbnails.
type Server struct {
	bind    string
	store   *catalog.Store
	backend thumbs.Backend
	sorter  *catalog.Sorter
	logger  *slog.Logger
	router  *chi.Mux
}

// New wires the routes for cfg. The backend serves /thumbs/{name}.
func New(cfg *config.Config, backend thumbs.Backend, logger *slog.Logger) *Server {
	s := &Server{
		bind:    strings.TrimSpace(cfg.Server.Bind),
		store:   catalog.NewStore(cfg.Paths.CatalogFile),
		backend: backend,
		sorter:  catalog.NewSorter(cfg.TMDB.Language),
		logger:  logging.NewComponentLogger(logger, "server"),
		router:  chi.NewRouter(),
	}

	s.router.Use(middleware.Recoverer)
	s.router.Use(s.logRequests)

	s.router.Get("/movies.json", s.handleDocument)
	s.router.Get("/thumbs/{name}", s.handleThumbnail)
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/movies", s.handleMovies)
		r.Get("/stats", s.handleStats)
	})
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve listens on the configured address until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.bind, err)
	}
	return s.serve(ctx, listener)
}

func (s *Server) serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()
	s.logger.Info("server listening", logging.String("address", listener.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(s.store.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.writeError(w, http.StatusNotFound, "catalog not scraped yet")
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(data)
}

func (s *Server) handleThumbnail(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !thumbs.ValidName(name) || !strings.HasSuffix(name, ".jpg") {
		s.writeError(w, http.StatusNotFound, "thumbnail not found")
		return
	}
	body, err := s.backend.Open(r.Context(), name)
	if err != nil {
		if errors.Is(err, thumbs.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "thumbnail not found")
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	if _, err := io.Copy(w, body); err != nil {
		s.logger.Debug("thumbnail write interrupted", logging.String("thumbnail", name), logging.Error(err))
	}
}

func (s *Server) handleMovies(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.Load()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	query := r.URL.Query()
	if raw := query.Get("latest"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.writeError(w, http.StatusBadRequest, "latest must be a positive integer")
			return
		}
		s.writeJSON(w, http.StatusOK, catalog.Latest(records, n))
		return
	}

	key := catalog.SortTitle
	if raw := query.Get("sort"); raw != "" {
		key, err = catalog.ParseSortKey(raw)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	ascending := key.DefaultAscending()
	switch strings.ToLower(query.Get("order")) {
	case "":
	case "asc":
		ascending = true
	case "desc":
		ascending = false
	default:
		s.writeError(w, http.StatusBadRequest, "order must be asc or desc")
		return
	}
	s.writeJSON(w, http.StatusOK, s.sorter.Sort(records, key, ascending))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.Load()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	minGenre := catalog.DefaultGenreThreshold
	if raw := r.URL.Query().Get("min_genre"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.writeError(w, http.StatusBadRequest, "min_genre must be a non-negative integer")
			return
		}
		minGenre = n
	}
	s.writeJSON(w, http.StatusOK, catalog.Summarize(records, minGenre, s.sorter))
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request served",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Int("status", ww.Status()),
			logging.Int("bytes", ww.BytesWritten()),
			logging.Duration("elapsed", time.Since(start)),
		)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.WarnWithContext(s.logger, "encode response failed", "response_encode_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "client received a truncated response"),
		)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
