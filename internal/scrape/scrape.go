package scrape

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"filmoteca/internal/catalog"
	"filmoteca/internal/config"
	"filmoteca/internal/emby"
	"filmoteca/internal/history"
	"filmoteca/internal/logging"
	"filmoteca/internal/omdb"
	"filmoteca/internal/reconcile"
	"filmoteca/internal/thumbs"
	"filmoteca/internal/tmdb"
)

var (
	// ErrMissingSettings wraps the joined MissingSetting errors.
	ErrMissingSettings = errors.New("required settings missing")
	// ErrAlreadyRunning means another scrape holds the lock.
	ErrAlreadyRunning = errors.New("another scrape is already running")
)

// Summary reports what a successful run did.
type Summary struct {
	RunID       string
	Records     int
	CatalogPath string
	Reconcile   reconcile.Stats
	Thumbs      thumbs.Summary
	Elapsed     time.Duration
}

// Runner executes scrape runs for one configuration.
type Runner struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpClient *http.Client
	history    *history.Store
	backend    thumbs.Backend
	now        func() time.Time
}

// Option customizes a Runner.
type Option func(*Runner)

// WithHTTPClient sets the client used for every upstream request.
func WithHTTPClient(client *http.Client) Option {
	return func(r *Runner) {
		if client != nil {
			r.httpClient = client
		}
	}
}

// WithHistory records every run in the given ledger.
func WithHistory(store *history.Store) Option {
	return func(r *Runner) {
		r.history = store
	}
}

// WithBackend overrides the thumbnail backend selected by configuration.
func WithBackend(backend thumbs.Backend) Option {
	return func(r *Runner) {
		r.backend = backend
	}
}

// New constructs a Runner.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	r := &Runner{
		cfg:        cfg,
		logger:     logging.NewComponentLogger(logger, "scrape"),
		httpClient: http.DefaultClient,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CheckSettings logs one line per missing setting and returns them joined
// under ErrMissingSettings. It returns nil when every setting is present.
func CheckSettings(cfg *config.Config, logger *slog.Logger) error {
	missing := cfg.RequiredForScrape()
	if len(missing) == 0 {
		return nil
	}
	for _, err := range missing {
		attrs := []logging.Attr{logging.Error(err)}
		var setting config.MissingSetting
		if errors.As(err, &setting) {
			attrs = append(attrs, logging.String("setting", setting.Key), logging.String("env", setting.Env))
		}
		logging.ErrorWithContext(logger, "required setting missing", "config_missing", attrs...)
	}
	return fmt.Errorf("%w: %w", ErrMissingSettings, errors.Join(missing...))
}

// Run performs one scrape. Nothing is written when the settings check, the
// lock, or reconciliation fails.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	if err := CheckSettings(r.cfg, r.logger); err != nil {
		return Summary{}, err
	}
	if err := r.cfg.EnsureDirectories(); err != nil {
		return Summary{}, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(r.cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return Summary{}, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return Summary{}, fmt.Errorf("%w (lock %s)", ErrAlreadyRunning, r.cfg.LockPath())
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			r.logger.Warn("failed to release scrape lock", logging.Error(err))
		}
	}()

	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, r.logger)
	started := r.now()
	logger.Info("scrape started", logging.String("catalog", r.cfg.Paths.CatalogFile))

	summary := Summary{RunID: runID, CatalogPath: r.cfg.Paths.CatalogFile}
	runErr := r.execute(ctx, logger, &summary)
	summary.Elapsed = r.now().Sub(started)
	r.recordHistory(logger, started, summary, runErr)

	if runErr != nil {
		return summary, runErr
	}
	logger.Info("scrape finished",
		logging.Int("records", summary.Records),
		logging.Int("thumbs_created", summary.Thumbs.Created),
		logging.Int("thumbs_failed", summary.Thumbs.Failed),
		logging.Duration("elapsed", summary.Elapsed),
	)
	return summary, nil
}

func (r *Runner) execute(ctx context.Context, logger *slog.Logger, summary *Summary) error {
	primary, err := emby.New(r.cfg.Emby.URL, r.cfg.Emby.APIKey, r.cfg.Emby.ParentID, emby.WithHTTPClient(r.httpClient))
	if err != nil {
		return fmt.Errorf("emby client: %w", err)
	}
	films, err := tmdb.New(r.cfg.TMDB.APIKey, r.cfg.TMDB.BaseURL, r.cfg.TMDB.Language, tmdb.WithHTTPClient(r.httpClient))
	if err != nil {
		return fmt.Errorf("tmdb client: %w", err)
	}
	ratings, err := omdb.New(r.cfg.OMDB.APIKey, r.cfg.OMDB.BaseURL, omdb.WithHTTPClient(r.httpClient))
	if err != nil {
		return fmt.Errorf("omdb client: %w", err)
	}

	store := catalog.NewStore(r.cfg.Paths.CatalogFile)
	engine := reconcile.NewEngine(store, primary, films, ratings, logger)
	result, err := engine.Run(ctx)
	if err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}
	summary.Reconcile = result.Stats
	summary.Records = len(result.Records)

	if err := store.Save(result.Records); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	logger.Info("catalog written",
		logging.String("path", store.Path()),
		logging.Int("records", len(result.Records)),
	)

	backend := r.backend
	if backend == nil {
		backend, err = thumbs.OpenBackend(ctx, r.cfg)
		if err != nil {
			return fmt.Errorf("thumbnail backend: %w", err)
		}
	}
	syncer := thumbs.NewSyncer(backend, primary, thumbs.RendererFor(r.cfg.Thumbnails), logger)
	thumbSummary, err := syncer.Sync(ctx, result.Records, result.Superseded)
	summary.Thumbs = thumbSummary
	if err != nil {
		return fmt.Errorf("sync thumbnails: %w", err)
	}
	return nil
}

func (r *Runner) recordHistory(logger *slog.Logger, started time.Time, summary Summary, runErr error) {
	if r.history == nil {
		return
	}
	run := history.Run{
		ID:              summary.RunID,
		StartedAt:       started,
		FinishedAt:      started.Add(summary.Elapsed),
		Status:          history.StatusSucceeded,
		PrimaryItems:    summary.Reconcile.Primary,
		InvalidItems:    summary.Reconcile.Invalid,
		NewMovies:       summary.Reconcile.New,
		ReusedMovies:    summary.Reconcile.Reused,
		DroppedMovies:   summary.Reconcile.Dropped,
		RetainedMovies:  summary.Reconcile.Retained,
		RatingRefreshes: summary.Reconcile.RatingRefreshes,
		ImageChanges:    summary.Reconcile.ImageChanges,
		RatingFailures:  summary.Reconcile.RatingFailures,
		Records:         summary.Records,
		ThumbsCreated:   summary.Thumbs.Created,
		ThumbsFailed:    summary.Thumbs.Failed,
		ThumbsDeleted:   summary.Thumbs.Deleted,
	}
	if runErr != nil {
		run.Status = history.StatusFailed
		run.Error = runErr.Error()
	}
	// The run may have been cancelled; the ledger write still goes through.
	if err := r.history.Record(context.Background(), run); err != nil {
		logging.WarnWithContext(logger, "run not recorded in history", "history_write_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "history command will not list this run"),
		)
	}
}
