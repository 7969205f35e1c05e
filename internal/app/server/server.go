package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"timeclock/internal/domain/attendance"
	"timeclock/internal/domain/audit"
	"timeclock/internal/domain/core"
	"timeclock/internal/domain/reports"
	"timeclock/internal/domain/settings"
	"timeclock/internal/platform/config"
	"timeclock/internal/platform/db"
	"timeclock/internal/platform/email"
	"timeclock/internal/platform/jobs"
	"timeclock/internal/platform/lock"
	"timeclock/internal/platform/metrics"
	"timeclock/internal/transport/http/api"
	attendancehandler "timeclock/internal/transport/http/handlers/attendance"
	audithandler "timeclock/internal/transport/http/handlers/audit"
	confighandler "timeclock/internal/transport/http/handlers/config"
	corehandler "timeclock/internal/transport/http/handlers/core"
	reportshandler "timeclock/internal/transport/http/handlers/reports"
	"timeclock/internal/transport/http/middleware"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	Config  config.Config
	DB      *db.Pool
	Router  http.Handler
	Jobs    *jobs.Service
	Metrics *metrics.Collector
	redis   *redis.Client
}

// New connects storage, prepares the schema and wires every handler. The
// background jobs are started by Run, not here.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	app := &App{Config: cfg, DB: pool, Metrics: metrics.New()}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			app.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool); err != nil {
			app.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	var locker lock.Locker = lock.NewLocal()
	if cfg.RedisURL != "" {
		rdb, err := lock.Connect(ctx, cfg.RedisURL)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("redis connect: %w", err)
		}
		app.redis = rdb
		locker = lock.NewRedis(rdb, cfg.LockTTL)
	}

	coreService := core.NewService(core.NewStore(pool))
	attendanceService := attendance.NewService(attendance.NewStore(pool), coreService, locker, loc)
	settingsService := settings.NewService(settings.NewStore(pool))
	reportsService := reports.NewService(attendanceService, coreService, reports.NewStore(pool), loc)
	auditService := audit.New(pool)

	app.Jobs = jobs.New(pool, cfg, attendanceService, email.New(cfg), app.Metrics)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(chimw.Recoverer)
	router.Use(middleware.Logger(app.Metrics))
	router.Use(middleware.SecureHeaders(strings.EqualFold(cfg.Environment, "production")))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, app.Metrics.Snapshot())
		})
	}

	router.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute, middleware.WithSkip(attendancehandler.IsScan)))

		r.Group(func(r chi.Router) {
			r.Use(middleware.BodyLimit(cfg.MaxUploadBytes))
			corehandler.NewHandler(coreService, auditService, cfg.UploadDir, cfg.MaxUploadBytes).RegisterRoutes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.BodyLimit(cfg.MaxBodyBytes))

			attendanceHandler := attendancehandler.NewHandler(attendanceService, app.Jobs, middleware.NewIdempotencyStore(pool), app.Metrics)
			attendanceHandler.RegisterRoutes(r)

			confighandler.NewHandler(settingsService, auditService).RegisterRoutes(r)
			reportshandler.NewHandler(reportsService).RegisterRoutes(r)
			audithandler.NewHandler(auditService).RegisterRoutes(r)
		})
	})

	router.Get(corehandler.PhotoURLPrefix+"*", uploadsHandler(cfg.UploadDir))
	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})

	app.Router = router
	return app, nil
}

func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			slog.Warn("redis close failed", "err", err)
		}
	}
	if a.DB != nil {
		a.DB.Close()
	}
}

// Run serves HTTP and the background jobs until ctx is cancelled, then drains
// in-flight requests.
func Run(ctx context.Context) error {
	cfg := config.Load()
	slog.SetDefault(newLogger(cfg.LogLevel))

	app, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	app.Jobs.Start(gctx)

	g.Go(func() error {
		slog.Info("timeclock server listening", "addr", cfg.Addr, "timezone", cfg.Timezone)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		slog.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

// uploadsHandler serves stored photos by name only.
func uploadsHandler(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, ok := corehandler.PhotoPath(dir, r.URL.Path)
		if !ok {
			http.NotFound(w, r)
			return
		}
		if info, err := os.Stat(file); err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "public, max-age=86400")
		http.ServeFile(w, r, file)
	}
}

type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, filepath.Clean("/"+r.URL.Path))
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
