package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/vuna-de/be-exe/internal/adaptive"
	"github.com/vuna-de/be-exe/internal/catalog"
	"github.com/vuna-de/be-exe/internal/envstruct"
	"github.com/vuna-de/be-exe/internal/errors"
	"github.com/vuna-de/be-exe/internal/logging"
	"github.com/vuna-de/be-exe/internal/nutrition"
	"github.com/vuna-de/be-exe/internal/planner"
	"github.com/vuna-de/be-exe/internal/sqlite"
)

type application struct {
	logger           *slog.Logger
	sessionManager   *scs.SessionManager
	catalogCache     *catalog.Cache
	plannerService   *planner.Service
	nutritionService *nutrition.Service
	tracker          *adaptive.Tracker
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"FITAPP_ADDR" envDefault:"localhost:8080"`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"FITAPP_SQLITE_URL" envDefault:"./fitapp.sqlite3"`
	// SessionLifetimeHours controls how long an idle session stays valid.
	SessionLifetimeHours int `env:"FITAPP_SESSION_LIFETIME_HOURS" envDefault:"12"`
	// SecureCookies disables the Secure cookie flag for plain-HTTP development setups.
	SecureCookies bool `env:"FITAPP_SECURE_COOKIES" envDefault:"true"`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		cancel context.CancelFunc
		err    error
	)

	ctx, cancel = signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	var cfg config
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db")

	cache := catalog.NewCache(db, logger)
	if err = cache.Warm(ctx); err != nil {
		return errors.Wrap(err, "warm catalog cache")
	}

	plannerService := planner.NewService(db, cache, logger)
	app := application{
		logger:           logger,
		sessionManager:   initializeSessionManager(db, cfg),
		catalogCache:     cache,
		plannerService:   plannerService,
		nutritionService: nutrition.NewService(db, cache, logger),
		tracker:          adaptive.NewTracker(db, plannerService, cache, logger),
	}

	if err = app.configureAndStartServer(ctx, cfg.Addr, app.routes()); err != nil {
		return errors.Wrap(err, "start server")
	}
	return nil
}

func initializeSessionManager(dbs *sqlite.Database, cfg config) *scs.SessionManager {
	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(dbs.ReadWrite, 24*time.Hour) //nolint:mnd // day
	sessionManager.Lifetime = time.Duration(cfg.SessionLifetimeHours) * time.Hour
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.Secure = cfg.SecureCookies
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteStrictMode
	return sessionManager
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
