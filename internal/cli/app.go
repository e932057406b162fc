package cli

import (
	"bufio"
	"context"
	"database/sql"
	"os"

	"github.com/meslee/moneyledger/internal/auth"
	"github.com/meslee/moneyledger/internal/backup"
	"github.com/meslee/moneyledger/internal/config"
	"github.com/meslee/moneyledger/internal/ledger"
	"github.com/meslee/moneyledger/internal/localcache"
	"github.com/meslee/moneyledger/internal/logging"
	"github.com/meslee/moneyledger/internal/models"
	"github.com/meslee/moneyledger/internal/period"
	"github.com/meslee/moneyledger/internal/session"
	"github.com/meslee/moneyledger/internal/settings"
	"github.com/meslee/moneyledger/internal/store"
)

// App wires the ledger client together: remote store gateway, auth session,
// local cache, settings, the period selector and the state core.
type App struct {
	config   *config.Config
	auth     auth.Service
	tracker  *session.Tracker
	settings *settings.Store
	period   *period.Selector
	core     *ledger.Core
	backup   *backup.Service
	gateway  *store.PostgresGateway
	cacheDB  *sql.DB
	logger   logging.Logger
	reader   *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	logger := logging.NewDefault()

	cacheDB, err := localcache.Open(ctx, c.CacheDBPath)
	if err != nil {
		return nil, err
	}

	gateway, err := store.NewPostgresGateway(c.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if err := gateway.RunMigrations(ctx); err != nil {
		// Managed deployments restrict DDL; the schema is expected to exist.
		logger.Warn(ctx, "migrations skipped", "error", err)
	}

	tracker := session.NewTracker()
	settingsStore := settings.NewStore(
		localcache.NewSQLiteRepository(cacheDB),
		gateway.Profiles(),
		tracker.Current,
		logger,
	)

	selector := period.NewSelector()
	core := ledger.NewCore(gateway, settingsStore, selector, logger)
	core.SetSeedJitter(c.SeedJitterMin, c.SeedJitterMax)

	tracker.OnChange(func(u *models.User) {
		core.HandleSessionChange(context.Background(), u)
	})

	backupService := backup.NewService(backup.Config{
		Region:       c.S3Region,
		Bucket:       c.S3Bucket,
		AccessKey:    c.S3AccessKey,
		SecretKey:    c.S3SecretKey,
		BaseEndpoint: c.S3BaseEndpoint,
	})

	return &App{
		config:   c,
		auth:     auth.NewService(c.AuthBaseURL, cacheDB),
		tracker:  tracker,
		settings: settingsStore,
		period:   selector,
		core:     core,
		backup:   backupService,
		gateway:  gateway,
		cacheDB:  cacheDB,
		logger:   logger,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

// Run hydrates settings and the cached session, initializes the core for the
// restored identity and hands control to the REPL.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	if err := a.settings.LoadLocal(ctx); err != nil {
		a.logger.Warn(ctx, "local settings unavailable", "error", err)
	}

	if err := a.tracker.Start(ctx, a.auth); err != nil {
		a.logger.Warn(ctx, "session restore failed", "error", err)
	}
	// The initial fetch does not fire a change event; initialize explicitly.
	if u := a.tracker.Current(); u != nil {
		if err := a.core.Init(ctx, u); err != nil {
			a.logger.Error(ctx, "initialization failed", "error", err)
		}
	}

	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
	return nil
}

// Close flushes in-flight profile syncs and releases both databases.
func (a *App) Close() {
	a.settings.Wait()
	_ = a.gateway.Close()
	_ = a.cacheDB.Close()
}

func (a *App) isLoggedIn() bool {
	return a.tracker.Current() != nil
}

// status renders the prompt suffix: identity, core state and the selected
// month.
func (a *App) status() string {
	u := a.tracker.Current()
	if u == nil {
		return "(signed out)"
	}
	s := u.Email + " " + a.core.State().String()
	if notice := a.core.Notice(); notice != "" {
		s += "!"
	}
	return "(" + s + ") " + a.period.Date().Format("2006-01")
}
