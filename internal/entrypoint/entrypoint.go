package entrypoint

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/catalog/internal/audit"
	"github.com/mrlokans/catalog/internal/config"
	"github.com/mrlokans/catalog/internal/database"
	auditrepo "github.com/mrlokans/catalog/internal/database/audit"
	"github.com/mrlokans/catalog/internal/database/authors"
	"github.com/mrlokans/catalog/internal/database/books"
	"github.com/mrlokans/catalog/internal/database/chapters"
	"github.com/mrlokans/catalog/internal/database/reviews"
	"github.com/mrlokans/catalog/internal/database/users"
	http_controllers "github.com/mrlokans/catalog/internal/http"
	"github.com/mrlokans/catalog/internal/logging"
	"github.com/mrlokans/catalog/internal/scheduler"
	"github.com/mrlokans/catalog/internal/seed"
	"github.com/mrlokans/catalog/internal/services"
	"github.com/mrlokans/catalog/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// App holds the wired catalog: store, services and the optional audit
// trail.
type App struct {
	Config   *config.Config
	Log      *logrus.Logger
	Database *database.Database
	Services seed.Services
	Audit    *audit.Service // nil when auditing is disabled
}

// NewApp opens the store and wires every service.
func NewApp(cfg *config.Config, log *logrus.Logger) (*App, error) {
	db, err := database.Open(database.Config{
		Driver: cfg.Database.Driver,
		Path:   cfg.Database.Path,
		DSN:    cfg.Database.DSN,
		Logger: logging.GormLogger(log, cfg.Database.LogSQL),
	})
	if err != nil {
		return nil, err
	}

	userRepo := users.NewRepository(db.DB)
	authorRepo := authors.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)
	chapterRepo := chapters.NewRepository(db.DB)
	reviewRepo := reviews.NewRepository(db.DB)

	app := &App{
		Config:   cfg,
		Log:      log,
		Database: db,
		Services: seed.Services{
			Users:    services.NewUserService(userRepo, log),
			Authors:  services.NewAuthorService(authorRepo, bookRepo, userRepo, log),
			Books:    services.NewBookService(bookRepo, authorRepo, log),
			Chapters: services.NewChapterService(chapterRepo, bookRepo, log),
			Reviews:  services.NewReviewService(reviewRepo, bookRepo, userRepo, log),
		},
	}
	if cfg.Audit.Enabled {
		app.Audit = audit.NewService(auditrepo.NewRepository(db.DB), log)
	}
	return app, nil
}

// Close flushes pending audit writes and closes the store.
func (a *App) Close() error {
	if a.Audit != nil {
		a.Audit.Wait()
	}
	return a.Database.Close()
}

// Router builds the HTTP router. taskQueue may be nil.
func (a *App) Router(taskQueue *tasks.Client, version string) *gin.Engine {
	rc := http_controllers.RouterConfig{
		Users:        a.Services.Users,
		Authors:      a.Services.Authors,
		Books:        a.Services.Books,
		Chapters:     a.Services.Chapters,
		Reviews:      a.Services.Reviews,
		Database:     a.Database,
		UnitOfWork:   a.Database,
		AllowOrigins: a.Config.CORS.AllowOrigins,
		Logger:       a.Log,
		Version:      version,
	}
	if a.Audit != nil {
		rc.Recorder = a.Audit
		rc.Events = a.Audit
	}
	if taskQueue != nil {
		rc.Tasks = taskQueue
	}
	return http_controllers.NewRouter(rc)
}

func Serve(router *gin.Engine, cfg *config.Config, log logrus.FieldLogger, onShutdown ShutdownFunc) {
	timeout := cfg.ShutdownTimeout()

	srv := &http.Server{
		Addr:    cfg.Address(),
		Handler: router,
	}

	go func() {
		log.WithField("address", srv.Addr).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("listen")
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.WithField("timeout", timeout).Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server shutdown")
	}

	// Stop background work once no request can enqueue more
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Info("Server exiting")
}

// Run serves the catalog until SIGINT or SIGTERM.
func Run(cfg *config.Config, version string) {
	log := logging.New(cfg.Log, cfg.Global.Env)
	log.WithField("version", version).Info("Starting catalog")

	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}
	if cfg.Global.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	app, err := NewApp(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize database")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	taskClient, cleanupScheduler := startBackground(ctx, app)

	router := app.Router(taskClient, version)

	Serve(router, cfg, log, func(shutdownCtx context.Context) {
		if cleanupScheduler != nil {
			cleanupScheduler.Stop()
		}
		if taskClient != nil {
			taskClient.Stop(shutdownCtx)
			if err := taskClient.Close(); err != nil {
				log.WithError(err).Warn("Failed to close tasks database")
			}
		}
		if err := app.Close(); err != nil {
			log.WithError(err).Warn("Failed to close database")
		}
	})
}

// startBackground starts the task queue and the audit retention schedule.
// Failures are logged and leave the server running without them.
func startBackground(ctx context.Context, app *App) (*tasks.Client, *scheduler.AuditCleanupScheduler) {
	cfg := app.Config
	if !cfg.Tasks.Enabled {
		app.Log.Info("Task queue disabled")
		return nil, nil
	}

	path := tasks.TasksDBPath(cfg.Database.Path)
	if cfg.Database.Driver == config.DriverPostgres {
		path = config.DefaultTasksDatabasePath
	}

	taskClient, err := tasks.NewClient(path, tasks.FromSettings(cfg.Tasks), app.Log)
	if err != nil {
		app.Log.WithError(err).Error("Failed to initialize task queue")
		return nil, nil
	}

	if app.Audit != nil {
		taskClient.Register(tasks.NewCleanupAuditEventsQueue(app.Audit, app.Log))
	}
	taskClient.Start(ctx)

	if app.Audit == nil {
		return taskClient, nil
	}

	cleanup := scheduler.NewAuditCleanupScheduler(taskClient, cfg.Audit.CleanupSchedule, cfg.Audit.RetentionDays, app.Log)
	if err := cleanup.Start(ctx); err != nil {
		app.Log.WithError(err).Error("Failed to start audit cleanup scheduler")
		return taskClient, nil
	}
	return taskClient, cleanup
}

// Seed loads the sample catalog into an empty store.
func Seed(cfg *config.Config) error {
	log := logging.New(cfg.Log, cfg.Global.Env)
	if err := cfg.Validate(); err != nil {
		return err
	}

	app, err := NewApp(cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	counts, err := seed.Run(context.Background(), app.Services)
	if app.Audit != nil && (counts != nil || err != nil) {
		app.Audit.LogSeed(counts, err)
	}
	if err != nil {
		return err
	}
	if counts == nil {
		log.Info("Catalog already contains users, skipping seed")
		return nil
	}
	log.WithFields(logrus.Fields{
		"users":    counts["users"],
		"authors":  counts["authors"],
		"books":    counts["books"],
		"chapters": counts["chapters"],
		"reviews":  counts["reviews"],
	}).Info("Sample catalog loaded")
	return nil
}
