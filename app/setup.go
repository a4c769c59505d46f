package app

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jalexanderII/zero-todo/config"
	"github.com/jalexanderII/zero-todo/database"
	"github.com/jalexanderII/zero-todo/handlers"
	"github.com/jalexanderII/zero-todo/router"
	"github.com/jalexanderII/zero-todo/store"
	"github.com/sirupsen/logrus"
)

// NewFiberApp wires middleware, routes and swagger around s.
func NewFiberApp(cfg *config.Config, s store.TodoStore, l *logrus.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "zero-todo",
		DisableStartupMessage: cfg.IsProduction(),
		ErrorHandler:          handlers.ErrorHandler(l),
	})

	FiberMiddleware(app, cfg, l)

	router.SetupRoutes(app, handlers.NewHandler(s, l))

	config.AddSwaggerRoutes(app)

	// must be registered last
	app.Use(handlers.NotFound)

	return app
}

// OpenStore connects to the datastore selected by cfg.DatabaseDriver.
func OpenStore(cfg *config.Config, l *logrus.Logger) (store.TodoStore, error) {
	switch cfg.DatabaseDriver {
	case config.DriverMongo:
		client, err := database.StartMongoDB(cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		return store.NewMongoStore(client.Database(cfg.Database), cfg.TodoCollection, l), nil
	case config.DriverSQLite, config.DriverPostgres:
		db, err := database.OpenSQL(cfg.DatabaseDriver, cfg.DatabaseURL, l)
		if err != nil {
			return nil, err
		}
		return store.NewSQLStore(db, l), nil
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}
}

// SetupAndRunApp handle app and database start and graceful shutdown
func SetupAndRunApp(cfg *config.Config, l *logrus.Logger) error {
	s, err := OpenStore(cfg, l)
	if err != nil {
		return err
	}

	defer func() {
		if err := s.Close(); err != nil {
			l.WithError(err).Error("closing store")
		}
	}()

	l.WithField("driver", cfg.DatabaseDriver).Info("store ready")

	return StartServerWithGracefulShutdown(NewFiberApp(cfg, s, l), cfg.Addr(), l)
}
