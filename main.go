package main

import (
	"os"

	"github.com/jalexanderII/zero-todo/app"
	"github.com/jalexanderII/zero-todo/config"
	"github.com/sirupsen/logrus"
)

func newLogger(cfg *config.Config) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	if cfg.IsProduction() {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

// @title Zero Todo API
// @version 0.1
// @description Todo list backend: health check and CRUD over a single todos table.
// @contact.name Joel Alexander
// @license.name MIT
// @host localhost:8787
// @BasePath /
func main() {
	if err := config.LoadENV(); err != nil {
		logrus.Fatalf("loading .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal(err)
	}

	l := newLogger(cfg)
	if err = app.SetupAndRunApp(cfg, l); err != nil {
		l.Fatal(err)
	}
}
