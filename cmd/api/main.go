package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"petclinic/internal/adapters/storage/postgres"
	"petclinic/internal/adapters/storage/sqlite"
	"petclinic/internal/config"
	"petclinic/internal/platform/logger"
	"petclinic/internal/router"

	"github.com/google/uuid"
)

// @title PetClinic API
// @version 1.0
// @description REST API para la gestión de una clínica veterinaria: owners, mascotas y visitas.
// @BasePath /api/v1
func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	}).With(map[string]any{"instance": uuid.NewString()})

	var db *sql.DB
	switch cfg.DBDriver {
	case config.DriverPostgres:
		db, err = postgres.Open(cfg.DBDSN)
		if err != nil {
			log.Fatalf("open postgres: %v", err)
		}
		if err := postgres.EnsureSchema(context.Background(), db); err != nil {
			log.Fatalf("postgres schema: %v", err)
		}
	case config.DriverSQLite:
		db, err = sqlite.Open(cfg.DBDSN)
		if err != nil {
			log.Fatalf("open sqlite: %v", err)
		}
		if err := sqlite.EnsureSchema(context.Background(), db); err != nil {
			log.Fatalf("sqlite schema: %v", err)
		}
	}
	if db != nil {
		defer func() { _ = db.Close() }()
	}

	r := router.NewRouter(router.Options{
		DB:     db,
		Driver: cfg.DBDriver,
		Log:    lg,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	lg.Info("starting server", map[string]any{"addr": srv.Addr, "db_driver": cfg.DBDriver})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
