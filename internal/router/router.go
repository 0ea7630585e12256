package router

import (
	"database/sql"
	"net/http"

	mem "petclinic/internal/adapters/storage/memory"
	pg "petclinic/internal/adapters/storage/postgres"
	lite "petclinic/internal/adapters/storage/sqlite"
	"petclinic/internal/config"
	"petclinic/internal/domain/owners"
	"petclinic/internal/domain/pets"
	"petclinic/internal/domain/visits"
	"petclinic/internal/middleware"
	"petclinic/internal/platform/logger"

	_ "petclinic/docs" // registro del spec swagger

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Si DB == nil se usan los repos in-memory (modo dev / tests).
	DB *sql.DB
	// Driver distingue el dialecto cuando DB != nil: config.DriverPostgres
	// o config.DriverSQLite.
	Driver string

	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.New(logger.Options{Level: logger.Info, App: "petclinic"})
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLog(log))
	r.Use(middleware.Metrics)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		ownersRepo owners.Repository
		petsRepo   pets.Repository
		visitsRepo visits.Repository
	)

	switch {
	case opts.DB != nil && opts.Driver == config.DriverSQLite:
		ownersRepo = lite.NewOwnersRepo(opts.DB)
		petsRepo = lite.NewPetsRepo(opts.DB)
		visitsRepo = lite.NewVisitsRepo(opts.DB)
	case opts.DB != nil:
		ownersRepo = pg.NewOwnersRepo(opts.DB)
		petsRepo = pg.NewPetsRepo(opts.DB)
		visitsRepo = pg.NewVisitsRepo(opts.DB)
	default:
		ownersRepo = mem.NewOwnersRepo()
		petsRepo = mem.NewPetsRepo()
		visitsRepo = mem.NewVisitsRepo()
	}

	// Services por módulo
	ownersSvc := owners.NewService(ownersRepo)
	petsSvc := pets.NewService(petsRepo)
	visitsSvc := visits.NewService(visitsRepo)

	// Rutas por módulo, bajo el prefijo de la API
	r.Route("/api/v1", func(api chi.Router) {
		owners.RegisterRoutes(api, ownersSvc)
		pets.RegisterRoutes(api, petsSvc, ownersSvc)
		visits.RegisterRoutes(api, visitsSvc, petsSvc)
	})

	return r
}
